package queries_test

import (
	"context"
	"testing"

	"storefront-checkout/internal/infra/pos"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/queries"
	sharedmock "storefront-checkout/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestListSpots(t *testing.T) {
	lat, lng := 41.3, 69.28

	t.Run("maps spots", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		catalog := sharedmock.NewMockCatalog(ctrl)
		catalog.EXPECT().Spots(gomock.Any()).Return([]pos.Spot{
			{ID: "1", Name: "Chilanzar", Address: "Bunyodkor 5", Lat: &lat, Lng: &lng},
			{ID: "2", Name: "Yunusabad", Address: "Amir Temur 100"},
		}, nil)

		got, err := queries.NewSpotQueries(catalog).List(context.Background())
		require.NoError(t, err)

		want := []queries.SpotView{
			{ID: "1", Name: "Chilanzar", Address: "Bunyodkor 5", Lat: &lat, Lng: &lng},
			{ID: "2", Name: "Yunusabad", Address: "Amir Temur 100"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("spots mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		catalog := sharedmock.NewMockCatalog(ctrl)
		catalog.EXPECT().Spots(gomock.Any()).Return(nil, nil)

		got, err := queries.NewSpotQueries(catalog).List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("POS outage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		catalog := sharedmock.NewMockCatalog(ctrl)
		catalog.EXPECT().Spots(gomock.Any()).Return(nil, errs.ErrUpstreamUnavailable)

		_, err := queries.NewSpotQueries(catalog).List(context.Background())
		assert.True(t, errs.Is(err, errs.ErrUpstreamUnavailable))
	})
}
