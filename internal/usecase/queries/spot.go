package queries

import (
	"context"

	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/shared"
)

//go:generate mockgen -source=spot.go -destination=../../../tests/mock/queries/spot_mock.go -package=queries

type SpotQueries interface {
	List(ctx context.Context) ([]SpotView, error)
}

type spotQueriesImpl struct {
	catalog shared.Catalog
}

func NewSpotQueries(catalog shared.Catalog) SpotQueries {
	return &spotQueriesImpl{catalog: catalog}
}

func (q *spotQueriesImpl) List(ctx context.Context) ([]SpotView, error) {
	spots, err := q.catalog.Spots(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "load spots")
	}

	out := make([]SpotView, 0, len(spots))
	for _, s := range spots {
		out = append(out, SpotView{
			ID:      s.ID,
			Name:    s.Name,
			Address: s.Address,
			Lat:     s.Lat,
			Lng:     s.Lng,
		})
	}
	return out, nil
}
