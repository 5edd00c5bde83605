package commands_test

import (
	"context"
	"testing"

	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/shared"
	sharedmock "storefront-checkout/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPurgeExpired(t *testing.T) {
	tests := []struct {
		name      string
		deleted   int64
		deleteErr error
		want      int64
		wantErr   bool
	}{
		{name: "reports purged count", deleted: 4, want: 4},
		{name: "nothing to purge", deleted: 0, want: 0},
		{name: "storage failure", deleteErr: errs.New("connection reset"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uow := sharedmock.NewMockUnitOfWork(ctrl)
			tx := sharedmock.NewMockTx(ctrl)
			idem := sharedmock.NewMockIdempotencyRepository(ctrl)

			uow.EXPECT().Within(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
					return fn(ctx, tx)
				})
			tx.EXPECT().DB().Return(nil)
			tx.EXPECT().Idempotency().Return(idem)
			idem.EXPECT().DeleteExpired(gomock.Any(), gomock.Nil()).
				DoAndReturn(func(_ context.Context, _ db.DBTX) (int64, error) {
					return tt.deleted, tt.deleteErr
				})

			got, err := commands.NewIdempotencyCommands(uow).PurgeExpired(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
