package readstore

import (
	"context"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/infra/query"
	"storefront-checkout/internal/pkg/pgconv"
	"storefront-checkout/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderReadQueries interface {
	GetOrderByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Orders, error)
}

type OrderReadStore struct {
	queries OrderReadQueries
	db      db.DBTX
}

func NewOrderReadStore(queries OrderReadQueries, db db.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row, err := r.queries.GetOrderByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	return &queries.OrderView{
		ID:         row.ID,
		ExternalID: pgconv.StringPtrFromPgtype(row.ExternalID),
		ClientID:   row.ClientID,
		Status:     row.Status,
		Total:      row.Total,
		CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
	}, nil
}
