package queries

import (
	"context"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=order.go -destination=../../../tests/mock/queries/order_mock.go -package=queries

type OrderQueries interface {
	// GetOrder returns the caller's own order; other clients' orders read as not found.
	GetOrder(ctx context.Context, clientID string, id uuid.UUID) (*OrderView, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{
		readStore: readStore,
	}
}

func (q *orderQueriesImpl) GetOrder(ctx context.Context, clientID string, id uuid.UUID) (*OrderView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if view.ClientID != clientID {
		return nil, errs.ErrOrderNotFound
	}

	return view, nil
}
