package components

import (
	"storefront-checkout/internal/infra/query"
	"storefront-checkout/internal/infra/readstore"
	"storefront-checkout/internal/infra/uow"
	"storefront-checkout/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// RepositoryModule provides the write side through the unit of work and the
// order read store for status lookups.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewQueries,
		uow.NewPostgresUoW,
		NewOrderReadStore,
	),
)

func NewQueries(_ *pgxpool.Pool) *query.Queries {
	return query.New()
}

func NewOrderReadStore(q *query.Queries, pool *pgxpool.Pool) queries.OrderReadStore {
	return readstore.NewOrderReadStore(q, pool)
}
