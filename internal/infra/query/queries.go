package query

import (
	"storefront-checkout/internal/infra/db"
)

// Queries is stateless; every method takes the connection or transaction to
// run on.
type Queries struct{}

func New() *Queries {
	return &Queries{}
}

// DBTX is re-exported so callers only import this package.
type DBTX = db.DBTX
