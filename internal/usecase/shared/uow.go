package shared

import (
	"context"
	"time"

	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/infra/db"

	"github.com/google/uuid"
)

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow_mock.go -package=shared

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	IdempotencyByKey(ctx context.Context, key uuid.UUID, clientID string) (*IdempotencyRecord, error)
	Settings(ctx context.Context, keys ...string) (map[string]string, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) error
}

type IdempotencyRepository interface {
	// TryInsert reports whether this call now owns the key.
	TryInsert(ctx context.Context, tx db.DBTX, key uuid.UUID, clientID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Complete(ctx context.Context, tx db.DBTX, key uuid.UUID, clientID string, orderID uuid.UUID) error
	Release(ctx context.Context, tx db.DBTX, key uuid.UUID, clientID string) error
	DeleteExpired(ctx context.Context, tx db.DBTX) (int64, error)
}
