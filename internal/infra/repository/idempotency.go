package repository

import (
	"context"
	"time"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/infra/query"
	"storefront-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db query.DBTX, arg query.TryInsertIdempotencyKeyParams) (int64, error)
	CompleteIdempotencyKey(ctx context.Context, db query.DBTX, arg query.CompleteIdempotencyKeyParams) error
	DeleteIdempotencyKey(ctx context.Context, db query.DBTX, arg query.DeleteIdempotencyKeyParams) error
	DeleteExpiredIdempotencyKeys(ctx context.Context, db query.DBTX) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
	}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key uuid.UUID, clientID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	params := query.TryInsertIdempotencyKeyParams{
		Key:         key,
		ClientID:    clientID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	}

	n, err := r.queries.TryInsertIdempotencyKey(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}

	return n > 0, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, tx db.DBTX, key uuid.UUID, clientID string, orderID uuid.UUID) error {
	params := query.CompleteIdempotencyKeyParams{
		Key:           key,
		ClientID:      clientID,
		ResultOrderID: pgconv.UUIDToPgtype(orderID),
	}

	if err := r.queries.CompleteIdempotencyKey(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}

	return nil
}

// Release drops a key still in processing so the client can retry with it.
func (r *IdempotencyRepository) Release(ctx context.Context, tx db.DBTX, key uuid.UUID, clientID string) error {
	params := query.DeleteIdempotencyKeyParams{
		Key:      key,
		ClientID: clientID,
	}

	if err := r.queries.DeleteIdempotencyKey(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}

	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, tx db.DBTX) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, tx)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}

	return count, nil
}
