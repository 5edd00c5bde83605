package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// An expired row for the same key is reclaimed in place, so a zero row count
// means a live row already holds the key.
const tryInsertIdempotencyKey = `INSERT INTO idempotency_keys (key, client_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, client_id) DO UPDATE
SET endpoint = EXCLUDED.endpoint,
    request_hash = EXCLUDED.request_hash,
    status = 'processing',
    result_order_id = NULL,
    created_at = now(),
    expires_at = EXCLUDED.expires_at
WHERE idempotency_keys.expires_at < now()`

type TryInsertIdempotencyKeyParams struct {
	Key         uuid.UUID
	ClientID    string
	Endpoint    string
	RequestHash string
	ExpiresAt   pgtype.Timestamptz
}

func (q *Queries) TryInsertIdempotencyKey(ctx context.Context, db DBTX, arg TryInsertIdempotencyKeyParams) (int64, error) {
	tag, err := db.Exec(ctx, tryInsertIdempotencyKey,
		arg.Key,
		arg.ClientID,
		arg.Endpoint,
		arg.RequestHash,
		arg.ExpiresAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getIdempotencyKey = `SELECT key, client_id, endpoint, request_hash, status, result_order_id, created_at, expires_at
FROM idempotency_keys
WHERE key = $1 AND client_id = $2`

type GetIdempotencyKeyParams struct {
	Key      uuid.UUID
	ClientID string
}

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, arg GetIdempotencyKeyParams) (IdempotencyKeys, error) {
	row := db.QueryRow(ctx, getIdempotencyKey, arg.Key, arg.ClientID)
	var i IdempotencyKeys
	err := row.Scan(
		&i.Key,
		&i.ClientID,
		&i.Endpoint,
		&i.RequestHash,
		&i.Status,
		&i.ResultOrderID,
		&i.CreatedAt,
		&i.ExpiresAt,
	)
	return i, err
}

const completeIdempotencyKey = `UPDATE idempotency_keys
SET status = 'completed', result_order_id = $3
WHERE key = $1 AND client_id = $2`

type CompleteIdempotencyKeyParams struct {
	Key           uuid.UUID
	ClientID      string
	ResultOrderID pgtype.UUID
}

func (q *Queries) CompleteIdempotencyKey(ctx context.Context, db DBTX, arg CompleteIdempotencyKeyParams) error {
	_, err := db.Exec(ctx, completeIdempotencyKey, arg.Key, arg.ClientID, arg.ResultOrderID)
	return err
}

const deleteIdempotencyKey = `DELETE FROM idempotency_keys
WHERE key = $1 AND client_id = $2 AND status = 'processing'`

type DeleteIdempotencyKeyParams struct {
	Key      uuid.UUID
	ClientID string
}

func (q *Queries) DeleteIdempotencyKey(ctx context.Context, db DBTX, arg DeleteIdempotencyKeyParams) error {
	_, err := db.Exec(ctx, deleteIdempotencyKey, arg.Key, arg.ClientID)
	return err
}

const deleteExpiredIdempotencyKeys = `DELETE FROM idempotency_keys WHERE expires_at < now()`

func (q *Queries) DeleteExpiredIdempotencyKeys(ctx context.Context, db DBTX) (int64, error) {
	tag, err := db.Exec(ctx, deleteExpiredIdempotencyKeys)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
