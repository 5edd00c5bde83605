package commands

import (
	"context"

	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/shared"
)

//go:generate mockgen -source=idempotency.go -destination=../../../tests/mock/commands/idempotency_mock.go -package=commands

type IdempotencyCommands interface {
	// PurgeExpired drops keys past their expiry and reports how many went.
	PurgeExpired(ctx context.Context) (int64, error)
}

type idempotencyCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewIdempotencyCommands(uow shared.UnitOfWork) IdempotencyCommands {
	return &idempotencyCommandsImpl{uow: uow}
}

func (c *idempotencyCommandsImpl) PurgeExpired(ctx context.Context) (int64, error) {
	var purged int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx, tx.DB())
		if err != nil {
			return err
		}
		purged = n
		return nil
	})
	if err != nil {
		return 0, errs.Wrap(err, "purge expired idempotency keys")
	}
	return purged, nil
}
