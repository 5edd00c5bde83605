package components

import (
	"context"
	"log/slog"
	"time"

	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

// PersistenceModule runs storage housekeeping for the lifetime of the app.
var PersistenceModule = fx.Module("persistence",
	fx.Invoke(StartIdempotencyPurge),
)

// StartIdempotencyPurge deletes expired idempotency keys on a fixed interval
// until the app stops.
func StartIdempotencyPurge(lc fx.Lifecycle, cmds commands.IdempotencyCommands, cfg config.Config, logger *slog.Logger) {
	interval := cfg.Idempotency.PurgeInterval
	if interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						purgeOnce(ctx, cmds, logger)
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

func purgeOnce(ctx context.Context, cmds commands.IdempotencyCommands, logger *slog.Logger) {
	n, err := cmds.PurgeExpired(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Idempotency purge failed", "error", err.Error())
		return
	}
	if n > 0 {
		logger.InfoContext(ctx, "Expired idempotency keys purged", "count", n)
	}
}
