package bootstrap

import (
	"log/slog"

	"storefront-checkout/internal/infra/notify"
	"storefront-checkout/internal/infra/pos"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/metrics"

	"go.uber.org/fx"
)

// POSModule provides the outbound HTTP clients: the POS API and the
// operations chat.
var POSModule = fx.Module("pos",
	fx.Provide(
		NewPOSClient,
		NewNotifier,
	),
)

func NewPOSClient(cfg config.Config, reg *metrics.Registry, logger *slog.Logger) *pos.Client {
	return pos.NewClient(cfg.POS, reg, logger)
}

func NewNotifier(cfg config.Config, reg *metrics.Registry, logger *slog.Logger) *notify.Telegram {
	n := notify.NewTelegram(cfg.Notify, reg, logger)
	if !n.Enabled() {
		logger.Info("Order notifications disabled, Telegram bot is not configured")
	}
	return n
}
