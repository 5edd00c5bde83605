package bootstrap

import (
	"time"

	"storefront-checkout/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBusinessLocation,
	),
)

// NewBusinessLocation is the shop's zone for promotion periods and work hours.
func NewBusinessLocation(cfg config.Config) (*time.Location, error) {
	return cfg.POS.Location()
}
