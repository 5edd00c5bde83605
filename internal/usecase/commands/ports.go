package commands

import (
	"context"

	"storefront-checkout/internal/domain/customer"
	"storefront-checkout/internal/infra/notify"
	"storefront-checkout/internal/infra/pos"
	"storefront-checkout/internal/usecase/queries"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports_mock.go -package=commands

// OrderGateway submits orders to the POS order API.
type OrderGateway interface {
	CreateOrder(ctx context.Context, r pos.OrderRequest) (pos.OrderResult, error)
}

// ProfileSource reads the customer's POS profile, including the bonus balance.
type ProfileSource interface {
	Client(ctx context.Context, clientID string) (*customer.Profile, error)
}

// DiscountResolver prices a cart against the active promotions.
type DiscountResolver interface {
	ResolveCart(ctx context.Context, code string, cartPrices map[string]int64) (*queries.CartResolution, error)
}

// Notifier delivers order summaries to the operations channel.
type Notifier interface {
	OrderPlaced(ctx context.Context, s notify.OrderSummary) error
}

// Recorder counts submissions by outcome code.
type Recorder interface {
	OrderSubmitted(outcome string)
}
