package api

import (
	"net/http"

	"storefront-checkout/internal/domain/pricing"
	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/infra/pos"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ClosedDetail struct {
	WorkStart string `json:"workStart"`
	WorkEnd   string `json:"workEnd"`
}

type BonusDetail struct {
	BonusAvailable int64 `json:"bonusAvailable"`
}

type UpstreamDetail struct {
	Status int    `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`
}

var orderErrorMessages = map[string]string{
	"CLOSED":               "The shop is closed",
	"BONUS_EXCEEDED":       "Requested bonus exceeds the available balance",
	"UNAUTHORIZED":         "Client session required",
	"EMPTY_CART":           "Cart is empty",
	"PHONE_REQUIRED":       "Phone number is required",
	"CLIENT_ID_INVALID":    "Client id is invalid",
	"ADDRESS_REQUIRED":     "Delivery address is required",
	"LOCATION_REQUIRED":    "Delivery location is required",
	"SPOT_REQUIRED":        "Pickup spot is required",
	"INVALID_PROMO":        "Promo code not found",
	"INVALID_BODY":         "Invalid request",
	"IDEMPOTENCY_CONFLICT": "A request with this idempotency key is already being processed",
	"ORDER_API_ERROR":      "Order service is unavailable",
	"INTERNAL_ERROR":       "Internal server error",
}

// abortOrderError maps a checkout failure to its HTTP answer.
func abortOrderError(c *gin.Context, err error) {
	code := commands.Outcome(nil, err)
	msg := orderErrorMessages[code]

	var (
		status = http.StatusBadRequest
		detail any
	)
	switch code {
	case "CLOSED":
		var closed *commands.ClosedError
		if errs.As(err, &closed) {
			detail = ClosedDetail{WorkStart: closed.Start, WorkEnd: closed.End}
		}
	case "BONUS_EXCEEDED":
		var exceeded *pricing.BonusExceededError
		if errs.As(err, &exceeded) {
			detail = BonusDetail{BonusAvailable: exceeded.Available}
		}
	case "UNAUTHORIZED":
		status = http.StatusUnauthorized
	case "IDEMPOTENCY_CONFLICT":
		status = http.StatusConflict
		if errs.Is(err, errs.ErrIdempotencyKeyReused) {
			status = http.StatusUnprocessableEntity
			msg = "Idempotency key was already used with a different request"
		}
	case "ORDER_API_ERROR":
		status = http.StatusBadGateway
		var upstream *pos.StatusError
		if errs.As(err, &upstream) {
			detail = UpstreamDetail{Status: upstream.Status, Body: upstream.Body}
		}
	case "INTERNAL_ERROR":
		status = http.StatusInternalServerError
	}
	httperr.AbortWithError(c, status, err, code, msg, detail)
}
