package errs

import "errors"

// Shared sentinel errors for the checkout usecase layers
var (
	// Order errors
	ErrOrderNotFound = errors.New("order not found")

	// Promotion errors
	ErrInvalidPromo = errors.New("promo code not found or inactive")

	// Idempotency errors
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyKeyReused   = errors.New("idempotency key reused with a different request")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Upstream errors
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
