package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key           uuid.UUID
	ClientID      string
	Status        string
	RequestHash   string
	ResultOrderID *uuid.UUID
	ExpiresAt     time.Time
}

func (r *IdempotencyRecord) Completed() bool {
	return r.Status == IdempotencyStatusCompleted && r.ResultOrderID != nil
}

// Settings keys read from bot_settings.
const (
	SettingWorkStart   = "work_start"
	SettingWorkEnd     = "work_end"
	SettingPackageFee  = "package_fee"
	SettingDeliveryFee = "delivery_fee"
)
