// Package query holds the SQL statements and row types used by the
// repositories and read stores.
package query

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Orders struct {
	ID             uuid.UUID
	ExternalID     pgtype.Text
	ClientID       string
	CustomerPhone  string
	CustomerName   pgtype.Text
	DeliveryType   string
	Address        pgtype.Text
	Lat            pgtype.Float8
	Lng            pgtype.Float8
	SpotID         pgtype.Text
	Persons        int32
	PaymentMethod  string
	PromoCode      pgtype.Text
	Comment        pgtype.Text
	ItemsJSON      []byte
	Subtotal       int64
	PackageFee     int64
	DeliveryFee    int64
	Discount       int64
	BonusUsed      int64
	Total          int64
	Status         string
	IdempotencyKey pgtype.UUID
	CreatedAt      pgtype.Timestamptz
}

type IdempotencyKeys struct {
	Key           uuid.UUID
	ClientID      string
	Endpoint      string
	RequestHash   string
	Status        string
	ResultOrderID pgtype.UUID
	CreatedAt     pgtype.Timestamptz
	ExpiresAt     pgtype.Timestamptz
}

type BotSettings struct {
	Key   string
	Value string
}
