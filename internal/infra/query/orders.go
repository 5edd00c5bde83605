package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, external_id, client_id, customer_phone, customer_name, delivery_type,
	address, lat, lng, spot_id, persons, payment_method, promo_code, comment, items_json,
	subtotal, package_fee, delivery_fee, discount, bonus_used, total, status,
	idempotency_key, created_at`

const insertOrder = `INSERT INTO orders (` + orderColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

type InsertOrderParams struct {
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

func (q *Queries) InsertOrder(ctx context.Context, db DBTX, arg InsertOrderParams) error {
	_, err := db.Exec(ctx, insertOrder,
		arg.ID,
		arg.ExternalID,
		arg.ClientID,
		arg.CustomerPhone,
		arg.CustomerName,
		arg.DeliveryType,
		arg.Address,
		arg.Lat,
		arg.Lng,
		arg.SpotID,
		arg.Persons,
		arg.PaymentMethod,
		arg.PromoCode,
		arg.Comment,
		arg.ItemsJSON,
		arg.Subtotal,
		arg.PackageFee,
		arg.DeliveryFee,
		arg.Discount,
		arg.BonusUsed,
		arg.Total,
		arg.Status,
		arg.IdempotencyKey,
		arg.CreatedAt,
	)
	return err
}

const getOrderByID = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

func (q *Queries) GetOrderByID(ctx context.Context, db DBTX, id uuid.UUID) (Orders, error) {
	row := db.QueryRow(ctx, getOrderByID, id)
	var i Orders
	err := row.Scan(
		&i.ID,
		&i.ExternalID,
		&i.ClientID,
		&i.CustomerPhone,
		&i.CustomerName,
		&i.DeliveryType,
		&i.Address,
		&i.Lat,
		&i.Lng,
		&i.SpotID,
		&i.Persons,
		&i.PaymentMethod,
		&i.PromoCode,
		&i.Comment,
		&i.ItemsJSON,
		&i.Subtotal,
		&i.PackageFee,
		&i.DeliveryFee,
		&i.Discount,
		&i.BonusUsed,
		&i.Total,
		&i.Status,
		&i.IdempotencyKey,
		&i.CreatedAt,
	)
	return i, err
}
