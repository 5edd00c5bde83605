package repository

import (
	"context"
	"encoding/json"

	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/infra/query"
	"storefront-checkout/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type OrderWriteQueries interface {
	InsertOrder(ctx context.Context, db query.DBTX, arg query.InsertOrderParams) error
}

type OrderRepository struct {
	queries OrderWriteQueries
}

func NewOrderRepository(queries OrderWriteQueries) *OrderRepository {
	return &OrderRepository{
		queries: queries,
	}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) error {
	params, err := toInsertOrderParams(o)
	if err != nil {
		return infra.WrapRepoErr("failed to encode order items", err)
	}

	if err := r.queries.InsertOrder(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}

	return nil
}

func toInsertOrderParams(o *order.Order) (query.InsertOrderParams, error) {
	items, err := json.Marshal(o.Items())
	if err != nil {
		return query.InsertOrderParams{}, err
	}

	contact := o.Contact()
	f := o.Fulfilment()
	totals := o.Totals()

	var lat, lng pgtype.Float8
	if f.Location != nil {
		lat = pgtype.Float8{Float64: f.Location.Lat, Valid: true}
		lng = pgtype.Float8{Float64: f.Location.Lng, Valid: true}
	}

	return query.InsertOrderParams{
		ID:             o.ID(),
		ExternalID:     pgconv.StringPtrToPgtype(o.ExternalID()),
		ClientID:       contact.ClientID,
		CustomerPhone:  contact.Phone,
		CustomerName:   pgconv.StringPtrToPgtype(contact.Name),
		DeliveryType:   f.Type.String(),
		Address:        pgconv.StringPtrToPgtype(f.Address),
		Lat:            lat,
		Lng:            lng,
		SpotID:         pgconv.StringPtrToPgtype(f.SpotID),
		Persons:        int32(f.Persons), // #nosec G115 -- persons is validated at the boundary
		PaymentMethod:  o.PaymentMethod().String(),
		PromoCode:      pgconv.StringPtrToPgtype(o.PromoCode()),
		Comment:        pgconv.StringPtrToPgtype(o.Comment()),
		ItemsJSON:      items,
		Subtotal:       totals.Subtotal,
		PackageFee:     totals.PackageFee,
		DeliveryFee:    totals.DeliveryFee,
		Discount:       totals.Discount,
		BonusUsed:      totals.BonusUsed,
		Total:          totals.Total,
		Status:         o.Status().String(),
		IdempotencyKey: pgconv.UUIDPtrToPgtype(o.IdempotencyKey()),
		CreatedAt:      pgconv.TimeToPgtype(o.CreatedAt()),
	}, nil
}
