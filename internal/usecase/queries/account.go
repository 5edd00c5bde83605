package queries

import (
	"context"

	"storefront-checkout/internal/domain/customer"
	"storefront-checkout/internal/infra/pos"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/pkg/patch"
	"storefront-checkout/internal/usecase/shared"
)

//go:generate mockgen -source=account.go -destination=../../../tests/mock/queries/account_mock.go -package=queries

var ErrAccountNotFound = errs.New("account not found")

type AccountQueries interface {
	// GetAccount reads the caller's profile and bonus balance from the POS.
	GetAccount(ctx context.Context, session customer.Session) (*AccountView, error)
}

type accountQueriesImpl struct {
	catalog shared.Catalog
}

func NewAccountQueries(catalog shared.Catalog) AccountQueries {
	return &accountQueriesImpl{catalog: catalog}
}

func (q *accountQueriesImpl) GetAccount(ctx context.Context, session customer.Session) (*AccountView, error) {
	profile, err := q.catalog.Client(ctx, session.ClientID)
	if err != nil {
		if errs.Is(err, pos.ErrClientNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, errs.Wrap(err, "load client profile")
	}

	return &AccountView{
		ClientID: session.ClientID,
		Name:     patch.FirstNonBlank(profile.Name, session.Name),
		Phone:    patch.FirstNonBlank(profile.Phone, customer.FormatPhone(session.Phone)),
		Bonus:    max(profile.Bonus, 0),
	}, nil
}
