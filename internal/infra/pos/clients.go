package pos

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"storefront-checkout/internal/domain/customer"
	"storefront-checkout/internal/pkg/errs"
)

var bonusKeys = []string{"bonus", "bonus_points", "bonus_sum", "bonus_total", "bonus_amount", "balance"}

// ErrClientNotFound is returned when the POS knows no customer with the id.
var ErrClientNotFound = errs.New("POS client not found")

// Client loads a customer profile by id. clients.getClient is tried first
// and clients.getClients is the fallback. The bonus balance is read as-is in
// minor units.
func (c *Client) Client(ctx context.Context, clientID string) (*customer.Profile, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrClientNotFound
	}
	params := url.Values{"client_id": {clientID}}

	root, err := c.get(ctx, "clients.getClient", params)
	if err != nil {
		c.logger.DebugContext(ctx, "clients.getClient failed, trying clients.getClients",
			slog.String("error", err.Error()))
		root, err = c.get(ctx, "clients.getClients", params)
		if err != nil {
			return nil, err
		}
	}

	list := extractClients(root)
	if len(list) == 0 {
		return nil, ErrClientNotFound
	}
	p := decodeProfile(list[0])
	if p.ClientID == "" {
		return nil, ErrClientNotFound
	}
	return &p, nil
}

func extractClients(root *node) []*node {
	resp := root.field("response", "clients", "data", "result")
	if resp == nil {
		resp = root
	}
	if resp.isArray() {
		return resp.arr
	}
	if list := resp.field("data", "clients", "items"); list.isArray() {
		return list.arr
	}
	if resp.isObject() && resp.field("client_id", "id") != nil {
		return []*node{resp}
	}
	return nil
}

func decodeProfile(n *node) customer.Profile {
	name := n.field("client_name", "name", "full_name").str()
	if name == "" {
		name = customer.JoinName(
			n.field("firstname", "first_name").str(),
			n.field("lastname", "last_name").str(),
			n.field("patronymic", "middle_name").str(),
		)
	}
	var bonus int64
	if v, ok := n.field(bonusKeys...).int64(); ok && v > 0 {
		bonus = v
	}
	return customer.Profile{
		ClientID: n.field("client_id", "id").str(),
		Name:     name,
		Phone:    customer.FormatPhone(n.field("phone", "phone_number", "tel").str()),
		Bonus:    bonus,
	}
}
