package pos

import (
	"context"
)

// Spot is a pickup location.
type Spot struct {
	ID      string
	Name    string
	Address string
	Lat     *float64
	Lng     *float64
}

// Spots lists spots.getSpots without deleted entries.
func (c *Client) Spots(ctx context.Context) ([]Spot, error) {
	root, err := c.get(ctx, "spots.getSpots", nil)
	if err != nil {
		return nil, err
	}
	var out []Spot
	for _, n := range response(root).items() {
		if !n.isObject() || n.field("spot_delete").truthy() {
			continue
		}
		id := n.field("spot_id", "id").str()
		if id == "" {
			continue
		}
		out = append(out, Spot{
			ID:      id,
			Name:    n.field("name", "spot_name").str(),
			Address: n.field("address").str(),
			Lat:     coordinate(n.field("lat")),
			Lng:     coordinate(n.field("lng")),
		})
	}
	return out, nil
}

func coordinate(n *node) *float64 {
	if !n.truthy() {
		return nil
	}
	d, ok := n.number()
	if !ok {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
