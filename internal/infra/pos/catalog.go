package pos

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"storefront-checkout/internal/domain/promotion"

	"golang.org/x/sync/errgroup"
)

const categoryFetchConcurrency = 4

var priceKeys = []string{"price", "product_price", "price_sum", "price_1", "price1", "price2", "price3", "prices"}

type category struct {
	ID     string
	Name   string
	Hidden bool
}

// Products returns the visible catalog. When menu.getProducts comes back
// empty the catalog is rebuilt category by category. Products in hidden
// categories and products marked "&off" are dropped.
func (c *Client) Products(ctx context.Context) ([]promotion.Product, error) {
	root, err := c.get(ctx, "menu.getProducts", nil)
	if err != nil {
		return nil, err
	}
	products := extractProducts(root, "")

	var categories []category
	if len(products) == 0 {
		categories, err = c.categories(ctx)
		if err != nil {
			return nil, err
		}
		products = c.productsByCategory(ctx, categories)
	} else {
		// hidden categories are only known from the category list
		categories, err = c.categories(ctx)
		if err != nil {
			c.logger.WarnContext(ctx, "category list unavailable, hidden categories not filtered",
				slog.String("error", err.Error()))
		}
	}
	hidden := make(map[string]bool)
	for _, cat := range categories {
		if cat.Hidden {
			hidden[cat.ID] = true
		}
	}

	out := products[:0]
	for _, p := range products {
		if hidden[p.CategoryID] {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *Client) categories(ctx context.Context) ([]category, error) {
	root, err := c.get(ctx, "menu.getCategories", nil)
	if err != nil {
		return nil, err
	}
	list := root.field("response", "categories")
	var out []category
	for _, n := range list.items() {
		id := n.field("category_id", "id").str()
		if id == "" {
			continue
		}
		name := n.field("category_name", "name", "title").str()
		out = append(out, category{ID: id, Name: name, Hidden: isHiddenCategory(name)})
	}
	return out, nil
}

// productsByCategory fetches each category separately. Failed categories are
// skipped.
func (c *Client) productsByCategory(ctx context.Context, categories []category) []promotion.Product {
	var (
		mu  sync.Mutex
		out []promotion.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(categoryFetchConcurrency)
	for _, cat := range categories {
		g.Go(func() error {
			root, err := c.get(gctx, "menu.getProducts", url.Values{"category_id": {cat.ID}})
			if err != nil {
				c.logger.WarnContext(gctx, "category products unavailable",
					slog.String("category_id", cat.ID),
					slog.String("error", err.Error()))
				return nil
			}
			list := extractProducts(root, cat.ID)
			mu.Lock()
			out = append(out, list...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// extractProducts accepts response as a product list, or an object holding
// products, items or categories with nested products.
func extractProducts(root *node, categoryID string) []promotion.Product {
	resp := root.field("response")
	if resp.isArray() {
		return decodeProducts(resp.arr, categoryID)
	}
	if list := resp.field("products", "items"); list != nil {
		return decodeProducts(list.items(), categoryID)
	}
	var out []promotion.Product
	for _, cat := range resp.field("categories").items() {
		if isHiddenCategory(cat.field("category_name", "name").str()) {
			continue
		}
		catID := cat.field("category_id", "categoryId", "id").str()
		if catID == "" {
			catID = categoryID
		}
		out = append(out, decodeProducts(cat.field("products", "items").items(), catID)...)
	}
	return out
}

func decodeProducts(list []*node, categoryID string) []promotion.Product {
	out := make([]promotion.Product, 0, len(list))
	for _, n := range list {
		if !n.isObject() {
			continue
		}
		rawName := n.field("product_name", "name").str()
		if hasOffMarker(rawName) {
			continue
		}
		if isHiddenCategory(n.field("category_name", "menu_category_name").str()) {
			continue
		}
		id := n.field("product_id", "id").str()
		if id == "" {
			continue
		}
		catID := n.field("category_id", "menu_category_id", "categoryId").str()
		if catID == "" {
			catID = categoryID
		}
		out = append(out, promotion.Product{
			ID:         id,
			Name:       trimName(rawName),
			CategoryID: catID,
			Price:      productPrice(n),
		})
	}
	return out
}

// productPrice prefers the primary price list ("1") and falls back to the
// first positive price found.
func productPrice(n *node) int64 {
	if price := n.field("price"); price.isObject() {
		if v, ok := price.field("1").int64(); ok && v > 0 {
			return v
		}
	}
	for _, key := range priceKeys {
		if v, ok := n.field(key).int64(); ok && v > 0 {
			return v
		}
	}
	return 0
}

// trimName cuts POS service suffixes that follow "$".
func trimName(name string) string {
	if i := strings.Index(name, "$"); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

func hasOffMarker(name string) bool {
	return strings.Contains(strings.ToLower(name), "&off")
}

func isHiddenCategory(name string) bool {
	return hasOffMarker(name) || strings.EqualFold(strings.TrimSpace(name), "top screen")
}
