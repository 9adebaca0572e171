// Package catalog holds the read-only product catalog sourced from a static
// external JSON document, plus the filter engine applied to it for display.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stridekart/internal/currency"
	"stridekart/internal/domain"
	applog "stridekart/internal/log"
)

const fetchTimeout = 10 * time.Second

// fallbackMaxPrice bounds the price slider when the catalog is empty or has
// no parsable prices.
var fallbackMaxPrice = decimal.NewFromInt(5000)

// Catalog is the full product list in source order.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// flexID accepts catalog ids that arrive as JSON numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	*f = flexID(s)
	return nil
}

type rawProduct struct {
	ID          flexID   `json:"id"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Sizes       []int    `json:"size"`
	Images      []string `json:"images"`
	Rating      float64  `json:"rating"`
	Discount    int      `json:"discount"`
	Discounted  bool     `json:"discounted"`
}

// Load fetches the catalog document once. A source beginning with http:// or
// https:// is fetched over the network with a deadline; anything else is read
// as a local file path.
func Load(ctx context.Context, source string) (*Catalog, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: load %s: %w", source, err)
	}
	return Parse(data)
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Parse decodes a JSON array of products. Products with an unparsable price
// are kept (they still render) but marked so totals and price filtering can
// exclude them explicitly. A record reusing an earlier id is dropped with a
// warning; the first record keeps the id.
func Parse(data []byte) (*Catalog, error) {
	var raw []rawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	c := &Catalog{byID: make(map[string]int, len(raw))}
	for _, rp := range raw {
		p := domain.Product{
			ID:          string(rp.ID),
			Title:       rp.Title,
			Brand:       rp.Brand,
			Category:    rp.Category,
			Description: rp.Description,
			PriceRaw:    rp.Price,
			Sizes:       rp.Sizes,
			Images:      rp.Images,
			Rating:      rp.Rating,
			Discount:    rp.Discount,
			Discounted:  rp.Discounted,
		}
		if d, err := currency.Parse(rp.Price); err != nil {
			applog.Warn(nil, "catalog.price.unparsable", map[string]any{
				"product": p.ID, "price": rp.Price,
			})
		} else {
			p.Price = d
			p.PriceOK = true
		}
		if _, dup := c.byID[p.ID]; dup {
			applog.Warn(nil, "catalog.duplicate.id", map[string]any{"product": p.ID})
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Empty returns a catalog with no products, used when loading fails so the
// site stays renderable.
func Empty() *Catalog {
	return &Catalog{byID: map[string]int{}}
}

// All returns every product in source order.
func (c *Catalog) All() []domain.Product { return c.products }

func (c *Catalog) Len() int { return len(c.products) }

// Get looks a product up by id.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Categories lists distinct categories in order of first appearance.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range c.products {
		key := strings.ToLower(p.Category)
		if p.Category == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p.Category)
	}
	return out
}

// Sizes lists every distinct size on offer, ascending.
func (c *Catalog) Sizes() []int {
	seen := map[int]bool{}
	var out []int
	for _, p := range c.products {
		for _, s := range p.Sizes {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Ints(out)
	return out
}

// MaxPrice is the highest parsable product price, used to seed the price
// filter's upper bound.
func (c *Catalog) MaxPrice() decimal.Decimal {
	max := decimal.Zero
	found := false
	for _, p := range c.products {
		if p.PriceOK && p.Price.GreaterThan(max) {
			max = p.Price
			found = true
		}
	}
	if !found {
		return fallbackMaxPrice
	}
	return max
}

// Top returns the first n products in source order.
func (c *Catalog) Top(n int) []domain.Product {
	if n > len(c.products) {
		n = len(c.products)
	}
	return c.products[:n]
}

// TopSellers returns products rated at or above the threshold, source order.
func (c *Catalog) TopSellers(minRating float64) []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.Rating >= minRating {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to limit products sharing the given product's category,
// excluding the product itself.
func (c *Catalog) Related(p domain.Product, limit int) []domain.Product {
	var out []domain.Product
	for _, q := range c.products {
		if q.ID == p.ID || !strings.EqualFold(q.Category, p.Category) {
			continue
		}
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out
}
