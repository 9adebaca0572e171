package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"stridekart/internal/domain"
)

// CategoryAll is the sentinel meaning no category restriction.
const CategoryAll = "all"

// Criteria is the active filter selection applied to the catalog.
// Size is kept as the raw control/query value; an empty string or "all"
// means no size restriction.
type Criteria struct {
	Category string
	Size     string
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
}

// DefaultCriteria is the unrestricted selection for a catalog: every
// category, no size, and the full price band.
func DefaultCriteria(c *Catalog) Criteria {
	return Criteria{
		Category: CategoryAll,
		MinPrice: decimal.Zero,
		MaxPrice: c.MaxPrice(),
	}
}

// CriteriaFromQuery seeds criteria from the canonical URL parameters
// category, size, minPrice and maxPrice, starting from the given defaults.
// Malformed price bounds are ignored rather than surfaced.
func CriteriaFromQuery(q url.Values, def Criteria) Criteria {
	cr := def
	if v := strings.TrimSpace(q.Get("category")); v != "" {
		cr.Category = strings.ToLower(v)
	}
	if v := strings.TrimSpace(q.Get("size")); v != "" {
		cr.Size = strings.ToLower(v)
	}
	if v := strings.TrimSpace(q.Get("minPrice")); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cr.MinPrice = d
		}
	}
	if v := strings.TrimSpace(q.Get("maxPrice")); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cr.MaxPrice = d
		}
	}
	return cr
}

// Apply filters the product list, preserving order. All rules must pass.
func Apply(products []domain.Product, cr Criteria) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if cr.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Match evaluates the category, size and price rules in order.
func (cr Criteria) Match(p domain.Product) bool {
	if cr.Category != "" && cr.Category != CategoryAll &&
		!strings.EqualFold(cr.Category, p.Category) {
		return false
	}
	if cr.Size != "" && cr.Size != CategoryAll {
		n, err := strconv.Atoi(cr.Size)
		if err != nil || !p.HasSize(n) {
			return false
		}
	}
	// Products whose price never parsed are excluded here explicitly rather
	// than falling out of a NaN comparison.
	if !p.PriceOK {
		return false
	}
	if p.Price.LessThan(cr.MinPrice) || p.Price.GreaterThan(cr.MaxPrice) {
		return false
	}
	return true
}
