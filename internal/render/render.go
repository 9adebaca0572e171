// Package render maps domain records onto template view models. It owns all
// display formatting (currency glyph, two decimal places, star patterns,
// discount badges); nothing here mutates state.
package render

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"stridekart/internal/currency"
	"stridekart/internal/domain"
)

// Star css-ish states consumed by templates.
const (
	StarFull  = "full"
	StarHalf  = "half"
	StarEmpty = "empty"
)

// Stars expands a 0-5 rating into five star states: floor(rating) filled,
// one half star when the rating has a fractional part, outline remainder.
func Stars(rating float64) []string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	full := int(math.Floor(rating))
	half := 0
	if rating > float64(full) {
		half = 1
	}
	out := make([]string, 0, 5)
	for i := 0; i < full; i++ {
		out = append(out, StarFull)
	}
	if half == 1 {
		out = append(out, StarHalf)
	}
	for len(out) < 5 {
		out = append(out, StarEmpty)
	}
	return out
}

// Price formats an amount for display.
func Price(d decimal.Decimal) string { return currency.Format(d) }

// ProductCard is the listing-grid fragment for one product.
type ProductCard struct {
	ID       string
	Title    string
	Brand    string
	Category string
	Image    string
	Price    string // final display price, or the raw string when unparsable
	OldPrice string // struck-through original, only when discounted
	Badge    string // "N% OFF", only when discounted
	Stars    []string
	Size     int // default size for the quick add-to-cart button
}

// Card builds the grid fragment view model.
func Card(p domain.Product) ProductCard {
	c := ProductCard{
		ID:       p.ID,
		Title:    p.Title,
		Brand:    p.Brand,
		Category: p.Category,
		Image:    p.MainImage(),
		Price:    p.PriceRaw,
		Stars:    Stars(p.Rating),
	}
	if len(p.Sizes) > 0 {
		c.Size = p.Sizes[0]
	}
	if p.PriceOK {
		c.Price = currency.Format(p.FinalPrice())
		if p.Discounted && p.Discount > 0 {
			c.OldPrice = currency.Format(p.Price)
			c.Badge = fmt.Sprintf("%d%% OFF", p.Discount)
		}
	}
	return c
}

// Cards maps a filtered product list in order.
func Cards(products []domain.Product) []ProductCard {
	out := make([]ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, Card(p))
	}
	return out
}

// CartRow is one line of the cart table or the checkout order summary.
type CartRow struct {
	ProductID string
	Size      int
	Title     string
	Image     string
	Qty       int
	Price     string
	Subtotal  string
	Parsable  bool
}

// CartRows builds display rows from cart lines. Lines whose snapshot price
// no longer parses still render (title, quantity) but show the raw string
// and contribute nothing to totals.
func CartRows(lines []domain.CartLine) []CartRow {
	out := make([]CartRow, 0, len(lines))
	for _, it := range lines {
		row := CartRow{
			ProductID: it.ProductID,
			Size:      it.Size,
			Title:     it.Title,
			Image:     it.Image,
			Qty:       it.Qty,
			Price:     it.PriceRaw,
			Subtotal:  it.PriceRaw,
		}
		if d, err := currency.Parse(it.PriceRaw); err == nil {
			row.Parsable = true
			row.Price = currency.Format(d)
			row.Subtotal = currency.Format(d.Mul(decimal.NewFromInt(int64(it.Qty))))
		}
		out = append(out, row)
	}
	return out
}

// OrderRow is one line of a placed order.
type OrderRow struct {
	Title    string
	Size     int
	Qty      int
	Price    string
	Subtotal string
}

func OrderRows(items []domain.OrderItem) []OrderRow {
	out := make([]OrderRow, 0, len(items))
	for _, it := range items {
		out = append(out, OrderRow{
			Title:    it.Title,
			Size:     it.Size,
			Qty:      it.Qty,
			Price:    currency.Format(it.Price),
			Subtotal: currency.Format(it.Price.Mul(decimal.NewFromInt(int64(it.Qty)))),
		})
	}
	return out
}

// HistoryRow is one entry in the session's order history listing.
type HistoryRow struct {
	ID        string
	CreatedAt string
	Status    string
	Total     string
}

func HistoryRows(orders []domain.Order) []HistoryRow {
	out := make([]HistoryRow, 0, len(orders))
	for _, o := range orders {
		out = append(out, HistoryRow{
			ID:        o.ID,
			CreatedAt: o.CreatedAt,
			Status:    o.Status,
			Total:     currency.Format(o.Total),
		})
	}
	return out
}

// Detail is the product-details page view model.
type Detail struct {
	ProductCard
	Description string
	Sizes       []int
	Images      []string
}

func DetailFor(p domain.Product) Detail {
	return Detail{
		ProductCard: Card(p),
		Description: p.Description,
		Sizes:       p.Sizes,
		Images:      p.Images,
	}
}
