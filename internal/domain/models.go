package domain

import "github.com/shopspring/decimal"

// Product is one catalog record. The catalog is read-only and sourced from an
// external JSON document; Price/PriceOK are filled in once by the loader from
// the currency-formatted PriceRaw string.
type Product struct {
	ID          string
	Title       string
	Brand       string
	Category    string
	Description string
	PriceRaw    string
	Sizes       []int
	Images      []string
	Rating      float64
	Discount    int
	Discounted  bool

	Price   decimal.Decimal
	PriceOK bool
}

// FinalPrice is the display price after any discount, rounded to whole units.
func (p Product) FinalPrice() decimal.Decimal {
	if !p.Discounted || p.Discount <= 0 {
		return p.Price
	}
	factor := decimal.NewFromInt(int64(100 - p.Discount)).Div(decimal.NewFromInt(100))
	return p.Price.Mul(factor).Round(0)
}

// HasSize reports whether the product is offered in the given numeric size.
func (p Product) HasSize(size int) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// MainImage is the first listed image, or empty when none exist.
func (p Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CartLine is one cart entry, uniquely identified by (ProductID, Size).
// Title, PriceRaw and Image are snapshots captured at add time and are never
// re-read from the catalog.
type CartLine struct {
	ProductID string `db:"product_id"`
	Size      int    `db:"size"`
	Title     string `db:"title"`
	PriceRaw  string `db:"price_at_add"`
	Image     string `db:"image"`
	Qty       int    `db:"qty"`
}

// WishlistItem is keyed by product id alone; no size or quantity dimension.
type WishlistItem struct {
	ProductID string `db:"product_id"`
	Title     string `db:"title"`
	PriceRaw  string `db:"price"`
	Image     string `db:"image"`
}

// Customer holds the checkout contact/address fields, copied verbatim from
// the validated form.
type Customer struct {
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Address   string `db:"address"`
	Town      string `db:"town"`
	State     string `db:"state"`
	Postcode  string `db:"postcode"`
}

// Order is the record written once at successful checkout.
type Order struct {
	ID        string          `db:"id"`
	SessionID string          `db:"session_id"`
	Shipping  string          `db:"shipping_method"`
	Subtotal  decimal.Decimal `db:"subtotal"`
	Delivery  decimal.Decimal `db:"delivery_fee"`
	Total     decimal.Decimal `db:"total"`
	Status    string          `db:"status"`
	CreatedAt string          `db:"created_at"`
	Customer
}

type OrderItem struct {
	OrderID   string          `db:"order_id"`
	ProductID string          `db:"product_id"`
	Size      int             `db:"size"`
	Title     string          `db:"title"`
	Qty       int             `db:"qty"`
	Price     decimal.Decimal `db:"price"`
}
