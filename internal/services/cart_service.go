package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"stridekart/internal/catalog"
	"stridekart/internal/currency"
	"stridekart/internal/domain"
	applog "stridekart/internal/log"
	"stridekart/internal/repos"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNoSize          = errors.New("no size selected")
)

type CartService struct {
	Carts   *repos.CartRepo
	Catalog *catalog.Catalog
}

func NewCartService(carts *repos.CartRepo, cat *catalog.Catalog) *CartService {
	return &CartService{Carts: carts, Catalog: cat}
}

// Add puts qty units of (productID, size) into the session's cart. An
// existing line merges by summing quantities; otherwise a new line is
// appended with the title/price/image snapshot taken now. Created reports
// which of the two happened. Size 0 falls back to the product's first
// offered size, matching the quick-add buttons on listing pages; any other
// size must be one the product actually offers.
func (s *CartService) Add(sessionID, productID string, size, qty int) (created bool, p domain.Product, err error) {
	p, ok := s.Catalog.Get(productID)
	if !ok {
		return false, domain.Product{}, ErrProductNotFound
	}
	if size <= 0 {
		if len(p.Sizes) == 0 {
			return false, p, ErrNoSize
		}
		size = p.Sizes[0]
	} else if !p.HasSize(size) {
		return false, p, ErrNoSize
	}
	if qty < 1 {
		qty = 1
	}

	// Snapshot price: the discounted display price when it parses, the raw
	// string otherwise so totals can skip it later.
	snapPrice := p.PriceRaw
	if p.PriceOK {
		snapPrice = currency.Format(p.FinalPrice())
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return false, p, err
	}
	created, err = s.Carts.AddOrIncrement(cartID, domain.CartLine{
		ProductID: p.ID,
		Size:      size,
		Title:     p.Title,
		PriceRaw:  snapPrice,
		Image:     p.MainImage(),
		Qty:       qty,
	})
	return created, p, err
}

type CartView struct {
	Items    []domain.CartLine
	Subtotal decimal.Decimal
	Quantity int
}

// View reads the cart in insertion order. Storage errors degrade to an
// empty, renderable view rather than failing the page; lines whose snapshot
// price no longer parses are excluded from the subtotal with a warning.
func (s *CartService) View(sessionID string) CartView {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		applog.Warn(nil, "cart.read.degraded", map[string]any{"err": err.Error()})
		return CartView{Subtotal: decimal.Zero}
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		applog.Warn(nil, "cart.read.degraded", map[string]any{"err": err.Error()})
		return CartView{Subtotal: decimal.Zero}
	}

	subtotal := decimal.Zero
	qty := 0
	for _, it := range items {
		qty += it.Qty
		price, err := currency.Parse(it.PriceRaw)
		if err != nil {
			applog.Warn(nil, "cart.price.skipped", map[string]any{
				"product": it.ProductID, "size": it.Size, "price": it.PriceRaw,
			})
			continue
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return CartView{Items: items, Subtotal: subtotal, Quantity: qty}
}

// TotalQuantity is the badge count; errors degrade to zero.
func (s *CartService) TotalQuantity(sessionID string) int {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return 0
	}
	n, err := s.Carts.TotalQuantity(cartID)
	if err != nil {
		return 0
	}
	return n
}

func (s *CartService) Adjust(sessionID, productID string, size, delta int) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Adjust(cartID, productID, size, delta)
}

func (s *CartService) Remove(sessionID, productID string, size int) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Remove(cartID, productID, size)
}

func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}
