package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stridekart/internal/currency"
	"stridekart/internal/domain"
	applog "stridekart/internal/log"
	"stridekart/internal/repos"
	"stridekart/internal/validate"
)

var (
	ErrValidation = errors.New("checkout form invalid")
	ErrEmptyCart  = errors.New("cart empty")
)

// FlatShippingFee is charged when the flat_rate shipping method is chosen.
var FlatShippingFee = decimal.NewFromInt(100)

type OrderService struct {
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Carts: carts, Orders: orders}
}

// Place runs the checkout transition: validate every form field, require a
// non-empty cart, then write the order and clear the cart in one step.
// On validation failure the returned result annotates every failed field
// and no state is mutated. The context is threaded through for a future
// networked payment/order backend; the current storage write is local.
func (s *OrderService) Place(ctx context.Context, sessionID, shipping string, form validate.CheckoutForm) (string, validate.CheckoutResult, error) {
	res := validate.Checkout(form, time.Now())
	if !res.OK() {
		return "", res, ErrValidation
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return "", res, err
	}
	lines, err := s.Carts.Items(cartID)
	if err != nil {
		return "", res, err
	}
	if len(lines) == 0 {
		return "", res, ErrEmptyCart
	}
	if err := ctx.Err(); err != nil {
		return "", res, err
	}

	if shipping != "flat_rate" {
		shipping = "free"
	}
	delivery := decimal.Zero
	if shipping == "flat_rate" {
		delivery = FlatShippingFee
	}

	subtotal := decimal.Zero
	items := make([]domain.OrderItem, 0, len(lines))
	for _, it := range lines {
		price, perr := currency.Parse(it.PriceRaw)
		if perr != nil {
			applog.Warn(nil, "order.price.skipped", map[string]any{
				"product": it.ProductID, "size": it.Size, "price": it.PriceRaw,
			})
			price = decimal.Zero
		} else {
			subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(it.Qty))))
		}
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Size:      it.Size,
			Title:     it.Title,
			Qty:       it.Qty,
			Price:     price,
		})
	}

	order := domain.Order{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Shipping:  shipping,
		Subtotal:  subtotal,
		Delivery:  delivery,
		Total:     subtotal.Add(delivery),
		Status:    "PLACED",
		Customer: domain.Customer{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     form.Email,
			Phone:     form.Phone,
			Address:   form.Address,
			Town:      form.Town,
			State:     form.State,
			Postcode:  form.Postcode,
		},
	}

	// Order write and cart clear happen in the same transaction, so a placed
	// order can never leave the old cart behind.
	if err := s.Orders.Create(order, items, cartID); err != nil {
		return "", res, err
	}
	return order.ID, res, nil
}
