package repos

import (
	"github.com/jmoiron/sqlx"

	"stridekart/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create writes the order record with its item snapshot and clears the
// originating cart, all in one transaction so a placed order and a lingering
// cart can never coexist.
func (r *OrderRepo) Create(o domain.Order, items []domain.OrderItem, cartID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO orders(id, session_id, shipping_method,
			first_name, last_name, email, phone, address, town, state, postcode,
			subtotal, delivery_fee, total, status)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, o.ID, o.SessionID, o.Shipping,
		o.FirstName, o.LastName, o.Email, o.Phone, o.Address, o.Town, o.State, o.Postcode,
		o.Subtotal, o.Delivery, o.Total, o.Status)
	if err != nil {
		return err
	}

	for _, it := range items {
		_, err = tx.Exec(`
			INSERT INTO order_items(order_id, product_id, size, title, qty, price)
			VALUES(?,?,?,?,?,?)
		`, o.ID, it.ProductID, it.Size, it.Title, it.Qty, it.Price)
		if err != nil {
			return err
		}
	}

	if cartID != "" {
		if _, err = tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
		SELECT id, session_id, shipping_method,
		       first_name, last_name, email, phone, address, town, state, postcode,
		       subtotal, delivery_fee, total, status, created_at
		FROM orders WHERE id = ?
	`, id); err != nil {
		return domain.Order{}, nil, err
	}
	items := []domain.OrderItem{}
	err := r.db.Select(&items, `
		SELECT order_id, product_id, size, title, qty, price
		FROM order_items WHERE order_id = ? ORDER BY rowid
	`, id)
	return o, items, err
}

// ListBySession returns the session's orders, newest first.
func (r *OrderRepo) ListBySession(sessionID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT id, session_id, shipping_method,
		       first_name, last_name, email, phone, address, town, state, postcode,
		       subtotal, delivery_fee, total, status, created_at
		FROM orders WHERE session_id = ? ORDER BY created_at DESC, rowid DESC
	`, sessionID)
	return out, err
}
