package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"stridekart/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// AddOrIncrement merges the given quantity into an existing (product, size)
// line, or appends a new line carrying the snapshot. It reports whether a
// new line was created so callers can choose notification text.
func (r *CartRepo) AddOrIncrement(cartID string, line domain.CartLine) (created bool, err error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var qty int
	err = tx.Get(&qty, `SELECT qty FROM cart_items WHERE cart_id=? AND product_id=? AND size=?`,
		cartID, line.ProductID, line.Size)
	switch {
	case err == nil:
		_, err = tx.Exec(`
			UPDATE cart_items SET qty = qty + ?, updated_at = CURRENT_TIMESTAMP
			WHERE cart_id=? AND product_id=? AND size=?
		`, line.Qty, cartID, line.ProductID, line.Size)
		if err != nil {
			return false, err
		}
		return false, tx.Commit()
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.Exec(`
			INSERT INTO cart_items(cart_id,product_id,size,title,price_at_add,image,qty,created_at)
			VALUES(?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
		`, cartID, line.ProductID, line.Size, line.Title, line.PriceRaw, line.Image, line.Qty)
		if err != nil {
			return false, err
		}
		return true, tx.Commit()
	default:
		return false, err
	}
}

// Adjust changes a line's quantity by delta, clamped so it never drops
// below 1. A missing line is a no-op.
func (r *CartRepo) Adjust(cartID, productID string, size, delta int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET qty = MAX(1, qty + ?), updated_at = CURRENT_TIMESTAMP
		WHERE cart_id=? AND product_id=? AND size=?
	`, delta, cartID, productID, size)
	return err
}

// Remove filters out exactly the matching line; absent lines are a no-op.
func (r *CartRepo) Remove(cartID, productID string, size int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id=? AND product_id=? AND size=?`,
		cartID, productID, size)
	return err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}

// Items returns the cart's lines in insertion order.
func (r *CartRepo) Items(cartID string) ([]domain.CartLine, error) {
	out := []domain.CartLine{}
	err := r.db.Select(&out, `
	  SELECT product_id, size, title, price_at_add, image, qty
	  FROM cart_items WHERE cart_id = ? ORDER BY rowid
	`, cartID)
	return out, err
}

// TotalQuantity sums line quantities for the header badge.
func (r *CartRepo) TotalQuantity(cartID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COALESCE(SUM(qty),0) FROM cart_items WHERE cart_id = ?`, cartID)
	return n, err
}
