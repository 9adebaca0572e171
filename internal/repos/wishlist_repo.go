package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"stridekart/internal/domain"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

func (r *WishlistRepo) Ensure(sessionID string) (string, error) {
	var id string
	if err := r.db.Get(&id, `SELECT id FROM wishlists WHERE session_id=?`, sessionID); err == nil {
		return id, nil
	}
	_, err := r.db.Exec(`INSERT INTO wishlists(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// Add inserts the item unless the product is already saved. It reports
// whether the insert happened; a duplicate is rejected, never merged.
func (r *WishlistRepo) Add(wishlistID string, item domain.WishlistItem) (added bool, err error) {
	res, err := r.db.Exec(`
	  INSERT INTO wishlist_items(wishlist_id, product_id, title, price, image, created_at)
	  VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(wishlist_id, product_id) DO NOTHING
	`, wishlistID, item.ProductID, item.Title, item.PriceRaw, item.Image)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *WishlistRepo) Remove(wishlistID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM wishlist_items WHERE wishlist_id=? AND product_id=?`,
		wishlistID, productID)
	return err
}

// List returns saved items in insertion order.
func (r *WishlistRepo) List(wishlistID string) ([]domain.WishlistItem, error) {
	out := []domain.WishlistItem{}
	err := r.db.Select(&out, `
	  SELECT product_id, title, price, image
	  FROM wishlist_items WHERE wishlist_id = ? ORDER BY rowid
	`, wishlistID)
	return out, err
}

func (r *WishlistRepo) Count(wishlistID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM wishlist_items WHERE wishlist_id = ?`, wishlistID)
	return n, err
}
