// Package repos persists the session-scoped stores (cart, wishlist, last
// orders) in a local SQLite file. The store is read-modified-written without
// cross-process coordination: two processes pointed at the same file can race
// and lose updates. That matches the single-active-user guarantee this system
// makes and is a documented limitation, not a bug to fix here.
package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Carts: one per browser session, identified by the sid cookie.
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

-- Cart lines are unique per (cart, product, size); adding the same product
-- in another size creates a new line. Title/price/image are snapshots taken
-- at add time; the price keeps the raw catalog string and is parsed on read.
CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  size       INTEGER NOT NULL,
  title      TEXT NOT NULL,
  price_at_add TEXT NOT NULL,
  image      TEXT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id, size)
);

-- Wishlists: keyed by product alone, no size or quantity.
CREATE TABLE IF NOT EXISTS wishlists(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS wishlist_items(
  wishlist_id TEXT NOT NULL REFERENCES wishlists(id) ON DELETE CASCADE,
  product_id  TEXT NOT NULL,
  title       TEXT NOT NULL,
  price       TEXT,
  image       TEXT,
  created_at  TEXT,
  PRIMARY KEY (wishlist_id, product_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  session_id TEXT,
  shipping_method TEXT,          -- free|flat_rate
  first_name TEXT,
  last_name  TEXT,
  email      TEXT,
  phone      TEXT,
  address    TEXT,
  town       TEXT,
  state      TEXT,
  postcode   TEXT,
  subtotal NUMERIC NOT NULL,
  delivery_fee NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'PLACED',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_session ON orders(session_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  size       INTEGER NOT NULL,
  title      TEXT NOT NULL,
  qty INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id, size)
);
`
	_, err := db.Exec(schema)
	return err
}
