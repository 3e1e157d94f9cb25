package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is idempotent; re-running it adds columns that older databases lack.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL,
		price       NUMERIC(12,2) NOT NULL DEFAULT 0,
		colors      TEXT[] NOT NULL DEFAULT '{}',
		fabrics     TEXT[] NOT NULL DEFAULT '{}',
		dimensions  TEXT NOT NULL DEFAULT '',
		images      TEXT[] NOT NULL DEFAULT '{}',
		active      BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`ALTER TABLE products ADD COLUMN IF NOT EXISTS is_featured BOOLEAN NOT NULL DEFAULT FALSE`,
	`CREATE INDEX IF NOT EXISTS idx_products_active_created ON products (active, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id             UUID PRIMARY KEY,
		customer_name  TEXT NOT NULL,
		customer_phone TEXT NOT NULL,
		customer_city  TEXT NOT NULL,
		items          JSONB NOT NULL DEFAULT '[]',
		total_price    NUMERIC(12,2),
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders (created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS settings (
		id              TEXT PRIMARY KEY,
		store_name      TEXT,
		whatsapp_number TEXT,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`ALTER TABLE settings ADD COLUMN IF NOT EXISTS contact_email TEXT`,
	`ALTER TABLE settings ADD COLUMN IF NOT EXISTS contact_address TEXT`,
	`ALTER TABLE settings ADD COLUMN IF NOT EXISTS hours_mon_fri TEXT`,
	`ALTER TABLE settings ADD COLUMN IF NOT EXISTS hours_sat TEXT`,
	`ALTER TABLE settings ADD COLUMN IF NOT EXISTS primary_color TEXT`,
	`ALTER TABLE settings ADD COLUMN IF NOT EXISTS secondary_color TEXT`,

	`CREATE TABLE IF NOT EXISTS admins (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for i, stmt := range Schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
