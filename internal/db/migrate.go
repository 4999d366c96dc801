package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		shop_name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		location_geo TEXT,
		trust_score INT NOT NULL DEFAULT 50,
		total_debt DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		stock_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
		price_per_bag DOUBLE PRECISION NOT NULL,
		bag_weight_kg DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		total_amount DOUBLE PRECISION NOT NULL,
		payment_type TEXT NOT NULL,
		is_paid BOOLEAN NOT NULL,
		order_date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL REFERENCES products(id),
		quantity_bags INT NOT NULL,
		quantity_kg DOUBLE PRECISION NOT NULL,
		price_per_bag DOUBLE PRECISION NOT NULL,
		subtotal DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS outbox (
		id BIGSERIAL PRIMARY KEY,
		aggregate_type TEXT NOT NULL,
		aggregate_id TEXT NOT NULL,
		type TEXT NOT NULL,
		payload BYTEA NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		relay_id TEXT,
		lease_until TIMESTAMPTZ,
		retry_count INT NOT NULL DEFAULT 0,
		last_error TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_status ON outbox (status, id)`,
	`CREATE OR REPLACE VIEW daily_sales AS
		SELECT
			date(order_date) AS order_date,
			count(*) AS total_orders,
			coalesce(sum(total_amount), 0) AS total_sales,
			coalesce(sum(total_amount) FILTER (WHERE payment_type = 'cash'), 0) AS cash_sales,
			coalesce(sum(total_amount) FILTER (WHERE payment_type = 'credit'), 0) AS credit_sales
		FROM orders
		GROUP BY date(order_date)`,
	`CREATE OR REPLACE VIEW product_performance AS
		SELECT
			p.id,
			p.name,
			count(DISTINCT oi.order_id) AS times_ordered,
			coalesce(sum(oi.quantity_bags), 0) AS total_bags_sold,
			coalesce(sum(oi.quantity_kg), 0) AS total_kg_sold,
			coalesce(sum(oi.subtotal), 0) AS total_revenue
		FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.id
		GROUP BY p.id, p.name`,
}

// Migrate applies the idempotent schema bootstrap.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
