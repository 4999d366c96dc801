package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AI-guru11/Mo7/internal/analytics/domain"
	customer "github.com/AI-guru11/Mo7/internal/customer/domain"
	order "github.com/AI-guru11/Mo7/internal/order/domain"
)

// Repository is the read-only fan-out behind the aggregation engine. Each
// method is an independent read; callers get no cross-collection
// consistency guarantee.
type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Orders(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, customer_id, total_amount, payment_type, is_paid, order_date, created_at, updated_at FROM orders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.PaymentType, &o.IsPaid, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *Repository) Customers(ctx context.Context) ([]customer.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, shop_name, phone, coalesce(location_geo, ''), trust_score, total_debt, status, created_at, updated_at FROM customers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.ShopName, &c.Phone, &c.LocationGeo, &c.TrustScore, &c.TotalDebt, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// DailySales returns the most recent rows newest-first; the aggregation
// engine reverses its weekly slice into chronological order.
func (r *Repository) DailySales(ctx context.Context, limit int) ([]domain.DailySalesRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT order_date::text, total_orders, total_sales, cash_sales, credit_sales
		FROM daily_sales ORDER BY order_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var daily []domain.DailySalesRow
	for rows.Next() {
		var d domain.DailySalesRow
		if err := rows.Scan(&d.OrderDate, &d.TotalOrders, &d.TotalSales, &d.CashSales, &d.CreditSales); err != nil {
			return nil, err
		}
		daily = append(daily, d)
	}
	return daily, rows.Err()
}

func (r *Repository) ProductPerformance(ctx context.Context) ([]domain.ProductPerformanceRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT name, times_ordered, total_bags_sold::float8, total_kg_sold, total_revenue
		FROM product_performance ORDER BY total_revenue DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perf []domain.ProductPerformanceRow
	for rows.Next() {
		var p domain.ProductPerformanceRow
		if err := rows.Scan(&p.Name, &p.TimesOrdered, &p.TotalBagsSold, &p.TotalKgSold, &p.TotalRevenue); err != nil {
			return nil, err
		}
		perf = append(perf, p)
	}
	return perf, rows.Err()
}
