package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AI-guru11/Mo7/internal/order/application"
	"github.com/AI-guru11/Mo7/internal/order/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// Create writes the order, its items, the stock adjustments and the outbox
// events in one transaction. Each stock write is an optimistic
// compare-and-swap against the stock value observed at resolve time; a
// miss means a concurrent writer got there first, the transaction is
// rolled back and ErrStockConflict is returned.
func (r *Repository) Create(ctx context.Context, o domain.Order, stock []domain.StockAdjustment, events []application.Event) (domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Order{}, storeErr(err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `INSERT INTO orders (id, customer_id, total_amount, payment_type, is_paid, order_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		o.ID, o.CustomerID, o.TotalAmount, o.PaymentType, o.IsPaid, o.OrderDate, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return domain.Order{}, storeErr(err)
	}

	batch := &pgx.Batch{}
	for _, item := range o.Items {
		batch.Queue(`INSERT INTO order_items (order_id, product_id, quantity_bags, quantity_kg, price_per_bag, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			item.OrderID, item.ProductID, item.QuantityBags, item.QuantityKg, item.PricePerBag, item.Subtotal)
	}
	for _, e := range events {
		batch.Queue(`INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, status)
			VALUES ('order',$1,$2,$3,'pending')`,
			o.ID, e.Type, e.Payload)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return domain.Order{}, storeErr(err)
	}

	for _, adj := range stock {
		ct, err := tx.Exec(ctx, `UPDATE products SET stock_kg=$2, updated_at=now() WHERE id=$1 AND stock_kg=$3`,
			adj.ProductID, adj.NewStockKg, adj.ObservedStockKg)
		if err != nil {
			return domain.Order{}, storeErr(err)
		}
		if ct.RowsAffected() == 0 {
			return domain.Order{}, fmt.Errorf("%w: product %s", application.ErrStockConflict, adj.ProductID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, storeErr(err)
	}
	return o, nil
}

func (r *Repository) Get(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, `SELECT id, customer_id, total_amount, payment_type, is_paid, order_date, created_at, updated_at
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.PaymentType, &o.IsPaid, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order %s: %w", id, application.ErrOrderNotFound)
	}
	if err != nil {
		return domain.Order{}, storeErr(err)
	}

	rows, err := r.pool.Query(ctx, `SELECT oi.order_id, oi.product_id, p.name, oi.quantity_bags, oi.quantity_kg, oi.price_per_bag, oi.subtotal
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id=$1
		ORDER BY oi.id`, id)
	if err != nil {
		return domain.Order{}, storeErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.OrderID, &item.ProductID, &item.ProductName, &item.QuantityBags, &item.QuantityKg, &item.PricePerBag, &item.Subtotal); err != nil {
			return domain.Order{}, storeErr(err)
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

func (r *Repository) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, customer_id, total_amount, payment_type, is_paid, order_date, created_at, updated_at
		FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.PaymentType, &o.IsPaid, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, storeErr(err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *Repository) MarkPaid(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `UPDATE orders SET is_paid=true, updated_at=now() WHERE id=$1`, id)
	if err != nil {
		return storeErr(err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, application.ErrOrderNotFound)
	}
	return nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", application.ErrStoreUnavailable, err)
}
