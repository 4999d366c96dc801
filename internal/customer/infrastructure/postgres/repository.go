package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AI-guru11/Mo7/internal/customer/application"
	"github.com/AI-guru11/Mo7/internal/customer/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

const customerColumns = `id, name, shop_name, phone, coalesce(location_geo, ''), trust_score, total_debt, status, created_at, updated_at`

func (r *Repository) FetchAll(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id string) (domain.Customer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id=$1`, id)
	c, err := scanCustomer(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Customer{}, fmt.Errorf("customer %s: %w", id, application.ErrCustomerNotFound)
	}
	return c, err
}

// UpdateDebt overwrites a customer's outstanding debt. Kept for the debt
// reconciliation flow; the order write path does not call it.
func (r *Repository) UpdateDebt(ctx context.Context, id string, totalDebt float64) error {
	ct, err := r.pool.Exec(ctx, `UPDATE customers SET total_debt=$2, updated_at=now() WHERE id=$1`, id, totalDebt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", id, application.ErrCustomerNotFound)
	}
	return nil
}

func scanCustomer(scan func(...any) error) (domain.Customer, error) {
	var c domain.Customer
	err := scan(&c.ID, &c.Name, &c.ShopName, &c.Phone, &c.LocationGeo, &c.TrustScore, &c.TotalDebt, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
