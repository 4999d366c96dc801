package application

import (
	"context"
	"errors"

	"github.com/AI-guru11/Mo7/internal/customer/domain"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerRepository interface {
	FetchAll(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id string) (domain.Customer, error)
	UpdateDebt(ctx context.Context, id string, totalDebt float64) error
}
