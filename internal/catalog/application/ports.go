package application

import (
	"context"

	"github.com/AI-guru11/Mo7/internal/catalog/domain"
)

type ProductRepository interface {
	FetchByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	FetchAll(ctx context.Context) ([]domain.Product, error)
	UpdateStock(ctx context.Context, id string, stockKg float64) error
}
