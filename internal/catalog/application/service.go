package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/AI-guru11/Mo7/internal/catalog/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Service resolves authoritative price, weight and stock for products and
// exposes the manual catalog operations (listing, restock).
type Service struct {
	repo ProductRepository
}

func NewService(repo ProductRepository) *Service {
	return &Service{repo: repo}
}

// Resolve fetches the current records for exactly the given product ids.
// Any id missing from the result set fails the whole resolve; a missing
// product must never be priced as zero.
func (s *Service) Resolve(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	products, err := s.repo.FetchByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, id := range unique {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
	}
	return byID, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FetchAll(ctx)
}

// SetStock overwrites a product's stock level, used by manual restocking.
func (s *Service) SetStock(ctx context.Context, id string, stockKg float64) error {
	return s.repo.UpdateStock(ctx, id, stockKg)
}
