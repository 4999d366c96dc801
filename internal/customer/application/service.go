package application

import (
	"context"

	"github.com/AI-guru11/Mo7/internal/customer/domain"
)

type Service struct {
	repo CustomerRepository
}

func NewService(repo CustomerRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.FetchAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Customer, error) {
	return s.repo.Get(ctx, id)
}

// Classify returns the customer's effective status, which can differ from
// the stored one once debt crosses the risk threshold.
func (s *Service) Classify(c domain.Customer) domain.Status {
	return domain.Classify(c.Status, c.TotalDebt)
}
