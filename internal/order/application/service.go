package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AI-guru11/Mo7/internal/order/domain"
)

var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrStockConflict means another writer changed a product's stock
	// between resolve and commit. The order was not created; the caller
	// may re-submit.
	ErrStockConflict = errors.New("stock changed concurrently")

	// ErrPartialCommit means the order and its items committed but a stock
	// write did not. The order remains the source of truth; stock drift is
	// an operational alert, not a failure of the order itself.
	ErrPartialCommit = errors.New("stock update failed after order commit")

	ErrStoreUnavailable = errors.New("data store unavailable")

	ErrOrderNotFound = errors.New("order not found")
)

type CreateOrderRequest struct {
	CustomerID  string             `json:"customer_id"`
	PaymentType domain.PaymentType `json:"payment_type"`
	Items       []domain.Line      `json:"items"`
}

// Service is the order transaction processor: it validates a request,
// resolves product snapshots, prices the order and hands the whole write
// to the repository. Creation is not idempotent; re-invoking it creates a
// second order and deducts stock again.
type Service struct {
	log      *slog.Logger
	repo     OrderRepository
	resolver ProductResolver
}

func NewService(log *slog.Logger, repo OrderRepository, resolver ProductResolver) *Service {
	return &Service{log: log, repo: repo, resolver: resolver}
}

func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (domain.Order, error) {
	if len(req.Items) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}
	ids := make([]string, 0, len(req.Items))
	for _, l := range req.Items {
		if l.QuantityBags <= 0 {
			return domain.Order{}, fmt.Errorf("%w: product %s has %d bags", ErrInvalidQuantity, l.ProductID, l.QuantityBags)
		}
		ids = append(ids, l.ProductID)
	}

	products, err := s.resolver.Resolve(ctx, ids)
	if err != nil {
		return domain.Order{}, err
	}

	o := domain.NewOrder(req.CustomerID, req.PaymentType, req.Items, products)
	adjustments := o.StockAdjustments(products)
	events, err := buildEvents(o, adjustments)
	if err != nil {
		return domain.Order{}, err
	}

	stored, err := s.repo.Create(ctx, o, adjustments, events)
	if errors.Is(err, ErrPartialCommit) {
		// The order and items are committed; drift is reported, never
		// rolled back.
		s.log.Warn("stock drift after order commit",
			"event_type", domain.EventStockDrift,
			"drift", domain.StockDrift{OrderID: stored.ID, Reason: err.Error()},
		)
		return stored, nil
	}
	if err != nil {
		return domain.Order{}, err
	}

	s.log.Info("order created",
		"order_id", stored.ID,
		"customer_id", stored.CustomerID,
		"total_amount", stored.TotalAmount,
		"payment_type", stored.PaymentType,
	)
	return stored, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.Recent(ctx, limit)
}

func (s *Service) MarkPaid(ctx context.Context, id string) error {
	return s.repo.MarkPaid(ctx, id)
}

func buildEvents(o domain.Order, adjustments []domain.StockAdjustment) ([]Event, error) {
	created, err := json.Marshal(domain.OrderCreated{
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		TotalAmount: o.TotalAmount,
		PaymentType: o.PaymentType,
		Items:       o.Items,
	})
	if err != nil {
		return nil, err
	}
	events := []Event{{Type: domain.EventOrderCreated, Payload: created}}

	for _, adj := range adjustments {
		if adj.NewStockKg > 0 {
			continue
		}
		depleted, err := json.Marshal(domain.StockDepleted{ProductID: adj.ProductID, StockKg: adj.NewStockKg})
		if err != nil {
			return nil, err
		}
		events = append(events, Event{Type: domain.EventStockDepleted, Payload: depleted})
	}
	return events, nil
}
