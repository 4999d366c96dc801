package application

import (
	"context"

	catalog "github.com/AI-guru11/Mo7/internal/catalog/domain"
	"github.com/AI-guru11/Mo7/internal/order/domain"
)

// Event is an outbox record persisted alongside the order write so the
// relay can publish it after commit.
type Event struct {
	Type    string
	Payload []byte
}

type OrderRepository interface {
	// Create persists the order, its items and the stock adjustments, and
	// queues the given events. Implementations backed by a transactional
	// store do all of it atomically; best-effort stores may commit the
	// order and items but fail a stock write, in which case they return
	// the stored order together with ErrPartialCommit.
	Create(ctx context.Context, o domain.Order, stock []domain.StockAdjustment, events []Event) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	Recent(ctx context.Context, limit int) ([]domain.Order, error)
	MarkPaid(ctx context.Context, id string) error
}

type ProductResolver interface {
	Resolve(ctx context.Context, ids []string) (map[string]catalog.Product, error)
}
