package application

import (
	"context"

	"github.com/AI-guru11/Mo7/internal/analytics/domain"
	customer "github.com/AI-guru11/Mo7/internal/customer/domain"
	order "github.com/AI-guru11/Mo7/internal/order/domain"
)

// Source provides the raw collections the dashboard is derived from. The
// four reads are independent; no cross-collection consistency is assumed.
type Source interface {
	Orders(ctx context.Context) ([]order.Order, error)
	Customers(ctx context.Context) ([]customer.Customer, error)
	DailySales(ctx context.Context, limit int) ([]domain.DailySalesRow, error)
	ProductPerformance(ctx context.Context) ([]domain.ProductPerformanceRow, error)
}

// Cache is an optional short-lived snapshot cache in front of the
// aggregation. Misses and cache errors are both treated as a miss.
type Cache interface {
	Get(ctx context.Context) (*domain.DashboardStats, error)
	Set(ctx context.Context, stats domain.DashboardStats) error
}
