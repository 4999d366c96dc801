package application

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/AI-guru11/Mo7/internal/analytics/domain"
	customer "github.com/AI-guru11/Mo7/internal/customer/domain"
	order "github.com/AI-guru11/Mo7/internal/order/domain"
)

const (
	topDebtorCount   = 5
	topProductCount  = 5
	weeklySalesDays  = 7
	dailySalesWindow = 30
)

// Service derives the dashboard snapshot from the raw order, customer and
// rollup collections. Dashboard never fails: when any source read errors,
// the static fallback snapshot is substituted so the rendering layer
// always has a valid value.
type Service struct {
	log    *slog.Logger
	source Source
	cache  Cache
}

func NewService(log *slog.Logger, source Source, cache Cache) *Service {
	return &Service{log: log, source: source, cache: cache}
}

func (s *Service) Dashboard(ctx context.Context) domain.DashboardStats {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return *cached
		}
	}

	var (
		orders    []order.Order
		customers []customer.Customer
		daily     []domain.DailySalesRow
		perf      []domain.ProductPerformanceRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, err = s.source.Orders(gctx)
		return err
	})
	g.Go(func() (err error) {
		customers, err = s.source.Customers(gctx)
		return err
	})
	g.Go(func() (err error) {
		daily, err = s.source.DailySales(gctx, dailySalesWindow)
		return err
	})
	g.Go(func() (err error) {
		perf, err = s.source.ProductPerformance(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("dashboard source unreachable, serving fallback snapshot", "err", err)
		return Fallback()
	}

	stats := domain.DashboardStats{
		TotalOrders:        len(orders),
		TotalCustomers:     len(customers),
		TopDebtors:         topDebtors(customers),
		WeeklySales:        weeklySales(daily),
		ProductPerformance: productPerformance(perf),
	}

	for _, o := range orders {
		stats.TotalRevenue += o.TotalAmount
		switch o.PaymentType {
		case order.PaymentCash:
			stats.CashRevenue += o.TotalAmount
		case order.PaymentCredit:
			stats.CreditRevenue += o.TotalAmount
		}
	}

	// Counts go by the stored status, not by Classify. The discrepancy with
	// the classifier is intentional and tracked with product.
	for _, c := range customers {
		switch c.Status {
		case customer.StatusRisk:
			stats.RiskCustomers++
		case customer.StatusVIP:
			stats.VIPCustomers++
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.log.Debug("stats cache write failed", "err", err)
		}
	}
	return stats
}

func topDebtors(customers []customer.Customer) []domain.Debtor {
	ranked := make([]customer.Customer, len(customers))
	copy(ranked, customers)
	// Stable keeps input order on equal debt.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalDebt > ranked[j].TotalDebt
	})
	if len(ranked) > topDebtorCount {
		ranked = ranked[:topDebtorCount]
	}

	debtors := make([]domain.Debtor, 0, len(ranked))
	for _, c := range ranked {
		debtors = append(debtors, domain.Debtor{
			Name:       c.Name,
			ShopName:   c.ShopName,
			Debt:       c.TotalDebt,
			TrustScore: c.TrustScore,
		})
	}
	return debtors
}

// weeklySales takes the newest-first daily rows, keeps the most recent 7
// and reverses them into chronological order.
func weeklySales(daily []domain.DailySalesRow) []domain.WeeklySale {
	if len(daily) > weeklySalesDays {
		daily = daily[:weeklySalesDays]
	}
	sales := make([]domain.WeeklySale, 0, len(daily))
	for i := len(daily) - 1; i >= 0; i-- {
		d := daily[i]
		sales = append(sales, domain.WeeklySale{
			Date:   d.OrderDate,
			Cash:   d.CashSales,
			Credit: d.CreditSales,
			Total:  d.TotalSales,
		})
	}
	return sales
}

func productPerformance(perf []domain.ProductPerformanceRow) []domain.ProductStanding {
	ranked := make([]domain.ProductPerformanceRow, len(perf))
	copy(ranked, perf)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalRevenue > ranked[j].TotalRevenue
	})
	if len(ranked) > topProductCount {
		ranked = ranked[:topProductCount]
	}

	standings := make([]domain.ProductStanding, 0, len(ranked))
	for _, p := range ranked {
		standings = append(standings, domain.ProductStanding{
			Name:     p.Name,
			Revenue:  p.TotalRevenue,
			Quantity: p.TotalBagsSold,
		})
	}
	return standings
}
