// Package memory is the in-process store used in demo mode and in tests.
// Unlike the Postgres store it applies the order write path step by step
// with no transaction, so it keeps the documented best-effort semantics:
// an order can commit while one of its stock writes fails, surfacing
// ErrPartialCommit.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	analytics "github.com/AI-guru11/Mo7/internal/analytics/domain"
	catalog "github.com/AI-guru11/Mo7/internal/catalog/domain"
	customerapp "github.com/AI-guru11/Mo7/internal/customer/application"
	customer "github.com/AI-guru11/Mo7/internal/customer/domain"
	orderapp "github.com/AI-guru11/Mo7/internal/order/application"
	order "github.com/AI-guru11/Mo7/internal/order/domain"
)

type Store struct {
	mu        sync.RWMutex
	products  map[string]catalog.Product
	customers map[string]customer.Customer
	orders    map[string]order.Order
	orderSeq  []string // insertion order, newest appended last
}

func New() *Store {
	return &Store{
		products:  make(map[string]catalog.Product),
		customers: make(map[string]customer.Customer),
		orders:    make(map[string]order.Order),
	}
}

// NewSeeded returns a store pre-loaded with the demo catalog and customer
// book, so the server is usable without any backing services.
func NewSeeded() *Store {
	s := New()
	now := time.Now().UTC()

	for _, p := range []catalog.Product{
		{Name: "Potato (Frying)", Description: "High-starch frying grade", StockKg: 2500, PricePerBag: 2500, BagWeightKg: 25},
		{Name: "Potato (Regular)", Description: "Table grade", StockKg: 1800, PricePerBag: 2000, BagWeightKg: 25},
		{Name: "Onion (Red)", Description: "Nashik red", StockKg: 1200, PricePerBag: 1800, BagWeightKg: 20},
		{Name: "Onion (White)", Description: "Export white", StockKg: 900, PricePerBag: 1650, BagWeightKg: 20},
	} {
		p.ID = uuid.NewString()
		p.CreatedAt = now
		p.UpdatedAt = now
		s.products[p.ID] = p
	}

	for _, c := range []customer.Customer{
		{Name: "Amit Sharma", ShopName: "Sharma Fresh Mart", Phone: "+91-9811111111", TrustScore: 70, TotalDebt: 15000, Status: customer.StatusVIP},
		{Name: "Neha Gupta", ShopName: "Gupta Store", Phone: "+91-9822222222", TrustScore: 60, TotalDebt: 30000, Status: customer.StatusActive},
		{Name: "Ravi Verma", ShopName: "Verma Enterprises", Phone: "+91-9833333333", TrustScore: 50, TotalDebt: 45000, Status: customer.StatusActive},
		{Name: "Priya Singh", ShopName: "Singh Trading Co.", Phone: "+91-9844444444", TrustScore: 45, TotalDebt: 78000, Status: customer.StatusRisk},
		{Name: "Sunita Devi", ShopName: "Sunita Wholesale", Phone: "+91-9855555555", TrustScore: 30, TotalDebt: 125000, Status: customer.StatusRisk},
	} {
		c.ID = uuid.NewString()
		c.CreatedAt = now
		c.UpdatedAt = now
		s.customers[c.ID] = c
	}
	return s
}

// --- catalog.ProductRepository ---

func (s *Store) FetchByIDs(_ context.Context, ids []string) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []catalog.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) FetchAll(_ context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateStock(_ context.Context, id string, stockKg float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("product %s not found", id)
	}
	p.StockKg = stockKg
	p.UpdatedAt = time.Now().UTC()
	s.products[id] = p
	return nil
}

// AddProduct is a test/demo helper.
func (s *Store) AddProduct(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// RemoveProduct is a test helper used to force stock drift.
func (s *Store) RemoveProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

// --- customer access ---

func (s *Store) GetCustomer(_ context.Context, id string) (customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return customer.Customer{}, fmt.Errorf("customer %s: %w", id, customerapp.ErrCustomerNotFound)
	}
	return c, nil
}

func (s *Store) UpdateDebt(_ context.Context, id string, totalDebt float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return fmt.Errorf("customer %s: %w", id, customerapp.ErrCustomerNotFound)
	}
	c.TotalDebt = totalDebt
	c.UpdatedAt = time.Now().UTC()
	s.customers[id] = c
	return nil
}

// AddCustomer is a test/demo helper.
func (s *Store) AddCustomer(c customer.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
}

// OrderRepository adapts the store to the order application port.
func (s *Store) OrderRepository() orderapp.OrderRepository { return ordersView{s} }

type ordersView struct{ s *Store }

func (v ordersView) Create(ctx context.Context, o order.Order, stock []order.StockAdjustment, events []orderapp.Event) (order.Order, error) {
	return v.s.Create(ctx, o, stock, events)
}

func (v ordersView) Get(ctx context.Context, id string) (order.Order, error) {
	return v.s.GetOrder(ctx, id)
}

func (v ordersView) Recent(ctx context.Context, limit int) ([]order.Order, error) {
	return v.s.Recent(ctx, limit)
}

func (v ordersView) MarkPaid(ctx context.Context, id string) error {
	return v.s.MarkPaid(ctx, id)
}

// CustomerRepository adapts the store to the customer application port.
func (s *Store) CustomerRepository() customerapp.CustomerRepository { return customersView{s} }

type customersView struct{ s *Store }

func (v customersView) FetchAll(ctx context.Context) ([]customer.Customer, error) {
	return v.s.Customers(ctx)
}

func (v customersView) Get(ctx context.Context, id string) (customer.Customer, error) {
	return v.s.GetCustomer(ctx, id)
}

func (v customersView) UpdateDebt(ctx context.Context, id string, totalDebt float64) error {
	return v.s.UpdateDebt(ctx, id, totalDebt)
}

// --- order write path ---

func (s *Store) Create(_ context.Context, o order.Order, stock []order.StockAdjustment, _ []orderapp.Event) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	s.orders[o.ID] = o
	s.orderSeq = append(s.orderSeq, o.ID)

	// Stock writes happen after the order commit, one by one. A failed
	// write is drift, not a rollback.
	var drifted []string
	for _, adj := range stock {
		p, ok := s.products[adj.ProductID]
		if !ok {
			drifted = append(drifted, adj.ProductID)
			continue
		}
		p.StockKg = adj.NewStockKg
		p.UpdatedAt = time.Now().UTC()
		s.products[adj.ProductID] = p
	}
	if len(drifted) > 0 {
		return o, fmt.Errorf("%w: products %v", orderapp.ErrPartialCommit, drifted)
	}
	return o, nil
}

func (s *Store) GetOrder(_ context.Context, id string) (order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return order.Order{}, fmt.Errorf("order %s: %w", id, orderapp.ErrOrderNotFound)
	}
	return o, nil
}

func (s *Store) Recent(_ context.Context, limit int) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []order.Order
	for i := len(s.orderSeq) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.orders[s.orderSeq[i]])
	}
	return out, nil
}

func (s *Store) MarkPaid(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, orderapp.ErrOrderNotFound)
	}
	o.IsPaid = true
	o.UpdatedAt = time.Now().UTC()
	s.orders[id] = o
	return nil
}

// --- analytics application.Source ---

func (s *Store) Orders(_ context.Context) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]order.Order, 0, len(s.orderSeq))
	for _, id := range s.orderSeq {
		out = append(out, s.orders[id])
	}
	return out, nil
}

func (s *Store) Customers(_ context.Context) ([]customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]customer.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DailySales(_ context.Context, limit int) ([]analytics.DailySalesRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDate := make(map[string]*analytics.DailySalesRow)
	for _, o := range s.orders {
		date := o.OrderDate.Format("2006-01-02")
		row, ok := byDate[date]
		if !ok {
			row = &analytics.DailySalesRow{OrderDate: date}
			byDate[date] = row
		}
		row.TotalOrders++
		row.TotalSales += o.TotalAmount
		switch o.PaymentType {
		case order.PaymentCash:
			row.CashSales += o.TotalAmount
		case order.PaymentCredit:
			row.CreditSales += o.TotalAmount
		}
	}

	rows := make([]analytics.DailySalesRow, 0, len(byDate))
	for _, row := range byDate {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].OrderDate > rows[j].OrderDate })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *Store) ProductPerformance(_ context.Context) ([]analytics.ProductPerformanceRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byName := make(map[string]*analytics.ProductPerformanceRow)
	nameOf := func(productID, snapshotName string) string {
		if p, ok := s.products[productID]; ok {
			return p.Name
		}
		return snapshotName
	}

	for _, o := range s.orders {
		for _, item := range o.Items {
			name := nameOf(item.ProductID, item.ProductName)
			row, ok := byName[name]
			if !ok {
				row = &analytics.ProductPerformanceRow{Name: name}
				byName[name] = row
			}
			row.TimesOrdered++
			row.TotalBagsSold += float64(item.QuantityBags)
			row.TotalKgSold += item.QuantityKg
			row.TotalRevenue += item.Subtotal
		}
	}

	rows := make([]analytics.ProductPerformanceRow, 0, len(byName))
	for _, row := range byName {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TotalRevenue > rows[j].TotalRevenue })
	return rows, nil
}
