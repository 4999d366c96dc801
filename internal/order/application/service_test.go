package application

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/AI-guru11/Mo7/internal/catalog/application"
	catalog "github.com/AI-guru11/Mo7/internal/catalog/domain"
	"github.com/AI-guru11/Mo7/internal/order/domain"
)

type fakeResolver struct {
	products map[string]catalog.Product
	calls    int
}

func (f *fakeResolver) Resolve(_ context.Context, ids []string) (map[string]catalog.Product, error) {
	f.calls++
	out := make(map[string]catalog.Product, len(ids))
	for _, id := range ids {
		p, ok := f.products[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", catalogapp.ErrProductNotFound, id)
		}
		out[id] = p
	}
	return out, nil
}

type fakeOrderRepo struct {
	createErr   error
	gotOrder    domain.Order
	gotStock    []domain.StockAdjustment
	gotEvents   []Event
	createCalls int
}

func (f *fakeOrderRepo) Create(_ context.Context, o domain.Order, stock []domain.StockAdjustment, events []Event) (domain.Order, error) {
	f.createCalls++
	f.gotOrder = o
	f.gotStock = stock
	f.gotEvents = events
	if f.createErr != nil {
		return o, f.createErr
	}
	return o, nil
}

func (f *fakeOrderRepo) Get(context.Context, string) (domain.Order, error) {
	return f.gotOrder, nil
}

func (f *fakeOrderRepo) Recent(context.Context, int) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) MarkPaid(context.Context, string) error { return nil }

func newTestService(repo *fakeOrderRepo, resolver *fakeResolver) *Service {
	return NewService(slog.New(slog.DiscardHandler), repo, resolver)
}

func seededResolver() *fakeResolver {
	return &fakeResolver{products: map[string]catalog.Product{
		"p1": {ID: "p1", Name: "Potato (Frying)", StockKg: 500, PricePerBag: 2500, BagWeightKg: 25},
		"p2": {ID: "p2", Name: "Onion (Red)", StockKg: 60, PricePerBag: 1800, BagWeightKg: 20},
	}}
}

func TestCreateOrderHappyPath(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := newTestService(repo, seededResolver())

	got, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:  "c1",
		PaymentType: domain.PaymentCash,
		Items:       []domain.Line{{ProductID: "p1", QuantityBags: 3}},
	})

	require.NoError(t, err)
	assert.Equal(t, 7500.0, got.TotalAmount)
	assert.True(t, got.IsPaid)
	require.Len(t, repo.gotStock, 1)
	assert.Equal(t, 425.0, repo.gotStock[0].NewStockKg)
	require.Len(t, repo.gotEvents, 1)
	assert.Equal(t, domain.EventOrderCreated, repo.gotEvents[0].Type)
}

func TestCreateOrderDuplicateProductLinesCoalesceStockWrite(t *testing.T) {
	// Two lines for the same product are a valid request and must reach
	// the store as one cumulative stock write, or the CAS-guarded update
	// would conflict with itself.
	repo := &fakeOrderRepo{}
	svc := newTestService(repo, seededResolver())

	got, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:  "c1",
		PaymentType: domain.PaymentCash,
		Items: []domain.Line{
			{ProductID: "p1", QuantityBags: 1},
			{ProductID: "p1", QuantityBags: 2},
		},
	})

	require.NoError(t, err)
	require.Len(t, got.Items, 2, "both lines keep their own priced item")
	assert.Equal(t, 3*2500.0, got.TotalAmount)
	require.Len(t, repo.gotStock, 1)
	assert.Equal(t, domain.StockAdjustment{ProductID: "p1", ObservedStockKg: 500, NewStockKg: 425}, repo.gotStock[0])
}

func TestCreateOrderRejectsEmptyItemList(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := newTestService(repo, seededResolver())

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{CustomerID: "c1", PaymentType: domain.PaymentCash})

	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.Zero(t, repo.createCalls, "no write may happen on a malformed request")
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	repo := &fakeOrderRepo{}
	resolver := seededResolver()
	svc := newTestService(repo, resolver)

	for _, qty := range []int{0, -3} {
		_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
			CustomerID:  "c1",
			PaymentType: domain.PaymentCash,
			Items:       []domain.Line{{ProductID: "p1", QuantityBags: qty}},
		})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Zero(t, resolver.calls, "validation happens before any product lookup")
	assert.Zero(t, repo.createCalls)
}

func TestCreateOrderAbortsWhenProductMissing(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := newTestService(repo, seededResolver())

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:  "c1",
		PaymentType: domain.PaymentCredit,
		Items:       []domain.Line{{ProductID: "ghost", QuantityBags: 1}},
	})

	assert.ErrorIs(t, err, catalogapp.ErrProductNotFound)
	assert.Zero(t, repo.createCalls, "missing product aborts before any write")
}

func TestCreateOrderCreditOrderIsUnpaid(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := newTestService(repo, seededResolver())

	got, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:  "c1",
		PaymentType: domain.PaymentCredit,
		Items:       []domain.Line{{ProductID: "p2", QuantityBags: 2}},
	})

	require.NoError(t, err)
	assert.False(t, got.IsPaid)
	assert.Equal(t, 3600.0, got.TotalAmount)
}

func TestCreateOrderEmitsStockDepletedWhenStockReachesZero(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := newTestService(repo, seededResolver())

	// p2 has 60kg on hand; 3 bags of 20kg drain it exactly.
	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:  "c1",
		PaymentType: domain.PaymentCash,
		Items:       []domain.Line{{ProductID: "p2", QuantityBags: 3}},
	})

	require.NoError(t, err)
	require.Len(t, repo.gotEvents, 2)
	assert.Equal(t, domain.EventStockDepleted, repo.gotEvents[1].Type)
}

func TestCreateOrderAllowsStockToGoNegative(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := newTestService(repo, seededResolver())

	// 4 bags of 20kg against 60kg on hand: stock goes to -20, which is a
	// replenishment signal rather than an error.
	got, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:  "c1",
		PaymentType: domain.PaymentCash,
		Items:       []domain.Line{{ProductID: "p2", QuantityBags: 4}},
	})

	require.NoError(t, err)
	assert.Equal(t, 4*1800.0, got.TotalAmount)
	require.Len(t, repo.gotStock, 1)
	assert.Equal(t, -20.0, repo.gotStock[0].NewStockKg)
}

func TestCreateOrderPartialCommitStillReturnsOrder(t *testing.T) {
	repo := &fakeOrderRepo{createErr: fmt.Errorf("%w: product p1", ErrPartialCommit)}
	svc := newTestService(repo, seededResolver())

	got, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:  "c1",
		PaymentType: domain.PaymentCash,
		Items:       []domain.Line{{ProductID: "p1", QuantityBags: 1}},
	})

	require.NoError(t, err, "drift is an operational alert, not a caller-facing failure")
	assert.NotEmpty(t, got.ID)
}

func TestCreateOrderPropagatesStoreFailure(t *testing.T) {
	repo := &fakeOrderRepo{createErr: ErrStoreUnavailable}
	svc := newTestService(repo, seededResolver())

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:  "c1",
		PaymentType: domain.PaymentCash,
		Items:       []domain.Line{{ProductID: "p1", QuantityBags: 1}},
	})

	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestCreateOrderSnapshotIsImmuneToLaterPriceChange(t *testing.T) {
	repo := &fakeOrderRepo{}
	resolver := seededResolver()
	svc := newTestService(repo, resolver)

	first, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:  "c1",
		PaymentType: domain.PaymentCash,
		Items:       []domain.Line{{ProductID: "p1", QuantityBags: 2}},
	})
	require.NoError(t, err)

	// Price doubles after the order was placed; the stored order keeps the
	// snapshot it was priced with.
	p := resolver.products["p1"]
	p.PricePerBag = 5000
	resolver.products["p1"] = p

	assert.Equal(t, 5000.0, first.TotalAmount)
	assert.Equal(t, 2500.0, first.Items[0].PricePerBag)
}
