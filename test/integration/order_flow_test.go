package integration

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticspg "github.com/AI-guru11/Mo7/internal/analytics/infrastructure/postgres"
	catalog "github.com/AI-guru11/Mo7/internal/catalog/domain"
	catalogpg "github.com/AI-guru11/Mo7/internal/catalog/infrastructure/postgres"
	"github.com/AI-guru11/Mo7/internal/db"
	orderapp "github.com/AI-guru11/Mo7/internal/order/application"
	order "github.com/AI-guru11/Mo7/internal/order/domain"
	orderpg "github.com/AI-guru11/Mo7/internal/order/infrastructure/postgres"
	"github.com/AI-guru11/Mo7/pkg/outbox"
)

func TestOrderFlowAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	env, err := Setup(ctx)
	require.NoError(t, err)
	defer env.Teardown(ctx)

	pool, err := pgxpool.New(ctx, env.PGURL)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, db.Migrate(ctx, pool))

	log := slog.New(slog.DiscardHandler)

	customerID := uuid.NewString()
	_, err = pool.Exec(ctx,
		`INSERT INTO customers (id, name, shop_name, phone, total_debt, status) VALUES ($1,$2,$3,$4,$5,$6)`,
		customerID, "Ravi Verma", "Verma Enterprises", "+91-9833333333", 45000.0, "active")
	require.NoError(t, err)

	productID := uuid.NewString()
	_, err = pool.Exec(ctx,
		`INSERT INTO products (id, name, stock_kg, price_per_bag, bag_weight_kg) VALUES ($1,$2,$3,$4,$5)`,
		productID, "Potato (Frying)", 500.0, 2500.0, 25.0)
	require.NoError(t, err)

	products := map[string]catalog.Product{
		productID: {ID: productID, Name: "Potato (Frying)", StockKg: 500, PricePerBag: 2500, BagWeightKg: 25},
	}

	repo := orderpg.NewRepository(log, pool)

	o := order.NewOrder(customerID, order.PaymentCredit, []order.Line{{ProductID: productID, QuantityBags: 3}}, products)

	stored, err := repo.Create(ctx, o, o.StockAdjustments(products), []orderapp.Event{
		{Type: order.EventOrderCreated, Payload: []byte(`{}`)},
	})
	require.NoError(t, err)
	require.Equal(t, o.ID, stored.ID)

	t.Run("order round trip with item snapshot", func(t *testing.T) {
		got, err := repo.Get(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, 7500.0, got.TotalAmount)
		assert.False(t, got.IsPaid)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Potato (Frying)", got.Items[0].ProductName)
		assert.Equal(t, 75.0, got.Items[0].QuantityKg)
	})

	t.Run("stock deducted atomically", func(t *testing.T) {
		catalogRepo := catalogpg.NewRepository(log, pool)
		got, err := catalogRepo.FetchByIDs(ctx, []string{productID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 425.0, got[0].StockKg)
	})

	t.Run("stale observed stock is rejected", func(t *testing.T) {
		o2 := order.NewOrder(customerID, order.PaymentCash, []order.Line{{ProductID: productID, QuantityBags: 1}}, products)

		// adjustments computed from the pre-deduction snapshot no longer match
		_, err = repo.Create(ctx, o2, o2.StockAdjustments(products), nil)
		require.ErrorIs(t, err, orderapp.ErrStockConflict)

		var count int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&count))
		assert.Equal(t, 1, count, "conflicting order must not be committed")
	})

	t.Run("outbox row queued and leasable", func(t *testing.T) {
		store := orderpg.NewOutboxStore(log, pool)
		batch, err := store.LockBatch(ctx, "test-relay", 10, 5*time.Second)
		require.NoError(t, err)
		require.Len(t, batch, 1)
		assert.Equal(t, order.EventOrderCreated, batch[0].Type)
		assert.Equal(t, stored.ID, batch[0].AggregateID)

		// a second relay must not see the leased row
		other, err := store.LockBatch(ctx, "other-relay", 10, 5*time.Second)
		require.NoError(t, err)
		assert.Empty(t, other)

		require.NoError(t, store.MarkSent(ctx, []int64{batch[0].ID}))

		var status string
		require.NoError(t, pool.QueryRow(ctx, `SELECT status FROM outbox WHERE id=$1`, batch[0].ID).Scan(&status))
		assert.Equal(t, string(outbox.StatusSent), status)
	})

	t.Run("analytics views reflect the order", func(t *testing.T) {
		stats := analyticspg.NewRepository(log, pool)

		daily, err := stats.DailySales(ctx, 30)
		require.NoError(t, err)
		require.Len(t, daily, 1)
		assert.Equal(t, 7500.0, daily[0].CreditSales)
		assert.Equal(t, 0.0, daily[0].CashSales)

		perf, err := stats.ProductPerformance(ctx)
		require.NoError(t, err)
		require.Len(t, perf, 1)
		assert.Equal(t, 7500.0, perf[0].TotalRevenue)
	})

	t.Run("mark paid", func(t *testing.T) {
		require.NoError(t, repo.MarkPaid(ctx, stored.ID))
		got, err := repo.Get(ctx, stored.ID)
		require.NoError(t, err)
		assert.True(t, got.IsPaid)
	})

	t.Run("duplicate product lines commit as one stock write", func(t *testing.T) {
		current := map[string]catalog.Product{
			productID: {ID: productID, Name: "Potato (Frying)", StockKg: 425, PricePerBag: 2500, BagWeightKg: 25},
		}
		o3 := order.NewOrder(customerID, order.PaymentCash, []order.Line{
			{ProductID: productID, QuantityBags: 1},
			{ProductID: productID, QuantityBags: 2},
		}, current)

		_, err := repo.Create(ctx, o3, o3.StockAdjustments(current), nil)
		require.NoError(t, err)

		var stock float64
		require.NoError(t, pool.QueryRow(ctx, `SELECT stock_kg FROM products WHERE id=$1`, productID).Scan(&stock))
		assert.Equal(t, 350.0, stock)
	})
}
