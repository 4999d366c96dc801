package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/AI-guru11/Mo7/internal/config"
	"github.com/AI-guru11/Mo7/internal/db"
	"github.com/AI-guru11/Mo7/internal/store/memory"
	"github.com/AI-guru11/Mo7/pkg/logging"
	"github.com/AI-guru11/Mo7/pkg/outbox"
	"github.com/AI-guru11/Mo7/pkg/shutdown"

	analyticsapp "github.com/AI-guru11/Mo7/internal/analytics/application"
	analyticshttp "github.com/AI-guru11/Mo7/internal/analytics/infrastructure/http"
	analyticspg "github.com/AI-guru11/Mo7/internal/analytics/infrastructure/postgres"
	analyticsredis "github.com/AI-guru11/Mo7/internal/analytics/infrastructure/redis"
	catalogapp "github.com/AI-guru11/Mo7/internal/catalog/application"
	cataloghttp "github.com/AI-guru11/Mo7/internal/catalog/infrastructure/http"
	catalogpg "github.com/AI-guru11/Mo7/internal/catalog/infrastructure/postgres"
	customerapp "github.com/AI-guru11/Mo7/internal/customer/application"
	customerhttp "github.com/AI-guru11/Mo7/internal/customer/infrastructure/http"
	customerpg "github.com/AI-guru11/Mo7/internal/customer/infrastructure/postgres"
	invoiceapp "github.com/AI-guru11/Mo7/internal/invoice/application"
	invoicehttp "github.com/AI-guru11/Mo7/internal/invoice/infrastructure/http"
	orderapp "github.com/AI-guru11/Mo7/internal/order/application"
	orderhttp "github.com/AI-guru11/Mo7/internal/order/infrastructure/http"
	orderkafka "github.com/AI-guru11/Mo7/internal/order/infrastructure/kafka"
	orderpg "github.com/AI-guru11/Mo7/internal/order/infrastructure/postgres"
)

func main() {
	log := logging.New()
	cfg := config.Load()

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	var (
		productRepo  catalogapp.ProductRepository
		orderRepo    orderapp.OrderRepository
		customerRepo customerapp.CustomerRepository
		statsSource  analyticsapp.Source
		statsCache   analyticsapp.Cache
	)

	demoMode := cfg.DemoMode || cfg.PostgresURL == ""
	if demoMode {
		log.Info("running in demo mode with seeded in-memory store")
		store := memory.NewSeeded()
		productRepo = store
		orderRepo = store.OrderRepository()
		customerRepo = store.CustomerRepository()
		statsSource = store
	} else {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("pg connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			log.Error("migration failed", "err", err)
			os.Exit(1)
		}

		productRepo = catalogpg.NewRepository(log, pool)
		orderRepo = orderpg.NewRepository(log, pool)
		customerRepo = customerpg.NewRepository(log, pool)
		statsSource = analyticspg.NewRepository(log, pool)

		if cfg.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			defer rdb.Close()
			statsCache = analyticsredis.NewCache(rdb, cfg.StatsCacheTTL)
		}

		// Outbox relay, only meaningful with a durable store behind it.
		writer := orderkafka.NewWriter(cfg.KafkaBrokers)
		defer writer.Close()

		store := orderpg.NewOutboxStore(log, pool)
		dispatch := outbox.NewDispatcher(log, writer, cfg.OrderTopic)
		relay := outbox.NewRelay(log, store, dispatch, "m7-server-relay")

		go func() {
			if err := relay.Run(ctx); err != nil {
				log.Error("relay stopped with error", "err", err)
			}
		}()
	}

	catalogSvc := catalogapp.NewService(productRepo)
	orderSvc := orderapp.NewService(log, orderRepo, catalogSvc)
	customerSvc := customerapp.NewService(customerRepo)
	analyticsSvc := analyticsapp.NewService(log, statsSource, statsCache)
	generator := invoiceapp.NewGenerator(invoiceapp.DefaultCompany())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api", func(api chi.Router) {
		orderhttp.NewHandler(log, orderSvc).Register(api)
		cataloghttp.NewHandler(log, catalogSvc).Register(api)
		customerhttp.NewHandler(log, customerSvc).Register(api)
		analyticshttp.NewHandler(log, analyticsSvc).Register(api)
		invoicehttp.NewHandler(log, orderSvc, customerSvc, generator, cfg.InvoiceDir).Register(api)
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr, "demo", demoMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("server shutdown complete")
}
