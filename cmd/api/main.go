package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dukkonapp/dukkon-backend/api/routes"
	"github.com/dukkonapp/dukkon-backend/internal/cart"
	"github.com/dukkonapp/dukkon-backend/internal/catalog"
	checkoutsvc "github.com/dukkonapp/dukkon-backend/internal/checkout"
	"github.com/dukkonapp/dukkon-backend/internal/customers"
	"github.com/dukkonapp/dukkon-backend/internal/ledger"
	"github.com/dukkonapp/dukkon-backend/internal/sales"
	"github.com/dukkonapp/dukkon-backend/internal/tenants"
	"github.com/dukkonapp/dukkon-backend/pkg/config"
	"github.com/dukkonapp/dukkon-backend/pkg/db"
	"github.com/dukkonapp/dukkon-backend/pkg/logger"
	"github.com/dukkonapp/dukkon-backend/pkg/metrics"
	"github.com/dukkonapp/dukkon-backend/pkg/migrate"
	"github.com/dukkonapp/dukkon-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	tenantsRepo := tenants.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	customersRepo := customers.NewRepository(dbClient.DB())
	ledgerRepo := ledger.NewRepository(dbClient.DB())
	salesRepo := sales.NewRepository(dbClient.DB())

	tenantsService, err := tenants.NewService(tenantsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create tenants service", err)
		os.Exit(1)
	}

	cartCalculator, err := cart.NewCalculator(catalogRepo, customersRepo, tenantsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart calculator", err)
		os.Exit(1)
	}

	salesService, err := sales.NewService(salesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create sales service", err)
		os.Exit(1)
	}

	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)
	checkoutService, err := checkoutsvc.NewService(
		dbClient,
		cartCalculator,
		tenantsService,
		catalogRepo,
		customersRepo,
		ledgerRepo,
		salesRepo,
		logg,
		checkoutMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(cfg, logg, routes.Deps{
		DB:              dbClient,
		Redis:           redisClient,
		CartCalculator:  cartCalculator,
		CheckoutService: checkoutService,
		SalesService:    salesService,
		TenantsService:  tenantsService,
		CatalogRepo:     catalogRepo,
		CustomersRepo:   customersRepo,
		LedgerRepo:      ledgerRepo,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
