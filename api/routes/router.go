package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dukkonapp/dukkon-backend/api/controllers"
	"github.com/dukkonapp/dukkon-backend/api/middleware"
	"github.com/dukkonapp/dukkon-backend/internal/catalog"
	checkoutsvc "github.com/dukkonapp/dukkon-backend/internal/checkout"
	"github.com/dukkonapp/dukkon-backend/internal/customers"
	"github.com/dukkonapp/dukkon-backend/internal/ledger"
	"github.com/dukkonapp/dukkon-backend/internal/sales"
	"github.com/dukkonapp/dukkon-backend/internal/tenants"
	"github.com/dukkonapp/dukkon-backend/pkg/config"
	"github.com/dukkonapp/dukkon-backend/pkg/db"
	"github.com/dukkonapp/dukkon-backend/pkg/logger"
	pkgredis "github.com/dukkonapp/dukkon-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	DB    db.Pinger
	Redis *pkgredis.Client

	CartCalculator  controllers.CartCalculator
	CheckoutService checkoutsvc.Service
	SalesService    sales.Service
	TenantsService  tenants.Service
	CatalogRepo     catalog.Repository
	CustomersRepo   customers.Repository
	LedgerRepo      ledger.Repository
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	var redisPinger pkgredis.Pinger
	var idemStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		redisPinger = deps.Redis
		idemStore = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.TenantContext(logg))
		r.Use(middleware.Idempotency(idemStore, cfg.Checkout.IdempotencyTTL, logg))

		r.Post("/cart/calculate", controllers.CartCalculate(deps.CartCalculator, logg))
		r.Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.SalesList(deps.SalesService, logg))
			r.Get("/{saleId}", controllers.SaleDetail(deps.SalesService, logg))
			r.Post("/{saleId}/refund", controllers.Refund(deps.CheckoutService, logg))
		})

		r.Route("/catalog/variants", func(r chi.Router) {
			r.Get("/", controllers.VariantsList(deps.CatalogRepo, logg))
			r.Get("/{variantRef}", controllers.VariantDetail(deps.CatalogRepo, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomersList(deps.CustomersRepo, logg))
			r.Get("/{customerId}", controllers.CustomerDetail(deps.CustomersRepo, logg))
			r.Get("/{customerId}/ledger", controllers.CustomerLedger(deps.CustomersRepo, deps.LedgerRepo, logg))
		})

		r.Route("/tenant/settings", func(r chi.Router) {
			r.Get("/", controllers.TenantSettings(deps.TenantsService, logg))
			r.Patch("/", controllers.TenantSettingsUpdate(deps.TenantsService, logg))
		})
	})

	return r
}
