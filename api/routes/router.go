package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dineflow/dineflow-backend/api/controllers"
	"github.com/dineflow/dineflow-backend/api/middleware"
	"github.com/dineflow/dineflow-backend/internal/orders"
	"github.com/dineflow/dineflow-backend/internal/settlement"
	"github.com/dineflow/dineflow-backend/internal/tables"
	"github.com/dineflow/dineflow-backend/internal/taxmaster"
	"github.com/dineflow/dineflow-backend/pkg/config"
	"github.com/dineflow/dineflow-backend/pkg/logger"
	"github.com/dineflow/dineflow-backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Redis       *redis.Client
	HealthDeps  map[string]controllers.Pinger
	Orders      orders.Service
	Settlement  settlement.Service
	TaxMaster   taxmaster.Service
	Tables      tables.Repository
	MetricsPath http.Handler
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.HealthDeps))
	})

	metricsHandler := deps.MetricsPath
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.TenantContext(deps.Config.Billing, deps.Logger))
		r.Use(middleware.Idempotency(deps.Redis, deps.Config.Billing.IdempotencyTTL(), deps.Logger))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.PlaceOrder(deps.Orders, deps.Logger))
			r.Get("/{orderID}", controllers.OrderDetail(deps.Orders, deps.Logger))
		})

		r.Route("/tables", func(r chi.Router) {
			r.Get("/", controllers.ListTables(deps.Tables, deps.Logger))
			r.Get("/{tableID}/order", controllers.TableOrder(deps.Orders, deps.Logger))
		})

		r.Route("/bills", func(r chi.Router) {
			r.Post("/", controllers.SettleBill(deps.Settlement, deps.Logger))
			r.Get("/{billNo}", controllers.BillDetail(deps.Settlement, deps.Logger))
		})

		r.Route("/tax", func(r chi.Router) {
			r.Post("/preview", controllers.TaxPreview(deps.TaxMaster, deps.Logger))
			r.Route("/splits", func(r chi.Router) {
				r.Post("/", controllers.RegisterTaxSplit(deps.TaxMaster, deps.Logger))
				r.Get("/", controllers.ListTaxSplits(deps.TaxMaster, deps.Logger))
			})
		})
	})

	return r
}
