package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arcoffee/arcoffee-backend/api/controllers"
	"github.com/arcoffee/arcoffee-backend/api/middleware"
	"github.com/arcoffee/arcoffee-backend/internal/catalog"
	"github.com/arcoffee/arcoffee-backend/internal/orders"
	"github.com/arcoffee/arcoffee-backend/internal/settings"
	"github.com/arcoffee/arcoffee-backend/pkg/config"
	"github.com/arcoffee/arcoffee-backend/pkg/db"
	"github.com/arcoffee/arcoffee-backend/pkg/logger"
	"github.com/arcoffee/arcoffee-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Registry *prometheus.Registry

	Orders   orders.Service
	Catalog  catalog.Service
	Settings settings.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessDeps(deps)))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	checkoutPolicy := middleware.NewCheckoutRateLimitPolicy(
		"checkout",
		cfg.RateLimit.CheckoutWindow,
		cfg.RateLimit.CheckoutIPLimit,
	)
	checkoutLimiter := middleware.CheckoutRateLimit(checkoutPolicy, nil, logg)
	if deps.Redis != nil {
		checkoutLimiter = middleware.CheckoutRateLimit(checkoutPolicy, deps.Redis, logg)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/menu", controllers.Menu(deps.Catalog, logg))
			r.Get("/categories", controllers.Categories(deps.Catalog, logg))
			r.Get("/options", controllers.Options(deps.Catalog, logg))
		})

		r.Get("/settings", controllers.StoreSettings(deps.Settings, logg))

		r.Route("/orders", func(r chi.Router) {
			r.With(checkoutLimiter).Post("/", controllers.SubmitOrder(deps.Orders, logg))
			r.Get("/{orderNumber}", controllers.TrackOrder(deps.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminKey(cfg.Admin, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(deps.Orders, logg))
			r.Patch("/{orderId}/status", controllers.AdminUpdateOrderStatus(deps.Orders, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Post("/categories", controllers.AdminCreateCategory(deps.Catalog, logg))
			r.Post("/products", controllers.AdminCreateProduct(deps.Catalog, logg))
			r.Patch("/products/{productId}", controllers.AdminUpdateProduct(deps.Catalog, logg))
			r.Delete("/products/{productId}", controllers.AdminDeleteProduct(deps.Catalog, logg))
			r.Post("/options", controllers.AdminCreateOption(deps.Catalog, logg))
			r.Patch("/options/{optionId}", controllers.AdminUpdateOption(deps.Catalog, logg))
			r.Delete("/options/{optionId}", controllers.AdminDeleteOption(deps.Catalog, logg))
		})

		r.Put("/settings", controllers.AdminUpdateSettings(deps.Settings, logg))
	})

	return r
}

func readinessDeps(deps Deps) map[string]controllers.Pinger {
	checks := map[string]controllers.Pinger{}
	if deps.DB != nil {
		checks["database"] = deps.DB
	}
	if deps.Redis != nil {
		checks["redis"] = deps.Redis
	}
	return checks
}
