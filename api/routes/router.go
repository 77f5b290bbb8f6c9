package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/voltmart-backend/api/controllers"
	analyticscontrollers "github.com/angelmondragon/voltmart-backend/api/controllers/analytics"
	cartcontrollers "github.com/angelmondragon/voltmart-backend/api/controllers/cart"
	ordercontrollers "github.com/angelmondragon/voltmart-backend/api/controllers/orders"
	"github.com/angelmondragon/voltmart-backend/api/middleware"
	"github.com/angelmondragon/voltmart-backend/internal/app"
	"github.com/angelmondragon/voltmart-backend/pkg/config"
	"github.com/angelmondragon/voltmart-backend/pkg/logger"
	"github.com/angelmondragon/voltmart-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/voltmart-backend/pkg/redis"
)

// RedisDeps is the slice of the Redis client the HTTP layer needs.
type RedisDeps interface {
	controllers.Pinger
	pkgredis.IdempotencyStore
	pkgredis.RateLimiter
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient RedisDeps,
	gatherer prometheus.Gatherer,
	recorder *metrics.Storefront,
	svcs app.Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, recorder),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		cfg.RateLimit.LoginUserLimit,
	)
	idempotent := middleware.Idempotency(redisClient, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartSession(logg))

		r.Get("/stores", controllers.StoreList(svcs.Stores, logg))
		r.Get("/stores/{storeId}", controllers.StoreDetail(svcs.Stores, logg))

		r.Get("/products", controllers.ProductList(svcs.Products, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(svcs.Products, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(svcs.Cart, logg))
			r.Delete("/", cartcontrollers.CartClear(svcs.Cart, logg))
			r.Get("/quote", cartcontrollers.CartQuote(svcs.Cart, logg))
			r.Post("/items", cartcontrollers.CartAddItem(svcs.Cart, logg))
			r.Put("/items/{offerId}", cartcontrollers.CartSetQuantity(svcs.Cart, logg))
			r.Delete("/items/{offerId}", cartcontrollers.CartRemoveItem(svcs.Cart, logg))
		})

		r.With(idempotent).Post("/checkout", controllers.Checkout(svcs.Checkout, logg))
		r.Get("/orders/{orderNumber}", ordercontrollers.ByNumber(svcs.Orders, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AdminAuthLogin(svcs.AdminAuth, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.Admin, logg))

		r.With(idempotent).Post("/stores", controllers.AdminStoreCreate(svcs.Stores, logg))
		r.Put("/stores/{storeId}", controllers.AdminStoreUpdate(svcs.Stores, logg))

		r.With(idempotent).Post("/products", controllers.AdminProductCreate(svcs.Products, logg))
		r.Put("/products/{productId}", controllers.AdminProductUpdate(svcs.Products, logg))

		r.With(idempotent).Post("/offers", controllers.AdminOfferCreate(svcs.Products, logg))
		r.Put("/offers/{offerId}", controllers.AdminOfferUpdate(svcs.Products, logg))

		r.Get("/orders", ordercontrollers.AdminList(svcs.Orders, logg))
		r.Get("/orders/{orderId}", ordercontrollers.AdminDetail(svcs.Orders, logg))
		r.With(idempotent).Post("/orders/{orderId}/status", ordercontrollers.AdminUpdateStatus(svcs.Orders, logg))

		r.Get("/analytics/summary", analyticscontrollers.Summary(svcs.Analytics, logg))
	})

	return r
}
