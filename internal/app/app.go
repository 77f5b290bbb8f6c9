// Package app assembles the storefront's services from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/angelmondragon/voltmart-backend/internal/adminauth"
	"github.com/angelmondragon/voltmart-backend/internal/analytics"
	analyticsquery "github.com/angelmondragon/voltmart-backend/internal/analytics/query"
	"github.com/angelmondragon/voltmart-backend/internal/cart"
	"github.com/angelmondragon/voltmart-backend/internal/checkout"
	"github.com/angelmondragon/voltmart-backend/internal/delivery"
	"github.com/angelmondragon/voltmart-backend/internal/orders"
	"github.com/angelmondragon/voltmart-backend/internal/products"
	"github.com/angelmondragon/voltmart-backend/internal/stores"
	"github.com/angelmondragon/voltmart-backend/pkg/config"
	"github.com/angelmondragon/voltmart-backend/pkg/db"
	"github.com/angelmondragon/voltmart-backend/pkg/logger"
	"github.com/angelmondragon/voltmart-backend/pkg/maps"
	"github.com/angelmondragon/voltmart-backend/pkg/metrics"
	"github.com/angelmondragon/voltmart-backend/pkg/migrate"
	"github.com/angelmondragon/voltmart-backend/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Stores    stores.Service
	Products  products.Service
	Cart      cart.Service
	Checkout  checkout.Service
	Orders    orders.Service
	Analytics analytics.Service
	AdminAuth adminauth.Service
}

// App owns the process-wide resources.
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redis.Client
	Registry *prometheus.Registry
	Metrics  *metrics.Storefront
	Services Services
}

// New connects to the database and Redis and builds the services. Resources
// acquired before a failure are released.
func New(ctx context.Context, cfg *config.Config, logg *logger.Logger) (app *App, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	a := &App{Config: cfg, Logger: logg}
	defer func() {
		if err != nil {
			err = multierr.Append(err, a.Close())
		}
	}()

	a.DB, err = db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap database: %w", err)
	}
	if err = migrate.MaybeRunDev(ctx, cfg, logg, a.DB); err != nil {
		return nil, fmt.Errorf("dev migrations: %w", err)
	}
	a.Redis, err = redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap redis: %w", err)
	}

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = metrics.NewStorefront(a.Registry)

	var geocoder maps.Geocoder
	if cfg.GoogleMaps.APIKey != "" {
		client, mapsErr := maps.NewClient(cfg.GoogleMaps.APIKey)
		if mapsErr != nil {
			return nil, fmt.Errorf("maps client: %w", mapsErr)
		}
		geocoder = client
	}

	a.Services, err = buildServices(cfg, logg, a.DB, a.Redis, a.Metrics, geocoder)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client, rec *metrics.Storefront, geocoder maps.Geocoder) (Services, error) {
	conn := dbClient.DB()
	calculator := delivery.NewCalculator(cfg.Pricing.Pricing())

	storeRepo := stores.NewRepository(conn)
	storeSvc, err := stores.NewService(storeRepo, geocoder)
	if err != nil {
		return Services{}, fmt.Errorf("stores service: %w", err)
	}

	catalogRepo := products.NewRepository(conn)
	productSvc, err := products.NewService(catalogRepo, storeRepo)
	if err != nil {
		return Services{}, fmt.Errorf("products service: %w", err)
	}

	sessions, err := cart.NewRedisSessionStore(redisClient, cfg.Cart.SessionTTL)
	if err != nil {
		return Services{}, fmt.Errorf("cart sessions: %w", err)
	}
	cartSvc, err := cart.NewService(sessions, productSvc, storeSvc, calculator,
		cart.WithFeeRecorder(rec),
		cart.WithCurrency(cfg.Pricing.Currency),
	)
	if err != nil {
		return Services{}, fmt.Errorf("cart service: %w", err)
	}

	orderRepo := orders.NewRepository(conn)
	checkoutSvc, err := checkout.NewService(checkout.Deps{
		Tx:         dbClient,
		Sessions:   sessions,
		Offers:     catalogRepo,
		Locations:  storeSvc,
		Orders:     orderRepo,
		Calculator: calculator,
		Metrics:    rec,
		Logger:     logg,
		Currency:   cfg.Pricing.Currency,
	})
	if err != nil {
		return Services{}, fmt.Errorf("checkout service: %w", err)
	}

	orderSvc, err := orders.NewService(orderRepo, dbClient, catalogRepo, logg)
	if err != nil {
		return Services{}, fmt.Errorf("orders service: %w", err)
	}

	analyticsSvc, err := analytics.NewService(analyticsquery.NewRepository(conn), cfg.Pricing.Currency)
	if err != nil {
		return Services{}, fmt.Errorf("analytics service: %w", err)
	}

	authSvc, err := adminauth.NewService(cfg.Admin)
	if err != nil {
		return Services{}, fmt.Errorf("admin auth service: %w", err)
	}

	return Services{
		Stores:    storeSvc,
		Products:  productSvc,
		Cart:      cartSvc,
		Checkout:  checkoutSvc,
		Orders:    orderSvc,
		Analytics: analyticsSvc,
		AdminAuth: authSvc,
	}, nil
}

// Close releases Redis and the database, reporting every failure.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var err error
	if a.Redis != nil {
		err = multierr.Append(err, a.Redis.Close())
	}
	if a.DB != nil {
		err = multierr.Append(err, a.DB.Close())
	}
	return err
}
