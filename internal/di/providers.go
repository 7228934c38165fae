package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/propmart/catalog-backend/internal/app"
	"github.com/propmart/catalog-backend/internal/cache"
	"github.com/propmart/catalog-backend/internal/config"
	"github.com/propmart/catalog-backend/internal/database"
	"github.com/propmart/catalog-backend/internal/health"
	"github.com/propmart/catalog-backend/internal/http/handler"
	"github.com/propmart/catalog-backend/internal/http/middleware"
	"github.com/propmart/catalog-backend/internal/http/router"
	"github.com/propmart/catalog-backend/internal/observability"
	"github.com/propmart/catalog-backend/internal/repository"
	"github.com/propmart/catalog-backend/internal/security"
	"github.com/propmart/catalog-backend/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

var RuntimeInfraSet = wire.NewSet(
	provideRuntimeDB,
	provideRedisClient,
	provideCacheFrontend,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	repository.NewProductRepository,
	repository.NewCartRepository,
	repository.NewPropertyRepository,
	repository.NewUserRepository,
)

var SecuritySet = wire.NewSet(provideJWTManager)

var ServiceSet = wire.NewSet(
	service.NewProductService,
	service.NewCartService,
	providePropertyService,
	provideAuthService,
	wire.Bind(new(service.ProductService), new(*service.ProductServiceImpl)),
	wire.Bind(new(service.CartService), new(*service.CartServiceImpl)),
	wire.Bind(new(service.PropertyService), new(*service.PropertyServiceImpl)),
	wire.Bind(new(service.AuthService), new(*service.AuthServiceImpl)),
)

var HTTPSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewProductHandler,
	handler.NewCartHandler,
	handler.NewPropertyHandler,
	provideRouterDependencies,
	router.NewRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(app.New)

type MigrationRunner struct {
	db *gorm.DB
}

func NewMigrationRunner(db *gorm.DB) *MigrationRunner {
	return &MigrationRunner{db: db}
}

func (m *MigrationRunner) Run() error {
	if err := database.Migrate(m.db); err != nil {
		return err
	}
	report, err := database.Seed(m.db)
	if err != nil {
		return err
	}
	fmt.Printf("migration complete: %d products, %d records seeded\n", report.CreatedProducts, report.CreatedProperties)
	return nil
}

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, runtime.LoggerProvider)
}

func provideOpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

func provideRuntimeDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	if _, err := database.Seed(db); err != nil {
		return nil, err
	}
	return db, nil
}

func provideRedisClient(cfg *config.Config) redis.UniversalClient {
	if !cfg.RedisEnabled {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func provideCacheFrontend(cfg *config.Config, redisClient redis.UniversalClient, logger *slog.Logger) *cache.Frontend {
	var store cache.Store
	if redisClient != nil {
		store = cache.NewRedisStore(redisClient, cfg.CachePrefix)
	} else {
		store = cache.NewMemoryStore()
	}
	return cache.NewFrontend(store, logger)
}

func provideJWTManager(cfg *config.Config) *security.JWTManager {
	return security.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTAccessSecret)
}

func providePropertyService(repo repository.PropertyRepository, frontend *cache.Frontend, cfg *config.Config) *service.PropertyServiceImpl {
	return service.NewPropertyService(repo, frontend, cfg.CacheListTTL, cfg.CacheItemTTL)
}

func provideAuthService(users repository.UserRepository, tokens *security.JWTManager, cfg *config.Config) *service.AuthServiceImpl {
	return service.NewAuthService(users, tokens, cfg.JWTAccessTTL)
}

func provideAPIRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) func(http.Handler) http.Handler {
	if redisClient != nil {
		limiter := middleware.NewRedisFixedWindowLimiter(redisClient, cfg.CachePrefix+":rl:api")
		return middleware.NewRateLimiter(limiter, cfg.APIRateLimitPerMin, time.Minute, middleware.FailOpen, "api").Middleware()
	}
	return middleware.NewRateLimiter(middleware.NewLocalFixedWindowLimiter(), cfg.APIRateLimitPerMin, time.Minute, middleware.FailOpen, "api").Middleware()
}

func provideAuthRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) func(http.Handler) http.Handler {
	if redisClient != nil {
		limiter := middleware.NewRedisFixedWindowLimiter(redisClient, cfg.CachePrefix+":rl:auth")
		return middleware.NewRateLimiter(limiter, cfg.AuthRateLimitPerMin, time.Minute, middleware.FailClosed, "auth").Middleware()
	}
	return middleware.NewRateLimiter(middleware.NewLocalFixedWindowLimiter(), cfg.AuthRateLimitPerMin, time.Minute, middleware.FailClosed, "auth").Middleware()
}

func provideRouterDependencies(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	propertyHandler *handler.PropertyHandler,
	jwt *security.JWTManager,
	readiness *health.ProbeRunner,
	redisClient redis.UniversalClient,
	cfg *config.Config,
) router.Dependencies {
	return router.Dependencies{
		AuthHandler:     authHandler,
		ProductHandler:  productHandler,
		CartHandler:     cartHandler,
		PropertyHandler: propertyHandler,
		JWTManager:      jwt,
		CORSOrigins:     cfg.CORSAllowedOrigins,
		APIRateLimiter:  provideAPIRateLimiter(cfg, redisClient),
		AuthRateLimiter: provideAuthRateLimiter(cfg, redisClient),
		Readiness:       readiness,
		EnableOTelHTTP:  cfg.OTELMetricsEnabled || cfg.OTELTracingEnabled,
	}
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func provideReadinessProbeRunner(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient) *health.ProbeRunner {
	checkers := make([]health.Checker, 0, 2)
	if c := health.NewDBChecker(db); c != nil {
		checkers = append(checkers, c)
	}
	if cfg.RedisEnabled {
		if c := health.NewRedisChecker(redisClient); c != nil {
			checkers = append(checkers, c)
		}
	}
	return health.NewProbeRunner(cfg.ReadinessProbeTimeout, cfg.ServerStartGracePeriod, checkers...)
}
