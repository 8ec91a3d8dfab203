package routes

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/cardstream/cardstream/internal/bank"
	"github.com/cardstream/cardstream/internal/clock"
	"github.com/cardstream/cardstream/internal/config"
	"github.com/cardstream/cardstream/internal/events"
	"github.com/cardstream/cardstream/internal/middleware"
	"github.com/cardstream/cardstream/internal/payment"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Outside development the backing stores are mandatory; in development
	// missing ones fall back to in-memory implementations.
	if !isDev(d.Cfg.Env) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var repo payment.Repository
	if d.DB != nil {
		repo = payment.NewPostgresRepository(d.DB)
	} else {
		repo = payment.NewMemoryRepository()
	}

	var cache payment.Cache
	if d.Cache != nil {
		cache = payment.NewRedisCache(d.Cache, d.Cfg.IdempotencyTTL)
	} else {
		cache = payment.NewMemoryCache(d.Cfg.IdempotencyTTL)
	}

	bankClient := bank.NewHTTPClient(d.Cfg.BankURL, d.Cfg.BankTimeout)
	publisher := events.NewLoggerPublisher(d.Logger)
	paymentSvc := payment.NewService(repo, cache, bankClient, clock.System{}, publisher, d.Logger)
	paymentHandler := payment.NewHandler(paymentSvc)

	api := app.Group("/api/v1")
	RegisterPaymentRoutes(api, paymentHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
