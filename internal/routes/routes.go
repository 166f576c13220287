package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/walletpay/walletpay/internal/config"
	"github.com/walletpay/walletpay/internal/ledger"
	"github.com/walletpay/walletpay/internal/middleware"
	"github.com/walletpay/walletpay/internal/notification"
	"github.com/walletpay/walletpay/internal/transactions"
	"github.com/walletpay/walletpay/internal/walletgw"
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
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	store := ledger.NewPostgresStore(d.DB)
	gateway := walletgw.NewClient(d.Cfg.WalletServiceURL, d.Cfg.WalletTimeout)
	notifier := notification.NewLoggerNotifier(d.Logger)
	svc := transactions.NewService(store, gateway, transactions.UUIDGenerator{}, notifier, d.Logger)

	RegisterTransactionRoutes(app, transactions.NewHandler(svc))

	return nil
}
