package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harmony-ledger/harmony/internal/api/http/handlers"
	"github.com/harmony-ledger/harmony/internal/auth"
	apperrors "github.com/harmony-ledger/harmony/pkg/util/errorutil"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Persons         *handlers.PersonHandler
	Objects         *handlers.ObjectHandler
	Trades          *handlers.TradeHandler
	Transactions    *handlers.TransactionHandler
	ClaimMiddleware *auth.ClaimMiddleware
}

// RegisterRoutes wires HTTP routes. Protected handlers only run after the
// claim middleware has accepted X-Access-Claim.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	requireClaim := cfg.ClaimMiddleware.Handle

	app.Get("/ping", cfg.Health.Ping)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/person", cfg.Persons.Register)
	app.Post("/person/claim", cfg.Persons.Claim)
	app.Get("/person/:id", cfg.Persons.Show)
	app.Get("/person", requireClaim, cfg.Persons.Me)
	app.Put("/person", requireClaim, cfg.Persons.Update)

	finance := app.Group("/finance", requireClaim)

	objects := finance.Group("/objects")
	objects.Get("", cfg.Objects.List)
	objects.Post("", cfg.Objects.Create)
	objects.Put("/:id", cfg.Objects.Update)
	objects.Delete("/:id", cfg.Objects.Delete)

	trades := finance.Group("/trades")
	trades.Get("", cfg.Trades.List)
	trades.Post("", cfg.Trades.Create)
	trades.Put("/:id", cfg.Trades.Update)
	trades.Delete("/:id", cfg.Trades.Delete)

	transactions := trades.Group("/:trade_id/transactions")
	transactions.Get("", cfg.Transactions.List)
	transactions.Post("", cfg.Transactions.Create)
	transactions.Put("/:id", cfg.Transactions.Update)
	transactions.Delete("/:id", cfg.Transactions.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewRouteNotFound()
	})
}
