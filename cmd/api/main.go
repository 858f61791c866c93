package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/harmony-ledger/harmony/internal/api/http"
	"github.com/harmony-ledger/harmony/internal/api/http/handlers"
	"github.com/harmony-ledger/harmony/internal/auth"
	"github.com/harmony-ledger/harmony/internal/clock"
	"github.com/harmony-ledger/harmony/internal/config"
	"github.com/harmony-ledger/harmony/internal/events"
	"github.com/harmony-ledger/harmony/internal/observability"
	"github.com/harmony-ledger/harmony/internal/persistence"
	"github.com/harmony-ledger/harmony/internal/repository"
	"github.com/harmony-ledger/harmony/internal/service"
	"github.com/harmony-ledger/harmony/internal/validator"
	"github.com/harmony-ledger/harmony/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cipher, err := auth.NewCipher(cfg.Claim)
	if err != nil {
		logger.Fatal("failed to init claim cipher", zap.Error(err))
	}
	systemClock := clock.New()
	claims := auth.NewClaimManager(cipher, systemClock)
	logger.Info("claim cipher ready", zap.String("nonce_mode", string(cfg.Claim.NonceMode)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis, err := persistence.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unreachable, audit stream appends will fail until it recovers",
			zap.String("stream", cfg.Audit.Stream), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("stream", cfg.Audit.Stream))
	}
	defer redis.Close()

	v, err := validator.New()
	if err != nil {
		logger.Fatal("failed to init validator", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, redis.Client, cfg.Audit))

	pool := pg.PoolHandle()
	personRepo := repository.NewPersonRepository(pool)
	objectRepo := repository.NewObjectRepository(pool)
	tradeRepo := repository.NewTradeRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)

	personService := service.NewPersonService(service.PersonDependencies{
		PersonRepo: personRepo,
		Claims:     claims,
		BcryptCost: cfg.Auth.BcryptCost,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	objectService := service.NewObjectService(service.ObjectDependencies{
		ObjectRepo: objectRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	tradeService := service.NewTradeService(service.TradeDependencies{
		TradeRepo:  tradeRepo,
		ObjectRepo: objectRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	transactionService := service.NewTransactionService(service.TransactionDependencies{
		TransactionRepo: transactionRepo,
		TradeRepo:       tradeRepo,
		Clock:           systemClock,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, systemClock),
		Persons:         handlers.NewPersonHandler(personService),
		Objects:         handlers.NewObjectHandler(objectService, v),
		Trades:          handlers.NewTradeHandler(tradeService, v),
		Transactions:    handlers.NewTransactionHandler(transactionService, v),
		ClaimMiddleware: auth.NewClaimMiddleware(claims),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
