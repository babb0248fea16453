package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josh-kwaku/card-ledger/api"
	"github.com/josh-kwaku/card-ledger/internal/config"
	"github.com/josh-kwaku/card-ledger/internal/events"
	"github.com/josh-kwaku/card-ledger/internal/handler"
	"github.com/josh-kwaku/card-ledger/internal/logging"
	"github.com/josh-kwaku/card-ledger/internal/middleware"
	"github.com/josh-kwaku/card-ledger/internal/repository"
	"github.com/josh-kwaku/card-ledger/internal/service"
	"github.com/josh-kwaku/card-ledger/migrations"
)

type publisher interface {
	PublishTransactionRecorded(ctx context.Context, event events.TransactionRecorded) error
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("card-ledger", cfg.LogLevel, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := connectDB(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := migrations.Up(ctx, db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied")
	}

	pub, err := newPublisher(cfg)
	if err != nil {
		slog.Error("failed to connect to message broker", "error", err)
		os.Exit(1)
	}
	defer pub.Close()

	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txm := repository.NewTxManager(db)

	accountSvc := service.NewAccountService(accountRepo)
	transactionSvc := service.NewTransactionService(accountRepo, transactionRepo, txm, pub)

	accountHandler := handler.NewAccountHandler(accountSvc)
	transactionHandler := handler.NewTransactionHandler(transactionSvc)
	healthHandler := handler.NewHealthHandler(db)
	healthHandler.AddCheck("schema", func(ctx context.Context) error {
		_, dirty, err := migrations.Version(ctx, db)
		if err != nil {
			return err
		}
		if dirty {
			return errors.New("schema is dirty")
		}
		return nil
	})

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /accounts", accountHandler.Create)
	apiMux.HandleFunc("GET /accounts/{accountId}", accountHandler.Get)
	apiMux.HandleFunc("GET /accounts/{accountId}/transactions", transactionHandler.ListByAccount)
	apiMux.HandleFunc("POST /transactions", transactionHandler.Create)
	apiMux.HandleFunc("GET /transactions/{transactionId}", transactionHandler.Get)

	apiHandler := middleware.Chain(apiMux,
		middleware.Auth(cfg.JWTSecret),
		middleware.Logging,
		middleware.Idempotency(idempotencyRepo, cfg.IdempotencyTTL),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Liveness)
	mux.HandleFunc("GET /health/ready", healthHandler.Readiness)
	mux.HandleFunc("GET /docs", handler.ServeDocs("/docs/openapi.yaml"))
	mux.HandleFunc("GET /docs/openapi.yaml", handler.ServeSpec(api.Spec))
	mux.Handle("/", apiHandler)

	root := middleware.Chain(mux, middleware.Recovery, middleware.Tracing)

	janitorCtx, cancelJanitor := context.WithCancel(context.Background())
	defer cancelJanitor()
	go middleware.CleanIdempotencyCache(janitorCtx, idempotencyRepo, cfg.IdempotencyCleanupInterval)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr,
			"auth_enabled", cfg.AuthEnabled(),
			"events_enabled", cfg.EventsEnabled(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	cancelJanitor()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func connectDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	pool := repository.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifetimeS) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.DBConnMaxIdleTimeS) * time.Second,
	}

	var err error
	for i := range 30 {
		var db *sql.DB
		if db, err = repository.NewPostgresDB(ctx, cfg.DatabaseURL, pool); err == nil {
			return db, nil
		}
		slog.Info("waiting for database", "attempt", i+1)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connectDB: %w", ctx.Err())
		case <-time.After(time.Second):
		}
	}

	return nil, fmt.Errorf("connectDB: gave up after 30 attempts: %w", err)
}

func newPublisher(cfg *config.Config) (publisher, error) {
	if !cfg.EventsEnabled() {
		slog.Info("event publishing disabled")
		return events.NopPublisher{}, nil
	}
	p, err := events.NewAMQPPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	if err != nil {
		return nil, fmt.Errorf("newPublisher: %w", err)
	}
	return p, nil
}
