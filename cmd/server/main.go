// Package main is the entry point for the transfer orchestration service.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/PedroCamargo-dev/transfer-orchestration-service/internal/api"
	"github.com/PedroCamargo-dev/transfer-orchestration-service/internal/config"
	impl_ledger "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/impl/gateway/ledger"
	impl_postgres "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/impl/gateway/persistence/postgres"
	impl_platform "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/impl/gateway/platform"
	impl_messaging "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/impl/messaging"
	impl_transfer "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/impl/usecase/transfer"
	"github.com/PedroCamargo-dev/transfer-orchestration-service/internal/platform/logger"
	"github.com/PedroCamargo-dev/transfer-orchestration-service/migrations"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logr := logger.Setup(cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate(cfg.Database.URL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	uow := impl_postgres.NewUnitOfWork(pool)
	idem := impl_postgres.NewIdempotencyRepository(pool)
	transfers := impl_postgres.NewTransferRepository(pool)
	outbox := impl_postgres.NewOutboxRepository(pool)

	ledgerClient := impl_ledger.NewHTTPClient(cfg.Ledger.BaseURL, &http.Client{Timeout: cfg.Ledger.Timeout})

	usecase := impl_transfer.NewExecuteTransferUsecaseImpl(
		uow,
		idem,
		transfers,
		outbox,
		ledgerClient,
		impl_platform.SystemClock{},
		impl_platform.UUIDGenerator{},
		logr,
	)

	handler := api.NewTransferHandler(usecase, transfers)
	router := api.NewRouter(handler, cfg.Auth.JWTSecret, logr, pool.Ping)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logr.Info("server listening", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logr.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.Events.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Events.RedisAddr})
		defer func() { _ = rdb.Close() }()

		relay := impl_messaging.NewRelay(
			outbox,
			impl_messaging.NewRedisPublisher(rdb),
			cfg.Events.Channel,
			time.Second,
			logr,
		)
		g.Go(func() error { return relay.Run(ctx) })
		logr.Info("outbox relay started", slog.String("channel", cfg.Events.Channel))
	}

	return g.Wait()
}

// migrate applies the embedded goose migrations over a short-lived
// database/sql connection; the pgx pool is opened afterwards.
func migrate(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.Up(db, ".")
}
