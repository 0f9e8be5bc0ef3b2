package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-otp-signup/internal/config"
	"github.com/go-otp-signup/internal/domain"
	"github.com/go-otp-signup/internal/infrastructure/dynamo"
	"github.com/go-otp-signup/internal/infrastructure/memory"
	mongoinfra "github.com/go-otp-signup/internal/infrastructure/mongo"
	redisinfra "github.com/go-otp-signup/internal/infrastructure/redis"
	"github.com/go-otp-signup/internal/infrastructure/smtp"
	"github.com/go-otp-signup/internal/pkg/clock"
	"github.com/go-otp-signup/internal/pkg/keylock"
	transporthttp "github.com/go-otp-signup/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg)
	if envErr != nil {
		slog.Info("no .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	accounts, closeAccounts, err := newAccountStore(ctx, cfg)
	if err != nil {
		slog.Error("account store unavailable", "backend", cfg.AccountStore, "err", err)
		os.Exit(1)
	}
	defer closeAccounts()

	clk := clock.New()
	pending, err := newPendingStore(ctx, cfg, clk)
	if err != nil {
		slog.Error("pending store unavailable", "backend", cfg.PendingStore, "err", err)
		os.Exit(1)
	}

	deps := &transporthttp.Deps{
		PendingStore: pending,
		AccountStore: accounts,
		EmailSender:  smtp.NewOTPSender(smtp.NewMailer(cfg), domain.OTPValidity),
		Clock:        clk,
		Locks:        keylock.New(),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv,
			"account_store", cfg.AccountStore, "pending_store", cfg.PendingStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "err", err)
		return
	}
	slog.Info("server stopped")
}

func setupLogger(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.AppEnv == "development" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

// newAccountStore connects the configured account backend. The returned
// func releases its connection.
func newAccountStore(ctx context.Context, cfg *config.Config) (domain.AccountStore, func(), error) {
	switch cfg.AccountStore {
	case config.AccountStoreMongo:
		client, db, err := mongoinfra.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				slog.Warn("mongo disconnect failed", "err", err)
			}
		}
		repo := mongoinfra.NewAccountRepo(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			disconnect()
			return nil, nil, err
		}
		return repo, disconnect, nil
	case config.AccountStoreDynamo:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		// Creates the tables if they don't exist.
		dynamo.Bootstrap(ctx, client, cfg.DynamoTables)
		return dynamo.NewAccountRepo(client, cfg.DynamoTables), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown account store %q", cfg.AccountStore)
	}
}

func newPendingStore(ctx context.Context, cfg *config.Config, clk clock.Clock) (domain.PendingStore, error) {
	switch cfg.PendingStore {
	case config.PendingStoreRedis:
		client := redisinfra.NewClient(cfg)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return redisinfra.NewPendingStore(client, cfg.PendingRetention, clk.Now), nil
	case config.PendingStoreMemory:
		store := memory.NewPendingStore()
		if cfg.PendingSweepInterval > 0 {
			go store.RunSweeper(ctx, cfg.PendingSweepInterval, cfg.PendingRetention, clk.Now)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown pending store %q", cfg.PendingStore)
	}
}
