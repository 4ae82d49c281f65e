package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dailypay-backend/internal/config"
	"dailypay-backend/internal/delivery/http/handler"
	"dailypay-backend/internal/infrastructure/database/memory"
	"dailypay-backend/internal/infrastructure/database/postgres"
	"dailypay-backend/internal/logger"
	"dailypay-backend/internal/mailer"
	"dailypay-backend/internal/middleware"
	"dailypay-backend/internal/routes"
	"dailypay-backend/internal/storage"
	"dailypay-backend/internal/usecase/user"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env, cfg.Server.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("upload_driver", cfg.Upload.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := routes.Dependencies{
		Config:       cfg,
		Mailer:       mailer.New(cfg.SMTP),
		HealthChecks: map[string]handler.Pinger{},
	}

	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("Using the in-memory store, data is lost on restart")
		store := memory.NewStore()
		deps.Users = store.Users()
		deps.Sellers = store.Sellers()
		deps.Products = store.Products()
		deps.Orders = store.Orders()
		deps.Transactions = store.Transactions()
		if cfg.History.Enabled {
			deps.History = store.History()
		}
	default:
		db, err := postgres.NewDB(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", zap.Error(err))
			}
		}()
		deps.Users = postgres.NewUserRepository(db)
		deps.Sellers = postgres.NewSellerRepository(db)
		deps.Products = postgres.NewProductRepository(db)
		deps.Orders = postgres.NewOrderRepository(db)
		deps.Transactions = postgres.NewTransactionRepository(db)
		if cfg.History.Enabled {
			deps.History = postgres.NewHistoryRepository(db)
		}
		deps.HealthChecks["database"] = handler.PingFunc(db.Health)
	}

	if cfg.RateLimit.RedisURL != "" {
		client, err := newRedisClient(ctx, cfg.RateLimit.RedisURL)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		deps.Limiter = middleware.NewRedisLimiter(client, cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)
		deps.HealthChecks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	files, err := storage.New(ctx, cfg.Upload)
	if err != nil {
		logger.Fatal("Failed to initialize upload storage", zap.Error(err))
	}
	deps.Files = files

	cleanup, err := user.NewTokenCleanupJob(ctx, cfg.Jobs.ResetTokenCleanupSchedule, time.Now, deps.Users, deps.Sellers)
	if err != nil {
		logger.Fatal("Failed to schedule reset token cleanup", zap.Error(err))
	}
	cleanup.Start()
	defer func() { <-cleanup.Stop().Done() }()

	router := routes.SetupRoutes(ctx, deps)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		logger.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
		return
	}

	logger.Info("Server exited properly")
}

func newRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
