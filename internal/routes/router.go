package routes

import (
	"context"
	"net/http"
	"time"

	"dailypay-backend/internal/auth"
	"dailypay-backend/internal/config"
	"dailypay-backend/internal/delivery/http/handler"
	"dailypay-backend/internal/domain/history"
	"dailypay-backend/internal/domain/order"
	"dailypay-backend/internal/domain/product"
	"dailypay-backend/internal/domain/seller"
	"dailypay-backend/internal/domain/transaction"
	"dailypay-backend/internal/domain/user"
	"dailypay-backend/internal/logger"
	"dailypay-backend/internal/mailer"
	"dailypay-backend/internal/middleware"
	"dailypay-backend/internal/storage"
	adminUsecase "dailypay-backend/internal/usecase/admin"
	orderUsecase "dailypay-backend/internal/usecase/order"
	productUsecase "dailypay-backend/internal/usecase/product"
	sellerUsecase "dailypay-backend/internal/usecase/seller"
	uploadUsecase "dailypay-backend/internal/usecase/upload"
	userUsecase "dailypay-backend/internal/usecase/user"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

const uploadsPath = "/uploads"

// Dependencies are the collaborators the HTTP surface is built from.
type Dependencies struct {
	Config *config.Config

	Users        user.Repository
	Sellers      seller.Repository
	Products     product.Repository
	Orders       order.Repository
	Transactions transaction.Repository
	History      history.Repository // nil disables seller history

	Mailer mailer.Mailer
	Files  storage.FileStore
	// Limiter defaults to the in-process per-IP limiter from config.
	Limiter      middleware.Limiter
	HealthChecks map[string]handler.Pinger
	Now          func() time.Time
}

// SetupRoutes builds the engine. ctx bounds background work such as the
// in-process limiter's sweeper.
func SetupRoutes(ctx context.Context, deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(ctx, cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst)
	}
	development := cfg.IsDevelopment()

	router := gin.New()
	metrics := middleware.NewMetrics()

	router.Use(middleware.Recovery(development))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(metrics.Middleware())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(middleware.ErrorHandler(development))
	router.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxBodySize))

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, auth.WithClock(now))
	resets := auth.NewResetTokens(cfg.Auth.ResetTokenTTL, now)

	userService := userUsecase.NewService(deps.Users, hasher, tokens, resets, deps.Mailer, cfg)
	sellerService := sellerUsecase.NewService(sellerUsecase.Repositories{
		Sellers:      deps.Sellers,
		Products:     deps.Products,
		Orders:       deps.Orders,
		Transactions: deps.Transactions,
		History:      deps.History,
	}, hasher, tokens, resets, deps.Mailer, cfg)
	productService := productUsecase.NewService(deps.Products)
	orderService := orderUsecase.NewService(deps.Orders, deps.Products, deps.Transactions, deps.History, cfg)
	adminService := adminUsecase.NewService(deps.Users, deps.Sellers, deps.Transactions)
	uploadService := uploadUsecase.NewService(deps.Files, cfg.Upload.MaxBytes, now)

	authHandler := handler.NewAuthHandler(userService, cfg.Auth.CookieName, cfg.IsProduction())
	sellerHandler := handler.NewSellerHandler(sellerService, cfg.Upload.MaxBytes)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	adminHandler := handler.NewAdminHandler(adminService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	router.GET("/", healthHandler.Banner)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", metrics.Handler())
	if disk, ok := deps.Files.(*storage.DiskStore); ok {
		router.Static(uploadsPath, disk.Dir())
	}

	api := router.Group("/api")
	api.Use(middleware.RateLimitMiddleware(limiter))
	{
		authHandler.RegisterRoutes(api)
		sellerHandler.RegisterRoutes(api)
		productHandler.RegisterRoutes(api)

		if cfg.Admin.BootstrapEmail != "" {
			authHandler.RegisterBootstrapRoute(api)
		}

		session := api.Group("")
		session.Use(middleware.AuthMiddleware(tokens, cfg.Auth.CookieName))
		{
			authHandler.RegisterSessionRoutes(session)
			uploadHandler.RegisterRoutes(session)

			shopper := session.Group("")
			shopper.Use(middleware.ShopperOnly())
			orderHandler.RegisterRoutes(shopper)

			shop := session.Group("")
			shop.Use(middleware.SellerOnly())
			sellerHandler.RegisterAccountRoutes(shop)
		}

		gated := api.Group("")
		gated.Use(middleware.AdminSecretMiddleware(cfg.Admin.Secret))
		{
			adminHandler.RegisterRoutes(gated)
			sellerHandler.RegisterAdminRoutes(gated)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	logger.Info("All routes initialized")
	return router
}
