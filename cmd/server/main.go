package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dukatech/netstore-backend/config"
	"github.com/dukatech/netstore-backend/internal/app/controller"
	"github.com/dukatech/netstore-backend/internal/app/repository"
	"github.com/dukatech/netstore-backend/internal/app/service"
	"github.com/dukatech/netstore-backend/internal/middleware"
	"github.com/dukatech/netstore-backend/internal/router"
	"github.com/dukatech/netstore-backend/internal/scheduler"
	"github.com/dukatech/netstore-backend/internal/websocket"
	"github.com/dukatech/netstore-backend/pkg/identity"
	"github.com/dukatech/netstore-backend/pkg/logger"
	"github.com/dukatech/netstore-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting NETSTORE Backend Server", map[string]interface{}{
		"environment":  cfg.Server.Environment,
		"port":         cfg.Server.Port,
		"log_level":    logLevel,
		"cart_backend": cfg.Cart.StorageBackend,
	})

	// Initialize catalog
	catalogRepo, err := repository.NewFileCatalogRepository(cfg.Catalog.FilePath)
	if err != nil {
		logger.Fatal("Failed to load catalog", err, map[string]interface{}{
			"path": cfg.Catalog.FilePath,
		})
	}

	// Initialize session storage
	var cartRepo repository.CartRepository
	var wishlistRepo repository.WishlistRepository
	if cfg.Cart.StorageBackend == "redis" {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()

		cartRepo = repository.NewRedisCartRepository(redis.GetClient(), cfg.Cart.KeyPrefix, cfg.Cart.TTL)
		wishlistRepo = repository.NewRedisWishlistRepository(redis.GetClient(), "wishlist", cfg.Cart.TTL)
	} else {
		cartRepo = repository.NewMemoryCartRepository()
		wishlistRepo = repository.NewMemoryWishlistRepository()
	}

	// Identity provider client for admin checks
	identityClient, err := identity.NewClient(identity.Config{
		BaseURL: cfg.Identity.BaseURL,
		APIKey:  cfg.Identity.APIKey,
		Timeout: cfg.Identity.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to configure identity provider client", err)
	}

	// Cart event stream
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	cartService := service.NewCartService(cartRepo, catalogRepo, hub, cfg.Checkout.URL)
	catalogService := service.NewCatalogService(catalogRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, catalogRepo)
	accountService := service.NewAccountService(identityClient)

	// Initialize controllers
	catalogController := controller.NewCatalogController(catalogService, wishlistService)
	cartController := controller.NewCartController(cartService, catalogService)
	wishlistController := controller.NewWishlistController(wishlistService)
	accountController := controller.NewAccountController(accountService)
	streamController := controller.NewStreamController(hub)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Session.CookieName, int(cfg.Session.TTL.Seconds()))
	authMiddleware := middleware.NewAuthMiddleware(cfg.Session.JWTSecret, identityClient)

	// Periodic catalog reload
	catalogScheduler := scheduler.NewCatalogScheduler(catalogRepo, cfg.Catalog.ReloadCron)
	if err := catalogScheduler.Start(); err != nil {
		logger.Fatal("Failed to start catalog scheduler", err)
	}
	defer catalogScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		catalogController,
		cartController,
		wishlistController,
		accountController,
		streamController,
		sessionMiddleware,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
