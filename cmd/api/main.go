package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/handler"
	"storefront-api/internal/repository"
	"storefront-api/internal/server"
	"storefront-api/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := client.InitDB(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	paypalClient := client.NewPaypalClient(&cfg.Paypal)
	braintreeClient := client.NewBraintreeClient(&cfg.BrainTree)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	userService := service.NewUserService(userRepo, cfg.Auth, logger)
	categoryService := service.NewCategoryService(categoryRepo)

	productService := service.NewProductService(productRepo, categoryRepo, logger)
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		productService = service.NewCachedProductService(productService, redisClient, cfg.Redis.CacheTTL)
		logger.Info("catalog cache enabled", zap.String("redis_addr", cfg.Redis.Addr))
	}

	cartService := service.NewCartService(db, cartRepo, productRepo, orderRepo, cfg.Pricing, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, webhookEventRepo, paypalClient, braintreeClient, logger)

	handlers := server.Handlers{
		User:     handler.NewUserHandler(userService, cfg.Auth),
		Category: handler.NewCategoryHandler(categoryService),
		Product:  handler.NewProductHandler(productService),
		Cart:     handler.NewCartHandler(cartService),
		Order:    handler.NewOrderHandler(orderService),
		Paypal:   handler.NewPaypalHandler(paypalClient, orderService),
	}

	srv := server.NewServer(handlers, cfg.Auth, userRepo, logger)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logger.Info("starting http server", zap.String("addr", serverAddr))

	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("http server shutdown error", zap.Error(err))
	}
}
