package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecomstack/product-service/internal/adapters/config"
	"github.com/ecomstack/product-service/internal/adapters/http"
	"github.com/ecomstack/product-service/internal/adapters/http/controllers"
	"github.com/ecomstack/product-service/internal/adapters/mongo"
	"github.com/ecomstack/product-service/internal/adapters/mongo/repository"
	"github.com/ecomstack/product-service/internal/adapters/rabbitmq"
	"github.com/ecomstack/product-service/internal/adapters/redis"
	"github.com/ecomstack/product-service/internal/core/logger"
	"github.com/ecomstack/product-service/internal/core/service"
)

// @title       Product Catalog API
// @version     1.0
// @description CRUD API for the product catalog with lifecycle event publishing

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	if err := logger.Initialize(cfg.Logger.Endpoint, cfg.Logger.ServiceName, cfg.Logger.IsProduction); err != nil {
		// logger not available yet, fall back to stderr
		fmt.Println("failed to initialize logger: " + err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database connection
	mongoClient, err := mongo.NewConnection(cfg.Mongo)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to MongoDB", err, nil)
	}
	defer mongo.Disconnect(mongoClient)
	logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

	// initialize redis connection
	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to Redis", err, nil)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Connected to Redis", nil)

	// initialize rabbitmq connection
	broker, err := rabbitmq.NewRabbitMQAdapter(cfg.RabbitMQ)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
	}
	defer broker.Close()
	logger.Info(ctx, "Connected to RabbitMQ", map[string]any{"exchange": cfg.RabbitMQ.Exchange.Name})

	// repository and indexes
	database := mongoClient.Database(cfg.Mongo.Database)
	productRepository := repository.NewProductRepository(database)
	if err := productRepository.EnsureIndexes(ctx); err != nil {
		logger.Fatal(ctx, "Failed to create product indexes", err, nil)
	}

	// rate limiter
	rateLimiter := redis.NewRateLimiter(redisClient)

	// services
	eventPublisher := service.NewEventPublisher(broker, cfg.RabbitMQ.SendTimeout)
	productService := service.NewProductService(productRepository, eventPublisher)

	// controllers
	productController := controllers.NewProductController(productService)
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		{Name: "mongodb", Check: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx) }},
		{Name: "rabbitmq", Check: func(ctx context.Context) error { return broker.HealthCheck() }},
	})

	// router
	router := http.NewRouter(healthController, productController, rateLimiter)

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]any{"signal": sig.String()})
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := logger.Shutdown(shutdownCtx); err != nil {
			fmt.Println("logger shutdown error: " + err.Error())
		}
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	err = router.ListenAndServe(ctx, cfg.HTTP)
	if err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}
}
