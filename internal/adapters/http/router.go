package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecomstack/product-service/internal/adapters/config"
	"github.com/ecomstack/product-service/internal/adapters/http/controllers"
	"github.com/ecomstack/product-service/internal/adapters/http/middleware"
)

type Router struct {
	healthController  *controllers.HealthController
	productController *controllers.ProductController
	rateLimiter       middleware.RateLimiter
}

func NewRouter(
	healthController *controllers.HealthController,
	productController *controllers.ProductController,
	rateLimiter middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:  healthController,
		productController: productController,
		rateLimiter:       rateLimiter,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	rl := r.rateLimiter

	apiGroup := router.Group("/api")
	{
		apiGroup.Use(middleware.LogRequest())
		apiGroup.GET("/health", r.healthController.Health)

		apiGroup.GET("/products", r.productController.GetAllProducts)
		apiGroup.GET("/products/:id", r.productController.GetProductByID)
		apiGroup.GET("/products/category/:category", r.productController.GetProductsByCategory)
		apiGroup.POST("/products", middleware.RateLimit(rl, 30, 1*time.Minute), r.productController.CreateProduct)
		apiGroup.PUT("/products/:id", middleware.RateLimit(rl, 30, 1*time.Minute), r.productController.UpdateProduct)
		apiGroup.DELETE("/products/:id", middleware.RateLimit(rl, 30, 1*time.Minute), r.productController.DeleteProduct)
	}
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	engine := gin.Default()
	r.SetupRoutes(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
