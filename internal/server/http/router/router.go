package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/threadcart/garmentshop/internal/metrics"
	"github.com/threadcart/garmentshop/internal/server/http/handlers"
	"github.com/threadcart/garmentshop/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.CommerceFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	metrics.Register()

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	trackingHandler := handlers.NewTrackingHandler(facade)

	engine.GET("/healthz", func(c *gin.Context) {
		if err := facade.HealthCheck(c.Request.Context()); err != nil {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.Status(http.StatusOK)
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine.POST("/users/register", authHandler.Register)
	engine.POST("/users/login", authHandler.Login)

	engine.GET("/products", productHandler.List)
	engine.GET("/products/:id", productHandler.Get)

	// Reconciliation is idempotent, so the redirect from the gateway does
	// not need to carry a token.
	engine.PATCH("/payment-success", paymentHandler.Reconcile)

	authed := engine.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/orders", orderHandler.Place)
	authed.GET("/orders", orderHandler.List)
	authed.PATCH("/orders/cancel/:id", orderHandler.Cancel)
	authed.POST("/payment-checkout-session", paymentHandler.CreateSession)
	authed.GET("/trackings/:id", trackingHandler.History)
	authed.GET("/trackings", trackingHandler.History)

	managed := engine.Group("")
	managed.Use(middleware.AuthRequired(facade), middleware.ManagerRequired())
	managed.PATCH("/users/:id/status", authHandler.SetStatus)
	managed.POST("/products", productHandler.Create)
	managed.DELETE("/products/:id", productHandler.Delete)
	managed.PATCH("/orders/:id", orderHandler.UpdateStatus)
	managed.POST("/trackings", trackingHandler.Append)

	return engine
}
