package router

import (
	"net/http"

	adminhandlers "github.com/vitrine-shop/vitrine/internal/http/handlers/admin"
	"github.com/vitrine-shop/vitrine/internal/http/handlers/public"
	"github.com/vitrine-shop/vitrine/internal/logger"
	"github.com/vitrine-shop/vitrine/internal/metrics"
	"github.com/vitrine-shop/vitrine/internal/provider"

	"github.com/gin-gonic/gin"
)

// New 构建 HTTP 路由
func New(c *provider.Container) *gin.Engine {
	cfg := c.Config
	gin.SetMode(ginMode(cfg.Server.Mode))

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		LoggerMiddleware(logger.Z()),
		CORSMiddleware(cfg.CORS),
		metrics.Middleware(),
	)

	engine.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", metrics.Handler())

	publicHandler := public.NewHandler(c)
	adminHandler := adminhandlers.NewHandler(c)

	apiV1 := engine.Group("/api/v1")
	{
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:slug", publicHandler.GetProduct)
		apiV1.GET("/products/:slug/reviews", publicHandler.ListReviews)
		apiV1.GET("/brands", publicHandler.ListBrands)
		apiV1.GET("/categories", publicHandler.ListCategories)

		apiV1.POST("/payments/webhook", publicHandler.PaymentWebhook)

		authed := apiV1.Group("")
		authed.Use(UserJWTMiddleware(cfg.JWT.UserSecret))
		{
			authed.GET("/cart", publicHandler.GetCart)
			authed.POST("/cart/items", publicHandler.AddCartItem)
			authed.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			authed.DELETE("/cart/items/:id", publicHandler.RemoveCartItem)
			authed.DELETE("/cart", publicHandler.ClearCart)

			authed.POST("/checkout", publicHandler.Checkout)
			authed.GET("/orders", publicHandler.ListOrders)
			authed.GET("/orders/:id", publicHandler.GetOrder)
			authed.POST("/orders/:id/cancel", publicHandler.CancelOrder)

			authed.POST("/products/:slug/reviews", publicHandler.CreateReview)
		}

		admin := apiV1.Group("/admin")
		admin.Use(
			AdminJWTMiddleware(cfg.JWT.AdminSecret, c.AdminRepo),
			AdminAuthzMiddleware(c.AuthzService),
		)
		{
			admin.GET("/products", adminHandler.ListProducts)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.POST("/products/:id/variants", adminHandler.CreateVariant)
			admin.PUT("/variants/:id", adminHandler.UpdateVariant)
			admin.DELETE("/variants/:id", adminHandler.DeleteVariant)

			admin.GET("/brands", adminHandler.ListBrands)
			admin.POST("/brands", adminHandler.CreateBrand)
			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.DELETE("/reviews/:id", adminHandler.DeleteReview)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
			admin.DELETE("/orders/:id", adminHandler.DeleteOrder)
		}
	}

	return engine
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
