package router

import (
	"github.com/gin-gonic/gin"
	"github.com/kdas/shopkart-backend/config"
	"github.com/kdas/shopkart-backend/internal/app/controller"
	"github.com/kdas/shopkart-backend/internal/middleware"
)

type Router struct {
	productController *controller.ProductController
	reviewController  *controller.ReviewController
	orderController   *controller.OrderController
	uploadController  *controller.UploadController
	adminMiddleware   *middleware.AdminMiddleware
	config            *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	reviewController *controller.ReviewController,
	orderController *controller.OrderController,
	uploadController *controller.UploadController,
	adminMiddleware *middleware.AdminMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		productController: productController,
		reviewController:  reviewController,
		orderController:   orderController,
		uploadController:  uploadController,
		adminMiddleware:   adminMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Shopkart API is running",
		})
	})

	api := router.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/:id", r.productController.GetProduct)
			products.GET("/:id/comments", r.reviewController.GetComments)
			products.POST("/:id/reviews", r.reviewController.SubmitReview)
			products.POST("/:id/comments", r.reviewController.AddComment)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", r.orderController.Checkout)
			orders.GET("/:orderId", r.orderController.GetOrder)
		}

		admin := api.Group("/admin", r.adminMiddleware.Require())
		{
			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)
			admin.POST("/products/:id/recompute-rating", r.productController.RecomputeRating)
			admin.GET("/orders", r.orderController.GetOrders)
			admin.GET("/orders/export", r.orderController.ExportOrders)
			admin.POST("/upload", r.uploadController.UploadImage)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Admin-Secret, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
