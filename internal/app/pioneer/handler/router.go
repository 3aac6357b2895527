package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/pkg/logger"
	"productpioneer/pkg/metrics"
)

// Handlers собирает все HTTP обработчики сервиса для регистрации маршрутов
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Product *ProductHandler
	Review  *ReviewHandler
	Coupon  *CouponHandler
	Payment *PaymentHandler
	Stats   *StatsHandler
}

func SetupRoutes(h *Handlers, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("product-pioneer"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Product Pioneer is working")
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "product-pioneer",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Выдача токена: identity заявляется клиентом, без проверки пароля
	router.POST("/jwt", h.Auth.IssueToken)

	// Регистрация идемпотентна и открыта; только листинг
	// пользователей требует админа
	router.POST("/users", h.User.CreateUser)
	router.GET("/users", authMiddleware.Authenticate(), authMiddleware.RequireRole(entity.RoleAdmin), h.User.GetAllUsers)
	router.GET("/user/:email", authMiddleware.Authenticate(), h.User.GetUser)
	router.PATCH("/users/update/:email", h.User.UpdateRole)
	router.PATCH("/users/update-membership/:email", h.User.UpdateMembership)
	router.DELETE("/users/:email", h.User.DeleteUser)

	// Публичные витрины продуктов
	router.GET("/product/:id", h.Product.GetProduct)
	router.GET("/featured", h.Product.GetFeatured)
	router.GET("/trending", h.Product.GetTrending)
	router.GET("/all-products", h.Product.Search)
	router.GET("/products-count", h.Product.Count)

	// Добавление и личный список защищены токеном, владелец
	// всегда определяется по identity из него
	router.POST("/products", authMiddleware.Authenticate(), h.Product.CreateProduct)
	router.GET("/products/:email", authMiddleware.Authenticate(), h.Product.GetOwnProducts)
	router.PATCH("/products/:id", h.Product.UpdateProduct)
	router.DELETE("/products/:id", h.Product.DeleteProduct)

	// Очередь модерации и решения модератора
	router.GET("/products", h.Product.GetAllRanked)
	router.PATCH("/products/update-status/:id", h.Product.UpdateStatus)
	router.PATCH("/products/make-featured/:id", h.Product.MakeFeatured)
	router.GET("/reported-products", h.Product.GetReported)

	router.PATCH("/products/increase-vote/:id", h.Product.Vote)
	router.PATCH("/products/report/:id", h.Product.Report)

	router.POST("/reviews", h.Review.CreateReview)
	router.GET("/reviews/:id", h.Review.GetReviewsByProduct)

	router.POST("/coupons", authMiddleware.Authenticate(), h.Coupon.CreateCoupon)
	router.GET("/coupons", h.Coupon.GetAllCoupons)
	router.PATCH("/coupons/:id", authMiddleware.Authenticate(), h.Coupon.UpdateCoupon)
	router.DELETE("/coupons/:id", h.Coupon.DeleteCoupon)
	router.GET("/coupons/discount/:code", h.Coupon.GetDiscount)

	router.GET("/statistics", authMiddleware.Authenticate(), authMiddleware.RequireRole(entity.RoleAdmin), h.Stats.GetStatistics)

	router.POST("/create-payment-intent", authMiddleware.Authenticate(), h.Payment.CreatePaymentIntent)

	return router
}
