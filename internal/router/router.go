package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dukatech/netstore-backend/config"
	"github.com/dukatech/netstore-backend/internal/app/controller"
	"github.com/dukatech/netstore-backend/internal/middleware"
)

type Router struct {
	catalogController  *controller.CatalogController
	cartController     *controller.CartController
	wishlistController *controller.WishlistController
	accountController  *controller.AccountController
	streamController   *controller.StreamController
	sessionMiddleware  *middleware.SessionMiddleware
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	wishlistController *controller.WishlistController,
	accountController *controller.AccountController,
	streamController *controller.StreamController,
	sessionMiddleware *middleware.SessionMiddleware,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		catalogController:  catalogController,
		cartController:     cartController,
		wishlistController: wishlistController,
		accountController:  accountController,
		streamController:   streamController,
		sessionMiddleware:  sessionMiddleware,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	router.Use(r.sessionMiddleware.Identify())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "NETSTORE API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.Use(r.authMiddleware.OptionalAuthenticate())
		{
			products.GET("", r.catalogController.ListProducts)
			products.GET("/filters", r.catalogController.GetFilters)
			products.GET("/:id", r.catalogController.GetProduct)
			products.GET("/:id/selection", r.catalogController.GetSelection)
			products.POST("/:id/selection/increase", r.catalogController.IncreaseSelection)
			products.POST("/:id/selection/decrease", r.catalogController.DecreaseSelection)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.DELETE("", r.cartController.ClearCart)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.POST("/:id/increase", r.cartController.IncreaseQuantity)
			cart.POST("/:id/decrease", r.cartController.DecreaseQuantity)
			cart.POST("/drawer/open", r.cartController.OpenDrawer)
			cart.POST("/drawer/close", r.cartController.CloseDrawer)
			cart.POST("/checkout", r.cartController.Checkout)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(r.authMiddleware.OptionalAuthenticate())
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("/toggle", r.wishlistController.ToggleWishlist)
		}

		account := v1.Group("/account")
		account.Use(r.authMiddleware.Authenticate())
		{
			account.GET("/route", r.accountController.GetRoute)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
		{
			admin.GET("/summary", r.accountController.GetAdminSummary)
		}

		v1.GET("/ws/cart", r.streamController.CartStream)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
