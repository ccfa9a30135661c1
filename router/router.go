package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/cafe-app/controllers"
	"github.com/yeremiapane/cafe-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// 50 requests per second per IP across the whole API
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	login := r.Group("/auth")
	login.Use(middlewares.NewStrictRateLimiter())
	{
		login.POST("/login", userCtrl.Login)
	}

	// Menu browsing needs no account
	r.GET("/menu", menuCtrl.GetAllMenuItems)
	r.GET("/menu/:item_id", menuCtrl.GetMenuItemByID)

	// Placing an order is open to guests; a token attributes it
	r.POST("/orders", middlewares.OptionalAuthMiddleware(), orderCtrl.CreateOrder)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/auth/profile", userCtrl.GetProfile)
		auth.GET("/orders", orderCtrl.ListOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.POST("/auth/register", userCtrl.Register)
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.DELETE("/users/:user_id", userCtrl.DeleteUser)

		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PUT("/menu/:item_id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:item_id", menuCtrl.DeleteMenuItem)

		admin.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	}

	return r
}
