package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/coachbook/internal/container"
	"github.com/joshua-takyi/coachbook/internal/handlers"
	"github.com/joshua-takyi/coachbook/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(200, gin.H{
				"status":  "OK",
				"service": "coachbook-api",
			})
		})

		// public routes
		v1.POST("/bookings/customer-confirm", handlers.CustomerConfirm(c.BookingService))
		v1.POST("/employers", handlers.CreateEmployer(c.EmployerService))
		v1.GET("/employers/:id/credentials", handlers.EmployerCredentials(c.EmployerService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(c.TokenValidator, c.Logger))

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.PATCH("/confirm", handlers.ConfirmBooking(c.BookingService))
	}

	userRoutes := protected.Group("/users")
	{
		userRoutes.PATCH("/:id", handlers.UpdateUser(c.UserService))
		userRoutes.DELETE("/:id", handlers.DeleteUser(c.UserService))
	}

	return r
}
