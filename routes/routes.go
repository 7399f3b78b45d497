package routes

import (
	"log"
	"net/http"

	"riddlevault/handlers"
	"riddlevault/middleware"
	"riddlevault/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	collectionHandler *handlers.CollectionHandler,
	riddleHandler *handlers.RiddleHandler,
	hub *services.Hub,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// User profile
			protected.GET("/auth/profile", authHandler.GetProfile)

			// Collection routes
			collections := protected.Group("/collections")
			{
				collections.GET("", collectionHandler.ListMyCollections)
				collections.POST("", collectionHandler.CreateCollection)
				collections.GET("/:id", collectionHandler.GetCollection)
				collections.PUT("/:id", collectionHandler.UpdateCollection)
				collections.DELETE("/:id", collectionHandler.DeleteCollection)
			}

			// Riddle routes
			riddles := protected.Group("/riddles")
			{
				riddles.GET("", riddleHandler.ListMyRiddles)
				riddles.POST("", riddleHandler.CreateRiddle)
				riddles.GET("/:id", riddleHandler.GetRiddle)
				riddles.PUT("/:id", riddleHandler.UpdateRiddle)
				riddles.DELETE("/:id", riddleHandler.DeleteRiddle)
			}
		}
	}

	// WebSocket endpoint for realtime sync between a user's sessions.
	// Browsers cannot set headers on websocket dials, so the access token
	// arrives as a query parameter instead.
	router.GET("/ws", func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "error": "Missing token"})
			return
		}

		userID, err := middleware.UserIDFromToken(token, jwtSecret)
		if err != nil {
			log.Printf("WebSocket token validation failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "error": "Invalid or expired token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for user %s: %v", userID, err)
			return
		}

		hub.RegisterClient(conn, userID)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
