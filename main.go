package main

import (
	"log"

	"riddlevault/config"
	"riddlevault/handlers"
	"riddlevault/middleware"
	"riddlevault/models"
	"riddlevault/routes"
	"riddlevault/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.RiddleCollection{},
		&models.Riddle{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)
	sessions := services.NewRedisSessionStore(redisClient)

	// Initialize services
	authService := services.NewAuthService(db, sessions, cfg.JWTSecret)
	collectionService := services.NewCollectionService(db)
	riddleService := services.NewRiddleService(db)

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	collectionHandler := handlers.NewCollectionHandler(collectionService, hub)
	riddleHandler := handlers.NewRiddleHandler(riddleService, hub)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, collectionHandler, riddleHandler, hub, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
