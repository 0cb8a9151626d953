package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nqhuy-dev/task-tracker-api/internal/config"
	"github.com/nqhuy-dev/task-tracker-api/internal/database"
	"github.com/nqhuy-dev/task-tracker-api/internal/handlers"
	"github.com/nqhuy-dev/task-tracker-api/internal/middleware"
	"github.com/nqhuy-dev/task-tracker-api/internal/models"
	"github.com/nqhuy-dev/task-tracker-api/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	sessionService := services.NewSessionService(cfg.TokenSecret, time.Duration(cfg.TokenTTLSeconds)*time.Second)
	userService := services.NewUserService(db, cfg.BcryptCost)
	taskService := services.NewTaskService(db)
	genderService := services.NewNamedService(db, func(name string) *models.Gender {
		return &models.Gender{Name: name}
	})
	statusService := services.NewNamedService(db, func(name string) *models.Status {
		return &models.Status{Name: name}
	})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, sessionService)
	taskHandler := handlers.NewTaskHandler(taskService)
	sessionHandler := handlers.NewSessionHandler(sessionService, userService)
	genderHandler := handlers.NewNamedHandler(genderService, "Gender")
	statusHandler := handlers.NewNamedHandler(statusService, "Status")

	// Initialize Gin router
	r := gin.Default()
	r.Use(cors.Default())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	// Register routes
	auth := middleware.RequireToken(cfg.TokenHeader, sessionService)
	genderHandler.RegisterRoutes(r, "gender", auth)
	statusHandler.RegisterRoutes(r, "status", auth)
	taskHandler.RegisterRoutes(r, auth)
	userHandler.RegisterRoutes(r, auth)
	sessionHandler.RegisterRoutes(r)

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
