package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/medetk/volunteerhub/backend/internal/handlers"
	"github.com/medetk/volunteerhub/backend/internal/middleware"
	"github.com/medetk/volunteerhub/backend/internal/models"
	"github.com/medetk/volunteerhub/backend/internal/notifications"
	"github.com/medetk/volunteerhub/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Review{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := mgClient.Database("volunteerhub")
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	reviewRepo := repositories.NewPostgresReviewRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	projectRepo := repositories.NewMongoProjectRepository(mongoDB)
	questionRepo := repositories.NewMongoQuestionRepository(mongoDB)

	dispatcher := notifications.NewDispatcher(notificationRepo, userRepo)

	// --- Public routes ---
	public := e.Group("/api/v1")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(public)
	log.Println("Auth routes configured.")

	projectHandler := handlers.NewProjectHandler(projectRepo, reviewRepo, questionRepo, userRepo, dispatcher)
	projectHandler.RegisterPublicRoutes(public)
	log.Println("Project feed routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	reviewHandler := handlers.NewReviewHandler(reviewRepo, projectRepo, userRepo, dispatcher)
	reviewHandler.RegisterReviewRoutes(api)
	log.Println("Review routes configured.")

	questionHandler := handlers.NewQuestionHandler(questionRepo, projectRepo, userRepo, dispatcher)
	questionHandler.RegisterQuestionRoutes(api)
	log.Println("Question routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// --- Admin routes (role checked per handler) ---
	admin := api.Group("/admin")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterAdminRoutes(admin)
	projectHandler.RegisterAdminRoutes(admin)
	reviewHandler.RegisterAdminRoutes(admin)
	questionHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}
