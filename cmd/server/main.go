package main

import (
	"log"
	"net/http"

	"github.com/askbob/project-management-api/internal/auth"
	"github.com/askbob/project-management-api/internal/config"
	"github.com/askbob/project-management-api/internal/database"
	apierrors "github.com/askbob/project-management-api/internal/errors"
	"github.com/askbob/project-management-api/internal/handlers"
	"github.com/askbob/project-management-api/internal/logger"
	"github.com/askbob/project-management-api/internal/metrics"
	"github.com/askbob/project-management-api/internal/middleware"
	"github.com/askbob/project-management-api/internal/repository"
	"github.com/askbob/project-management-api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := services.NewAuthService(userRepo, tokens)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService, cfg.Page)
	taskHandler := handlers.NewTaskHandler(taskService, cfg.Page)

	// Router
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(zlog))
	r.Use(metrics.Middleware())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		zlog.Error("panic recovered", zap.Any("panic", recovered))
		apierrors.InternalError(c)
	}))

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) == 1 && cfg.Server.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// Health check endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", metrics.Handler())

	// Auth routes (public)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	requireAuth := middleware.RequireAuth(authService)

	// Project routes (protected)
	projects := r.Group("/projects")
	projects.Use(requireAuth)
	{
		projects.GET("/", projectHandler.ListProjects)
		projects.POST("/", projectHandler.CreateProject)
		projects.PUT("/:id", projectHandler.UpdateProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(requireAuth)
	{
		tasks.GET("/", taskHandler.ListTasks)
		tasks.POST("/", taskHandler.CreateTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "")
	})

	zlog.Info("Server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}
