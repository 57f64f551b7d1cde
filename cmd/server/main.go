package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/taskscope/internal/handlers"
	"github.com/alimgiray/taskscope/internal/middleware"
	"github.com/alimgiray/taskscope/internal/repositories"
	"github.com/alimgiray/taskscope/internal/services"
	"github.com/alimgiray/taskscope/pkg/config"
	"github.com/alimgiray/taskscope/pkg/database"
	"github.com/alimgiray/taskscope/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	logger.Init()

	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize database
	if err := database.Init(config.AppConfig.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	userRepo := repositories.NewUserRepository(database.DB)
	projectRepo := repositories.NewProjectRepository(database.DB)
	taskRepo := repositories.NewTaskRepository(database.DB)

	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)

	// Initialize router
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.SessionMiddleware())

	// Setup routes
	setupRoutes(router, userService, projectService, taskService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

func setupRoutes(router *gin.Engine, userService *services.UserService, projectService *services.ProjectService, taskService *services.TaskService) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	exportHandler := handlers.NewExportHandler(projectService, taskService)
	healthHandler := handlers.NewHealthHandler()

	// Session routes
	router.POST("/auth/session", authHandler.CreateSession)
	router.GET("/auth/logout", authHandler.Logout)

	// Protected routes
	projects := router.Group("/projects")
	projects.Use(middleware.AuthRequired())
	{
		projects.GET("/", projectHandler.ListProjects)
		projects.POST("/", projectHandler.CreateProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
		projects.GET("/:id/export", exportHandler.ExportProjectTasks)
	}

	tasks := router.Group("/tasks")
	tasks.Use(middleware.AuthRequired())
	{
		tasks.GET("/", taskHandler.ListTasks)
		tasks.POST("/", taskHandler.CreateTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
