// @title           Smeta Backend API
// @version         1.0.0
// @description     Backend API for a construction estimate workspace. It keeps estimates, projects, finances and inventory, renders estimate documents as PDF and ingests photo reports with a compression and retry pipeline backed by Supabase Storage.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"smeta-backend/docs"
	"smeta-backend/internal/config"
	"smeta-backend/internal/database"
	"smeta-backend/internal/handlers"
	"smeta-backend/internal/host"
	"smeta-backend/internal/middleware"
	"smeta-backend/internal/pdf"
	"smeta-backend/internal/retry"
	"smeta-backend/internal/services"
	"smeta-backend/internal/supabase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func setupLogger(environment string) {
	level := slog.LevelDebug
	if environment == "production" {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Environment)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Swagger host follows the deployed base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		slog.Error("failed to initialize supabase client", "error", err)
		os.Exit(1)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey)
	if err != nil {
		slog.Error("failed to initialize storage client", "error", err)
		os.Exit(1)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to initialize database client", "error", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to initialize migrator", "error", err)
		os.Exit(1)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	migrator.Close()
	slog.Info("migrations completed")

	uploadPolicy := retry.Policy{
		MaxAttempts: cfg.UploadMaxAttempts,
		Delay:       cfg.UploadRetryDelay,
	}
	caps := host.Nop{}

	uploadService := services.NewUploadService(storageClient, uploadPolicy, caps,
		cfg.MaxUploadBytes, cfg.MaxReceiptBytes)
	renderer := pdf.NewRenderer(cfg.CyrillicFontPath)
	documentService := services.NewDocumentService(dbClient, storageClient, realtimeClient,
		renderer, caps, cfg.DocumentBucket)

	estimatesHandler := handlers.NewEstimatesHandler(dbClient, realtimeClient)
	documentsHandler := handlers.NewDocumentsHandler(dbClient, documentService)
	projectsHandler := handlers.NewProjectsHandler(dbClient, storageClient, uploadService,
		cfg.PhotoBucket, cfg.ReceiptBucket)
	photosHandler := handlers.NewPhotosHandler(dbClient, storageClient, realtimeClient,
		uploadService, cfg.PhotoBucket)
	tasksHandler := handlers.NewTasksHandler(dbClient)
	inventoryHandler := handlers.NewInventoryHandler(dbClient)
	profileHandler := handlers.NewProfileHandler(dbClient, uploadService, cfg.PhotoBucket)

	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Estimates
	api.POST("/estimates", estimatesHandler.CreateEstimate)
	api.GET("/estimates", estimatesHandler.ListEstimates)
	api.GET("/estimates/next-number", estimatesHandler.NextNumber)
	api.GET("/estimates/:estimate_id", estimatesHandler.GetEstimate)
	api.PUT("/estimates/:estimate_id", estimatesHandler.UpdateEstimate)
	api.DELETE("/estimates/:estimate_id", estimatesHandler.DeleteEstimate)
	api.GET("/estimates/:estimate_id/totals", estimatesHandler.GetTotals)
	api.GET("/estimates/:estimate_id/shopping-list", estimatesHandler.ShoppingList)

	// Document generation
	api.POST("/estimates/:estimate_id/documents/estimate", documentsHandler.GenerateEstimatePDF)
	api.POST("/estimates/:estimate_id/documents/act", documentsHandler.GenerateActPDF)
	api.POST("/estimates/:estimate_id/documents/schedule", documentsHandler.GenerateSchedulePDF)
	api.GET("/documents", documentsHandler.ListDocuments)
	api.DELETE("/documents/:document_id", documentsHandler.DeleteDocument)

	// Projects
	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.PUT("/projects/:project_id", projectsHandler.UpdateProject)
	api.DELETE("/projects/:project_id", projectsHandler.DeleteProject)

	// Work stages
	api.POST("/projects/:project_id/stages", projectsHandler.CreateStage)
	api.GET("/projects/:project_id/stages", projectsHandler.ListStages)
	api.PUT("/projects/:project_id/stages/:stage_id", projectsHandler.UpdateStage)
	api.DELETE("/projects/:project_id/stages/:stage_id", projectsHandler.DeleteStage)

	// Finances
	api.POST("/projects/:project_id/finances", projectsHandler.CreateFinanceEntry)
	api.GET("/projects/:project_id/finances", projectsHandler.ListFinanceEntries)
	api.POST("/projects/:project_id/finances/:entry_id/receipt", projectsHandler.UploadReceipt)
	api.DELETE("/projects/:project_id/finances/:entry_id", projectsHandler.DeleteFinanceEntry)

	// Photo reports
	api.POST("/projects/:project_id/photos", photosHandler.UploadPhotos)
	api.GET("/projects/:project_id/photos", photosHandler.ListPhotos)
	api.DELETE("/projects/:project_id/photos/:photo_id", photosHandler.DeletePhoto)

	// Tasks
	api.POST("/tasks", tasksHandler.CreateTask)
	api.GET("/tasks", tasksHandler.ListTasks)
	api.PATCH("/tasks/:task_id", tasksHandler.UpdateTaskStatus)
	api.DELETE("/tasks/:task_id", tasksHandler.DeleteTask)

	// Inventory
	api.POST("/tools", inventoryHandler.CreateTool)
	api.GET("/tools", inventoryHandler.ListTools)
	api.PUT("/tools/:tool_id", inventoryHandler.UpdateTool)
	api.DELETE("/tools/:tool_id", inventoryHandler.DeleteTool)
	api.POST("/consumables", inventoryHandler.CreateConsumable)
	api.GET("/consumables", inventoryHandler.ListConsumables)
	api.PUT("/consumables/:consumable_id", inventoryHandler.UpdateConsumable)
	api.DELETE("/consumables/:consumable_id", inventoryHandler.DeleteConsumable)

	// Company profile
	api.GET("/profile", profileHandler.GetProfile)
	api.PUT("/profile", profileHandler.UpsertProfile)
	api.POST("/profile/logo", profileHandler.UploadLogo)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
