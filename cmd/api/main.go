package main

import (
	"fmt"
	"net/http"
	"os"

	"cryptodash/internal/config"
	"cryptodash/internal/handlers"
	"cryptodash/internal/logger"
	"cryptodash/internal/middleware"
	"cryptodash/internal/services"
	"cryptodash/internal/store"
	"cryptodash/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "cryptodash/internal/docs" // Import swagger docs
)

// @title           Cryptodash API
// @version         1.0
// @description     Cryptodash is a crypto portfolio dashboard that tracks wallets, records AI valuations, and powers a chatbot builder.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// All state lives in memory and is lost on restart.
	memStore := store.New(store.WithDefaultChainID(appConfig.DefaultChainID))

	// Initialize services
	userService := services.NewUserService(memStore)
	portfolioService := services.NewPortfolioService(memStore)
	chatbotService := services.NewChatbotService(memStore, nil, appConfig.BotActivationDelay)
	marketService := services.NewMarketService(memStore)
	taskService := services.NewTaskService(appConfig.TaskCompletionDur)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	billingHandler := handlers.NewBillingHandler(userService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	chatbotHandler := handlers.NewChatbotHandler(chatbotService)
	chatHandler := handlers.NewChatHandler(chatbotService)
	marketHandler := handlers.NewMarketHandler(marketService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Pipeline routes (API key auth)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(appConfig.PipelineAPIKey))
	pipeline.POST("/market-summaries", marketHandler.RecordSummary)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile and billing
	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/billing/subscription", billingHandler.ActivateSubscription)
	protected.DELETE("/billing/subscription", billingHandler.CancelSubscription)

	// Portfolio routes
	portfolios := protected.Group("/portfolios")
	portfolios.GET("", portfolioHandler.GetPortfolios)
	portfolios.POST("/refresh", portfolioHandler.RefreshPortfolio)
	portfolios.GET("/:id", portfolioHandler.GetPortfolio)
	portfolios.DELETE("/:id", portfolioHandler.DeletePortfolio)
	portfolios.GET("/:id/assets", portfolioHandler.GetAssets)
	portfolios.POST("/:id/analysis", portfolioHandler.RecordAnalysis)
	portfolios.GET("/:id/analysis/latest", portfolioHandler.GetLatestAnalysis)
	protected.GET("/analysis/history", portfolioHandler.GetAnalysisHistory)

	// Chatbot routes
	chatbots := protected.Group("/chatbots")
	chatbots.POST("", chatbotHandler.CreateChatbot)
	chatbots.GET("", chatbotHandler.GetChatbots)
	chatbots.GET("/:id", chatbotHandler.GetChatbot)
	chatbots.PATCH("/:id", chatbotHandler.UpdateChatbot)
	chatbots.DELETE("/:id", chatbotHandler.DeleteChatbot)
	chatbots.POST("/:id/files", chatbotHandler.AddFiles)
	chatbots.GET("/:id/files", chatbotHandler.GetFiles)
	chatbots.POST("/:id/sessions", chatHandler.StartSession)
	chatbots.GET("/:id/sessions", chatHandler.GetSessions)

	// Chat session routes
	sessions := protected.Group("/sessions")
	sessions.GET("/:id/messages", chatHandler.GetMessages)
	sessions.POST("/:id/messages", chatHandler.SendMessage)
	sessions.POST("/:id/messages/append", chatHandler.AppendMessage)

	// Market summary reads
	protected.GET("/market/summary", marketHandler.GetLatestSummary)

	// Video task routes
	tasks := protected.Group("/tasks")
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/:id", taskHandler.GetTask)

	log.Infof("Starting Cryptodash backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
