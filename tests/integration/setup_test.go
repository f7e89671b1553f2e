package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"

	"cryptodash/internal/handlers"
	"cryptodash/internal/logger"
	"cryptodash/internal/middleware"
	"cryptodash/internal/services"
	"cryptodash/internal/store"
	"cryptodash/internal/validator"
)

const testPipelineKey = "test-pipeline-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	Store  store.Storage
	Router *gin.Engine
}

// userCounter gives each registered test user a unique name.
var userCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by a fresh in-memory store.
// Simulated async transitions are disabled so state is deterministic.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	memStore := store.New()

	// Services
	userService := services.NewUserService(memStore)
	portfolioService := services.NewPortfolioService(memStore)
	chatbotService := services.NewChatbotService(memStore, nil, 0)
	marketService := services.NewMarketService(memStore)
	taskService := services.NewTaskService(0)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	billingHandler := handlers.NewBillingHandler(userService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	chatbotHandler := handlers.NewChatbotHandler(chatbotService)
	chatHandler := handlers.NewChatHandler(chatbotService)
	marketHandler := handlers.NewMarketHandler(marketService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(testPipelineKey))
	pipeline.POST("/market-summaries", marketHandler.RecordSummary)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/billing/subscription", billingHandler.ActivateSubscription)
	protected.DELETE("/billing/subscription", billingHandler.CancelSubscription)

	portfolios := protected.Group("/portfolios")
	portfolios.GET("", portfolioHandler.GetPortfolios)
	portfolios.POST("/refresh", portfolioHandler.RefreshPortfolio)
	portfolios.GET("/:id", portfolioHandler.GetPortfolio)
	portfolios.DELETE("/:id", portfolioHandler.DeletePortfolio)
	portfolios.GET("/:id/assets", portfolioHandler.GetAssets)
	portfolios.POST("/:id/analysis", portfolioHandler.RecordAnalysis)
	portfolios.GET("/:id/analysis/latest", portfolioHandler.GetLatestAnalysis)
	protected.GET("/analysis/history", portfolioHandler.GetAnalysisHistory)

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

	sessions := protected.Group("/sessions")
	sessions.GET("/:id/messages", chatHandler.GetMessages)
	sessions.POST("/:id/messages", chatHandler.SendMessage)
	sessions.POST("/:id/messages/append", chatHandler.AppendMessage)

	protected.GET("/market/summary", marketHandler.GetLatestSummary)

	tasks := protected.Group("/tasks")
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/:id", taskHandler.GetTask)

	return &testApp{Store: memStore, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// pipelineRequest makes a request authenticated with the pipeline API key.
func (app *testApp) pipelineRequest(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testPipelineKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a fresh user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T) (token string, userID float64) {
	t.Helper()
	n := userCounter.Add(1)
	body := fmt.Sprintf(`{"username":"user%d","email":"user%d@test.com","password":"password123"}`, n, n)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64)
}
