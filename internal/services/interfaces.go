package services

import (
	"context"

	"cryptodash/internal/models"
	"cryptodash/internal/store"
)

// UserServicer defines the contract for user and subscription logic.
type UserServicer interface {
	RegisterUser(username, email, password, externalAuthID string, plan models.Plan) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByExternalAuthID(authID string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(username, password string) (*models.User, error)
	ActivateSubscription(userID int, customerID, subscriptionID string, plan models.Plan) (*models.User, error)
	CancelSubscription(userID int) (*models.User, error)
}

// AssetInput is one holding in a wallet refresh snapshot.
type AssetInput struct {
	Symbol          string
	Name            string
	Amount          string
	Value           string
	Percentage      string
	Change          string
	ContractAddress string
	IsNative        bool
}

// RefreshInput is a complete wallet snapshot. The asset list replaces the
// stored one wholesale; the service never diffs.
type RefreshInput struct {
	WalletAddress string
	ChainID       string
	TotalValue    string
	TotalChange   string
	EthBalance    string
	Assets        []AssetInput
}

// AnalysisInput carries one AI valuation to record against a portfolio.
type AnalysisInput struct {
	OverallScore     int
	RiskLevel        string
	Diversification  string
	Recommendation   string
	PortfolioHealth  string
	KeyInsights      string
	RebalanceActions string
	RiskFactors      string
	Opportunities    string
	DataSource       string
	HasError         bool
	ErrorMessage     string
}

// PortfolioServicer defines the contract for portfolio tracking logic.
type PortfolioServicer interface {
	GetUserPortfolios(userID int) []models.Portfolio
	GetPortfolio(userID, portfolioID int) (*models.Portfolio, error)
	RefreshPortfolio(userID int, input RefreshInput) (*models.Portfolio, error)
	DeletePortfolio(userID, portfolioID int) error
	GetAssets(userID, portfolioID int) ([]models.PortfolioAsset, error)
	RecordAnalysis(userID, portfolioID int, input AnalysisInput) (*models.AiAnalysis, error)
	GetLatestAnalysis(userID, portfolioID int) (*models.AiAnalysis, error)
	GetAnalysisHistory(userID, limit int) []models.AiAnalysis
}

// FileInput is metadata for one uploaded knowledge file.
type FileInput struct {
	FileName         string
	FileType         string
	FileSize         int
	ExtractedContent string
}

// MessageInput carries one chat turn to append verbatim.
type MessageInput struct {
	Role           models.ChatRole
	Content        string
	TokensUsed     *int
	ProcessingTime *int
	HasError       bool
	ErrorMessage   string
}

// BotResponder produces a chatbot reply for a user message. The AI provider
// behind it is an external collaborator; implementations must not touch the
// store.
type BotResponder interface {
	Respond(ctx context.Context, bot *models.Chatbot, message string) (string, error)
}

// ChatbotServicer defines the contract for chatbot builder and chat logic.
type ChatbotServicer interface {
	CreateChatbot(userID int, name, description string, platform models.BotPlatform, knowledge, deploymentURL string) (*models.Chatbot, error)
	GetUserChatbots(userID int) []models.Chatbot
	GetChatbot(userID, chatbotID int) (*models.Chatbot, error)
	UpdateChatbot(userID, chatbotID int, upd store.ChatbotUpdate) (*models.Chatbot, error)
	DeleteChatbot(userID, chatbotID int) error
	AddFiles(userID, chatbotID int, files []FileInput) ([]models.ChatbotFile, error)
	GetFiles(userID, chatbotID int) ([]models.ChatbotFile, error)
	StartSession(userID, chatbotID int, token string) (*models.ChatSession, error)
	GetSession(userID, sessionID int) (*models.ChatSession, error)
	GetChatbotSessions(userID, chatbotID int) ([]models.ChatSession, error)
	AppendMessage(userID, sessionID int, input MessageInput) (*models.ChatMessage, error)
	GetMessages(userID, sessionID int) ([]models.ChatMessage, error)
	SendMessage(ctx context.Context, userID, sessionID int, content string) (*models.ChatMessage, *models.ChatMessage, error)
}

// SummaryInput carries one generated market digest.
type SummaryInput struct {
	AiSummary       string
	KeyInsights     []string
	Sentiment       string
	ConfidenceScore int
	MarketSnapshot  []byte
	TopGainers      []byte
	TopLosers       []byte
	NewsDigest      []byte
	TradingSignals  []byte
	GeneratedBy     string
	ProcessingTime  int
}

// MarketServicer defines the contract for the market summary log.
type MarketServicer interface {
	RecordSummary(input SummaryInput) *models.MarketSummary
	LatestSummary() (*models.MarketSummary, error)
}

// TaskServicer defines the contract for the shorts-video task registry.
type TaskServicer interface {
	CreateTask(script, searchQuery string) (*models.VideoTask, error)
	GetTask(taskID string) (*models.VideoTask, error)
	CompleteTask(taskID, videoURL string) error
}
