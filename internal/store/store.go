// Package store implements the in-memory relational store backing the API.
//
// Every entity collection is a map from a per-entity monotonic integer id to
// a record, plus the manual referential integrity a database engine would
// otherwise provide: cascade deletes (portfolio -> assets + analyses,
// chatbot -> files + sessions + messages), write-time uniqueness for user
// identity fields, and ownership-scoped queries.
//
// The store hands out value copies on every read and write, for every
// entity. It is the single source of truth; a caller mutating a returned
// record must never be able to corrupt internal state.
//
// Nothing here is durable. The store is created empty at process start and
// discarded at process end. Swapping in a durable engine behind the Storage
// interface must not change any caller.
package store

import (
	"sync"
	"time"

	"cryptodash/internal/models"
)

// Storage is the operation contract consumed by the service layer.
// Lookups report absence with an ok bool and never fail; update operations
// fail with a typed *errors.AppError when the target id does not exist.
type Storage interface {
	// Users
	CreateUser(p NewUser) (*models.User, error)
	GetUser(id int) (*models.User, bool)
	GetUserByUsername(username string) (*models.User, bool)
	GetUserByEmail(email string) (*models.User, bool)
	GetUserByExternalAuthID(authID string) (*models.User, bool)
	UpdateUserBillingInfo(userID int, customerID, subscriptionID string) (*models.User, error)
	UpdateUserPlan(userID int, plan models.Plan) (*models.User, error)

	// Portfolios
	GetPortfolio(portfolioID int) (*models.Portfolio, bool)
	GetPortfolioByUserAndWallet(userID int, walletAddress string) (*models.Portfolio, bool)
	GetUserPortfolios(userID int) []models.Portfolio
	CreatePortfolio(p NewPortfolio) *models.Portfolio
	UpdatePortfolio(portfolioID int, upd PortfolioUpdate) (*models.Portfolio, error)
	DeletePortfolio(portfolioID int)

	// Portfolio assets
	GetPortfolioAssets(portfolioID int) []models.PortfolioAsset
	CreatePortfolioAssets(assets []NewPortfolioAsset) []models.PortfolioAsset
	DeletePortfolioAssets(portfolioID int)

	// AI analyses
	GetLatestAnalysis(portfolioID int) (*models.AiAnalysis, bool)
	CreateAnalysis(p NewAnalysis) *models.AiAnalysis
	GetUserAnalysisHistory(userID, limit int) []models.AiAnalysis

	// Chatbots
	GetUserChatbots(userID int) []models.Chatbot
	GetChatbot(chatbotID int) (*models.Chatbot, bool)
	CreateChatbot(p NewChatbot) *models.Chatbot
	UpdateChatbot(chatbotID int, upd ChatbotUpdate) (*models.Chatbot, error)
	DeleteChatbot(chatbotID int)

	// Chatbot files
	GetChatbotFiles(chatbotID int) []models.ChatbotFile
	CreateChatbotFiles(files []NewChatbotFile) []models.ChatbotFile

	// Chat sessions
	GetChatSession(sessionID int) (*models.ChatSession, bool)
	CreateChatSession(p NewChatSession) *models.ChatSession
	UpdateChatSession(sessionID int, upd SessionUpdate) (*models.ChatSession, error)
	GetChatbotSessions(chatbotID int) []models.ChatSession

	// Chat messages
	GetSessionMessages(sessionID int) []models.ChatMessage
	CreateChatMessage(p NewChatMessage) (*models.ChatMessage, error)

	// Market summaries
	CreateMarketSummary(p NewMarketSummary) *models.MarketSummary
	GetLatestMarketSummary() (*models.MarketSummary, bool)
}

// MemStore is the in-memory implementation of Storage.
//
// Gin serves requests on parallel goroutines and cascade deletes are
// multi-collection read-modify-write sequences, so a single RWMutex guards
// all state rather than one lock per collection.
type MemStore struct {
	mu sync.RWMutex

	users           map[int]*models.User
	portfolios      map[int]*models.Portfolio
	portfolioAssets map[int]*models.PortfolioAsset
	aiAnalyses      map[int]*models.AiAnalysis
	chatbots        map[int]*models.Chatbot
	chatbotFiles    map[int]*models.ChatbotFile
	chatSessions    map[int]*models.ChatSession
	chatMessages    map[int]*models.ChatMessage
	marketSummaries map[int]*models.MarketSummary

	nextUserID      int
	nextPortfolioID int
	nextAssetID     int
	nextAnalysisID  int
	nextChatbotID   int
	nextFileID      int
	nextSessionID   int
	nextMessageID   int
	nextSummaryID   int

	defaultChainID string
	now            func() time.Time
}

var _ Storage = (*MemStore)(nil)

// Option configures a MemStore.
type Option func(*MemStore)

// WithClock overrides the store's time source. Tests use this to inject
// out-of-order creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) { s.now = now }
}

// WithDefaultChainID overrides the chain id assigned to portfolios created
// without one.
func WithDefaultChainID(chainID string) Option {
	return func(s *MemStore) { s.defaultChainID = chainID }
}

// DefaultChainID is the Sepolia testnet chain id, assigned to portfolios
// that do not specify one.
const DefaultChainID = "0xaa36a7"

// New creates an empty MemStore.
func New(opts ...Option) *MemStore {
	s := &MemStore{
		users:           make(map[int]*models.User),
		portfolios:      make(map[int]*models.Portfolio),
		portfolioAssets: make(map[int]*models.PortfolioAsset),
		aiAnalyses:      make(map[int]*models.AiAnalysis),
		chatbots:        make(map[int]*models.Chatbot),
		chatbotFiles:    make(map[int]*models.ChatbotFile),
		chatSessions:    make(map[int]*models.ChatSession),
		chatMessages:    make(map[int]*models.ChatMessage),
		marketSummaries: make(map[int]*models.MarketSummary),

		nextUserID:      1,
		nextPortfolioID: 1,
		nextAssetID:     1,
		nextAnalysisID:  1,
		nextChatbotID:   1,
		nextFileID:      1,
		nextSessionID:   1,
		nextMessageID:   1,
		nextSummaryID:   1,

		defaultChainID: DefaultChainID,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
