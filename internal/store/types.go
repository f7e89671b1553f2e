package store

import (
	"time"

	"cryptodash/internal/models"
)

// NewUser holds the caller-supplied fields for user creation. An empty Plan
// defaults to starter; billing fields always start empty.
type NewUser struct {
	Username       string
	Email          string
	Password       string
	ExternalAuthID string
	Plan           models.Plan
}

// NewPortfolio holds the caller-supplied fields for portfolio creation.
type NewPortfolio struct {
	UserID        int
	WalletAddress string
	ChainID       string
	TotalValue    string
	TotalChange   string
	AssetsCount   int
	EthBalance    string
}

// PortfolioUpdate is a partial update; nil fields are left untouched.
// Every applied update refreshes LastUpdated.
type PortfolioUpdate struct {
	WalletAddress *string
	ChainID       *string
	TotalValue    *string
	TotalChange   *string
	AssetsCount   *int
	EthBalance    *string
}

// NewPortfolioAsset holds the caller-supplied fields for one asset row of a
// refresh snapshot.
type NewPortfolioAsset struct {
	PortfolioID     int
	Symbol          string
	Name            string
	Amount          string
	Value           string
	Percentage      string
	Change          string
	ContractAddress string
	IsNative        bool
}

// NewAnalysis holds the caller-supplied fields for one append-only
// portfolio valuation. An empty DataSource defaults to "Gemini AI".
type NewAnalysis struct {
	PortfolioID      int
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

// NewChatbot holds the caller-supplied fields for chatbot creation. Platform
// defaults to web and Status to active; counters start at zero.
type NewChatbot struct {
	UserID        int
	Name          string
	Description   string
	Platform      models.BotPlatform
	Status        models.BotStatus
	Knowledge     string
	DeploymentURL string
}

// ChatbotUpdate is a partial update; nil fields are left untouched. Every
// applied update refreshes LastUpdated.
type ChatbotUpdate struct {
	Name          *string
	Description   *string
	Platform      *models.BotPlatform
	Status        *models.BotStatus
	Knowledge     *string
	DeploymentURL *string
	UserCount     *int
	MessageCount  *int
}

// NewChatbotFile holds the caller-supplied fields for one uploaded
// knowledge file. ProcessingStatus defaults to pending.
type NewChatbotFile struct {
	ChatbotID        int
	FileName         string
	FileType         string
	FileSize         int
	ExtractedContent string
	ProcessingStatus models.FileStatus
	ErrorMessage     string
}

// NewChatSession holds the caller-supplied fields for session creation.
// Token is the externally visible session identifier. IsActive defaults to
// true when nil.
type NewChatSession struct {
	ChatbotID int
	UserID    int
	Token     string
	IsActive  *bool
}

// SessionUpdate is a partial update; nil fields are left untouched. Every
// applied update refreshes LastActivity.
type SessionUpdate struct {
	IsActive *bool
}

// NewChatMessage holds the caller-supplied fields for one chat turn. Role
// must be exactly "user" or "bot" and Content must be non-blank after
// trimming; violations fail with a validation error rather than being
// coerced.
type NewChatMessage struct {
	SessionID      int
	Role           models.ChatRole
	Content        string
	TokensUsed     *int
	ProcessingTime *int
	HasError       bool
	ErrorMessage   string
}

// NewMarketSummary holds the caller-supplied fields for one generated
// market digest.
type NewMarketSummary struct {
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
	DataFreshness   time.Time
	ProcessingTime  int
}
