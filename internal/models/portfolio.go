package models

import "time"

// Portfolio is a wallet snapshot owned by a user. At most one live portfolio
// exists per (user, wallet address) pair; address comparison is
// case-insensitive. Monetary fields are kept as strings to preserve
// precision end to end.
type Portfolio struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	WalletAddress string    `json:"wallet_address"`
	ChainID       string    `json:"chain_id"`
	TotalValue    string    `json:"total_value,omitempty"`
	TotalChange   string    `json:"total_change,omitempty"`
	AssetsCount   int       `json:"assets_count"`
	EthBalance    string    `json:"eth_balance,omitempty"`
	LastUpdated   time.Time `json:"last_updated"`
	CreatedAt     time.Time `json:"created_at"`
}

// Clone returns a value copy of the portfolio.
func (p *Portfolio) Clone() *Portfolio {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// PortfolioAsset is a single holding inside a portfolio snapshot. Assets are
// replaced wholesale on refresh, never diffed.
type PortfolioAsset struct {
	ID              int    `json:"id"`
	PortfolioID     int    `json:"portfolio_id"`
	Symbol          string `json:"symbol"`
	Name            string `json:"name"`
	Amount          string `json:"amount"`
	Value           string `json:"value"`
	Percentage      string `json:"percentage"`
	Change          string `json:"change"`
	ContractAddress string `json:"contract_address,omitempty"`
	IsNative        bool   `json:"is_native"`
}

// Clone returns a value copy of the asset.
func (a *PortfolioAsset) Clone() *PortfolioAsset {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// AiAnalysis is one append-only valuation of a portfolio. The list-shaped
// fields hold serialized JSON arrays produced by the analysis provider; the
// store treats them as opaque text.
type AiAnalysis struct {
	ID               int       `json:"id"`
	PortfolioID      int       `json:"portfolio_id"`
	OverallScore     int       `json:"overall_score"`
	RiskLevel        string    `json:"risk_level,omitempty"`
	Diversification  string    `json:"diversification,omitempty"`
	Recommendation   string    `json:"recommendation,omitempty"`
	PortfolioHealth  string    `json:"portfolio_health,omitempty"`
	KeyInsights      string    `json:"key_insights,omitempty"`
	RebalanceActions string    `json:"rebalance_actions,omitempty"`
	RiskFactors      string    `json:"risk_factors,omitempty"`
	Opportunities    string    `json:"opportunities,omitempty"`
	DataSource       string    `json:"data_source"`
	HasError         bool      `json:"has_error"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Clone returns a value copy of the analysis.
func (a *AiAnalysis) Clone() *AiAnalysis {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
