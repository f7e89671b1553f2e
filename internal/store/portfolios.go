package store

import (
	"sort"
	"strings"

	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/models"
)

// GetPortfolio returns the portfolio with the given id, or ok=false when
// absent.
func (s *MemStore) GetPortfolio(portfolioID int) (*models.Portfolio, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.portfolios[portfolioID]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// GetPortfolioByUserAndWallet returns the portfolio a user tracks for the
// given wallet. Address comparison is case-insensitive.
func (s *MemStore) GetPortfolioByUserAndWallet(userID int, walletAddress string) (*models.Portfolio, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.portfolios {
		if p.UserID == userID && strings.EqualFold(p.WalletAddress, walletAddress) {
			return p.Clone(), true
		}
	}
	return nil, false
}

// GetUserPortfolios returns all portfolios owned by a user, in insertion
// order.
func (s *MemStore) GetUserPortfolios(userID int) []models.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Portfolio, 0)
	for _, p := range s.portfolios {
		if p.UserID == userID {
			out = append(out, *p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreatePortfolio inserts a new wallet snapshot. An empty chain id gets the
// store's testnet default and both timestamps are stamped to now.
func (s *MemStore) CreatePortfolio(p NewPortfolio) *models.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextPortfolioID
	s.nextPortfolioID++

	chainID := p.ChainID
	if chainID == "" {
		chainID = s.defaultChainID
	}

	now := s.now()
	portfolio := &models.Portfolio{
		ID:            id,
		UserID:        p.UserID,
		WalletAddress: p.WalletAddress,
		ChainID:       chainID,
		TotalValue:    p.TotalValue,
		TotalChange:   p.TotalChange,
		AssetsCount:   p.AssetsCount,
		EthBalance:    p.EthBalance,
		LastUpdated:   now,
		CreatedAt:     now,
	}
	s.portfolios[id] = portfolio
	return portfolio.Clone()
}

// UpdatePortfolio merges the non-nil fields of upd into the portfolio and
// refreshes LastUpdated.
func (s *MemStore) UpdatePortfolio(portfolioID int, upd PortfolioUpdate) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.portfolios[portfolioID]
	if !ok {
		return nil, apperrors.ErrPortfolioNotFound
	}

	if upd.WalletAddress != nil {
		p.WalletAddress = *upd.WalletAddress
	}
	if upd.ChainID != nil {
		p.ChainID = *upd.ChainID
	}
	if upd.TotalValue != nil {
		p.TotalValue = *upd.TotalValue
	}
	if upd.TotalChange != nil {
		p.TotalChange = *upd.TotalChange
	}
	if upd.AssetsCount != nil {
		p.AssetsCount = *upd.AssetsCount
	}
	if upd.EthBalance != nil {
		p.EthBalance = *upd.EthBalance
	}
	p.LastUpdated = s.now()
	return p.Clone(), nil
}

// DeletePortfolio removes a portfolio and cascades to its assets and
// analyses. Deleting an id that does not exist is a no-op.
func (s *MemStore) DeletePortfolio(portfolioID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.portfolios, portfolioID)
	s.deleteAssetsLocked(portfolioID)
	for id, a := range s.aiAnalyses {
		if a.PortfolioID == portfolioID {
			delete(s.aiAnalyses, id)
		}
	}
}

// GetPortfolioAssets returns the current asset snapshot of a portfolio in
// insertion order.
func (s *MemStore) GetPortfolioAssets(portfolioID int) []models.PortfolioAsset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PortfolioAsset, 0)
	for _, a := range s.portfolioAssets {
		if a.PortfolioID == portfolioID {
			out = append(out, *a.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreatePortfolioAssets bulk-inserts one refresh snapshot. The store never
// diffs; callers pass the complete asset list after deleting the old one.
func (s *MemStore) CreatePortfolioAssets(assets []NewPortfolioAsset) []models.PortfolioAsset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.PortfolioAsset, 0, len(assets))
	for _, na := range assets {
		id := s.nextAssetID
		s.nextAssetID++

		asset := &models.PortfolioAsset{
			ID:              id,
			PortfolioID:     na.PortfolioID,
			Symbol:          na.Symbol,
			Name:            na.Name,
			Amount:          na.Amount,
			Value:           na.Value,
			Percentage:      na.Percentage,
			Change:          na.Change,
			ContractAddress: na.ContractAddress,
			IsNative:        na.IsNative,
		}
		s.portfolioAssets[id] = asset
		out = append(out, *asset.Clone())
	}
	return out
}

// DeletePortfolioAssets removes every asset belonging to a portfolio.
func (s *MemStore) DeletePortfolioAssets(portfolioID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteAssetsLocked(portfolioID)
}

func (s *MemStore) deleteAssetsLocked(portfolioID int) {
	for id, a := range s.portfolioAssets {
		if a.PortfolioID == portfolioID {
			delete(s.portfolioAssets, id)
		}
	}
}

// GetLatestAnalysis returns the analysis with the maximum creation
// timestamp for a portfolio, or ok=false when none exist. Insertion order
// is irrelevant; only CreatedAt decides.
func (s *MemStore) GetLatestAnalysis(portfolioID int) (*models.AiAnalysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.AiAnalysis
	for _, a := range s.aiAnalyses {
		if a.PortfolioID != portfolioID {
			continue
		}
		if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
			latest = a
		}
	}
	if latest == nil {
		return nil, false
	}
	return latest.Clone(), true
}

// CreateAnalysis appends one valuation to a portfolio's history. Prior
// analyses are never updated or deleted. An empty DataSource defaults to
// "Gemini AI".
func (s *MemStore) CreateAnalysis(p NewAnalysis) *models.AiAnalysis {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextAnalysisID
	s.nextAnalysisID++

	dataSource := p.DataSource
	if dataSource == "" {
		dataSource = "Gemini AI"
	}

	analysis := &models.AiAnalysis{
		ID:               id,
		PortfolioID:      p.PortfolioID,
		OverallScore:     p.OverallScore,
		RiskLevel:        p.RiskLevel,
		Diversification:  p.Diversification,
		Recommendation:   p.Recommendation,
		PortfolioHealth:  p.PortfolioHealth,
		KeyInsights:      p.KeyInsights,
		RebalanceActions: p.RebalanceActions,
		RiskFactors:      p.RiskFactors,
		Opportunities:    p.Opportunities,
		DataSource:       dataSource,
		HasError:         p.HasError,
		ErrorMessage:     p.ErrorMessage,
		CreatedAt:        s.now(),
	}
	s.aiAnalyses[id] = analysis
	return analysis.Clone()
}

// GetUserAnalysisHistory joins through the user's portfolios and returns
// their analyses, newest first, truncated to limit. A non-positive limit
// defaults to 10.
func (s *MemStore) GetUserAnalysisHistory(userID, limit int) []models.AiAnalysis {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	owned := make(map[int]bool)
	for _, p := range s.portfolios {
		if p.UserID == userID {
			owned[p.ID] = true
		}
	}

	out := make([]models.AiAnalysis, 0)
	for _, a := range s.aiAnalyses {
		if owned[a.PortfolioID] {
			out = append(out, *a.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
