package services

import (
	"strconv"
	"strings"

	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/models"
	"cryptodash/internal/store"
)

// portfolioService handles wallet snapshot tracking and AI valuations.
type portfolioService struct {
	store store.Storage
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(s store.Storage) PortfolioServicer {
	return &portfolioService{store: s}
}

// GetUserPortfolios returns all portfolios owned by the user.
func (s *portfolioService) GetUserPortfolios(userID int) []models.Portfolio {
	return s.store.GetUserPortfolios(userID)
}

// GetPortfolio returns one portfolio, scoped to its owner. A portfolio owned
// by someone else is reported as not found rather than forbidden.
func (s *portfolioService) GetPortfolio(userID, portfolioID int) (*models.Portfolio, error) {
	p, ok := s.store.GetPortfolio(portfolioID)
	if !ok || p.UserID != userID {
		return nil, apperrors.ErrPortfolioNotFound
	}
	return p, nil
}

// RefreshPortfolio upserts the snapshot for (user, wallet): it finds or
// creates the portfolio, replaces the complete asset list, and updates the
// totals. The wallet data provider lives outside this service; callers pass
// whatever it returned.
func (s *portfolioService) RefreshPortfolio(userID int, input RefreshInput) (*models.Portfolio, error) {
	wallet := strings.TrimSpace(input.WalletAddress)
	if wallet == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Wallet address is required")
	}

	portfolio, ok := s.store.GetPortfolioByUserAndWallet(userID, wallet)
	if !ok {
		portfolio = s.store.CreatePortfolio(store.NewPortfolio{
			UserID:        userID,
			WalletAddress: wallet,
			ChainID:       input.ChainID,
		})
	}

	// Full replace: delete the old snapshot, insert the new one.
	s.store.DeletePortfolioAssets(portfolio.ID)
	assets := make([]store.NewPortfolioAsset, 0, len(input.Assets))
	for _, a := range input.Assets {
		assets = append(assets, store.NewPortfolioAsset{
			PortfolioID:     portfolio.ID,
			Symbol:          a.Symbol,
			Name:            a.Name,
			Amount:          a.Amount,
			Value:           a.Value,
			Percentage:      a.Percentage,
			Change:          a.Change,
			ContractAddress: a.ContractAddress,
			IsNative:        a.IsNative,
		})
	}
	s.store.CreatePortfolioAssets(assets)

	assetsCount := len(assets)
	upd := store.PortfolioUpdate{
		TotalValue:  &input.TotalValue,
		TotalChange: &input.TotalChange,
		EthBalance:  &input.EthBalance,
		AssetsCount: &assetsCount,
	}
	if input.ChainID != "" {
		upd.ChainID = &input.ChainID
	}
	return s.store.UpdatePortfolio(portfolio.ID, upd)
}

// DeletePortfolio removes an owned portfolio and everything under it.
// Deleting a portfolio that no longer exists succeeds; deleting someone
// else's portfolio is reported as not found.
func (s *portfolioService) DeletePortfolio(userID, portfolioID int) error {
	p, ok := s.store.GetPortfolio(portfolioID)
	if !ok {
		return nil
	}
	if p.UserID != userID {
		return apperrors.ErrPortfolioNotFound
	}
	s.store.DeletePortfolio(portfolioID)
	return nil
}

// GetAssets returns the current asset snapshot of an owned portfolio.
func (s *portfolioService) GetAssets(userID, portfolioID int) ([]models.PortfolioAsset, error) {
	if _, err := s.GetPortfolio(userID, portfolioID); err != nil {
		return nil, err
	}
	return s.store.GetPortfolioAssets(portfolioID), nil
}

// RecordAnalysis appends one valuation to an owned portfolio's history.
func (s *portfolioService) RecordAnalysis(userID, portfolioID int, input AnalysisInput) (*models.AiAnalysis, error) {
	if _, err := s.GetPortfolio(userID, portfolioID); err != nil {
		return nil, err
	}
	if input.OverallScore < 0 || input.OverallScore > 100 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"Overall score out of range: "+strconv.Itoa(input.OverallScore))
	}
	return s.store.CreateAnalysis(store.NewAnalysis{
		PortfolioID:      portfolioID,
		OverallScore:     input.OverallScore,
		RiskLevel:        input.RiskLevel,
		Diversification:  input.Diversification,
		Recommendation:   input.Recommendation,
		PortfolioHealth:  input.PortfolioHealth,
		KeyInsights:      input.KeyInsights,
		RebalanceActions: input.RebalanceActions,
		RiskFactors:      input.RiskFactors,
		Opportunities:    input.Opportunities,
		DataSource:       input.DataSource,
		HasError:         input.HasError,
		ErrorMessage:     input.ErrorMessage,
	}), nil
}

// GetLatestAnalysis returns the newest valuation of an owned portfolio, or
// a not-found error when none has been recorded yet.
func (s *portfolioService) GetLatestAnalysis(userID, portfolioID int) (*models.AiAnalysis, error) {
	if _, err := s.GetPortfolio(userID, portfolioID); err != nil {
		return nil, err
	}
	analysis, ok := s.store.GetLatestAnalysis(portfolioID)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No analysis recorded for this portfolio")
	}
	return analysis, nil
}

// GetAnalysisHistory returns the user's analyses across all portfolios,
// newest first.
func (s *portfolioService) GetAnalysisHistory(userID, limit int) []models.AiAnalysis {
	return s.store.GetUserAnalysisHistory(userID, limit)
}
