package services

import (
	"time"

	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/models"
	"cryptodash/internal/store"
)

// marketService handles the global market digest log written by the
// analytics pipeline.
type marketService struct {
	store store.Storage
}

// NewMarketService creates a new MarketServicer.
func NewMarketService(s store.Storage) MarketServicer {
	return &marketService{store: s}
}

// RecordSummary appends one generated digest. Summaries are global, not
// per-user; the pipeline is the only writer.
func (s *marketService) RecordSummary(input SummaryInput) *models.MarketSummary {
	return s.store.CreateMarketSummary(store.NewMarketSummary{
		AiSummary:       input.AiSummary,
		KeyInsights:     input.KeyInsights,
		Sentiment:       input.Sentiment,
		ConfidenceScore: input.ConfidenceScore,
		MarketSnapshot:  input.MarketSnapshot,
		TopGainers:      input.TopGainers,
		TopLosers:       input.TopLosers,
		NewsDigest:      input.NewsDigest,
		TradingSignals:  input.TradingSignals,
		GeneratedBy:     input.GeneratedBy,
		DataFreshness:   time.Now(),
		ProcessingTime:  input.ProcessingTime,
	})
}

// LatestSummary returns the most recently generated digest, or a not-found
// error before the pipeline has run.
func (s *marketService) LatestSummary() (*models.MarketSummary, error) {
	summary, ok := s.store.GetLatestMarketSummary()
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No market summary available yet")
	}
	return summary, nil
}
