package store

import "cryptodash/internal/models"

// CreateMarketSummary appends one generated digest to the summary log.
// Summaries are never updated or deleted.
func (s *MemStore) CreateMarketSummary(p NewMarketSummary) *models.MarketSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSummaryID
	s.nextSummaryID++

	summary := &models.MarketSummary{
		ID:              id,
		AiSummary:       p.AiSummary,
		KeyInsights:     append([]string(nil), p.KeyInsights...),
		Sentiment:       p.Sentiment,
		ConfidenceScore: p.ConfidenceScore,
		MarketSnapshot:  append([]byte(nil), p.MarketSnapshot...),
		TopGainers:      append([]byte(nil), p.TopGainers...),
		TopLosers:       append([]byte(nil), p.TopLosers...),
		NewsDigest:      append([]byte(nil), p.NewsDigest...),
		TradingSignals:  append([]byte(nil), p.TradingSignals...),
		GeneratedBy:     p.GeneratedBy,
		DataFreshness:   p.DataFreshness,
		ProcessingTime:  p.ProcessingTime,
		CreatedAt:       s.now(),
	}
	s.marketSummaries[id] = summary
	return summary.Clone()
}

// GetLatestMarketSummary returns the digest with the maximum creation
// timestamp, or ok=false when the log is empty.
func (s *MemStore) GetLatestMarketSummary() (*models.MarketSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.MarketSummary
	for _, m := range s.marketSummaries {
		if latest == nil || m.CreatedAt.After(latest.CreatedAt) {
			latest = m
		}
	}
	if latest == nil {
		return nil, false
	}
	return latest.Clone(), true
}
