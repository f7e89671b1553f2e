package models

import (
	"encoding/json"
	"time"
)

// MarketSummary is one generated market digest. Summaries are append-only
// and unowned; "latest" means maximum CreatedAt. The snapshot blobs are
// opaque JSON from the generation pipeline.
type MarketSummary struct {
	ID              int             `json:"id"`
	AiSummary       string          `json:"ai_summary"`
	KeyInsights     []string        `json:"key_insights"`
	Sentiment       string          `json:"sentiment"`
	ConfidenceScore int             `json:"confidence_score"`
	MarketSnapshot  json.RawMessage `json:"market_snapshot,omitempty"`
	TopGainers      json.RawMessage `json:"top_gainers,omitempty"`
	TopLosers       json.RawMessage `json:"top_losers,omitempty"`
	NewsDigest      json.RawMessage `json:"news_digest,omitempty"`
	TradingSignals  json.RawMessage `json:"trading_signals,omitempty"`
	GeneratedBy     string          `json:"generated_by,omitempty"`
	DataFreshness   time.Time       `json:"data_freshness,omitempty"`
	ProcessingTime  int             `json:"processing_time,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Clone returns a deep copy of the summary, duplicating the insight list and
// every raw JSON blob.
func (s *MarketSummary) Clone() *MarketSummary {
	if s == nil {
		return nil
	}
	c := *s
	if s.KeyInsights != nil {
		c.KeyInsights = append([]string(nil), s.KeyInsights...)
	}
	c.MarketSnapshot = cloneRaw(s.MarketSnapshot)
	c.TopGainers = cloneRaw(s.TopGainers)
	c.TopLosers = cloneRaw(s.TopLosers)
	c.NewsDigest = cloneRaw(s.NewsDigest)
	c.TradingSignals = cloneRaw(s.TradingSignals)
	return &c
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
