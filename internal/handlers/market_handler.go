package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/services"
)

// MarketHandler handles market summary requests. Reads are open to any
// authenticated user; writes come only from the analytics pipeline behind
// API key auth.
type MarketHandler struct {
	marketService services.MarketServicer
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService services.MarketServicer) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// RecordSummaryRequest represents one generated market digest.
type RecordSummaryRequest struct {
	AiSummary       string          `json:"ai_summary" binding:"required"`
	KeyInsights     []string        `json:"key_insights"`
	Sentiment       string          `json:"sentiment" binding:"omitempty,oneof=bullish bearish neutral"`
	ConfidenceScore int             `json:"confidence_score" binding:"min=0,max=100"`
	MarketSnapshot  json.RawMessage `json:"market_snapshot"`
	TopGainers      json.RawMessage `json:"top_gainers"`
	TopLosers       json.RawMessage `json:"top_losers"`
	NewsDigest      json.RawMessage `json:"news_digest"`
	TradingSignals  json.RawMessage `json:"trading_signals"`
	GeneratedBy     string          `json:"generated_by"`
	ProcessingTime  int             `json:"processing_time"`
}

// RecordSummary handles recording one generated digest from the pipeline.
// @Summary     Record market summary
// @Description Append one generated market digest (pipeline only)
// @Tags        market
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string               true "Pipeline API key"
// @Param       request   body   RecordSummaryRequest true "Generated digest"
// @Success     201 {object} models.MarketSummary "Recorded summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /pipeline/market-summaries [post]
func (h *MarketHandler) RecordSummary(c *gin.Context) {
	var req RecordSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	summary := h.marketService.RecordSummary(services.SummaryInput{
		AiSummary:       req.AiSummary,
		KeyInsights:     req.KeyInsights,
		Sentiment:       req.Sentiment,
		ConfidenceScore: req.ConfidenceScore,
		MarketSnapshot:  req.MarketSnapshot,
		TopGainers:      req.TopGainers,
		TopLosers:       req.TopLosers,
		NewsDigest:      req.NewsDigest,
		TradingSignals:  req.TradingSignals,
		GeneratedBy:     req.GeneratedBy,
		ProcessingTime:  req.ProcessingTime,
	})

	c.JSON(http.StatusCreated, gin.H{"summary": summary})
}

// GetLatestSummary handles retrieving the newest market digest.
// @Summary     Get latest market summary
// @Description Get the most recently generated market digest
// @Tags        market
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.MarketSummary "Latest summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No summary available yet"
// @Router      /market/summary [get]
func (h *MarketHandler) GetLatestSummary(c *gin.Context) {
	summary, err := h.marketService.LatestSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
