package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/pagination"
	"cryptodash/internal/services"
)

// PortfolioHandler handles portfolio-related requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// AssetRequest represents one holding in a wallet refresh payload.
type AssetRequest struct {
	Symbol          string `json:"symbol" binding:"required"`
	Name            string `json:"name"`
	Amount          string `json:"amount" binding:"required"`
	Value           string `json:"value" binding:"required"`
	Percentage      string `json:"percentage"`
	Change          string `json:"change"`
	ContractAddress string `json:"contract_address"`
	IsNative        bool   `json:"is_native"`
}

// RefreshPortfolioRequest represents the wallet refresh payload.
type RefreshPortfolioRequest struct {
	WalletAddress string         `json:"wallet_address" binding:"required,wallet"`
	ChainID       string         `json:"chain_id"`
	TotalValue    string         `json:"total_value" binding:"required"`
	TotalChange   string         `json:"total_change"`
	EthBalance    string         `json:"eth_balance"`
	Assets        []AssetRequest `json:"assets" binding:"required,dive"`
}

// AnalysisRequest represents one AI valuation payload.
type AnalysisRequest struct {
	OverallScore     int    `json:"overall_score" binding:"min=0,max=100"`
	RiskLevel        string `json:"risk_level"`
	Diversification  string `json:"diversification"`
	Recommendation   string `json:"recommendation"`
	PortfolioHealth  string `json:"portfolio_health"`
	KeyInsights      string `json:"key_insights"`
	RebalanceActions string `json:"rebalance_actions"`
	RiskFactors      string `json:"risk_factors"`
	Opportunities    string `json:"opportunities"`
	DataSource       string `json:"data_source"`
	HasError         bool   `json:"has_error"`
	ErrorMessage     string `json:"error_message"`
}

// GetPortfolios handles listing portfolios for the authenticated user.
// @Summary     Get portfolios
// @Description Get a paginated list of the user's tracked wallets
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Portfolio] "Paginated portfolios"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolios [get]
func (h *PortfolioHandler) GetPortfolios(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolios := h.portfolioService.GetUserPortfolios(userID)
	c.JSON(http.StatusOK, pagination.Paginate(portfolios, page))
}

// GetPortfolio handles retrieving a specific portfolio.
// @Summary     Get portfolio by ID
// @Description Get a specific tracked wallet by ID
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Portfolio ID"
// @Success     200 {object} models.Portfolio "Portfolio details"
// @Failure     400 {object} ErrorResponse "Invalid portfolio ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(userID, portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// RefreshPortfolio handles a wallet snapshot refresh.
// @Summary     Refresh portfolio
// @Description Upsert the snapshot for a wallet: the asset list is replaced wholesale
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RefreshPortfolioRequest true "Wallet snapshot"
// @Success     200 {object} models.Portfolio "Updated portfolio"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolios/refresh [post]
func (h *PortfolioHandler) RefreshPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RefreshPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.RefreshInput{
		WalletAddress: req.WalletAddress,
		ChainID:       req.ChainID,
		TotalValue:    req.TotalValue,
		TotalChange:   req.TotalChange,
		EthBalance:    req.EthBalance,
	}
	for _, a := range req.Assets {
		input.Assets = append(input.Assets, services.AssetInput{
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

	portfolio, err := h.portfolioService.RefreshPortfolio(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// DeletePortfolio handles removing a tracked wallet.
// @Summary     Delete portfolio
// @Description Remove a tracked wallet and everything recorded under it
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Portfolio ID"
// @Success     204 "Portfolio deleted"
// @Failure     400 {object} ErrorResponse "Invalid portfolio ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [delete]
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.portfolioService.DeletePortfolio(userID, portfolioID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAssets handles listing the current asset snapshot of a portfolio.
// @Summary     Get portfolio assets
// @Description Get the current asset snapshot of a tracked wallet
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Portfolio ID"
// @Success     200 {array} models.PortfolioAsset "Assets"
// @Failure     400 {object} ErrorResponse "Invalid portfolio ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/assets [get]
func (h *PortfolioHandler) GetAssets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	assets, err := h.portfolioService.GetAssets(userID, portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// RecordAnalysis handles recording one AI valuation against a portfolio.
// @Summary     Record analysis
// @Description Append one AI valuation to a portfolio's history
// @Tags        analysis
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int             true "Portfolio ID"
// @Param       request body AnalysisRequest true "Valuation details"
// @Success     201 {object} models.AiAnalysis "Recorded analysis"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/analysis [post]
func (h *PortfolioHandler) RecordAnalysis(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	analysis, err := h.portfolioService.RecordAnalysis(userID, portfolioID, services.AnalysisInput{
		OverallScore:     req.OverallScore,
		RiskLevel:        req.RiskLevel,
		Diversification:  req.Diversification,
		Recommendation:   req.Recommendation,
		PortfolioHealth:  req.PortfolioHealth,
		KeyInsights:      req.KeyInsights,
		RebalanceActions: req.RebalanceActions,
		RiskFactors:      req.RiskFactors,
		Opportunities:    req.Opportunities,
		DataSource:       req.DataSource,
		HasError:         req.HasError,
		ErrorMessage:     req.ErrorMessage,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"analysis": analysis})
}

// GetLatestAnalysis handles retrieving the newest valuation of a portfolio.
// @Summary     Get latest analysis
// @Description Get the most recent AI valuation of a portfolio
// @Tags        analysis
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Portfolio ID"
// @Success     200 {object} models.AiAnalysis "Latest analysis"
// @Failure     400 {object} ErrorResponse "Invalid portfolio ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No analysis recorded"
// @Router      /portfolios/{id}/analysis/latest [get]
func (h *PortfolioHandler) GetLatestAnalysis(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	analysis, err := h.portfolioService.GetLatestAnalysis(userID, portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// GetAnalysisHistory handles listing the user's valuations across portfolios.
// @Summary     Get analysis history
// @Description Get the user's AI valuations across all portfolios, newest first
// @Tags        analysis
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Maximum entries to return (default 10)"
// @Success     200 {array} models.AiAnalysis "Analyses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analysis/history [get]
func (h *PortfolioHandler) GetAnalysisHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	history := h.portfolioService.GetAnalysisHistory(userID, limit)
	c.JSON(http.StatusOK, gin.H{"analyses": history})
}
