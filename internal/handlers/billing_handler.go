package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/models"
	"cryptodash/internal/services"
)

// BillingHandler handles subscription-related requests. The payment
// processor interaction happens client-side; this API only records the
// resulting state.
type BillingHandler struct {
	userService services.UserServicer
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(userService services.UserServicer) *BillingHandler {
	return &BillingHandler{userService: userService}
}

// ActivateSubscriptionRequest represents the subscription activation payload.
type ActivateSubscriptionRequest struct {
	CustomerID     string `json:"customer_id" binding:"required"`
	SubscriptionID string `json:"subscription_id" binding:"required"`
	Plan           string `json:"plan" binding:"omitempty,plan"`
}

// ActivateSubscription records a completed checkout and upgrades the plan.
// @Summary     Activate subscription
// @Description Record the payment processor's ids and move the user onto a paid plan
// @Tags        billing
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ActivateSubscriptionRequest true "Subscription details"
// @Success     200 {object} models.User "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /billing/subscription [post]
func (h *BillingHandler) ActivateSubscription(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ActivateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.ActivateSubscription(userID, req.CustomerID, req.SubscriptionID, models.Plan(req.Plan))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// CancelSubscription downgrades the user back to the starter plan.
// @Summary     Cancel subscription
// @Description Move the user back to the starter plan
// @Tags        billing
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.User "Updated user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No active subscription"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /billing/subscription [delete]
func (h *BillingHandler) CancelSubscription(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.CancelSubscription(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
