package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kenc01/MediChain-PH/domain"
	"github.com/Kenc01/MediChain-PH/internal/http/middleware"
)

// TwoFactorHandlers handles 2FA enrollment, step-up challenges and
// emergency-code issuance.
type TwoFactorHandlers struct {
	challengeSvc domain.ChallengeService
	emergencySvc domain.EmergencyAccessService
}

// NewTwoFactorHandlers creates new two-factor handlers.
func NewTwoFactorHandlers(challengeSvc domain.ChallengeService, emergencySvc domain.EmergencyAccessService) *TwoFactorHandlers {
	return &TwoFactorHandlers{
		challengeSvc: challengeSvc,
		emergencySvc: emergencySvc,
	}
}

// SetupRequest enrolls a secondary-factor channel.
type SetupRequest struct {
	Type string `json:"type" binding:"required"`
}

// ChallengeRequest asks for a step-up code scoped to one sensitive action.
type ChallengeRequest struct {
	Action string `json:"action" binding:"required"`
}

// VerifyRequest presents a step-up code for the named action.
type VerifyRequest struct {
	Action string `json:"action" binding:"required"`
	Code   string `json:"code" binding:"required"`
}

// Setup enrolls a 2FA method for the authenticated user.
func (h *TwoFactorHandlers) Setup(c *gin.Context) {
	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	userID := c.GetString(middleware.CtxUserID)
	method, err := h.challengeSvc.EnrollMethod(c.Request.Context(), userID, req.Type)
	if err != nil {
		if err == domain.ErrInvalidTwoFactorType {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported 2FA method type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set up 2FA"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      method.ID,
		"type":    method.Type,
		"enabled": true,
	})
}

// Challenge issues a short-lived code bound to the requested action and
// delivers it out-of-band.
func (h *TwoFactorHandlers) Challenge(c *gin.Context) {
	var req ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if _, err := h.challengeSvc.Request(c.Request.Context(), user, req.Action); err != nil {
		if err == domain.ErrInvalidAction {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown challenge action"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": true, "action": req.Action})
}

// Verify consumes a step-up code. A wrong code, an expired code and a code
// issued for a different action all produce the same answer.
func (h *TwoFactorHandlers) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	userID := c.GetString(middleware.CtxUserID)
	ok, err := h.challengeSvc.Verify(c.Request.Context(), userID, req.Action, req.Code)
	if err != nil {
		if err == domain.ErrInvalidAction {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown challenge action"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify code"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"verified": false, "error": "Invalid or expired code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// GenerateEmergencyCode mints a new single-use backup code, replacing any
// previous one. The plaintext appears only in this response.
func (h *TwoFactorHandlers) GenerateEmergencyCode(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	code, err := h.emergencySvc.GenerateCode(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate emergency code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"emergencyCode": code,
		"message":       "Store this code securely. It will not be shown again.",
	})
}
