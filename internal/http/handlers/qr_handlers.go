package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kenc01/MediChain-PH/domain"
	"github.com/Kenc01/MediChain-PH/internal/http/middleware"
)

// QRHandlers handles the cross-device QR login handshake.
type QRHandlers struct {
	qrSvc domain.QRLoginService
}

// NewQRHandlers creates new QR login handlers.
func NewQRHandlers(qrSvc domain.QRLoginService) *QRHandlers {
	return &QRHandlers{qrSvc: qrSvc}
}

// ScanRequest carries the nonce read from a QR code.
type ScanRequest struct {
	Token string `json:"token" binding:"required"`
}

// Generate mints a short-lived pairing nonce for an unauthenticated device.
// The nonce appears only in this response; the server keeps its digest.
func (h *QRHandlers) Generate(c *gin.Context) {
	nonce, expiresAt, err := h.qrSvc.Generate(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     nonce,
		"expiresAt": expiresAt,
	})
}

// Scan approves a pairing nonce on behalf of the authenticated scanner.
func (h *QRHandlers) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.qrSvc.Scan(c.Request.Context(), req.Token, user); err != nil {
		switch err {
		case domain.ErrCodeInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired QR code"})
		case domain.ErrAccountSuspended, domain.ErrAccountRejected:
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is not allowed to authorize logins"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm QR login"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Poll is called by the waiting device. It answers with authenticated:false
// until the nonce has been scanned, then once with a fresh session.
func (h *QRHandlers) Poll(c *gin.Context) {
	result, err := h.qrSvc.Poll(c.Request.Context(), c.Param("token"), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to poll QR login"})
		return
	}
	if !result.Authenticated {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"token":         result.Session.Token,
		"user": gin.H{
			"id":     result.User.ID,
			"email":  result.User.Email,
			"role":   result.User.Role,
			"status": result.User.Status,
		},
	})
}
