package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kenc01/MediChain-PH/domain"
	"github.com/Kenc01/MediChain-PH/internal/http/middleware"
)

// AdminHandlers handles the onboarding review workflow.
type AdminHandlers struct {
	approvalSvc domain.ApprovalService
}

// NewAdminHandlers creates new admin handlers.
func NewAdminHandlers(approvalSvc domain.ApprovalService) *AdminHandlers {
	return &AdminHandlers{approvalSvc: approvalSvc}
}

// RejectRequest carries the reviewer's reason for a rejection.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListVerifications returns all pending verification requests.
func (h *AdminHandlers) ListVerifications(c *gin.Context) {
	requests, err := h.approvalSvc.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list verification requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ApproveVerification approves a pending request and activates its user.
func (h *AdminHandlers) ApproveVerification(c *gin.Context) {
	reviewerID := c.GetString(middleware.CtxUserID)
	request, err := h.approvalSvc.Approve(c.Request.Context(), c.Param("id"), reviewerID)
	if err != nil {
		switch err {
		case domain.ErrVerificationNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Verification request not found"})
		case domain.ErrAlreadyReviewed:
			c.JSON(http.StatusConflict, gin.H{"error": "Verification request already reviewed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve verification"})
		}
		return
	}
	c.JSON(http.StatusOK, request)
}

// RejectVerification rejects a pending request and marks its user rejected.
func (h *AdminHandlers) RejectVerification(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	reviewerID := c.GetString(middleware.CtxUserID)
	request, err := h.approvalSvc.Reject(c.Request.Context(), c.Param("id"), reviewerID, req.Reason)
	if err != nil {
		switch err {
		case domain.ErrVerificationNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Verification request not found"})
		case domain.ErrAlreadyReviewed:
			c.JSON(http.StatusConflict, gin.H{"error": "Verification request already reviewed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject verification"})
		}
		return
	}
	c.JSON(http.StatusOK, request)
}
