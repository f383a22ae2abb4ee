package services

import (
	"context"

	"github.com/Kenc01/MediChain-PH/domain"
)

// ApprovalServiceImpl implements domain.ApprovalService: the review of a
// verification request and the owning user's status move together.
type ApprovalServiceImpl struct {
	verificationRepo domain.VerificationRepository
	audit            domain.AuditLogger
}

// NewApprovalService creates a new approval service.
func NewApprovalService(verificationRepo domain.VerificationRepository, audit domain.AuditLogger) domain.ApprovalService {
	return &ApprovalServiceImpl{verificationRepo: verificationRepo, audit: audit}
}

// ListPending implements domain.ApprovalService.
func (s *ApprovalServiceImpl) ListPending(ctx context.Context) ([]*domain.VerificationRequest, error) {
	return s.verificationRepo.ListPending(ctx)
}

// Approve implements domain.ApprovalService. The owning user becomes active
// in the same transaction that marks the request approved.
func (s *ApprovalServiceImpl) Approve(ctx context.Context, requestID, reviewerID string) (*domain.VerificationRequest, error) {
	reviewed, err := s.verificationRepo.Review(ctx, requestID, reviewerID, domain.ReviewApproved, "", domain.StatusActive)
	if err != nil {
		return nil, err
	}
	s.audit.Log(domain.NewAuditEvent(domain.VerificationReviewEvent, reviewed.UserID))
	return reviewed, nil
}

// Reject implements domain.ApprovalService. Rejection blocks the account:
// the owning user's status moves to rejected atomically with the review.
func (s *ApprovalServiceImpl) Reject(ctx context.Context, requestID, reviewerID, reason string) (*domain.VerificationRequest, error) {
	reviewed, err := s.verificationRepo.Review(ctx, requestID, reviewerID, domain.ReviewRejected, reason, domain.StatusRejected)
	if err != nil {
		return nil, err
	}
	s.audit.Log(domain.NewAuditEvent(domain.VerificationReviewEvent, reviewed.UserID).Failed(reason))
	return reviewed, nil
}
