package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Kenc01/MediChain-PH/domain"
)

// SessionServiceImpl implements domain.SessionService: opaque high-entropy
// bearer tokens with a fixed expiry horizon.
type SessionServiceImpl struct {
	sessionRepo domain.SessionRepository
	userRepo    domain.UserRepository
	codeSvc     domain.CodeService
	ttl         time.Duration
}

// NewSessionService creates a new session manager.
func NewSessionService(
	sessionRepo domain.SessionRepository,
	userRepo domain.UserRepository,
	codeSvc domain.CodeService,
	ttl time.Duration,
) domain.SessionService {
	return &SessionServiceImpl{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		codeSvc:     codeSvc,
		ttl:         ttl,
	}
}

// Issue implements domain.SessionService. The raw token is returned to the
// caller exactly once; the store only keeps its digest.
func (s *SessionServiceImpl) Issue(ctx context.Context, userID, ip, agent string) (*domain.Session, error) {
	token, err := s.codeSvc.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		Token:     token,
		UserID:    userID,
		IP:        ip,
		UserAgent: agent,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}

// Resolve implements domain.SessionService. Every failure collapses to
// ErrUnauthenticated: callers cannot tell a missing token from an expired
// one or from a deleted owner.
func (s *SessionServiceImpl) Resolve(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	if token == "" {
		return nil, nil, domain.ErrUnauthenticated
	}

	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, nil, domain.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, domain.ErrUnauthenticated
	}

	session.Token = token
	return user, session, nil
}

// Revoke implements domain.SessionService.
func (s *SessionServiceImpl) Revoke(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

// RevokeAll implements domain.SessionService.
func (s *SessionServiceImpl) RevokeAll(ctx context.Context, userID string) error {
	return s.sessionRepo.DeleteAllForUser(ctx, userID)
}
