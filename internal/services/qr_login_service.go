package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Kenc01/MediChain-PH/domain"
)

// QRLoginServiceImpl implements domain.QRLoginService: a short-lived nonce
// lets an unauthenticated device and an already-authenticated one rendezvous
// without either holding a connection open. The nonce is the only shared
// secret and is never persisted in cleartext.
type QRLoginServiceImpl struct {
	qrRepo     domain.QRTokenRepository
	userRepo   domain.UserRepository
	sessionSvc domain.SessionService
	codeSvc    domain.CodeService
	ttl        time.Duration
	audit      domain.AuditLogger
}

// NewQRLoginService creates a new QR handshake service.
func NewQRLoginService(
	qrRepo domain.QRTokenRepository,
	userRepo domain.UserRepository,
	sessionSvc domain.SessionService,
	codeSvc domain.CodeService,
	ttl time.Duration,
	audit domain.AuditLogger,
) domain.QRLoginService {
	return &QRLoginServiceImpl{
		qrRepo:     qrRepo,
		userRepo:   userRepo,
		sessionSvc: sessionSvc,
		codeSvc:    codeSvc,
		ttl:        ttl,
		audit:      audit,
	}
}

// Generate implements domain.QRLoginService. The plaintext nonce goes back
// to the caller for QR rendering; only its digest is stored.
func (s *QRLoginServiceImpl) Generate(ctx context.Context) (string, time.Time, error) {
	nonce, err := s.codeSvc.GenerateToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate QR nonce: %w", err)
	}

	token := &domain.QRLoginToken{
		TokenHash: s.codeSvc.Digest(nonce),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.qrRepo.Create(ctx, token); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store QR token: %w", err)
	}
	return nonce, token.ExpiresAt, nil
}

// Scan implements domain.QRLoginService. The scanning caller vouches for
// the polling device, so a suspended or rejected scanner may not transfer
// trust. Consumption is a single atomic test-and-set; replays and
// double-binds fail with the same invalid-or-expired answer as unknown
// nonces.
func (s *QRLoginServiceImpl) Scan(ctx context.Context, nonce string, scanner *domain.User) error {
	if err := statusGate(scanner); err != nil {
		return err
	}

	consumed, err := s.qrRepo.Consume(ctx, s.codeSvc.Digest(nonce), scanner.ID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to consume QR token: %w", err)
	}
	if !consumed {
		return domain.ErrCodeInvalid
	}

	s.audit.Log(domain.NewAuditEvent(domain.QRTokenConsumedEvent, scanner.ID).WithEmail(scanner.Email))
	return nil
}

// Poll implements domain.QRLoginService. "Not yet", "never existed" and
// "expired" are all the same non-error answer so clients can poll on a
// fixed interval; a consumed token mints a fresh session for the scanning
// user's identity.
func (s *QRLoginServiceImpl) Poll(ctx context.Context, nonce, ip, agent string) (*domain.QRPollResult, error) {
	token, err := s.qrRepo.FindByHash(ctx, s.codeSvc.Digest(nonce))
	if err != nil {
		if err == domain.ErrCodeInvalid {
			return &domain.QRPollResult{Authenticated: false}, nil
		}
		return nil, err
	}
	if !token.Consumed() {
		return &domain.QRPollResult{Authenticated: false}, nil
	}

	user, err := s.userRepo.FindByID(ctx, *token.UserID)
	if err != nil {
		return &domain.QRPollResult{Authenticated: false}, nil
	}
	// The scanner may have been suspended between scan and poll.
	if !user.CanAuthenticate() {
		return &domain.QRPollResult{Authenticated: false}, nil
	}

	session, err := s.sessionSvc.Issue(ctx, user.ID, ip, agent)
	if err != nil {
		return nil, err
	}
	return &domain.QRPollResult{Authenticated: true, User: user, Session: session}, nil
}
