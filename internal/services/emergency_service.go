package services

import (
	"context"
	"fmt"

	"github.com/Kenc01/MediChain-PH/domain"
)

// EmergencyWarning is reported after a successful emergency login: the code
// just used is gone and must be re-provisioned.
const EmergencyWarning = "Emergency code used. Please set up a new authentication method."

// EmergencyAccessServiceImpl implements domain.EmergencyAccessService:
// a single live backup code per user, consumed on first successful use.
type EmergencyAccessServiceImpl struct {
	userRepo   domain.UserRepository
	sessionSvc domain.SessionService
	codeSvc    domain.CodeService
	audit      domain.AuditLogger
}

// NewEmergencyAccessService creates a new emergency access service.
func NewEmergencyAccessService(
	userRepo domain.UserRepository,
	sessionSvc domain.SessionService,
	codeSvc domain.CodeService,
	audit domain.AuditLogger,
) domain.EmergencyAccessService {
	return &EmergencyAccessServiceImpl{
		userRepo:   userRepo,
		sessionSvc: sessionSvc,
		codeSvc:    codeSvc,
		audit:      audit,
	}
}

// GenerateCode implements domain.EmergencyAccessService. Any previously
// issued code is invalidated by the overwrite.
func (s *EmergencyAccessServiceImpl) GenerateCode(ctx context.Context, userID string) (string, error) {
	code, err := s.codeSvc.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate emergency code: %w", err)
	}
	if err := s.userRepo.SetEmergencyCodeHash(ctx, userID, s.codeSvc.Digest(code)); err != nil {
		return "", err
	}
	s.audit.Log(domain.NewAuditEvent(domain.EmergencyCodeIssuedEvent, userID))
	return code, nil
}

// Login implements domain.EmergencyAccessService. Unknown email, unset code
// and wrong code all collapse into ErrInvalidCredentials; the digest
// comparison is constant-time, and the conditional clear guarantees a code
// authenticates at most once even under concurrent attempts.
func (s *EmergencyAccessServiceImpl) Login(ctx context.Context, email, code, ip, agent string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.EmergencyCodeHash == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if err := statusGate(user); err != nil {
		return nil, err
	}

	presented := s.codeSvc.Digest(code)
	if !s.codeSvc.DigestEqual(presented, user.EmergencyCodeHash) {
		s.audit.Log(domain.NewAuditEvent(domain.EmergencyLoginEvent, user.ID).WithEmail(email).WithClient(ip, agent).Failed("code mismatch"))
		return nil, domain.ErrInvalidCredentials
	}

	// Compare-and-set against the stored digest: the loser of a concurrent
	// double-spend sees the hash already cleared and is turned away.
	cleared, err := s.userRepo.ClearEmergencyCodeHash(ctx, user.ID, user.EmergencyCodeHash)
	if err != nil {
		return nil, fmt.Errorf("failed to consume emergency code: %w", err)
	}
	if !cleared {
		return nil, domain.ErrInvalidCredentials
	}
	user.EmergencyCodeHash = ""

	session, err := s.sessionSvc.Issue(ctx, user.ID, ip, agent)
	if err != nil {
		return nil, err
	}

	s.audit.Log(domain.NewAuditEvent(domain.EmergencyLoginEvent, user.ID).WithEmail(email).WithClient(ip, agent))
	return &domain.AuthResult{User: user, Session: session, Warning: EmergencyWarning}, nil
}
