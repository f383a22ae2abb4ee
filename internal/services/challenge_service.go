package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Kenc01/MediChain-PH/domain"
)

// ChallengeServiceImpl implements domain.ChallengeService: one-time codes
// scoped to a single sensitive action, plus 2FA channel enrollment.
type ChallengeServiceImpl struct {
	challengeRepo   domain.ChallengeRepository
	methodRepo      domain.TwoFactorMethodRepository
	userRepo        domain.UserRepository
	codeSvc         domain.CodeService
	notificationSvc domain.NotificationService
	ttl             time.Duration
	audit           domain.AuditLogger
}

// NewChallengeService creates a new step-up challenge service.
func NewChallengeService(
	challengeRepo domain.ChallengeRepository,
	methodRepo domain.TwoFactorMethodRepository,
	userRepo domain.UserRepository,
	codeSvc domain.CodeService,
	notificationSvc domain.NotificationService,
	ttl time.Duration,
	audit domain.AuditLogger,
) domain.ChallengeService {
	return &ChallengeServiceImpl{
		challengeRepo:   challengeRepo,
		methodRepo:      methodRepo,
		userRepo:        userRepo,
		codeSvc:         codeSvc,
		notificationSvc: notificationSvc,
		ttl:             ttl,
		audit:           audit,
	}
}

// Request implements domain.ChallengeService. The plaintext code is handed
// to the notifier and returned to the transport layer once; after this call
// only its digest exists. Outstanding challenges for other actions, or
// earlier ones for the same action, are left alone and simply expire.
func (s *ChallengeServiceImpl) Request(ctx context.Context, user *domain.User, action string) (string, error) {
	if !domain.ValidChallengeAction(action) {
		return "", domain.ErrInvalidAction
	}

	code, err := s.codeSvc.GenerateNumeric()
	if err != nil {
		return "", fmt.Errorf("failed to generate challenge code: %w", err)
	}
	if err := s.challengeRepo.Store(ctx, user.ID, action, s.codeSvc.Digest(code), s.ttl); err != nil {
		return "", fmt.Errorf("failed to store challenge: %w", err)
	}

	message := fmt.Sprintf("Your MediChain verification code is %s. Valid for %d minutes.", code, int(s.ttl.Minutes()))
	channel, err := s.deliveryChannel(ctx, user)
	if err != nil {
		return "", err
	}
	switch channel {
	case domain.TwoFactorSMS:
		if err := s.notificationSvc.SendSMS(user.Phone, message); err != nil {
			return "", fmt.Errorf("failed to deliver challenge code: %w", err)
		}
	default:
		if err := s.notificationSvc.SendEmail(user.Email, "Verification code", message); err != nil {
			return "", fmt.Errorf("failed to deliver challenge code: %w", err)
		}
	}

	return code, nil
}

// deliveryChannel picks the transport from the user's enrolled 2FA methods,
// in enrollment order. TOTP enrollments carry their own secret and cannot
// deliver a server-minted code, so they are skipped. Without a usable
// enrollment the code goes to the phone when one is on file, else to email.
func (s *ChallengeServiceImpl) deliveryChannel(ctx context.Context, user *domain.User) (string, error) {
	methods, err := s.methodRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load 2fa methods: %w", err)
	}
	for _, m := range methods {
		switch m.Type {
		case domain.TwoFactorSMS:
			if user.Phone != "" {
				return domain.TwoFactorSMS, nil
			}
		case domain.TwoFactorEmail:
			return domain.TwoFactorEmail, nil
		}
	}
	if user.Phone != "" {
		return domain.TwoFactorSMS, nil
	}
	return domain.TwoFactorEmail, nil
}

// Verify implements domain.ChallengeService. A false return carries no
// detail: wrong code, wrong action, expired and already-used are
// indistinguishable to the caller.
func (s *ChallengeServiceImpl) Verify(ctx context.Context, userID, action, code string) (bool, error) {
	if !domain.ValidChallengeAction(action) {
		return false, domain.ErrInvalidAction
	}

	ok, err := s.challengeRepo.Consume(ctx, userID, action, s.codeSvc.Digest(code))
	if err != nil {
		return false, fmt.Errorf("failed to consume challenge: %w", err)
	}
	if ok {
		s.audit.Log(domain.NewAuditEvent(domain.ChallengeVerifiedEvent, userID))
	}
	return ok, nil
}

// EnrollMethod implements domain.ChallengeService. Enrolling any channel
// flips the user's two-factor flag; TOTP enrollments carry a fresh random
// secret for the authenticator app.
func (s *ChallengeServiceImpl) EnrollMethod(ctx context.Context, userID, methodType string) (*domain.TwoFactorMethod, error) {
	if !domain.ValidTwoFactorType(methodType) {
		return nil, domain.ErrInvalidTwoFactorType
	}

	method := &domain.TwoFactorMethod{
		UserID: userID,
		Type:   methodType,
	}
	if methodType == domain.TwoFactorTOTP {
		secret, err := s.codeSvc.GenerateToken()
		if err != nil {
			return nil, fmt.Errorf("failed to generate TOTP secret: %w", err)
		}
		method.Secret = secret
	}

	if err := s.methodRepo.Create(ctx, method); err != nil {
		return nil, fmt.Errorf("failed to store 2FA method: %w", err)
	}
	if err := s.userRepo.SetTwoFactorEnabled(ctx, userID, true); err != nil {
		return nil, fmt.Errorf("failed to enable two-factor flag: %w", err)
	}
	return method, nil
}
