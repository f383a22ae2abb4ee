package mocks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Kenc01/MediChain-PH/domain"
)

// MockPasswordService implements domain.PasswordService for testing. The
// default behaviors are deterministic: Hash prefixes the plaintext and
// Verify checks that prefix.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed_"+password
}

// MockCodeService implements domain.CodeService for testing. Digest is a
// real SHA-256 so services exercising hash round-trips behave as in
// production; generation is sequential for predictability.
type MockCodeService struct {
	GenerateNumericFunc func() (string, error)
	GenerateTokenFunc   func() (string, error)
	DigestFunc          func(value string) string
	DigestEqualFunc     func(a, b string) bool

	counter atomic.Int64
}

func NewMockCodeService() *MockCodeService {
	return &MockCodeService{}
}

func (m *MockCodeService) GenerateNumeric() (string, error) {
	if m.GenerateNumericFunc != nil {
		return m.GenerateNumericFunc()
	}
	return fmt.Sprintf("%06d", m.counter.Add(1)), nil
}

func (m *MockCodeService) GenerateToken() (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc()
	}
	return fmt.Sprintf("mock-token-%d", m.counter.Add(1)), nil
}

func (m *MockCodeService) Digest(value string) string {
	if m.DigestFunc != nil {
		return m.DigestFunc(value)
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func (m *MockCodeService) DigestEqual(a, b string) bool {
	if m.DigestEqualFunc != nil {
		return m.DigestEqualFunc(a, b)
	}
	return a == b
}

// MockNotificationService implements domain.NotificationService for
// testing and records what was sent.
type MockNotificationService struct {
	SendSMSFunc   func(to, message string) error
	SendEmailFunc func(to, subject, body string) error

	SentSMS    []string
	SentEmails []string
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	m.SentSMS = append(m.SentSMS, fmt.Sprintf("%s: %s", to, message))
	return nil
}

func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	m.SentEmails = append(m.SentEmails, fmt.Sprintf("%s: %s", to, subject))
	return nil
}

// MockSessionService implements domain.SessionService for testing. The
// default Issue mints a predictable session.
type MockSessionService struct {
	IssueFunc     func(ctx context.Context, userID, ip, agent string) (*domain.Session, error)
	ResolveFunc   func(ctx context.Context, token string) (*domain.User, *domain.Session, error)
	RevokeFunc    func(ctx context.Context, token string) error
	RevokeAllFunc func(ctx context.Context, userID string) error

	counter atomic.Int64
}

func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

func (m *MockSessionService) Issue(ctx context.Context, userID, ip, agent string) (*domain.Session, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, userID, ip, agent)
	}
	now := time.Now()
	return &domain.Session{
		Token:     fmt.Sprintf("mock-session-%d", m.counter.Add(1)),
		UserID:    userID,
		IP:        ip,
		UserAgent: agent,
		CreatedAt: now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
	}, nil
}

func (m *MockSessionService) Resolve(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, token)
	}
	return nil, nil, domain.ErrUnauthenticated
}

func (m *MockSessionService) Revoke(ctx context.Context, token string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, token)
	}
	return nil
}

func (m *MockSessionService) RevokeAll(ctx context.Context, userID string) error {
	if m.RevokeAllFunc != nil {
		return m.RevokeAllFunc(ctx, userID)
	}
	return nil
}

// MockAuditLogger implements domain.AuditLogger for testing and keeps the
// events it saw.
type MockAuditLogger struct {
	Events []domain.AuditEvent
}

func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

func (m *MockAuditLogger) Log(event domain.AuditEvent) {
	m.Events = append(m.Events, event)
}
