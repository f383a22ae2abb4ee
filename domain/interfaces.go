package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateStatus(ctx context.Context, id, status string) error
	SetTwoFactorEnabled(ctx context.Context, id string, enabled bool) error
	SetEmergencyCodeHash(ctx context.Context, id, hash string) error
	// ClearEmergencyCodeHash clears the stored digest only if it still
	// equals expectedHash, reporting whether this call won the clear.
	// Single-use enforcement under concurrent logins depends on it.
	ClearEmergencyCodeHash(ctx context.Context, id, expectedHash string) (bool, error)
}

// ProfileRepository defines access to the shared and role-specific profiles
// created at registration.
type ProfileRepository interface {
	CreateUserProfile(ctx context.Context, profile *UserProfile) error
	FindUserProfile(ctx context.Context, userID string) (*UserProfile, error)
	CreateDoctorProfile(ctx context.Context, profile *DoctorProfile) error
	FindDoctorProfile(ctx context.Context, userID string) (*DoctorProfile, error)
	CreateHospitalProfile(ctx context.Context, profile *HospitalProfile) error
	FindHospitalProfile(ctx context.Context, userID string) (*HospitalProfile, error)
	ListHospitals(ctx context.Context) ([]*HospitalProfile, error)
}

// SessionRepository stores bearer sessions keyed by token digest.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

// QRTokenRepository stores QR pairing tokens. Consume must be a single
// atomic conditional transition; two concurrent calls for one token may
// never both succeed.
type QRTokenRepository interface {
	Create(ctx context.Context, token *QRLoginToken) error
	FindByHash(ctx context.Context, tokenHash string) (*QRLoginToken, error)
	Consume(ctx context.Context, tokenHash, userID string, at time.Time) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// ChallengeRepository stores step-up challenge digests scoped to a
// (user, action, code) triple. Consume is atomic and single-use.
type ChallengeRepository interface {
	Store(ctx context.Context, userID, action, codeHash string, ttl time.Duration) error
	Consume(ctx context.Context, userID, action, codeHash string) (bool, error)
}

// TwoFactorMethodRepository stores enrolled secondary-factor channels.
type TwoFactorMethodRepository interface {
	Create(ctx context.Context, method *TwoFactorMethod) error
	ListByUser(ctx context.Context, userID string) ([]*TwoFactorMethod, error)
}

// VerificationRepository stores onboarding verification requests. Review
// must update the request and the owning user's status together or not at
// all, and fail with ErrAlreadyReviewed when the request left pending.
type VerificationRepository interface {
	Create(ctx context.Context, request *VerificationRequest) error
	FindByID(ctx context.Context, id string) (*VerificationRequest, error)
	ListPending(ctx context.Context) ([]*VerificationRequest, error)
	Review(ctx context.Context, id, reviewerID, status, reason, userStatus string) (*VerificationRequest, error)
}

// PasswordService defines slow, salted password hashing.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// CodeService generates and digests short-lived one-time secrets. Digest is
// a fast cryptographic hash, deliberately distinct from the slow password
// hash: these secrets expire within minutes and are rate-limited by
// single-use semantics.
type CodeService interface {
	GenerateNumeric() (string, error)
	GenerateToken() (string, error)
	Digest(value string) string
	DigestEqual(a, b string) bool
}

// NotificationService delivers one-time codes out-of-band.
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// SessionService is the session manager: mints, resolves and revokes opaque
// bearer tokens.
type SessionService interface {
	Issue(ctx context.Context, userID, ip, agent string) (*Session, error)
	Resolve(ctx context.Context, token string) (*User, *Session, error)
	Revoke(ctx context.Context, token string) error
	RevokeAll(ctx context.Context, userID string) error
}

// PatientRegistration is the registration intake for patients. GovernmentID
// is optional and advisory.
type PatientRegistration struct {
	Email          string
	Password       string
	Phone          string
	FirstName      string
	LastName       string
	DocumentType   string
	DocumentNumber string
}

// DoctorRegistration is the registration intake for doctors.
type DoctorRegistration struct {
	Email          string
	Password       string
	Phone          string
	FirstName      string
	LastName       string
	LicenseNumber  string
	IssuingBody    string
	Specialization string
	HospitalID     string
}

// HospitalRegistration is the registration intake for hospital admins.
type HospitalRegistration struct {
	Email         string
	Password      string
	Phone         string
	FirstName     string
	LastName      string
	HospitalName  string
	LicenseNumber string
	Address       string
	ContactNumber string
}

// AuthService defines password authentication and registration.
type AuthService interface {
	RegisterPatient(ctx context.Context, reg PatientRegistration, ip, agent string) (*RegistrationResult, error)
	RegisterDoctor(ctx context.Context, reg DoctorRegistration) (*RegistrationResult, error)
	RegisterHospital(ctx context.Context, reg HospitalRegistration) (*RegistrationResult, error)
	Login(ctx context.Context, email, password, ip, agent string) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
}

// QRLoginService is the cross-device pairing handshake.
type QRLoginService interface {
	Generate(ctx context.Context) (nonce string, expiresAt time.Time, err error)
	Scan(ctx context.Context, nonce string, scanner *User) error
	Poll(ctx context.Context, nonce, ip, agent string) (*QRPollResult, error)
}

// ChallengeService issues and verifies action-scoped step-up codes and
// manages 2FA enrollments.
type ChallengeService interface {
	Request(ctx context.Context, user *User, action string) (string, error)
	Verify(ctx context.Context, userID, action, code string) (bool, error)
	EnrollMethod(ctx context.Context, userID, methodType string) (*TwoFactorMethod, error)
}

// EmergencyAccessService manages single-use backup-code login.
type EmergencyAccessService interface {
	GenerateCode(ctx context.Context, userID string) (string, error)
	Login(ctx context.Context, email, code, ip, agent string) (*AuthResult, error)
}

// ApprovalService drives the onboarding review workflow.
type ApprovalService interface {
	ListPending(ctx context.Context) ([]*VerificationRequest, error)
	Approve(ctx context.Context, requestID, reviewerID string) (*VerificationRequest, error)
	Reject(ctx context.Context, requestID, reviewerID, reason string) (*VerificationRequest, error)
}
