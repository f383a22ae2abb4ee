package domain

import "time"

// Roles known to the platform.
const (
	RolePatient       = "patient"
	RoleDoctor        = "doctor"
	RoleHospitalAdmin = "hospital_admin"
)

// Account statuses. Doctors and hospital admins start at pending and are
// moved by the approval workflow; suspended and rejected block every
// authentication path.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusRejected  = "rejected"
)

// Step-up challenge actions. Codes issued for one action never verify
// another.
const (
	ActionGrantAccess       = "grant_access"
	ActionSellData          = "sell_data"
	ActionEmergencySettings = "emergency_settings"
)

// Two-factor channel types.
const (
	TwoFactorTOTP  = "totp"
	TwoFactorSMS   = "sms"
	TwoFactorEmail = "email"
)

// Verification request types and statuses.
const (
	VerificationMedicalLicense      = "medical_license"
	VerificationHospitalAffiliation = "hospital_affiliation"
	VerificationGovernmentID        = "government_id"

	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// ValidRole reports whether role is one of the platform roles.
func ValidRole(role string) bool {
	return role == RolePatient || role == RoleDoctor || role == RoleHospitalAdmin
}

// ValidChallengeAction reports whether action belongs to the closed set of
// step-up actions.
func ValidChallengeAction(action string) bool {
	return action == ActionGrantAccess || action == ActionSellData || action == ActionEmergencySettings
}

// ValidTwoFactorType reports whether t is a registrable 2FA channel.
func ValidTwoFactorType(t string) bool {
	return t == TwoFactorTOTP || t == TwoFactorSMS || t == TwoFactorEmail
}

// User is the identity record. Email is globally unique. EmergencyCodeHash
// holds at most one live single-use code digest.
type User struct {
	ID                string
	Email             string
	PasswordHash      string
	Phone             string
	Role              string
	Status            string
	TwoFactorEnabled  bool
	EmergencyCodeHash string
	LastLoginAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CanAuthenticate reports whether the account status permits any login
// method, regardless of credential validity.
func (u *User) CanAuthenticate() bool {
	return u.Status != StatusSuspended && u.Status != StatusRejected
}

// Session is the opaque bearer credential. Token carries the raw value only
// between minting and handoff to the client; the store keys sessions by the
// token digest and never persists the raw value.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// QRLoginToken is a single-use pairing handle. Only the nonce digest is
// persisted; UserID and ConsumedAt stay unset until an authenticated device
// scans the code.
type QRLoginToken struct {
	ID         string
	TokenHash  string
	UserID     *string
	ConsumedAt *time.Time
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// Consumed reports whether the token has been bound to a scanning user.
func (t *QRLoginToken) Consumed() bool {
	return t.ConsumedAt != nil && t.UserID != nil
}

// TwoFactorMethod is a registered secondary-factor channel. Secret is set
// for TOTP enrollments only.
type TwoFactorMethod struct {
	ID        string
	UserID    string
	Type      string
	Secret    string
	CreatedAt time.Time
}

// UserProfile carries display fields shared by every role.
type UserProfile struct {
	UserID    string
	FirstName string
	LastName  string
}

// DoctorProfile is the role-specific profile created at doctor registration.
type DoctorProfile struct {
	UserID         string
	LicenseNumber  string
	IssuingBody    string
	Specialization string
	HospitalID     string
}

// HospitalProfile is the role-specific profile created at hospital
// registration.
type HospitalProfile struct {
	UserID        string
	HospitalName  string
	LicenseNumber string
	Address       string
	ContactNumber string
}

// VerificationRequest gates onboarding for roles requiring admin approval.
// It is reviewed exactly once; the review drives the owner's status
// transition.
type VerificationRequest struct {
	ID              string
	UserID          string
	Type            string
	DocumentType    string
	DocumentNumber  string
	Status          string
	ReviewerID      string
	RejectionReason string
	ReviewedAt      *time.Time
	CreatedAt       time.Time
}

// RegistrationResult is what the registration intake hands back: a session
// for patients, a pending acknowledgment for roles awaiting approval.
// Never both.
type RegistrationResult struct {
	User             *User
	Session          *Session
	RequiresApproval bool
}

// AuthResult is the outcome of a successful authentication.
type AuthResult struct {
	User    *User
	Session *Session
	// Warning is set when the method used is now exhausted, e.g. an
	// emergency code that must be re-provisioned.
	Warning string
}

// QRPollResult is returned to the unauthenticated polling device.
// Authenticated stays false until a logged-in device scans the code.
type QRPollResult struct {
	Authenticated bool
	User          *User
	Session       *Session
}
