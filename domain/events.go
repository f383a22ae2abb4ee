package domain

import "time"

// AuditEventType identifies a security-relevant event.
type AuditEventType string

const (
	UserRegisteredEvent      AuditEventType = "USER_REGISTERED"
	UserLoginEvent           AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent    AuditEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent          AuditEventType = "USER_LOGOUT"
	EmergencyLoginEvent      AuditEventType = "EMERGENCY_LOGIN"
	EmergencyCodeIssuedEvent AuditEventType = "EMERGENCY_CODE_ISSUED"
	QRTokenConsumedEvent     AuditEventType = "QR_TOKEN_CONSUMED"
	ChallengeVerifiedEvent   AuditEventType = "CHALLENGE_VERIFIED"
	VerificationReviewEvent  AuditEventType = "VERIFICATION_REVIEWED"
)

// AuditEvent is a security event record handed to the audit logger. The
// core never blocks on audit delivery; failures are logged and dropped.
type AuditEvent struct {
	EventType AuditEventType
	UserID    string
	Email     string
	IP        string
	UserAgent string
	Timestamp time.Time
	Success   bool
	Detail    string
}

// AuditLogger records security events.
type AuditLogger interface {
	Log(event AuditEvent)
}

// NewAuditEvent creates an event stamped with the current time.
func NewAuditEvent(eventType AuditEventType, userID string) AuditEvent {
	return AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// Failed marks the event unsuccessful with a short detail string.
func (e AuditEvent) Failed(detail string) AuditEvent {
	e.Success = false
	e.Detail = detail
	return e
}

// WithEmail sets the email field.
func (e AuditEvent) WithEmail(email string) AuditEvent {
	e.Email = email
	return e
}

// WithClient sets the advisory client fields.
func (e AuditEvent) WithClient(ip, agent string) AuditEvent {
	e.IP = ip
	e.UserAgent = agent
	return e
}
