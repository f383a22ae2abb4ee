package audit

import (
	"github.com/rs/zerolog"

	"github.com/Kenc01/MediChain-PH/domain"
)

// ZerologAuditLogger implements domain.AuditLogger by emitting structured
// security events to the application log stream.
type ZerologAuditLogger struct {
	logger zerolog.Logger
}

// NewZerologAuditLogger creates an audit logger on top of the given logger.
func NewZerologAuditLogger(logger zerolog.Logger) domain.AuditLogger {
	return &ZerologAuditLogger{logger: logger.With().Str("component", "audit").Logger()}
}

// Log implements domain.AuditLogger.
func (l *ZerologAuditLogger) Log(event domain.AuditEvent) {
	entry := l.logger.Info()
	if !event.Success {
		entry = l.logger.Warn()
	}
	entry.
		Str("event", string(event.EventType)).
		Str("user_id", event.UserID).
		Str("email", event.Email).
		Str("ip", event.IP).
		Str("user_agent", event.UserAgent).
		Bool("success", event.Success).
		Time("at", event.Timestamp).
		Msg(event.Detail)
}
