package notifications

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Kenc01/MediChain-PH/domain"
)

// TwilioServiceImpl implements domain.NotificationService. It carries the
// plaintext one-time codes to the user out-of-band; the core never re-reads
// a code after hashing it.
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
	logger     zerolog.Logger
}

// NewTwilioService creates a new Twilio notification service.
func NewTwilioService(accountSID, authToken, fromNumber string, logger zerolog.Logger) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioServiceImpl{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// SendSMS implements domain.NotificationService. When credentials are not
// configured the message is logged instead of sent, which keeps local
// development working without a Twilio account.
func (t *TwilioServiceImpl) SendSMS(to, message string) error {
	if t.fromNumber == "" {
		t.logger.Info().Str("to", to).Msg("sms delivery skipped, twilio not configured")
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}

// SendEmail implements domain.NotificationService. Email is handed off to
// an external channel; Twilio does not carry it, so this logs the handoff.
func (t *TwilioServiceImpl) SendEmail(to, subject, body string) error {
	t.logger.Info().Str("to", to).Str("subject", subject).Msg("email delivery delegated to external channel")
	return nil
}
