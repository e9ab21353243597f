package notifications

import (
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// TwilioServiceImpl implements domain.SMSSender
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *slog.Logger
}

// NewTwilioService creates a new Twilio SMS sender. When fromNumber is empty
// the sender runs in mock mode and logs messages instead of dispatching them,
// so local development works without credentials.
func NewTwilioService(accountSID, authToken, fromNumber string, logger *slog.Logger) domain.SMSSender {
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

// SendPhoneVerificationOTP implements domain.SMSSender
func (t *TwilioServiceImpl) SendPhoneVerificationOTP(phone, code, firstName string) error {
	return t.send(phone, fmt.Sprintf("%sYour verification code is %s.", greeting(firstName), code))
}

// SendPasswordResetOTP implements domain.SMSSender
func (t *TwilioServiceImpl) SendPasswordResetOTP(phone, code, firstName string) error {
	return t.send(phone, fmt.Sprintf("%sYour password reset code is %s.", greeting(firstName), code))
}

// SendMarketingSMS implements domain.SMSSender
func (t *TwilioServiceImpl) SendMarketingSMS(phone, body string) error {
	return t.send(phone, body)
}

func (t *TwilioServiceImpl) send(to, body string) error {
	if t.fromNumber == "" {
		t.logger.Info("mock sms", slog.String("to", to), slog.String("body", body))
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(body)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}

func greeting(firstName string) string {
	if firstName == "" {
		return ""
	}
	return fmt.Sprintf("Hello %s! ", firstName)
}
