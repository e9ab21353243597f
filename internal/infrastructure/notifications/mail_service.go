package notifications

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// MailServiceImpl implements domain.MailSender over SMTP
type MailServiceImpl struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *slog.Logger
}

// NewMailService creates a new SMTP mail sender. When host is empty the
// sender runs in mock mode and logs messages instead of dispatching them.
func NewMailService(host string, port int, username, password, from string, logger *slog.Logger) domain.MailSender {
	return &MailServiceImpl{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

// SendPasswordResetToken implements domain.MailSender
func (m *MailServiceImpl) SendPasswordResetToken(email, token, firstName string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Password Reset</h2>
    <p>%sUse this token to reset your password:</p>
    <div style="font-size: 20px; font-weight: bold; letter-spacing: 2px;">%s</div>
    <p>The token expires in 1 hour. If you did not request a reset, ignore this email.</p>
  </div>
</body>
</html>`, greeting(firstName), token)

	return m.send(email, "Reset your password", body)
}

// SendVerificationOTP implements domain.MailSender
func (m *MailServiceImpl) SendVerificationOTP(email, code, firstName string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Email Verification</h2>
    <p>%sYour verification code is:</p>
    <div style="font-size: 28px; font-weight: bold; letter-spacing: 3px;">%s</div>
  </div>
</body>
</html>`, greeting(firstName), code)

	return m.send(email, "Verify your email", body)
}

// SendMarketingEmail implements domain.MailSender
func (m *MailServiceImpl) SendMarketingEmail(email, subject, body string) error {
	return m.send(email, subject, body)
}

func (m *MailServiceImpl) send(to, subject, body string) error {
	if m.host == "" {
		m.logger.Info("mock email", slog.String("to", to), slog.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
