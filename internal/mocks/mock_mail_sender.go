package mocks

import (
	"sync"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// SentMail records a single email handed to the mock sender
type SentMail struct {
	Email   string
	Subject string
	Body    string
	Token   string
	Code    string
}

// MockMailSender implements domain.MailSender interface for testing
type MockMailSender struct {
	SendPasswordResetTokenFunc func(email, token, firstName string) error
	SendVerificationOTPFunc    func(email, code, firstName string) error
	SendMarketingEmailFunc     func(email, subject, body string) error

	mu   sync.Mutex
	sent []SentMail
}

// NewMockMailSender creates a new MockMailSender with default behaviors
func NewMockMailSender() *MockMailSender {
	return &MockMailSender{}
}

// SendPasswordResetToken delivers a reset link token
func (m *MockMailSender) SendPasswordResetToken(email, token, firstName string) error {
	if m.SendPasswordResetTokenFunc != nil {
		return m.SendPasswordResetTokenFunc(email, token, firstName)
	}
	// Default behavior: record and succeed
	m.record(SentMail{Email: email, Token: token})
	return nil
}

// SendVerificationOTP delivers an email verification code
func (m *MockMailSender) SendVerificationOTP(email, code, firstName string) error {
	if m.SendVerificationOTPFunc != nil {
		return m.SendVerificationOTPFunc(email, code, firstName)
	}
	// Default behavior: record and succeed
	m.record(SentMail{Email: email, Code: code})
	return nil
}

// SendMarketingEmail delivers a campaign email
func (m *MockMailSender) SendMarketingEmail(email, subject, body string) error {
	if m.SendMarketingEmailFunc != nil {
		return m.SendMarketingEmailFunc(email, subject, body)
	}
	// Default behavior: record and succeed
	m.record(SentMail{Email: email, Subject: subject, Body: body})
	return nil
}

// Sent returns a copy of everything recorded so far
func (m *MockMailSender) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *MockMailSender) record(s SentMail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, s)
}

// Compile-time interface compliance verification
var _ domain.MailSender = (*MockMailSender)(nil)
