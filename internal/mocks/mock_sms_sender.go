package mocks

import (
	"sync"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// SentSMS records a single SMS handed to the mock sender
type SentSMS struct {
	Phone string
	Body  string
	Code  string
}

// MockSMSSender implements domain.SMSSender interface for testing
type MockSMSSender struct {
	SendPhoneVerificationOTPFunc func(phone, code, firstName string) error
	SendPasswordResetOTPFunc     func(phone, code, firstName string) error
	SendMarketingSMSFunc         func(phone, body string) error

	mu   sync.Mutex
	sent []SentSMS
}

// NewMockSMSSender creates a new MockSMSSender with default behaviors
func NewMockSMSSender() *MockSMSSender {
	return &MockSMSSender{}
}

// SendPhoneVerificationOTP delivers a phone verification code
func (m *MockSMSSender) SendPhoneVerificationOTP(phone, code, firstName string) error {
	if m.SendPhoneVerificationOTPFunc != nil {
		return m.SendPhoneVerificationOTPFunc(phone, code, firstName)
	}
	// Default behavior: record and succeed
	m.record(SentSMS{Phone: phone, Code: code})
	return nil
}

// SendPasswordResetOTP delivers a password reset code
func (m *MockSMSSender) SendPasswordResetOTP(phone, code, firstName string) error {
	if m.SendPasswordResetOTPFunc != nil {
		return m.SendPasswordResetOTPFunc(phone, code, firstName)
	}
	// Default behavior: record and succeed
	m.record(SentSMS{Phone: phone, Code: code})
	return nil
}

// SendMarketingSMS delivers a campaign message
func (m *MockSMSSender) SendMarketingSMS(phone, body string) error {
	if m.SendMarketingSMSFunc != nil {
		return m.SendMarketingSMSFunc(phone, body)
	}
	// Default behavior: record and succeed
	m.record(SentSMS{Phone: phone, Body: body})
	return nil
}

// Sent returns a copy of everything recorded so far
func (m *MockSMSSender) Sent() []SentSMS {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentSMS, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *MockSMSSender) record(s SentSMS) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, s)
}

// Compile-time interface compliance verification
var _ domain.SMSSender = (*MockSMSSender)(nil)
