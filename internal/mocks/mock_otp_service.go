package mocks

import (
	"context"
	"time"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc   func(ctx context.Context, user *domain.User, purpose domain.OTPPurpose) (*domain.OTPIssue, error)
	ConsumeFunc func(ctx context.Context, user *domain.User, purpose domain.OTPPurpose, code string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue issues a fresh code for the purpose
func (m *MockOTPService) Issue(ctx context.Context, user *domain.User, purpose domain.OTPPurpose) (*domain.OTPIssue, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, user, purpose)
	}
	// Default behavior: write "123456" into the slot and report it sent
	expires := time.Now().Add(10 * time.Minute)
	user.SetOTPSlot(purpose, "123456", expires)
	return &domain.OTPIssue{
		Purpose:   purpose,
		Code:      "123456", // Mock OTP code for testing
		ExpiresAt: expires,
	}, nil
}

// Consume validates a submitted code against the slot for the purpose
func (m *MockOTPService) Consume(ctx context.Context, user *domain.User, purpose domain.OTPPurpose, code string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, user, purpose, code)
	}
	// Default behavior: accept "123456" and clear the slot like the real engine
	stored, _ := user.OTPSlot(purpose)
	if stored == "" {
		return domain.ErrOTPNotFound
	}
	if code != stored {
		return domain.ErrOTPMismatch
	}
	user.ClearOTPSlot(purpose)
	switch purpose {
	case domain.OTPPurposePhoneVerification:
		user.IsPhoneVerified = true
	case domain.OTPPurposeEmailVerification:
		user.IsEmailVerified = true
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
