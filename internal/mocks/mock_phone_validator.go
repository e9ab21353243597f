package mocks

import (
	"strings"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// MockPhoneValidator implements domain.PhoneValidator interface for testing
type MockPhoneValidator struct {
	ValidateFunc func(raw string) (*domain.PhoneValidation, error)
}

// NewMockPhoneValidator creates a new MockPhoneValidator with default behaviors
func NewMockPhoneValidator() *MockPhoneValidator {
	return &MockPhoneValidator{}
}

// Validate canonicalizes a raw phone number
func (m *MockPhoneValidator) Validate(raw string) (*domain.PhoneValidation, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(raw)
	}
	// Default behavior: accept anything already in E.164 shape, reject the rest
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "+") && len(trimmed) >= 8 {
		return &domain.PhoneValidation{IsValid: true, FormattedNumber: trimmed}, nil
	}
	return &domain.PhoneValidation{IsValid: false}, nil
}

// Compile-time interface compliance verification
var _ domain.PhoneValidator = (*MockPhoneValidator)(nil)
