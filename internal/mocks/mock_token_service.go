package mocks

import (
	"fmt"
	"time"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateFunc func(user *domain.User) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate generates an access token for the user
func (m *MockTokenService) Generate(user *domain.User) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(user)
	}
	// Default behavior: return a mock access token
	return fmt.Sprintf("access_token_user_%d_%s", user.ID, user.Role), nil
}

// Validate validates an access token and returns claims
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	// Default behavior: return valid claims for any non-empty token
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	now := time.Now().Unix()
	return &domain.TokenClaims{
		UserID:    1,
		Email:     "user@example.com",
		Phone:     "+2348012345678",
		Role:      domain.RoleUser,
		IssuedAt:  now,
		ExpiresAt: now + 1800, // 30 minutes
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
