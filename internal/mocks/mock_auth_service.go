package mocks

import (
	"context"
	"time"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc                func(ctx context.Context, reg *domain.Registration) (*domain.RegistrationResult, error)
	LoginFunc                   func(ctx context.Context, login, password string) (*domain.AuthResult, error)
	VerifyPhoneFunc             func(ctx context.Context, phone, code string) error
	ResendPhoneOTPFunc          func(ctx context.Context, phone string) error
	VerifyEmailFunc             func(ctx context.Context, email, code string) error
	ResendEmailOTPFunc          func(ctx context.Context, email string) error
	RequestPasswordResetOTPFunc func(ctx context.Context, phone string) error
	ResetPasswordWithOTPFunc    func(ctx context.Context, phone, code, newPassword string) error
	RequestPasswordResetFunc    func(ctx context.Context, email string) error
	ResetPasswordWithTokenFunc  func(ctx context.Context, token, newPassword string) error
	GetUserProfileFunc          func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, reg *domain.Registration) (*domain.RegistrationResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	// Default behavior: return a mock user with the OTP marked sent
	return &domain.RegistrationResult{
		User: &domain.User{
			ID:           1,
			FirstName:    reg.FirstName,
			LastName:     reg.LastName,
			Email:        reg.Email,
			Phone:        reg.Phone,
			PasswordHash: "hashed_" + reg.Password,
			Role:         domain.RoleUser,
			IsActive:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		},
		OTPSent: true,
	}, nil
}

// Login authenticates a user and returns auth result
func (m *MockAuthService) Login(ctx context.Context, login, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, login, password)
	}
	// Default behavior: return successful auth result
	return &domain.AuthResult{
		User: &domain.User{
			ID:              1,
			Email:           "test@example.com",
			Phone:           login,
			Role:            domain.RoleUser,
			IsActive:        true,
			IsPhoneVerified: true,
		},
		AccessToken: "mock_access_token",
		ExpiresIn:   1800, // 30 minutes
	}, nil
}

// VerifyPhone confirms a phone verification code
func (m *MockAuthService) VerifyPhone(ctx context.Context, phone, code string) error {
	if m.VerifyPhoneFunc != nil {
		return m.VerifyPhoneFunc(ctx, phone, code)
	}
	// Default behavior: success
	return nil
}

// ResendPhoneOTP issues a fresh phone verification code
func (m *MockAuthService) ResendPhoneOTP(ctx context.Context, phone string) error {
	if m.ResendPhoneOTPFunc != nil {
		return m.ResendPhoneOTPFunc(ctx, phone)
	}
	// Default behavior: success
	return nil
}

// VerifyEmail confirms an email verification code
func (m *MockAuthService) VerifyEmail(ctx context.Context, email, code string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, email, code)
	}
	// Default behavior: success
	return nil
}

// ResendEmailOTP issues a fresh email verification code
func (m *MockAuthService) ResendEmailOTP(ctx context.Context, email string) error {
	if m.ResendEmailOTPFunc != nil {
		return m.ResendEmailOTPFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// RequestPasswordResetOTP sends a reset code to the user's phone
func (m *MockAuthService) RequestPasswordResetOTP(ctx context.Context, phone string) error {
	if m.RequestPasswordResetOTPFunc != nil {
		return m.RequestPasswordResetOTPFunc(ctx, phone)
	}
	// Default behavior: success
	return nil
}

// ResetPasswordWithOTP sets a new password after checking the reset code
func (m *MockAuthService) ResetPasswordWithOTP(ctx context.Context, phone, code, newPassword string) error {
	if m.ResetPasswordWithOTPFunc != nil {
		return m.ResetPasswordWithOTPFunc(ctx, phone, code, newPassword)
	}
	// Default behavior: success
	return nil
}

// RequestPasswordReset emails a reset link token
func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// ResetPasswordWithToken sets a new password after checking the emailed token
func (m *MockAuthService) ResetPasswordWithToken(ctx context.Context, token, newPassword string) error {
	if m.ResetPasswordWithTokenFunc != nil {
		return m.ResetPasswordWithTokenFunc(ctx, token, newPassword)
	}
	// Default behavior: success
	return nil
}

// GetUserProfile retrieves user profile information
func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	// Default behavior: return mock user profile
	return &domain.User{
		ID:              userID,
		FirstName:       "Test",
		LastName:        "User",
		Email:           "test@example.com",
		Phone:           "+2348012345678",
		Role:            domain.RoleUser,
		IsActive:        true,
		IsPhoneVerified: true,
		CreatedAt:       time.Now().Add(-24 * time.Hour),
		UpdatedAt:       time.Now(),
	}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
