package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/mocks"
)

// testLogger returns a logger that swallows everything
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testAuthConfig returns the auth config used across service tests
func testAuthConfig() AuthConfig {
	return AuthConfig{
		SessionTTL:    30 * time.Minute,
		ResetTokenTTL: time.Hour,
	}
}

// testOTPConfig returns the OTP config used across service tests
func testOTPConfig() OTPConfig {
	return OTPConfig{
		TTL:         10 * time.Minute,
		DailyLimit:  3,
		MinInterval: 5 * time.Minute,
	}
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	phoneSvc domain.PhoneValidator,
	mailSvc domain.MailSender) domain.AuthService {
	t.Helper()

	// Use provided mocks or create defaults
	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	if otpSvc == nil {
		otpSvc = mocks.NewMockOTPService()
	}
	if phoneSvc == nil {
		phoneSvc = mocks.NewMockPhoneValidator()
	}
	if mailSvc == nil {
		mailSvc = mocks.NewMockMailSender()
	}

	return NewAuthService(userRepo, passwordSvc, tokenSvc, otpSvc, phoneSvc, mailSvc, testAuthConfig(), testLogger())
}

// createValidUser creates a fully verified, active user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:              1,
		FirstName:       "Ada",
		LastName:        "Obi",
		Email:           "test@example.com",
		Phone:           "+2348012345678",
		PasswordHash:    "hashed_password123",
		Role:            domain.RoleUser,
		IsActive:        true,
		IsPhoneVerified: true,
		IsEmailVerified: true,
		CreatedAt:       time.Now().Add(-24 * time.Hour),
		UpdatedAt:       time.Now().Add(-1 * time.Hour),
	}
}

// createUnverifiedUser creates a user who has not confirmed their phone yet
func createUnverifiedUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.IsPhoneVerified = false
	return user
}

// createInactiveUser creates a deactivated user entity for testing
func createInactiveUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.IsActive = false
	return user
}

// createAdminUser creates an admin user entity for testing
func createAdminUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.ID = 2
	user.Email = "admin@example.com"
	user.Phone = "+2348098765432"
	user.Role = domain.RoleAdmin
	return user
}

// assertAuthResult validates the structure and content of an AuthResult
func assertAuthResult(t *testing.T, result *domain.AuthResult, expectedUser *domain.User) {
	t.Helper()

	if result == nil {
		t.Fatal("AuthResult is nil")
	}

	if result.User == nil {
		t.Fatal("AuthResult.User is nil")
	}

	if result.User.ID != expectedUser.ID {
		t.Errorf("expected user ID %d, got %d", expectedUser.ID, result.User.ID)
	}

	if result.User.Phone != expectedUser.Phone {
		t.Errorf("expected user phone %s, got %s", expectedUser.Phone, result.User.Phone)
	}

	if result.AccessToken == "" {
		t.Error("AccessToken is empty")
	}

	if result.ExpiresIn <= 0 {
		t.Errorf("expected positive ExpiresIn, got %d", result.ExpiresIn)
	}
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// setupSuccessfulLoginMocks configures mocks for a successful login of testUser
func setupSuccessfulLoginMocks(t *testing.T,
	userRepo *mocks.MockUserRepository,
	passwordSvc *mocks.MockPasswordService,
	tokenSvc *mocks.MockTokenService,
	testUser *domain.User) {
	t.Helper()

	userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		if phone == testUser.Phone {
			return testUser, nil
		}
		return nil, domain.ErrUserNotFound
	}

	passwordSvc.VerifyFunc = func(hashedPassword, password string) bool {
		return hashedPassword == "hashed_password123" && password == "password123"
	}

	tokenSvc.GenerateFunc = func(user *domain.User) (string, error) {
		return "access_token_123", nil
	}
}
