package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/metrics"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	phoneSvc    domain.PhoneValidator
	mailSvc     domain.MailSender
	config      AuthConfig
	logger      *slog.Logger
	now         func() time.Time
}

type AuthConfig struct {
	SessionTTL    time.Duration
	ResetTokenTTL time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	phoneSvc domain.PhoneValidator,
	mailSvc domain.MailSender,
	config AuthConfig,
	logger *slog.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		phoneSvc:    phoneSvc,
		mailSvc:     mailSvc,
		config:      config,
		logger:      logger,
		now:         time.Now,
	}
}

// Register implements domain.AuthService. The phone is canonicalized before
// anything else, so every later lookup sees one spelling per number. The
// phone probe runs before the email probe; when both collide the phone
// conflict is the one reported. A signup whose verification SMS cannot be
// delivered still succeeds, with OTPSent false telling the caller to use
// the resend endpoint.
func (s *AuthServiceImpl) Register(ctx context.Context, reg *domain.Registration) (*domain.RegistrationResult, error) {
	validation, err := s.phoneSvc.Validate(reg.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to validate phone number: %w", err)
	}
	if !validation.IsValid {
		return nil, domain.ErrInvalidPhoneFormat
	}
	phone := validation.FormattedNumber

	if _, err := s.userRepo.FindByPhone(ctx, phone); err == nil {
		return nil, domain.ErrPhoneAlreadyRegistered
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check phone uniqueness: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(ctx, reg.Email); err == nil {
		return nil, domain.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		Phone:        phone,
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
		IsActive:     true,
		// Email addresses start out trusted; only the phone needs an OTP
		// round-trip before login works.
		IsEmailVerified: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateField) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.Registrations.Inc()
	s.logger.Info("user registered",
		slog.String("event", string(domain.UserRegistrationEvent)),
		slog.Uint64("user_id", uint64(user.ID)),
	)

	otpSent := true
	if _, err := s.otpSvc.Issue(ctx, user, domain.OTPPurposePhoneVerification); err != nil {
		otpSent = false
		s.logger.Warn("verification code not sent at signup",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.Any("error", err),
		)
	}

	return &domain.RegistrationResult{User: user, OTPSent: otpSent}, nil
}

// Login implements domain.AuthService. The login identifier is the phone
// number in any format the validator accepts. Absent users, unparseable
// identifiers and wrong passwords all collapse into ErrInvalidCredentials;
// account state checks run only after the password has matched.
func (s *AuthServiceImpl) Login(ctx context.Context, login, password string) (*domain.AuthResult, error) {
	validation, err := s.phoneSvc.Validate(login)
	if err != nil || !validation.IsValid {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByPhone(ctx, validation.FormattedNumber)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		s.logger.Info("login rejected",
			slog.String("event", string(domain.UserLoginFailureEvent)),
			slog.Uint64("user_id", uint64(user.ID)),
		)
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, domain.ErrAccountDisabled
	}

	if !user.IsPhoneVerified {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, domain.ErrPhoneNotVerified
	}

	accessToken, err := s.tokenSvc.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.logger.Info("user logged in",
		slog.String("event", string(domain.UserLoginEvent)),
		slog.Uint64("user_id", uint64(user.ID)),
	)

	return &domain.AuthResult{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.config.SessionTTL.Seconds()),
	}, nil
}

// VerifyPhone implements domain.AuthService
func (s *AuthServiceImpl) VerifyPhone(ctx context.Context, phone, code string) error {
	user, err := s.findByRawPhone(ctx, phone)
	if err != nil {
		return err
	}
	if user.IsPhoneVerified {
		return domain.ErrAlreadyVerified
	}

	if err := s.otpSvc.Consume(ctx, user, domain.OTPPurposePhoneVerification, code); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to persist phone verification: %w", err)
	}

	s.logger.Info("phone verified",
		slog.String("event", string(domain.PhoneVerifiedEvent)),
		slog.Uint64("user_id", uint64(user.ID)),
	)
	return nil
}

// ResendPhoneOTP implements domain.AuthService
func (s *AuthServiceImpl) ResendPhoneOTP(ctx context.Context, phone string) error {
	user, err := s.findByRawPhone(ctx, phone)
	if err != nil {
		return err
	}

	_, err = s.otpSvc.Issue(ctx, user, domain.OTPPurposePhoneVerification)
	return err
}

// VerifyEmail implements domain.AuthService
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return domain.ErrAlreadyVerified
	}

	if err := s.otpSvc.Consume(ctx, user, domain.OTPPurposeEmailVerification, code); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to persist email verification: %w", err)
	}

	s.logger.Info("email verified",
		slog.String("event", string(domain.EmailVerifiedEvent)),
		slog.Uint64("user_id", uint64(user.ID)),
	)
	return nil
}

// ResendEmailOTP implements domain.AuthService
func (s *AuthServiceImpl) ResendEmailOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	_, err = s.otpSvc.Issue(ctx, user, domain.OTPPurposeEmailVerification)
	return err
}

// RequestPasswordResetOTP implements domain.AuthService
func (s *AuthServiceImpl) RequestPasswordResetOTP(ctx context.Context, phone string) error {
	user, err := s.findByRawPhone(ctx, phone)
	if err != nil {
		return err
	}

	_, err = s.otpSvc.Issue(ctx, user, domain.OTPPurposePasswordReset)
	return err
}

// ResetPasswordWithOTP implements domain.AuthService. Consuming the code
// and storing the new password land in one update; any emailed reset token
// is cleared in the same write so the two recovery paths cannot be combined.
func (s *AuthServiceImpl) ResetPasswordWithOTP(ctx context.Context, phone, code, newPassword string) error {
	user, err := s.findByRawPhone(ctx, phone)
	if err != nil {
		return err
	}

	if err := s.otpSvc.Consume(ctx, user, domain.OTPPurposePasswordReset, code); err != nil {
		return err
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashedPassword
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}

	s.logger.Info("password reset",
		slog.String("event", string(domain.PasswordResetEvent)),
		slog.Uint64("user_id", uint64(user.ID)),
	)
	return nil
}

// RequestPasswordReset implements domain.AuthService. An unknown email
// returns nil before any state change or send, so the response never
// reveals whether an account exists. The token is stored before the email
// goes out; a send failure surfaces as ErrDeliveryFailed with the token
// already committed.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up email: %w", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := s.now().Add(s.config.ResetTokenTTL)
	user.ResetPasswordToken = token
	user.ResetPasswordExpires = &expires

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	s.logger.Info("reset token issued",
		slog.String("event", string(domain.ResetTokenRequestEvent)),
		slog.Uint64("user_id", uint64(user.ID)),
		slog.Time("expires_at", expires),
	)

	if err := s.mailSvc.SendPasswordResetToken(user.Email, token, user.FirstName); err != nil {
		s.logger.Error("reset token email failed",
			slog.String("event", string(domain.OTPDeliveryFailedEvent)),
			slog.Uint64("user_id", uint64(user.ID)),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	return nil
}

// ResetPasswordWithToken implements domain.AuthService. The lookup matches
// token and deadline in one query, so expired and never-issued tokens are
// the same failure to the caller.
func (s *AuthServiceImpl) ResetPasswordWithToken(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashedPassword
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	user.ClearOTPSlot(domain.OTPPurposePasswordReset)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}

	s.logger.Info("password reset",
		slog.String("event", string(domain.PasswordResetEvent)),
		slog.Uint64("user_id", uint64(user.ID)),
	)
	return nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// findByRawPhone canonicalizes caller-supplied phone input and resolves the
// user. An unparseable number cannot match anyone, so it reports the same
// ErrUserNotFound as a clean miss.
func (s *AuthServiceImpl) findByRawPhone(ctx context.Context, phone string) (*domain.User, error) {
	validation, err := s.phoneSvc.Validate(phone)
	if err != nil {
		return nil, fmt.Errorf("failed to validate phone number: %w", err)
	}
	if !validation.IsValid {
		return nil, domain.ErrUserNotFound
	}
	return s.userRepo.FindByPhone(ctx, validation.FormattedNumber)
}

// generateResetToken returns 16 random bytes hex-encoded, 32 characters.
func generateResetToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
