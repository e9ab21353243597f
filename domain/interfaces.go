package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	// FindByResetToken matches the token and an unexpired deadline in a
	// single query, so a wrong token and an expired one are indistinguishable.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*User, int64, error)
	ListActive(ctx context.Context) ([]*User, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, reg *Registration) (*RegistrationResult, error)
	Login(ctx context.Context, login, password string) (*AuthResult, error)
	VerifyPhone(ctx context.Context, phone, code string) error
	ResendPhoneOTP(ctx context.Context, phone string) error
	VerifyEmail(ctx context.Context, email, code string) error
	ResendEmailOTP(ctx context.Context, email string) error
	RequestPasswordResetOTP(ctx context.Context, phone string) error
	ResetPasswordWithOTP(ctx context.Context, phone, code, newPassword string) error
	// RequestPasswordReset emails a reset link token. Unknown emails return
	// success without sending anything.
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPasswordWithToken(ctx context.Context, token, newPassword string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// OTPService defines the one-time-code lifecycle.
//
// Issue runs the rate-limit checks, writes a fresh code into the slot for
// the purpose, persists the user, then dispatches the code over the
// purpose's channel. A dispatch failure is reported as ErrDeliveryFailed
// after the state change has already been persisted.
//
// Consume validates the submitted code against the slot. On success it
// clears the slot and, for verification purposes, marks the channel
// verified on the in-memory user; persisting is the caller's responsibility
// so the clear and its side effect land in one update.
type OTPService interface {
	Issue(ctx context.Context, user *User, purpose OTPPurpose) (*OTPIssue, error)
	Consume(ctx context.Context, user *User, purpose OTPPurpose, code string) error
}

// UserService defines administrative user management
type UserService interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context, page, perPage int) ([]*User, int64, error)
	SetActive(ctx context.Context, id uint, active bool) (*User, error)
	Delete(ctx context.Context, id uint) error
}

// NotificationService defines the marketing fan-out
type NotificationService interface {
	SendMarketing(ctx context.Context, campaign *MarketingCampaign) (*MarketingDispatch, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines session token operations
type TokenService interface {
	Generate(user *User) (string, error)
	// Validate checks signature and expiry only; callers re-fetch the user
	// to check IsActive on every protected request.
	Validate(token string) (*TokenClaims, error)
}

// TokenClaims represents validated session token claims
type TokenClaims struct {
	UserID    uint
	Email     string
	Phone     string
	Role      string
	IssuedAt  int64
	ExpiresAt int64
}

// PhoneValidator canonicalizes raw phone input to E.164
type PhoneValidator interface {
	Validate(raw string) (*PhoneValidation, error)
}

// SMSSender delivers one-time codes and campaign messages over SMS
type SMSSender interface {
	SendPhoneVerificationOTP(phone, code, firstName string) error
	SendPasswordResetOTP(phone, code, firstName string) error
	SendMarketingSMS(phone, body string) error
}

// MailSender delivers transactional and marketing email
type MailSender interface {
	SendPasswordResetToken(email, token, firstName string) error
	SendVerificationOTP(email, code, firstName string) error
	SendMarketingEmail(email, subject, body string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
