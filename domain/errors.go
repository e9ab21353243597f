package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrPhoneNotVerified   = errors.New("phone number not verified")
)

// Registration errors
var (
	ErrInvalidPhoneFormat     = errors.New("invalid phone number format")
	ErrPhoneAlreadyRegistered = errors.New("phone number already registered")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrDuplicateField         = errors.New("duplicate value for unique field")
)

// OTP errors
var (
	ErrOTPNotFound     = errors.New("no verification code pending")
	ErrOTPExpired      = errors.New("verification code has expired")
	ErrOTPMismatch     = errors.New("invalid verification code")
	ErrAlreadyVerified = errors.New("already verified")
	ErrOTPRateLimited  = errors.New("too many verification code requests")
)

// Password reset errors
var (
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)

// Token errors
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Delivery errors
var (
	ErrDeliveryFailed = errors.New("notification delivery failed")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)
