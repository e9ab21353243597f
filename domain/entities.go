package domain

import "time"

// Roles assignable to a user. New identities default to RoleUser.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// OTPPurpose selects which verification slot an OTP operation targets.
type OTPPurpose string

const (
	OTPPurposePhoneVerification OTPPurpose = "phone_verification"
	OTPPurposeEmailVerification OTPPurpose = "email_verification"
	OTPPurposePasswordReset     OTPPurpose = "password_reset"
)

// User represents an identity in the system. The three OTP slots are
// independent nullable (code, expiry) pairs; a populated slot always carries
// a non-nil expiry. LastOTPRequestAt and OTPRequestCount are shared across
// all slots, so a password-reset code counts against the same daily budget
// as a phone-verification code.
type User struct {
	ID           uint
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	IsActive     bool

	IsPhoneVerified bool
	IsEmailVerified bool

	PhoneVerificationOTP        string
	PhoneVerificationOTPExpires *time.Time
	EmailVerificationOTP        string
	EmailVerificationOTPExpires *time.Time
	ResetPasswordOTP            string
	ResetPasswordOTPExpires     *time.Time

	ResetPasswordToken   string
	ResetPasswordExpires *time.Time

	LastOTPRequestAt *time.Time
	OTPRequestCount  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OTPSlot returns the stored code and expiry for the given purpose.
// An empty code means the slot is vacant.
func (u *User) OTPSlot(purpose OTPPurpose) (string, *time.Time) {
	switch purpose {
	case OTPPurposeEmailVerification:
		return u.EmailVerificationOTP, u.EmailVerificationOTPExpires
	case OTPPurposePasswordReset:
		return u.ResetPasswordOTP, u.ResetPasswordOTPExpires
	default:
		return u.PhoneVerificationOTP, u.PhoneVerificationOTPExpires
	}
}

// SetOTPSlot stores a code and its expiry in the slot for the given purpose.
func (u *User) SetOTPSlot(purpose OTPPurpose, code string, expires time.Time) {
	switch purpose {
	case OTPPurposeEmailVerification:
		u.EmailVerificationOTP = code
		u.EmailVerificationOTPExpires = &expires
	case OTPPurposePasswordReset:
		u.ResetPasswordOTP = code
		u.ResetPasswordOTPExpires = &expires
	default:
		u.PhoneVerificationOTP = code
		u.PhoneVerificationOTPExpires = &expires
	}
}

// ClearOTPSlot empties the slot for the given purpose.
func (u *User) ClearOTPSlot(purpose OTPPurpose) {
	switch purpose {
	case OTPPurposeEmailVerification:
		u.EmailVerificationOTP = ""
		u.EmailVerificationOTPExpires = nil
	case OTPPurposePasswordReset:
		u.ResetPasswordOTP = ""
		u.ResetPasswordOTPExpires = nil
	default:
		u.PhoneVerificationOTP = ""
		u.PhoneVerificationOTPExpires = nil
	}
}

// VerifiedFor reports whether the channel behind the purpose is already
// verified. Password reset has no verified state and always returns false.
func (u *User) VerifiedFor(purpose OTPPurpose) bool {
	switch purpose {
	case OTPPurposePhoneVerification:
		return u.IsPhoneVerified
	case OTPPurposeEmailVerification:
		return u.IsEmailVerified
	default:
		return false
	}
}

// FullName joins the user's names for outbound messages.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// PublicUser is the caller-visible projection of a User. It never carries
// the password hash, OTP state, or rate-limit counters.
type PublicUser struct {
	ID              uint      `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Role            string    `json:"role"`
	IsActive        bool      `json:"is_active"`
	IsPhoneVerified bool      `json:"is_phone_verified"`
	IsEmailVerified bool      `json:"is_email_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

// Public returns the projection of the user safe to hand to callers.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Phone:           u.Phone,
		Role:            u.Role,
		IsActive:        u.IsActive,
		IsPhoneVerified: u.IsPhoneVerified,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
	}
}

// Registration carries the signup payload after transport-level validation.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// RegistrationResult reports a completed signup. OTPSent is false when the
// identity was created but the verification code could not be dispatched.
type RegistrationResult struct {
	User    *User
	OTPSent bool
}

// AuthResult represents a successful authentication outcome.
type AuthResult struct {
	User        *User
	AccessToken string
	ExpiresIn   int64
}

// OTPIssue describes a code freshly written to one of the user's slots.
type OTPIssue struct {
	Purpose   OTPPurpose
	Code      string
	ExpiresAt time.Time
}

// PhoneValidation is the outcome of canonicalizing a raw phone number.
type PhoneValidation struct {
	IsValid         bool
	FormattedNumber string
}

// MarketingCampaign describes an admin-triggered notification batch.
// Recipients optionally narrows the audience to explicit email addresses;
// when empty the campaign goes to every active user. SMSBody, when set,
// additionally sends an SMS to each recipient's phone.
type MarketingCampaign struct {
	Subject    string
	Body       string
	SMSBody    string
	Recipients []string
}

// MarketingDispatch summarizes a marketing fan-out run. Per-recipient
// failures never abort the batch; they are counted here instead.
type MarketingDispatch struct {
	ID         string `json:"id"`
	Recipients int    `json:"recipients"`
	Sent       int    `json:"sent"`
	Failed     int    `json:"failed"`
}
