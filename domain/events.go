package domain

// AuditEventType names a business event for structured audit logging.
type AuditEventType string

const (
	// Registration and login events
	UserRegistrationEvent AuditEventType = "USER_REGISTERED"
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"

	// Verification events
	PhoneOTPRequestEvent   AuditEventType = "PHONE_OTP_REQUESTED"
	PhoneVerifiedEvent     AuditEventType = "PHONE_VERIFIED"
	EmailOTPRequestEvent   AuditEventType = "EMAIL_OTP_REQUESTED"
	EmailVerifiedEvent     AuditEventType = "EMAIL_VERIFIED"
	OTPDeliveryFailedEvent AuditEventType = "OTP_DELIVERY_FAILED"

	// Password reset events
	ResetOTPRequestEvent   AuditEventType = "RESET_OTP_REQUESTED"
	ResetTokenRequestEvent AuditEventType = "RESET_TOKEN_REQUESTED"
	PasswordResetEvent     AuditEventType = "PASSWORD_RESET"

	// Administration events
	UserDeactivatedEvent    AuditEventType = "USER_DEACTIVATED"
	UserActivatedEvent      AuditEventType = "USER_ACTIVATED"
	UserDeletedEvent        AuditEventType = "USER_DELETED"
	MarketingDispatchEvent  AuditEventType = "MARKETING_DISPATCHED"
	AccessDeniedEvent       AuditEventType = "ACCESS_DENIED"
)
