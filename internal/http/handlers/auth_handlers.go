package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents login request. Login is a phone number in any
// accepted local format.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PhoneVerifyRequest represents phone OTP verification request
type PhoneVerifyRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// PhoneRequest carries a bare phone number (resend, forgot via OTP)
type PhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// EmailVerifyRequest represents email OTP verification request
type EmailVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// EmailRequest carries a bare email address (resend, forgot via token)
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordOTPRequest represents the OTP-based password reset request
type ResetPasswordOTPRequest struct {
	Phone       string `json:"phone" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ResetPasswordTokenRequest represents the token-based password reset request
type ResetPasswordTokenRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// Register handles user registration. Signup succeeds even when the
// verification code could not be delivered; otp_sent tells the caller
// whether to expect one or to request a resend.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &domain.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPhoneFormat):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number format"})
		case errors.Is(err, domain.ErrPhoneAlreadyRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number already registered"})
		case errors.Is(err, domain.ErrEmailAlreadyRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		case errors.Is(err, domain.ErrDuplicateField):
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	message := "Registration successful. A verification code has been sent to your phone."
	if !result.OTPSent {
		message = "Registration successful, but the verification code could not be sent. Please request a new code."
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message":  message,
			"otp_sent": result.OTPSent,
			"user":     result.User.Public(),
		},
	})
}

// Login handles user login by phone and password
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, domain.ErrAccountDisabled):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		case errors.Is(err, domain.ErrPhoneNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "Phone number not verified"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token": result.AccessToken,
			"token_type":   "Bearer",
			"expires_in":   result.ExpiresIn,
			"user":         result.User.Public(),
		},
	})
}

// VerifyPhone handles phone verification with a one-time code
func (h *AuthHandlers) VerifyPhone(c *gin.Context) {
	var req PhoneVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.VerifyPhone(c.Request.Context(), req.Phone, req.Code); err != nil {
		h.respondVerificationError(c, err, "No account found for this phone number")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Phone number verified successfully"},
	})
}

// ResendPhoneOTP handles re-issuing the phone verification code
func (h *AuthHandlers) ResendPhoneOTP(c *gin.Context) {
	var req PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResendPhoneOTP(c.Request.Context(), req.Phone); err != nil {
		h.respondIssueError(c, err, "No account found for this phone number")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Verification code sent"},
	})
}

// VerifyEmail handles email verification with a one-time code
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	var req EmailVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		h.respondVerificationError(c, err, "No account found for this email")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Email verified successfully"},
	})
}

// ResendEmailOTP handles re-issuing the email verification code
func (h *AuthHandlers) ResendEmailOTP(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResendEmailOTP(c.Request.Context(), req.Email); err != nil {
		h.respondIssueError(c, err, "No account found for this email")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Verification code sent"},
	})
}

// ForgotPasswordOTP handles requesting a password reset code over SMS
func (h *AuthHandlers) ForgotPasswordOTP(c *gin.Context) {
	var req PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.RequestPasswordResetOTP(c.Request.Context(), req.Phone); err != nil {
		h.respondIssueError(c, err, "No account found for this phone number")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Password reset code sent"},
	})
}

// ResetPasswordOTP handles resetting the password with an SMS code
func (h *AuthHandlers) ResetPasswordOTP(c *gin.Context) {
	var req ResetPasswordOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResetPasswordWithOTP(c.Request.Context(), req.Phone, req.Code, req.NewPassword); err != nil {
		h.respondVerificationError(c, err, "No account found for this phone number")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Password reset successfully"},
	})
}

// ForgotPassword handles requesting a password reset link over email. The
// response is identical whether or not the email is registered.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrDeliveryFailed) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reset email"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "If that email is registered, a reset link has been sent."},
	})
}

// ResetPassword handles resetting the password with an emailed token
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResetPasswordWithToken(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrResetTokenInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Password reset successfully"},
	})
}

// Me handles getting user profile (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	userID, err := strconv.ParseUint(userIDStr.(string), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user.Public()})
}

// respondVerificationError maps errors from the consume-side flows. Account
// lookups by phone or email report a generic 400 rather than 404 so the
// endpoints cannot be used to enumerate registered identities.
func (h *AuthHandlers) respondVerificationError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": notFoundMsg})
	case errors.Is(err, domain.ErrAlreadyVerified):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already verified"})
	case errors.Is(err, domain.ErrOTPNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No verification code pending"})
	case errors.Is(err, domain.ErrOTPExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code has expired"})
	case errors.Is(err, domain.ErrOTPMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
	}
}

// respondIssueError maps errors from the issue-side flows. Rate-limited
// responses carry the wait estimate produced by the OTP engine; delivery
// failures are a 500 here because the caller explicitly asked for a send.
func (h *AuthHandlers) respondIssueError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": notFoundMsg})
	case errors.Is(err, domain.ErrAlreadyVerified):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already verified"})
	case errors.Is(err, domain.ErrOTPRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDeliveryFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
	}
}
