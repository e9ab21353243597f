package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/metrics"
)

// OTPServiceImpl implements domain.OTPService with codes persisted in the
// user record's slots. Rate-limit counters live on the record too and are
// shared across all three purposes.
type OTPServiceImpl struct {
	userRepo domain.UserRepository
	smsSvc   domain.SMSSender
	mailSvc  domain.MailSender
	config   OTPConfig
	logger   *slog.Logger
	now      func() time.Time
}

type OTPConfig struct {
	TTL         time.Duration
	DailyLimit  int
	MinInterval time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(userRepo domain.UserRepository, smsSvc domain.SMSSender, mailSvc domain.MailSender, config OTPConfig, logger *slog.Logger) domain.OTPService {
	return &OTPServiceImpl{
		userRepo: userRepo,
		smsSvc:   smsSvc,
		mailSvc:  mailSvc,
		config:   config,
		logger:   logger,
		now:      time.Now,
	}
}

// Issue implements domain.OTPService. Checks run in a fixed order: the
// already-verified guard, the minimum interval, the lazy daily-counter
// reset, then the daily cap. On success the code and the bumped counters
// are persisted in one update before dispatch, so a delivery failure never
// rolls back the stored code.
func (s *OTPServiceImpl) Issue(ctx context.Context, user *domain.User, purpose domain.OTPPurpose) (*domain.OTPIssue, error) {
	if user.VerifiedFor(purpose) {
		return nil, domain.ErrAlreadyVerified
	}

	now := s.now()

	if user.LastOTPRequestAt != nil {
		elapsed := now.Sub(*user.LastOTPRequestAt)
		if elapsed < s.config.MinInterval {
			wait := s.config.MinInterval - elapsed
			minutes := int((wait + time.Minute - 1) / time.Minute)
			metrics.OTPRateLimited.WithLabelValues(string(purpose)).Inc()
			return nil, fmt.Errorf("%w: please wait %d minute(s) before requesting a new code", domain.ErrOTPRateLimited, minutes)
		}

		// The daily counter resets lazily, on the first request of a new
		// calendar date. No background job ever touches it.
		if !sameCalendarDay(*user.LastOTPRequestAt, now) {
			user.OTPRequestCount = 0
		}
	}

	if user.OTPRequestCount >= s.config.DailyLimit {
		metrics.OTPRateLimited.WithLabelValues(string(purpose)).Inc()
		return nil, fmt.Errorf("%w: daily limit of %d codes reached, try again tomorrow", domain.ErrOTPRateLimited, s.config.DailyLimit)
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	expires := now.Add(s.config.TTL)
	user.SetOTPSlot(purpose, code, expires)
	user.LastOTPRequestAt = &now
	user.OTPRequestCount++

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}

	metrics.OTPIssued.WithLabelValues(string(purpose)).Inc()
	s.logger.Info("otp issued",
		slog.String("event", string(issueEvent(purpose))),
		slog.Uint64("user_id", uint64(user.ID)),
		slog.Time("expires_at", expires),
	)

	issue := &domain.OTPIssue{Purpose: purpose, Code: code, ExpiresAt: expires}

	if err := s.dispatch(user, purpose, code); err != nil {
		metrics.OTPDeliveryFailures.WithLabelValues(string(purpose)).Inc()
		s.logger.Error("otp dispatch failed",
			slog.String("event", string(domain.OTPDeliveryFailedEvent)),
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("purpose", string(purpose)),
			slog.Any("error", err),
		)
		return issue, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	return issue, nil
}

// Consume implements domain.OTPService. A code is accepted strictly before
// its expiry; a consume attempt at the expiry instant already fails. On
// match the slot is cleared and the channel marked verified in memory;
// the caller persists both in a single update.
func (s *OTPServiceImpl) Consume(ctx context.Context, user *domain.User, purpose domain.OTPPurpose, code string) error {
	stored, expires := user.OTPSlot(purpose)
	if stored == "" || expires == nil {
		return domain.ErrOTPNotFound
	}

	if !s.now().Before(*expires) {
		return domain.ErrOTPExpired
	}

	if stored != code {
		return domain.ErrOTPMismatch
	}

	user.ClearOTPSlot(purpose)
	switch purpose {
	case domain.OTPPurposePhoneVerification:
		user.IsPhoneVerified = true
	case domain.OTPPurposeEmailVerification:
		user.IsEmailVerified = true
	}

	return nil
}

// generateSecureCode draws a 6-digit code uniformly from [100000, 999999],
// so leading zeroes cannot occur.
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

func (s *OTPServiceImpl) dispatch(user *domain.User, purpose domain.OTPPurpose, code string) error {
	switch purpose {
	case domain.OTPPurposePhoneVerification:
		return s.smsSvc.SendPhoneVerificationOTP(user.Phone, code, user.FirstName)
	case domain.OTPPurposePasswordReset:
		return s.smsSvc.SendPasswordResetOTP(user.Phone, code, user.FirstName)
	case domain.OTPPurposeEmailVerification:
		return s.mailSvc.SendVerificationOTP(user.Email, code, user.FirstName)
	}
	return fmt.Errorf("unknown otp purpose %q", purpose)
}

func issueEvent(purpose domain.OTPPurpose) domain.AuditEventType {
	switch purpose {
	case domain.OTPPurposeEmailVerification:
		return domain.EmailOTPRequestEvent
	case domain.OTPPurposePasswordReset:
		return domain.ResetOTPRequestEvent
	default:
		return domain.PhoneOTPRequestEvent
	}
}

// sameCalendarDay compares local calendar dates, not a rolling 24h window.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
