package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/mocks"
)

// createOTPServiceForTest builds the engine with a frozen clock so interval
// and expiry arithmetic is exact.
func createOTPServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	smsSvc domain.SMSSender,
	mailSvc domain.MailSender,
	now time.Time) *OTPServiceImpl {
	t.Helper()

	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if smsSvc == nil {
		smsSvc = mocks.NewMockSMSSender()
	}
	if mailSvc == nil {
		mailSvc = mocks.NewMockMailSender()
	}

	svc := NewOTPService(userRepo, smsSvc, mailSvc, testOTPConfig(), testLogger()).(*OTPServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func TestOTPServiceImpl_Issue_StoresCodeBeforeDispatch(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	userRepo := mocks.NewMockUserRepository()
	smsSvc := mocks.NewMockSMSSender()

	var persisted *domain.User
	userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		snapshot := *user
		persisted = &snapshot
		return nil
	}

	svc := createOTPServiceForTest(t, userRepo, smsSvc, nil, now)
	user := createUnverifiedUser(t)

	issue, err := svc.Issue(context.Background(), user, domain.OTPPurposePhoneVerification)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if len(issue.Code) != 6 || issue.Code[0] == '0' {
		t.Errorf("code = %q, want 6 digits without leading zero", issue.Code)
	}
	if want := now.Add(10 * time.Minute); !issue.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", issue.ExpiresAt, want)
	}

	if persisted == nil {
		t.Fatal("user was never persisted")
	}
	if persisted.PhoneVerificationOTP != issue.Code {
		t.Errorf("persisted slot code = %q, want %q", persisted.PhoneVerificationOTP, issue.Code)
	}
	if persisted.OTPRequestCount != 1 {
		t.Errorf("persisted request count = %d, want 1", persisted.OTPRequestCount)
	}
	if persisted.LastOTPRequestAt == nil || !persisted.LastOTPRequestAt.Equal(now) {
		t.Errorf("persisted LastOTPRequestAt = %v, want %v", persisted.LastOTPRequestAt, now)
	}

	sent := smsSvc.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d SMS, want 1", len(sent))
	}
	if sent[0].Code != issue.Code {
		t.Errorf("dispatched code = %q, want %q", sent[0].Code, issue.Code)
	}
}

func TestOTPServiceImpl_Issue_AlreadyVerified(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := createOTPServiceForTest(t, nil, nil, nil, now)
	user := createValidUser(t)

	_, err := svc.Issue(context.Background(), user, domain.OTPPurposePhoneVerification)
	if !errors.Is(err, domain.ErrAlreadyVerified) {
		t.Errorf("Issue() error = %v, want ErrAlreadyVerified", err)
	}
}

func TestOTPServiceImpl_Issue_MinIntervalWaitRoundsUp(t *testing.T) {
	tests := []struct {
		name        string
		sinceLast   time.Duration
		wantMinutes string
	}{
		{name: "whole minutes remain", sinceLast: 2 * time.Minute, wantMinutes: "3 minute"},
		{name: "partial minute rounds up", sinceLast: 4*time.Minute + 30*time.Second, wantMinutes: "1 minute"},
		{name: "almost elapsed still one minute", sinceLast: 4*time.Minute + 59*time.Second, wantMinutes: "1 minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
			svc := createOTPServiceForTest(t, nil, nil, nil, now)

			user := createUnverifiedUser(t)
			last := now.Add(-tt.sinceLast)
			user.LastOTPRequestAt = &last
			user.OTPRequestCount = 1

			_, err := svc.Issue(context.Background(), user, domain.OTPPurposePhoneVerification)
			if !errors.Is(err, domain.ErrOTPRateLimited) {
				t.Fatalf("Issue() error = %v, want ErrOTPRateLimited", err)
			}
			if !strings.Contains(err.Error(), tt.wantMinutes) {
				t.Errorf("error %q should mention %q wait", err.Error(), tt.wantMinutes)
			}
		})
	}
}

func TestOTPServiceImpl_Issue_MinIntervalExactlyElapsed(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := createOTPServiceForTest(t, nil, nil, nil, now)

	user := createUnverifiedUser(t)
	last := now.Add(-5 * time.Minute)
	user.LastOTPRequestAt = &last
	user.OTPRequestCount = 1

	if _, err := svc.Issue(context.Background(), user, domain.OTPPurposePhoneVerification); err != nil {
		t.Errorf("Issue() at exactly the interval should pass, got %v", err)
	}
}

func TestOTPServiceImpl_Issue_DailyCap(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := createOTPServiceForTest(t, nil, nil, nil, now)

	user := createUnverifiedUser(t)
	last := now.Add(-time.Hour)
	user.LastOTPRequestAt = &last
	user.OTPRequestCount = 3

	_, err := svc.Issue(context.Background(), user, domain.OTPPurposePhoneVerification)
	if !errors.Is(err, domain.ErrOTPRateLimited) {
		t.Fatalf("Issue() error = %v, want ErrOTPRateLimited", err)
	}
	if !strings.Contains(err.Error(), "daily limit") {
		t.Errorf("error %q should mention the daily limit", err.Error())
	}
}

func TestOTPServiceImpl_Issue_CounterResetsOnNewCalendarDay(t *testing.T) {
	// Cap exhausted at 23:58; a later request on the next date must pass
	// because the reset keys on the calendar date, not 24h.
	now := time.Date(2025, 3, 11, 0, 0, 30, 0, time.UTC)
	svc := createOTPServiceForTest(t, nil, nil, nil, now)

	user := createUnverifiedUser(t)
	last := time.Date(2025, 3, 10, 23, 58, 0, 0, time.UTC)
	user.LastOTPRequestAt = &last
	user.OTPRequestCount = 3

	// Still inside the min interval: that check runs first.
	_, err := svc.Issue(context.Background(), user, domain.OTPPurposePhoneVerification)
	if !errors.Is(err, domain.ErrOTPRateLimited) {
		t.Fatalf("Issue() inside min interval error = %v, want ErrOTPRateLimited", err)
	}

	svc.now = func() time.Time { return time.Date(2025, 3, 11, 0, 4, 0, 0, time.UTC) }
	if _, err := svc.Issue(context.Background(), user, domain.OTPPurposePhoneVerification); err != nil {
		t.Fatalf("Issue() on new day error = %v", err)
	}
	if user.OTPRequestCount != 1 {
		t.Errorf("request count after reset = %d, want 1", user.OTPRequestCount)
	}
}

func TestOTPServiceImpl_Issue_DeliveryFailureKeepsStoredCode(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	userRepo := mocks.NewMockUserRepository()
	smsSvc := mocks.NewMockSMSSender()

	updates := 0
	userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		updates++
		return nil
	}
	smsSvc.SendPhoneVerificationOTPFunc = func(phone, code, firstName string) error {
		return errors.New("twilio unreachable")
	}

	svc := createOTPServiceForTest(t, userRepo, smsSvc, nil, now)
	user := createUnverifiedUser(t)

	issue, err := svc.Issue(context.Background(), user, domain.OTPPurposePhoneVerification)
	if !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Fatalf("Issue() error = %v, want ErrDeliveryFailed", err)
	}
	if issue == nil {
		t.Fatal("issue should describe the committed code even when delivery fails")
	}
	if updates != 1 {
		t.Errorf("updates = %d, want 1 (no rollback)", updates)
	}
	if code, _ := user.OTPSlot(domain.OTPPurposePhoneVerification); code != issue.Code {
		t.Errorf("slot code = %q, want %q kept after delivery failure", code, issue.Code)
	}
}

func TestOTPServiceImpl_Issue_PersistFailureSkipsDispatch(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	userRepo := mocks.NewMockUserRepository()
	smsSvc := mocks.NewMockSMSSender()

	userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		return errors.New("connection reset")
	}

	svc := createOTPServiceForTest(t, userRepo, smsSvc, nil, now)
	user := createUnverifiedUser(t)

	if _, err := svc.Issue(context.Background(), user, domain.OTPPurposePhoneVerification); err == nil {
		t.Fatal("Issue() should fail when the store write fails")
	}
	if got := len(smsSvc.Sent()); got != 0 {
		t.Errorf("sent %d SMS, want 0 when nothing was persisted", got)
	}
}

func TestOTPServiceImpl_Issue_SharedCountersAcrossPurposes(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := createOTPServiceForTest(t, nil, nil, nil, now)
	user := createUnverifiedUser(t)

	if _, err := svc.Issue(context.Background(), user, domain.OTPPurposePhoneVerification); err != nil {
		t.Fatalf("first Issue() error = %v", err)
	}

	// The reset purpose shares the counters, so the min interval applies
	// across purposes too.
	_, err := svc.Issue(context.Background(), user, domain.OTPPurposePasswordReset)
	if !errors.Is(err, domain.ErrOTPRateLimited) {
		t.Fatalf("cross-purpose Issue() error = %v, want ErrOTPRateLimited", err)
	}

	svc.now = func() time.Time { return now.Add(6 * time.Minute) }
	if _, err := svc.Issue(context.Background(), user, domain.OTPPurposePasswordReset); err != nil {
		t.Fatalf("reset Issue() after interval error = %v", err)
	}

	phoneCode, _ := user.OTPSlot(domain.OTPPurposePhoneVerification)
	resetCode, _ := user.OTPSlot(domain.OTPPurposePasswordReset)
	if phoneCode == "" || resetCode == "" {
		t.Error("both slots should hold codes independently")
	}
	if user.OTPRequestCount != 2 {
		t.Errorf("shared request count = %d, want 2", user.OTPRequestCount)
	}
}

func TestOTPServiceImpl_Issue_EmailPurposeGoesOverMail(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	smsSvc := mocks.NewMockSMSSender()
	mailSvc := mocks.NewMockMailSender()

	svc := createOTPServiceForTest(t, nil, smsSvc, mailSvc, now)
	user := createUnverifiedUser(t)
	user.IsEmailVerified = false

	if _, err := svc.Issue(context.Background(), user, domain.OTPPurposeEmailVerification); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if got := len(smsSvc.Sent()); got != 0 {
		t.Errorf("sent %d SMS, want 0 for the email purpose", got)
	}
	mail := mailSvc.Sent()
	if len(mail) != 1 || mail[0].Email != user.Email {
		t.Errorf("mail = %+v, want one message to %s", mail, user.Email)
	}
}

func TestOTPServiceImpl_Consume(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setupUser     func(u *domain.User)
		code          string
		expectedError error
	}{
		{
			name:          "no pending code",
			setupUser:     func(u *domain.User) {},
			code:          "123456",
			expectedError: domain.ErrOTPNotFound,
		},
		{
			name: "expired code",
			setupUser: func(u *domain.User) {
				u.SetOTPSlot(domain.OTPPurposePhoneVerification, "123456", now.Add(-time.Second))
			},
			code:          "123456",
			expectedError: domain.ErrOTPExpired,
		},
		{
			name: "code at exact expiry instant",
			setupUser: func(u *domain.User) {
				u.SetOTPSlot(domain.OTPPurposePhoneVerification, "123456", now)
			},
			code:          "123456",
			expectedError: domain.ErrOTPExpired,
		},
		{
			name: "wrong code",
			setupUser: func(u *domain.User) {
				u.SetOTPSlot(domain.OTPPurposePhoneVerification, "123456", now.Add(5*time.Minute))
			},
			code:          "654321",
			expectedError: domain.ErrOTPMismatch,
		},
		{
			name: "valid code",
			setupUser: func(u *domain.User) {
				u.SetOTPSlot(domain.OTPPurposePhoneVerification, "123456", now.Add(5*time.Minute))
			},
			code:          "123456",
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := createOTPServiceForTest(t, nil, nil, nil, now)
			user := createUnverifiedUser(t)
			tt.setupUser(user)

			err := svc.Consume(context.Background(), user, domain.OTPPurposePhoneVerification, tt.code)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("Consume() error = %v, want %v", err, tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Consume() error = %v", err)
			}
			if !user.IsPhoneVerified {
				t.Error("phone should be marked verified after consume")
			}
			if code, expires := user.OTPSlot(domain.OTPPurposePhoneVerification); code != "" || expires != nil {
				t.Error("slot should be cleared after consume")
			}
		})
	}
}

func TestOTPServiceImpl_Consume_SecondAttemptFindsNothing(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := createOTPServiceForTest(t, nil, nil, nil, now)

	user := createUnverifiedUser(t)
	user.SetOTPSlot(domain.OTPPurposePhoneVerification, "123456", now.Add(5*time.Minute))

	if err := svc.Consume(context.Background(), user, domain.OTPPurposePhoneVerification, "123456"); err != nil {
		t.Fatalf("first Consume() error = %v", err)
	}
	err := svc.Consume(context.Background(), user, domain.OTPPurposePhoneVerification, "123456")
	if !errors.Is(err, domain.ErrOTPNotFound) {
		t.Errorf("second Consume() error = %v, want ErrOTPNotFound", err)
	}
}

func TestOTPServiceImpl_Consume_ResetPurposeLeavesFlags(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := createOTPServiceForTest(t, nil, nil, nil, now)

	user := createUnverifiedUser(t)
	user.SetOTPSlot(domain.OTPPurposePasswordReset, "123456", now.Add(5*time.Minute))

	if err := svc.Consume(context.Background(), user, domain.OTPPurposePasswordReset, "123456"); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if user.IsPhoneVerified {
		t.Error("reset consume must not flip the phone verification flag")
	}
	if code, _ := user.OTPSlot(domain.OTPPurposePasswordReset); code != "" {
		t.Error("reset slot should be cleared")
	}
}

func TestOTPServiceImpl_GenerateSecureCode(t *testing.T) {
	svc := createOTPServiceForTest(t, nil, nil, nil, time.Now())

	for i := 0; i < 200; i++ {
		code, err := svc.generateSecureCode()
		if err != nil {
			t.Fatalf("generateSecureCode() error = %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q length = %d, want 6", code, len(code))
		}
		if code[0] == '0' {
			t.Fatalf("code %q has a leading zero", code)
		}
	}
}
