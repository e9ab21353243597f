package mocks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/mocks"
)

// The service tests lean on the mock defaults (finders miss, mutations
// succeed, Consume accepts "123456"), so the defaults themselves get pinned
// down here.
func TestMockDefaults_UserRepository(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("default FindByEmail error = %v, want ErrUserNotFound", err)
	}
	if _, err := repo.FindByPhone(ctx, "+2348012345678"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("default FindByPhone error = %v, want ErrUserNotFound", err)
	}
	if _, err := repo.FindByResetToken(ctx, "deadbeef", time.Now()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("default FindByResetToken error = %v, want ErrUserNotFound", err)
	}

	user := &domain.User{Email: "new@example.com"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("default Create error = %v", err)
	}
	if user.ID == 0 {
		t.Error("default Create should assign an ID")
	}
	if err := repo.Update(ctx, user); err != nil {
		t.Errorf("default Update error = %v", err)
	}
}

func TestMockDefaults_OverridesWin(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	want := &domain.User{ID: 42, Email: "found@example.com"}
	repo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return want, nil
	}

	got, err := repo.FindByEmail(context.Background(), "found@example.com")
	if err != nil {
		t.Fatalf("overridden FindByEmail error = %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("overridden FindByEmail ID = %d, want %d", got.ID, want.ID)
	}
}

func TestMockDefaults_OTPService(t *testing.T) {
	otpSvc := mocks.NewMockOTPService()
	ctx := context.Background()
	user := &domain.User{ID: 1, Phone: "+2348012345678"}

	issue, err := otpSvc.Issue(ctx, user, domain.OTPPurposePhoneVerification)
	if err != nil {
		t.Fatalf("default Issue error = %v", err)
	}
	if issue.Code != "123456" {
		t.Errorf("default Issue code = %q, want 123456", issue.Code)
	}
	if code, _ := user.OTPSlot(domain.OTPPurposePhoneVerification); code != "123456" {
		t.Errorf("default Issue should write the slot, got %q", code)
	}

	if err := otpSvc.Consume(ctx, user, domain.OTPPurposePhoneVerification, "999999"); !errors.Is(err, domain.ErrOTPMismatch) {
		t.Errorf("default Consume with wrong code error = %v, want ErrOTPMismatch", err)
	}
	if err := otpSvc.Consume(ctx, user, domain.OTPPurposePhoneVerification, "123456"); err != nil {
		t.Fatalf("default Consume error = %v", err)
	}
	if !user.IsPhoneVerified {
		t.Error("default Consume should mark the phone verified")
	}
	if code, _ := user.OTPSlot(domain.OTPPurposePhoneVerification); code != "" {
		t.Errorf("default Consume should clear the slot, got %q", code)
	}
	if err := otpSvc.Consume(ctx, user, domain.OTPPurposePhoneVerification, "123456"); !errors.Is(err, domain.ErrOTPNotFound) {
		t.Errorf("default Consume on empty slot error = %v, want ErrOTPNotFound", err)
	}
}

func TestMockDefaults_SendersRecord(t *testing.T) {
	sms := mocks.NewMockSMSSender()
	if err := sms.SendPhoneVerificationOTP("+2348012345678", "123456", "Ada"); err != nil {
		t.Fatalf("default SendPhoneVerificationOTP error = %v", err)
	}
	if err := sms.SendMarketingSMS("+2348012345678", "hello"); err != nil {
		t.Fatalf("default SendMarketingSMS error = %v", err)
	}
	if got := len(sms.Sent()); got != 2 {
		t.Errorf("recorded SMS count = %d, want 2", got)
	}

	mail := mocks.NewMockMailSender()
	if err := mail.SendPasswordResetToken("ada@example.com", "tok", "Ada"); err != nil {
		t.Fatalf("default SendPasswordResetToken error = %v", err)
	}
	sent := mail.Sent()
	if len(sent) != 1 || sent[0].Token != "tok" {
		t.Errorf("recorded mail = %+v, want one entry with token", sent)
	}
}

func TestMockDefaults_PhoneValidator(t *testing.T) {
	validator := mocks.NewMockPhoneValidator()

	res, err := validator.Validate("+2348012345678")
	if err != nil {
		t.Fatalf("Validate error = %v", err)
	}
	if !res.IsValid || res.FormattedNumber != "+2348012345678" {
		t.Errorf("E.164 input should pass through, got %+v", res)
	}

	res, err = validator.Validate("not-a-phone")
	if err != nil {
		t.Fatalf("Validate error = %v", err)
	}
	if res.IsValid {
		t.Error("garbage input should be rejected by default")
	}
}
