package domain

import (
	"testing"
	"time"
)

func TestUser_OTPSlots(t *testing.T) {
	expires := time.Now().Add(10 * time.Minute)

	purposes := []OTPPurpose{
		OTPPurposePhoneVerification,
		OTPPurposeEmailVerification,
		OTPPurposePasswordReset,
	}

	for _, purpose := range purposes {
		t.Run(string(purpose), func(t *testing.T) {
			user := &User{}

			code, exp := user.OTPSlot(purpose)
			if code != "" || exp != nil {
				t.Fatalf("fresh user should have a vacant slot, got code=%q expiry=%v", code, exp)
			}

			user.SetOTPSlot(purpose, "123456", expires)
			code, exp = user.OTPSlot(purpose)
			if code != "123456" {
				t.Errorf("expected stored code 123456, got %q", code)
			}
			if exp == nil || !exp.Equal(expires) {
				t.Errorf("expected expiry %v, got %v", expires, exp)
			}

			// Slots are independent: writing one must not touch the others.
			for _, other := range purposes {
				if other == purpose {
					continue
				}
				if c, e := user.OTPSlot(other); c != "" || e != nil {
					t.Errorf("writing slot %s leaked into slot %s", purpose, other)
				}
			}

			user.ClearOTPSlot(purpose)
			code, exp = user.OTPSlot(purpose)
			if code != "" || exp != nil {
				t.Errorf("cleared slot should be vacant, got code=%q expiry=%v", code, exp)
			}
		})
	}
}

func TestUser_VerifiedFor(t *testing.T) {
	user := &User{IsPhoneVerified: true, IsEmailVerified: false}

	if !user.VerifiedFor(OTPPurposePhoneVerification) {
		t.Error("expected phone channel to report verified")
	}
	if user.VerifiedFor(OTPPurposeEmailVerification) {
		t.Error("expected email channel to report unverified")
	}
	if user.VerifiedFor(OTPPurposePasswordReset) {
		t.Error("password reset purpose must never report verified")
	}
}

func TestUser_Public(t *testing.T) {
	now := time.Now()
	user := &User{
		ID:                   42,
		FirstName:            "Ada",
		LastName:             "Lovelace",
		Email:                "ada@example.com",
		Phone:                "+2348012345678",
		PasswordHash:         "$2a$10$secret",
		Role:                 RoleUser,
		IsActive:             true,
		IsPhoneVerified:      true,
		IsEmailVerified:      true,
		ResetPasswordToken:   "abcdef",
		PhoneVerificationOTP: "123456",
		CreatedAt:            now,
	}

	pub := user.Public()

	if pub.ID != user.ID || pub.Email != user.Email || pub.Phone != user.Phone {
		t.Errorf("projection lost identity fields: %+v", pub)
	}
	if pub.FirstName != "Ada" || pub.LastName != "Lovelace" {
		t.Errorf("projection lost name fields: %+v", pub)
	}
	if pub.Role != RoleUser || !pub.IsActive || !pub.IsPhoneVerified || !pub.IsEmailVerified {
		t.Errorf("projection lost state fields: %+v", pub)
	}
	if !pub.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, pub.CreatedAt)
	}
}

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		expected  string
	}{
		{name: "both names", firstName: "Ada", lastName: "Lovelace", expected: "Ada Lovelace"},
		{name: "first only", firstName: "Ada", lastName: "", expected: "Ada"},
		{name: "last only", firstName: "", lastName: "Lovelace", expected: "Lovelace"},
		{name: "neither", firstName: "", lastName: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{FirstName: tt.firstName, LastName: tt.lastName}
			if got := user.FullName(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
