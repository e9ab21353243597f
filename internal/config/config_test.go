package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yml"))
	t.Setenv("JWT_SECRET", "test-secret")
	for _, k := range []string{"OTP_TTL", "OTP_DAILY_LIMIT", "OTP_MIN_INTERVAL", "SESSION_TTL", "RESET_TOKEN_TTL", "PHONE_DEFAULT_REGION"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.OTP_TTL != 10*time.Minute {
		t.Errorf("expected default OTP TTL 10m, got %v", cfg.OTP_TTL)
	}
	if cfg.OTP_DailyLimit != 3 {
		t.Errorf("expected default OTP daily limit 3, got %d", cfg.OTP_DailyLimit)
	}
	if cfg.OTP_MinInterval != 5*time.Minute {
		t.Errorf("expected default OTP min interval 5m, got %v", cfg.OTP_MinInterval)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected default session TTL 30m, got %v", cfg.SessionTTL)
	}
	if cfg.ResetTokenTTL != time.Hour {
		t.Errorf("expected default reset token TTL 1h, got %v", cfg.ResetTokenTTL)
	}
	if cfg.DefaultPhoneRegion != "NG" {
		t.Errorf("expected default phone region NG, got %s", cfg.DefaultPhoneRegion)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := `
jwt:
  secret: "file-secret"
  ttl: "15m"
otp:
  ttl: "2m"
  daily_limit: 9
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("OTP_TTL", "3m")
	t.Setenv("OTP_DAILY_LIMIT", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.JWTSecret != "env-secret" {
		t.Errorf("env should override file secret, got %s", cfg.JWTSecret)
	}
	if cfg.OTP_TTL != 3*time.Minute {
		t.Errorf("env should override file OTP TTL, got %v", cfg.OTP_TTL)
	}
	if cfg.OTP_DailyLimit != 9 {
		t.Errorf("file value should apply when env unset, got %d", cfg.OTP_DailyLimit)
	}
	if cfg.SessionTTL != 15*time.Minute {
		t.Errorf("file TTL should apply when env unset, got %v", cfg.SessionTTL)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yml"))
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when no jwt secret is configured")
	}
}
