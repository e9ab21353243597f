package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type OTPConfig struct {
	TTL         string `yaml:"ttl"`
	DailyLimit  int    `yaml:"daily_limit"`
	MinInterval string `yaml:"min_interval"`
}

type ResetConfig struct {
	TokenTTL string `yaml:"token_ttl"`
}

type PhoneConfig struct {
	DefaultRegion string `yaml:"default_region"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ThrottleConfig struct {
	Limit  int    `yaml:"limit"`
	Window string `yaml:"window"`
}

type AdminConfig struct {
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Password string `yaml:"password"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Reset    ResetConfig    `yaml:"reset"`
	Phone    PhoneConfig    `yaml:"phone"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	Throttle ThrottleConfig `yaml:"throttle"`
	Admin    AdminConfig    `yaml:"admin"`
}

type Config struct {
	Port    string
	GinMode string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	JWTIssuer  string
	SessionTTL time.Duration

	OTP_TTL         time.Duration
	OTP_DailyLimit  int
	OTP_MinInterval time.Duration

	ResetTokenTTL time.Duration

	DefaultPhoneRegion string

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	CasbinModelPath string

	ThrottleLimit  int
	ThrottleWindow time.Duration

	AdminEmail    string
	AdminPhone    string
	AdminPassword string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// pick resolves a string setting: environment wins over the file value,
// which wins over the default.
func pick(envKey, fileVal, def string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if fileVal != "" {
		return fileVal
	}
	return def
}

func pickInt(envKey string, fileVal, def int) int {
	if v := os.Getenv(envKey); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	if fileVal != 0 {
		return fileVal
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	sessionTTL, err := time.ParseDuration(pick("SESSION_TTL", configFile.JWT.TTL, "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(pick("OTP_TTL", configFile.OTP.TTL, "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	otpMinInterval, err := time.ParseDuration(pick("OTP_MIN_INTERVAL", configFile.OTP.MinInterval, "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP minimum interval: %w", err)
	}

	resetTokenTTL, err := time.ParseDuration(pick("RESET_TOKEN_TTL", configFile.Reset.TokenTTL, "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	throttleWindow, err := time.ParseDuration(pick("THROTTLE_WINDOW", configFile.Throttle.Window, "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid throttle window: %w", err)
	}

	filePort := ""
	if configFile.App.Port != 0 {
		filePort = strconv.Itoa(configFile.App.Port)
	}

	cfg := &Config{
		Port:    pick("APP_PORT", filePort, "8080"),
		GinMode: pick("GIN_MODE", configFile.App.GinMode, "release"),

		DSN: pick("DATABASE_DSN", configFile.Database.DSN, ""),

		RedisAddr:     pick("REDIS_ADDR", configFile.Redis.Addr, "localhost:6379"),
		RedisPassword: pick("REDIS_PASSWORD", configFile.Redis.Password, ""),
		RedisDB:       pickInt("REDIS_DB", configFile.Redis.DB, 0),

		JWTSecret:  pick("JWT_SECRET", configFile.JWT.Secret, ""),
		JWTIssuer:  pick("JWT_ISSUER", configFile.JWT.Issuer, "backend-template"),
		SessionTTL: sessionTTL,

		OTP_TTL:         otpTTL,
		OTP_DailyLimit:  pickInt("OTP_DAILY_LIMIT", configFile.OTP.DailyLimit, 3),
		OTP_MinInterval: otpMinInterval,

		ResetTokenTTL: resetTokenTTL,

		DefaultPhoneRegion: pick("PHONE_DEFAULT_REGION", configFile.Phone.DefaultRegion, "NG"),

		TwilioSID:   pick("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID, ""),
		TwilioToken: pick("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken, ""),
		TwilioFrom:  pick("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber, ""),

		SMTPHost:     pick("SMTP_HOST", configFile.SMTP.Host, ""),
		SMTPPort:     pickInt("SMTP_PORT", configFile.SMTP.Port, 587),
		SMTPUser:     pick("SMTP_USERNAME", configFile.SMTP.Username, ""),
		SMTPPassword: pick("SMTP_PASSWORD", configFile.SMTP.Password, ""),
		SMTPFrom:     pick("SMTP_FROM", configFile.SMTP.From, ""),

		CasbinModelPath: pick("CASBIN_MODEL", configFile.Casbin.ModelPath, "casbin/model.conf"),

		ThrottleLimit:  pickInt("THROTTLE_LIMIT", configFile.Throttle.Limit, 20),
		ThrottleWindow: throttleWindow,

		AdminEmail:    pick("ADMIN_EMAIL", configFile.Admin.Email, ""),
		AdminPhone:    pick("ADMIN_PHONE", configFile.Admin.Phone, ""),
		AdminPassword: pick("ADMIN_PASSWORD", configFile.Admin.Password, ""),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required: set JWT_SECRET or jwt.secret in the config file")
	}

	return cfg, nil
}

// loadConfigFile reads the YAML config. A missing file is not an error so
// env-only deployments work; every field then comes from env or defaults.
func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ConfigFile{}, nil
		}
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
