package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/config"
	httpx "github.com/NdopnnoabasiJames/Backend-Template/internal/http"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/http/handlers"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/http/middleware"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/auth"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/database"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/notifications"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/phone"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/repositories"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	DB       *gorm.DB
	Redis    *database.RedisClient
	Enforcer *casbin.Enforcer

	// Repositories
	UserRepo domain.UserRepository

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	PhoneSvc    domain.PhoneValidator
	SMSSvc      domain.SMSSender
	MailSvc     domain.MailSender
	OTPSvc      domain.OTPService
	AuthSvc     domain.AuthService
	UserSvc     domain.UserService
	NotifSvc    domain.NotificationService
	CasbinEnf   domain.CasbinEnforcer
	PolicySvc   domain.PolicyService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{Config: cfg, Logger: logger}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initCasbin(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initCasbin() error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("failed to initialize casbin: %w", err)
	}
	c.Enforcer = cas.E
	c.CasbinEnf = services.NewCasbinEnforcerWrapper(cas.E)
	return nil
}

func (c *Container) initRedis() error {
	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Redis = rdb
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.SessionTTL)
	c.PhoneSvc = phone.NewValidator(cfg.DefaultPhoneRegion)
	c.SMSSvc = notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, c.Logger)
	c.MailSvc = notifications.NewMailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, c.Logger)

	c.OTPSvc = services.NewOTPService(c.UserRepo, c.SMSSvc, c.MailSvc, services.OTPConfig{
		TTL:         cfg.OTP_TTL,
		DailyLimit:  cfg.OTP_DailyLimit,
		MinInterval: cfg.OTP_MinInterval,
	}, c.Logger)

	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PasswordSvc, c.TokenSvc, c.OTPSvc, c.PhoneSvc, c.MailSvc, services.AuthConfig{
		SessionTTL:    cfg.SessionTTL,
		ResetTokenTTL: cfg.ResetTokenTTL,
	}, c.Logger)

	c.UserSvc = services.NewUserService(c.UserRepo, c.Logger)
	c.NotifSvc = services.NewNotificationService(c.UserRepo, c.MailSvc, c.SMSSvc, c.Logger)
	c.PolicySvc = services.NewPolicyService(c.CasbinEnf)
}

// BuildRouter assembles the HTTP surface from the container's services.
func (c *Container) BuildRouter() *gin.Engine {
	authH := handlers.NewAuthHandlers(c.AuthSvc)
	userH := handlers.NewUserHandlers(c.UserSvc)
	notifH := handlers.NewNotificationHandlers(c.NotifSvc)
	polH := handlers.NewPolicyHandlers(c.PolicySvc)
	healthH := handlers.NewHealthHandlers(database.SQLPinger{DB: c.DB}, c.Redis)

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.UserRepo)
	casbinMW := middleware.NewCasbinMW(c.CasbinEnf, c.Logger)
	throttleMW := middleware.NewThrottleMW(c.Redis.Client, c.Config.ThrottleLimit, c.Config.ThrottleWindow, c.Logger)

	return httpx.BuildRouter(authH, userH, notifH, polH, healthH, jwtMW, casbinMW, throttleMW, c.Logger)
}

// SeedDefaultPolicies installs the baseline RBAC rules on a fresh
// database. Existing policies are left untouched.
func (c *Container) SeedDefaultPolicies() error {
	policies, err := c.Enforcer.GetPolicy()
	if err != nil {
		return err
	}
	if len(policies) > 0 {
		return nil
	}
	if _, err := c.Enforcer.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|PATCH|DELETE)"); err != nil {
		return err
	}
	if _, err := c.Enforcer.AddPolicy("role_user", "/auth/me", "GET"); err != nil {
		return err
	}
	if err := c.Enforcer.SavePolicy(); err != nil {
		return err
	}
	c.Logger.Info("casbin: seeded default policies")
	return nil
}

// EnsureBootstrapAdmin creates the initial administrator account when the
// bootstrap credentials are configured and no account holds that email yet.
// The account comes up active and fully verified so it can log in without
// an OTP round trip.
func (c *Container) EnsureBootstrapAdmin(ctx context.Context) error {
	cfg := c.Config
	if cfg.AdminEmail == "" || cfg.AdminPhone == "" || cfg.AdminPassword == "" {
		return nil
	}

	if _, err := c.UserRepo.FindByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	}

	validation, err := c.PhoneSvc.Validate(cfg.AdminPhone)
	if err != nil {
		return err
	}
	if !validation.IsValid {
		return fmt.Errorf("bootstrap admin phone %q is not a valid number", cfg.AdminPhone)
	}

	hash, err := c.PasswordSvc.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &domain.User{
		FirstName:       "System",
		LastName:        "Administrator",
		Email:           cfg.AdminEmail,
		Phone:           validation.FormattedNumber,
		PasswordHash:    hash,
		Role:            domain.RoleAdmin,
		IsActive:        true,
		IsPhoneVerified: true,
		IsEmailVerified: true,
	}
	if err := c.UserRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	c.Logger.Info("bootstrap admin created", "email", cfg.AdminEmail)
	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		c.Redis.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
