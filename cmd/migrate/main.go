package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/config"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/auth"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/database"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/phone"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/infrastructure/repositories"
)

// Offline provisioning: migrates the schema, seeds the baseline RBAC
// policies, and creates the bootstrap admin when one is configured.
// Everything here also happens on server start; this binary exists for
// deploy pipelines that migrate before rolling the service.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	fmt.Println("schema migrated")

	cas, err := auth.NewCasbinService(db, cfg.CasbinModelPath)
	if err != nil {
		log.Fatalf("casbin: %v", err)
	}
	policies, err := cas.E.GetPolicy()
	if err != nil {
		log.Fatalf("casbin: %v", err)
	}
	if len(policies) == 0 {
		cas.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|PATCH|DELETE)")
		cas.E.AddPolicy("role_user", "/auth/me", "GET")
		if err := cas.E.SavePolicy(); err != nil {
			log.Fatalf("casbin: %v", err)
		}
		fmt.Println("default policies seeded")
	}

	if cfg.AdminEmail == "" || cfg.AdminPhone == "" || cfg.AdminPassword == "" {
		return
	}

	ctx := context.Background()
	users := repositories.NewUserRepository(db)
	if _, err := users.FindByEmail(ctx, cfg.AdminEmail); err == nil {
		return
	}

	validation, err := phone.NewValidator(cfg.DefaultPhoneRegion).Validate(cfg.AdminPhone)
	if err != nil || !validation.IsValid {
		log.Fatalf("bootstrap admin phone %q is not a valid number", cfg.AdminPhone)
	}
	hash, err := auth.NewPasswordService().Hash(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("bootstrap admin: %v", err)
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
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}
	fmt.Printf("bootstrap admin created: %s\n", cfg.AdminEmail)
}
