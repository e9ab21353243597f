package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID              uint   `gorm:"primaryKey"`
	FirstName       string `gorm:"size:100"`
	LastName        string `gorm:"size:100"`
	Email           string `gorm:"uniqueIndex;size:255"`
	Phone           string `gorm:"uniqueIndex;size:32"`
	PasswordHash    string `gorm:"column:password"`
	Role            string `gorm:"index;size:64"`
	IsActive        bool   `gorm:"index"`
	IsPhoneVerified bool
	IsEmailVerified bool

	PhoneVerificationOTP        string     `gorm:"column:phone_verification_otp;size:8"`
	PhoneVerificationOTPExpires *time.Time `gorm:"column:phone_verification_otp_expires"`
	EmailVerificationOTP        string     `gorm:"column:email_verification_otp;size:8"`
	EmailVerificationOTPExpires *time.Time `gorm:"column:email_verification_otp_expires"`
	ResetPasswordOTP            string     `gorm:"column:reset_password_otp;size:8"`
	ResetPasswordOTPExpires     *time.Time `gorm:"column:reset_password_otp_expires"`

	ResetPasswordToken   string `gorm:"index;size:64"`
	ResetPasswordExpires *time.Time

	LastOTPRequestAt *time.Time `gorm:"column:last_otp_request_at"`
	OTPRequestCount  int        `gorm:"column:otp_request_count"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateField
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByResetToken implements domain.UserRepository. The token match and the
// expiry check run in one query, so an expired token is a plain miss.
func (r *UserRepositoryImpl) FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUserNotFound
	}

	var dbUser DBUser
	err := r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expires > ?", token, now).
		First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Save(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateField
		}
		return err
	}
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// Delete implements domain.UserRepository
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBUser{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*domain.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&dbUsers).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*domain.User, len(dbUsers))
	for i := range dbUsers {
		users[i] = r.dbToDomain(&dbUsers[i])
	}
	return users, total, nil
}

// ListActive implements domain.UserRepository
func (r *UserRepositoryImpl) ListActive(ctx context.Context) ([]*domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&dbUsers).Error; err != nil {
		return nil, err
	}

	users := make([]*domain.User, len(dbUsers))
	for i := range dbUsers {
		users[i] = r.dbToDomain(&dbUsers[i])
	}
	return users, nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:              user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		Phone:           user.Phone,
		PasswordHash:    user.PasswordHash,
		Role:            user.Role,
		IsActive:        user.IsActive,
		IsPhoneVerified: user.IsPhoneVerified,
		IsEmailVerified: user.IsEmailVerified,

		PhoneVerificationOTP:        user.PhoneVerificationOTP,
		PhoneVerificationOTPExpires: user.PhoneVerificationOTPExpires,
		EmailVerificationOTP:        user.EmailVerificationOTP,
		EmailVerificationOTPExpires: user.EmailVerificationOTPExpires,
		ResetPasswordOTP:            user.ResetPasswordOTP,
		ResetPasswordOTPExpires:     user.ResetPasswordOTPExpires,

		ResetPasswordToken:   user.ResetPasswordToken,
		ResetPasswordExpires: user.ResetPasswordExpires,

		LastOTPRequestAt: user.LastOTPRequestAt,
		OTPRequestCount:  user.OTPRequestCount,

		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:              dbUser.ID,
		FirstName:       dbUser.FirstName,
		LastName:        dbUser.LastName,
		Email:           dbUser.Email,
		Phone:           dbUser.Phone,
		PasswordHash:    dbUser.PasswordHash,
		Role:            dbUser.Role,
		IsActive:        dbUser.IsActive,
		IsPhoneVerified: dbUser.IsPhoneVerified,
		IsEmailVerified: dbUser.IsEmailVerified,

		PhoneVerificationOTP:        dbUser.PhoneVerificationOTP,
		PhoneVerificationOTPExpires: dbUser.PhoneVerificationOTPExpires,
		EmailVerificationOTP:        dbUser.EmailVerificationOTP,
		EmailVerificationOTPExpires: dbUser.EmailVerificationOTPExpires,
		ResetPasswordOTP:            dbUser.ResetPasswordOTP,
		ResetPasswordOTPExpires:     dbUser.ResetPasswordOTPExpires,

		ResetPasswordToken:   dbUser.ResetPasswordToken,
		ResetPasswordExpires: dbUser.ResetPasswordExpires,

		LastOTPRequestAt: dbUser.LastOTPRequestAt,
		OTPRequestCount:  dbUser.OTPRequestCount,

		CreatedAt: dbUser.CreatedAt,
		UpdatedAt: dbUser.UpdatedAt,
	}
}
