package mocks

import (
	"context"
	"time"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc           func(ctx context.Context, user *domain.User) error
	FindByIDFunc         func(ctx context.Context, id uint) (*domain.User, error)
	FindByEmailFunc      func(ctx context.Context, email string) (*domain.User, error)
	FindByPhoneFunc      func(ctx context.Context, phone string) (*domain.User, error)
	FindByResetTokenFunc func(ctx context.Context, token string, now time.Time) (*domain.User, error)
	UpdateFunc           func(ctx context.Context, user *domain.User) error
	DeleteFunc           func(ctx context.Context, id uint) error
	ListFunc             func(ctx context.Context, offset, limit int) ([]*domain.User, int64, error)
	ListActiveFunc       func(ctx context.Context) ([]*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: assign an ID and succeed
	if user.ID == 0 {
		user.ID = 1
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return nil
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: user not found
	return nil, domain.ErrUserNotFound
}

// FindByEmail finds a user by email address
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: user not found
	return nil, domain.ErrUserNotFound
}

// FindByPhone finds a user by phone number
func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	// Default behavior: user not found
	return nil, domain.ErrUserNotFound
}

// FindByResetToken finds a user holding an unexpired reset token
func (m *MockUserRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	if m.FindByResetTokenFunc != nil {
		return m.FindByResetTokenFunc(ctx, token, now)
	}
	// Default behavior: user not found
	return nil, domain.ErrUserNotFound
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	// Default behavior: successful update
	user.UpdatedAt = time.Now()
	return nil
}

// Delete removes a user by ID
func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	// Default behavior: successful delete
	return nil
}

// List returns a page of users and the total count
func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, offset, limit)
	}
	// Default behavior: empty list
	return []*domain.User{}, 0, nil
}

// ListActive returns all active users
func (m *MockUserRepository) ListActive(ctx context.Context) ([]*domain.User, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	// Default behavior: empty list
	return []*domain.User{}, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
