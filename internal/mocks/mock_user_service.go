package mocks

import (
	"context"
	"time"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// MockUserService implements domain.UserService interface for testing
type MockUserService struct {
	GetByIDFunc   func(ctx context.Context, id uint) (*domain.User, error)
	ListFunc      func(ctx context.Context, page, perPage int) ([]*domain.User, int64, error)
	SetActiveFunc func(ctx context.Context, id uint, active bool) (*domain.User, error)
	DeleteFunc    func(ctx context.Context, id uint) error
}

// NewMockUserService creates a new MockUserService with default behaviors
func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

// GetByID retrieves a user by ID
func (m *MockUserService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	// Default behavior: return a mock user
	return &domain.User{
		ID:              id,
		FirstName:       "Test",
		LastName:        "User",
		Email:           "test@example.com",
		Phone:           "+2348012345678",
		Role:            domain.RoleUser,
		IsActive:        true,
		IsPhoneVerified: true,
		CreatedAt:       time.Now().Add(-24 * time.Hour),
		UpdatedAt:       time.Now(),
	}, nil
}

// List returns a page of users
func (m *MockUserService) List(ctx context.Context, page, perPage int) ([]*domain.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, perPage)
	}
	// Default behavior: empty page
	return []*domain.User{}, 0, nil
}

// SetActive flips a user's active flag
func (m *MockUserService) SetActive(ctx context.Context, id uint, active bool) (*domain.User, error) {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	// Default behavior: return the user with the flag applied
	return &domain.User{
		ID:       id,
		Email:    "test@example.com",
		Role:     domain.RoleUser,
		IsActive: active,
	}, nil
}

// Delete removes a user
func (m *MockUserService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserService = (*MockUserService)(nil)
