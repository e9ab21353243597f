package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// UserServiceImpl implements domain.UserService. These are the admin-facing
// operations; unlike the auth flows they address users by ID, so a miss is
// a plain not-found.
type UserServiceImpl struct {
	userRepo domain.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user management service
func NewUserService(userRepo domain.UserRepository, logger *slog.Logger) domain.UserService {
	return &UserServiceImpl{userRepo: userRepo, logger: logger}
}

// GetByID implements domain.UserService
func (s *UserServiceImpl) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// List implements domain.UserService. Pages are 1-based; out-of-range
// values fall back to the first page of 20.
func (s *UserServiceImpl) List(ctx context.Context, page, perPage int) ([]*domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.userRepo.List(ctx, (page-1)*perPage, perPage)
}

// SetActive implements domain.UserService. Deactivation is the revocation
// mechanism: issued tokens keep verifying, but the auth middleware's live
// lookup rejects a deactivated holder on the next request.
func (s *UserServiceImpl) SetActive(ctx context.Context, id uint, active bool) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.IsActive == active {
		return user, nil
	}

	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	event := domain.UserDeactivatedEvent
	if active {
		event = domain.UserActivatedEvent
	}
	s.logger.Info("user status changed",
		slog.String("event", string(event)),
		slog.Uint64("user_id", uint64(user.ID)),
		slog.Bool("active", active),
	)
	return user, nil
}

// Delete implements domain.UserService
func (s *UserServiceImpl) Delete(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted",
		slog.String("event", string(domain.UserDeletedEvent)),
		slog.Uint64("user_id", uint64(id)),
	)
	return nil
}
