package services

import (
	"context"
	"errors"
	"log"

	"garagehub/internal/adapters/persistence/models"
	"garagehub/internal/adapters/persistence/repositories"
	"garagehub/internal/core/domain"

	"gorm.io/gorm"
)

// UserService handles mechanic/admin account management
type UserService struct {
	userRepo repositories.UserRepository
	sessions *SessionService
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, sessions *SessionService) *UserService {
	return &UserService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// ListUsers lists all users, newest first
func (s *UserService) ListUsers(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.ToResponse())
	}
	return responses, nil
}

// GetUserByID gets a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUserInput represents a partial user update
type UpdateUserInput struct {
	Name *string
	Role *string
}

// UpdateUser applies a partial update to a user account
func (s *UserService) UpdateUser(ctx context.Context, id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = input.Name
	}
	if input.Role != nil {
		if !domain.Role(*input.Role).IsValid() {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *input.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword sets a user's password. Stored plaintext, matching the
// rest of the credential handling.
func (s *UserService) UpdatePassword(ctx context.Context, id uint, password string) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Password = password
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Password updated for user: %s", user.Username)
	return user, nil
}

// DeleteUser deletes a user account. Admin accounts cannot be deleted.
// The user's sessions are removed along with the account.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if domain.Role(user.Role) == domain.RoleAdmin {
		return domain.ErrAdminNotDeletable
	}

	if err := s.sessions.InvalidateAll(ctx, user.ID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}

	log.Printf("✅ User deleted: %s", user.Username)
	return nil
}
