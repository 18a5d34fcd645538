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

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	sessions *SessionService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, sessions *SessionService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username  string
	Password  string
	UserAgent string
	IPAddress string
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// Login authenticates a user and issues a session
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*models.User, *models.Session, error) {
	// 1. Find user by username
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	// 2. Compare password. Stored plaintext, compared plaintext — a known
	// defect inherited from the existing data, not a design intent.
	if user.Password != input.Password {
		return nil, nil, domain.ErrInvalidCredentials
	}

	// 3. Issue session
	session, err := s.sessions.Create(ctx, user.ID, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)
	return user, session, nil
}

// Register creates a new user account. Role defaults to mechanic.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.User, error) {
	// 1. Default and validate role
	role := input.Role
	if role == "" {
		role = string(domain.RoleMechanic)
	}
	if !domain.Role(role).IsValid() {
		return nil, domain.ErrInvalidInput
	}

	// 2. Check username uniqueness
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// 3. Create user. Name is left unset, the user can fill it in later.
	user := &models.User{
		Username: input.Username,
		Password: input.Password,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (role: %s)", user.Username, user.Role)
	return user, nil
}

// Logout invalidates the session behind a token. Idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Invalidate(ctx, token)
}

// LogoutAll invalidates every session the user holds
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.sessions.InvalidateAll(ctx, userID); err != nil {
		return err
	}
	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}
