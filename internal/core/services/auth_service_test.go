package services

import (
	"context"
	"testing"

	"garagehub/internal/adapters/persistence/repositories"
	"garagehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	sessions := NewSessionService(repositories.NewSessionRepository(db))
	return NewAuthService(repositories.NewUserRepository(db), sessions)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedUser(t, db, "admin", "admin123", "admin")
	ctx := context.Background()

	user, session, err := svc.Login(ctx, &LoginInput{
		Username:  "admin",
		Password:  "admin123",
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.Len(t, session.Token, 64)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedUser(t, db, "admin", "admin123", "admin")
	ctx := context.Background()

	_, _, err := svc.Login(ctx, &LoginInput{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, &LoginInput{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{Username: "newguy", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "mechanic", user.Role, "role defaults to mechanic")
	assert.Nil(t, user.Name)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedUser(t, db, "mike", "mike123", "mechanic")
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Username: "mike", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestRegisterInvalidRole(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Username: "newguy", Password: "secret1", Role: "manager"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogout(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedUser(t, db, "admin", "admin123", "admin")
	ctx := context.Background()

	_, session, err := svc.Login(ctx, &LoginInput{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	got, err := svc.sessions.Validate(ctx, session.Token)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Logging out again is fine
	require.NoError(t, svc.Logout(ctx, session.Token))
}
