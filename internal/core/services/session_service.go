package services

import (
	"context"
	"errors"
	"time"

	"garagehub/internal/adapters/persistence/models"
	"garagehub/internal/adapters/persistence/repositories"
	"garagehub/internal/pkg/token"

	"gorm.io/gorm"
)

// SessionDuration is how long a session stays valid after issuance
const SessionDuration = 7 * 24 * time.Hour

// SessionService handles the session lifecycle: issuance, validation,
// invalidation and expiry cleanup. Tokens are opaque random strings carried
// in a cookie; there is nothing to decode server-side.
type SessionService struct {
	sessionRepo repositories.SessionRepository
}

// NewSessionService creates a new session service
func NewSessionService(sessionRepo repositories.SessionRepository) *SessionService {
	return &SessionService{sessionRepo: sessionRepo}
}

// Create issues a new session for a user. userAgent and ipAddress are
// recorded when non-empty.
func (s *SessionService) Create(ctx context.Context, userID uint, userAgent, ipAddress string) (*models.Session, error) {
	tok, err := token.New()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &models.Session{
		UserID:       userID,
		Token:        tok,
		LastActivity: now,
		ExpiresAt:    now.Add(SessionDuration),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Validate looks up a session by token. Returns (nil, nil) for unknown
// tokens. Expired sessions are deleted on sight and also return (nil, nil).
// Valid sessions get their last_activity bumped to now, so validation
// writes on every authenticated request.
func (s *SessionService) Validate(ctx context.Context, tok string) (*models.Session, error) {
	session, err := s.sessionRepo.GetByToken(ctx, tok)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if session.IsExpired() {
		if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	now := time.Now()
	if err := s.sessionRepo.UpdateLastActivity(ctx, session.ID, now); err != nil {
		return nil, err
	}
	session.LastActivity = now

	return session, nil
}

// Invalidate deletes a session by token. Unknown tokens are treated as
// success, so calling this twice never errors.
func (s *SessionService) Invalidate(ctx context.Context, tok string) error {
	return s.sessionRepo.DeleteByToken(ctx, tok)
}

// InvalidateAll deletes every session a user holds (logout everywhere)
func (s *SessionService) InvalidateAll(ctx context.Context, userID uint) error {
	return s.sessionRepo.DeleteAllByUserID(ctx, userID)
}

// ActiveSessions lists a user's unexpired sessions, most recent activity first
func (s *SessionService) ActiveSessions(ctx context.Context, userID uint) ([]*models.Session, error) {
	return s.sessionRepo.ListActiveByUserID(ctx, userID)
}

// CleanupExpired bulk-deletes all expired sessions and reports how many
// were removed
func (s *SessionService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx)
}
