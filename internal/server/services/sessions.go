package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/config"
	"github.com/mutix31/Sharebin/internal/server/cryptox"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/repositories/repomanager"
)

// SessionService issues, resolves and revokes login sessions, and keeps
// their cached profile fields in sync with the user records.
type SessionService struct {
	repos    repomanager.RepositoryManager
	validity time.Duration
	logger   logging.Logger
	now      clock

	// compared against when the email is unknown, so both failure paths
	// cost one argon2 derivation
	dummyDigest string
}

func NewSessionService(repos repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *SessionService {
	dummy, _ := cryptox.HashPassword("sharebin-dummy-password")
	return &SessionService{
		repos:       repos,
		validity:    cfg.SessionValidityDuration,
		logger:      logger.With("module", "sessions"),
		now:         time.Now,
		dummyDigest: dummy,
	}
}

// Login verifies the credentials and stores a new session. Unknown emails
// and wrong passwords both yield common.ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	user, err := s.repos.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.ComparePassword(password, s.dummyDigest)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !cryptox.ComparePassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := cryptox.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("error generating session token: %w", err)
	}

	now := s.now()
	session := &models.Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.validity),
	}
	if err := s.repos.Sessions().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return session, nil
}

// Resolve maps a token to the caller identity. Unknown and expired tokens
// yield common.ErrUnauthenticated.
func (s *SessionService) Resolve(ctx context.Context, token string) (models.SessionIdentity, error) {
	session, err := s.Session(ctx, token)
	if err != nil {
		return models.SessionIdentity{}, err
	}
	return session.Identity(), nil
}

// Session returns the live session record for token. Expired records are
// removed on the way, best effort.
func (s *SessionService) Session(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.repos.Sessions().Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrSchemaMismatch) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error resolving session: %w", err)
	}

	if session.Expired(s.now()) {
		if err := s.repos.Sessions().Delete(ctx, token); err != nil {
			s.logger.Warn(ctx, "expired session cleanup failed", "error", err)
		}
		return nil, common.ErrUnauthenticated
	}

	return session, nil
}

// Logout deletes the session. A session that is already gone is not an
// error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repos.Sessions().Delete(ctx, token); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// PropagateProfileChange rewrites name and role in every session of userID.
// It keeps going past individual write failures and returns the number of
// sessions updated together with the joined errors.
func (s *SessionService) PropagateProfileChange(ctx context.Context, userID, name string, role models.Role) (int, error) {
	all, err := s.repos.Sessions().List(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing sessions: %w", err)
	}

	var (
		updated int
		errs    []error
	)
	for _, session := range all {
		if session.UserID != userID {
			continue
		}
		if session.Name == name && session.Role == role {
			continue
		}
		session.Name = name
		session.Role = role
		if err := s.repos.Sessions().Update(ctx, session); err != nil {
			errs = append(errs, err)
			continue
		}
		updated++
	}

	if len(errs) > 0 {
		s.logger.Error(ctx, "profile fan-out incomplete", "user_id", userID, "failed", len(errs))
	}
	return updated, errors.Join(errs...)
}
