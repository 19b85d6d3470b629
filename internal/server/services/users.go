package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/access"
	"github.com/mutix31/Sharebin/internal/server/cryptox"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/repositories/repomanager"
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ProfileUpdate lists the fields to change; nil fields are left alone.
type ProfileUpdate struct {
	Name *string
	Role *models.Role
}

// UserService handles registration, profile changes and admin user
// management.
type UserService struct {
	repos    repomanager.RepositoryManager
	sessions *SessionService
	logger   logging.Logger
	now      clock
}

func NewUserService(repos repomanager.RepositoryManager, sessions *SessionService, logger logging.Logger) *UserService {
	return &UserService{
		repos:    repos,
		sessions: sessions,
		logger:   logger.With("module", "users"),
		now:      time.Now,
	}
}

// Register creates a user with role "user". A blank name defaults to the
// local part of the email.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.UserPublic, error) {
	user, err := s.newUser(name, email, password, models.RoleUser)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Users().Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrUserExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	pub := user.Public()
	return &pub, nil
}

func (s *UserService) newUser(name, email, password string, role models.Role) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, common.NewValidationError("email", "malformed address")
	}
	if len(password) < minPasswordLen {
		return nil, common.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = email[:strings.IndexByte(email, '@')]
	}

	digest, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	id, err := cryptox.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("error generating id: %w", err)
	}

	return &models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		Role:         role,
		CreatedAt:    s.now(),
	}, nil
}

// UpdateProfile changes the name and/or role of targetUserID. Names may be
// changed by the user or an admin; roles only by an admin. Successful
// changes are fanned out to the user's sessions; a failed fan-out is logged
// and the user record change stands.
func (s *UserService) UpdateProfile(ctx context.Context, actor models.SessionIdentity, targetUserID string, upd ProfileUpdate) (*models.UserPublic, error) {
	if err := access.CheckMutate(actor, targetUserID); err != nil {
		return nil, err
	}
	if upd.Role != nil {
		if err := access.CheckRoleChange(actor, *upd.Role); err != nil {
			return nil, err
		}
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, common.NewValidationError("name", "must not be empty")
	}

	var (
		user *models.User
		err  error
	)
	if targetUserID == actor.UserID && actor.Email != "" {
		user, err = s.repos.Users().GetByEmail(ctx, actor.Email)
	} else {
		user, err = s.repos.Users().GetByID(ctx, targetUserID)
	}
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}

	if err := s.repos.Users().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	if n, err := s.sessions.PropagateProfileChange(ctx, user.ID, user.Name, user.Role); err != nil {
		s.logger.Error(ctx, "session fan-out failed", "user_id", user.ID, "updated", n, "error", err)
	}

	pub := user.Public()
	return &pub, nil
}

// ListUsers returns every user, newest first. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor models.SessionIdentity) ([]models.UserPublic, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrorUnauthorized
	}
	all, err := s.repos.Users().List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserPublic, 0, len(all))
	for _, u := range all {
		out = append(out, u.Public())
	}
	sortUsers(out)
	return out, nil
}

// ProvisionAdmin makes email an admin, creating the account when it does not
// exist yet. It backs the bootstrap command and is not reachable over HTTP.
func (s *UserService) ProvisionAdmin(ctx context.Context, name, email, password string) (*models.UserPublic, bool, error) {
	existing, err := s.repos.Users().GetByEmail(ctx, email)
	switch {
	case err == nil:
		existing.Role = models.RoleAdmin
		if err := s.repos.Users().Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("error promoting user: %w", err)
		}
		if _, err := s.sessions.PropagateProfileChange(ctx, existing.ID, existing.Name, existing.Role); err != nil {
			s.logger.Error(ctx, "session fan-out failed", "user_id", existing.ID, "error", err)
		}
		pub := existing.Public()
		return &pub, false, nil

	case errors.Is(err, common.ErrorNotFound):
		user, err := s.newUser(name, email, password, models.RoleAdmin)
		if err != nil {
			return nil, false, err
		}
		if err := s.repos.Users().Create(ctx, user); err != nil {
			return nil, false, fmt.Errorf("error creating admin: %w", err)
		}
		pub := user.Public()
		return &pub, true, nil

	default:
		return nil, false, err
	}
}
