package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/access"
	"github.com/mutix31/Sharebin/internal/server/config"
	"github.com/mutix31/Sharebin/internal/server/cryptox"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/repositories/repomanager"
)

const (
	shortenAttempts = 5
	maxTargetLen    = 2048
)

// ShortURLService issues short codes and resolves them, counting visits.
type ShortURLService struct {
	repos     repomanager.RepositoryManager
	shareBase string
	logger    logging.Logger
	now       clock
	newCode   func() (string, error)
}

func NewShortURLService(repos repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *ShortURLService {
	return &ShortURLService{
		repos:     repos,
		shareBase: cfg.ShareBase(),
		logger:    logger.With("module", "shorturls"),
		now:       time.Now,
		newCode:   cryptox.GenerateShortCode,
	}
}

func validateTarget(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", common.NewValidationError("url", "is required")
	}
	if len(raw) > maxTargetLen {
		return "", common.NewValidationError("url", "is too long")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", common.NewValidationError("url", "must be an absolute http or https URL")
	}
	return u.String(), nil
}

// Shorten stores a new short URL owned by owner. Code collisions are
// retried a bounded number of times.
func (s *ShortURLService) Shorten(ctx context.Context, owner models.SessionIdentity, target string) (*models.ShortURL, error) {
	if owner.UserID == "" {
		return nil, common.ErrUnauthenticated
	}
	target, err := validateTarget(target)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= shortenAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("error generating code: %w", err)
		}

		u := &models.ShortURL{
			Code:        code,
			TargetURL:   target,
			OwnerUserID: owner.UserID,
			OwnerEmail:  owner.Email,
			OwnerName:   owner.Name,
			CreatedAt:   s.now(),
		}
		err = s.repos.ShortURLs().Create(ctx, u)
		if err == nil {
			s.logger.Info(ctx, "short url created", "code", code)
			return u, nil
		}
		if !errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.logger.Debug(ctx, "short code collision", "code", code, "attempt", attempt)
	}

	return nil, fmt.Errorf("no free short code after %d attempts: %w", shortenAttempts, common.ErrorAlreadyExists)
}

// Resolve returns the short URL for code and counts the visit. A failed
// counter write is logged and does not block the redirect.
func (s *ShortURLService) Resolve(ctx context.Context, code string) (*models.ShortURL, error) {
	if err := checkID(code); err != nil {
		return nil, err
	}
	u, err := s.repos.ShortURLs().Get(ctx, code)
	if err != nil {
		return nil, err
	}

	// read-modify-write, concurrent visits may be lost
	u.VisitCount++
	if err := s.repos.ShortURLs().Update(ctx, u); err != nil {
		s.logger.Warn(ctx, "visit count not saved", "code", code, "error", err)
	}
	return u, nil
}

// List returns short URLs newest first, the requester's own or, for admins,
// all of them.
func (s *ShortURLService) List(ctx context.Context, requester models.SessionIdentity, scope Scope) ([]*models.ShortURL, error) {
	switch scope {
	case ScopeAll:
		if !requester.IsAdmin() {
			return nil, common.ErrorUnauthorized
		}
	case ScopeOwn, "":
		if requester.UserID == "" {
			return nil, common.ErrUnauthenticated
		}
	default:
		return nil, common.NewValidationError("scope", "must be own or all")
	}

	all, err := s.repos.ShortURLs().List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.ShortURL, 0, len(all))
	for _, u := range all {
		if scope == ScopeAll || u.OwnerUserID == requester.UserID {
			out = append(out, u)
		}
	}
	sortShortURLs(out)
	return out, nil
}

// Delete removes a short URL if requester owns it or is an admin.
func (s *ShortURLService) Delete(ctx context.Context, code string, requester models.SessionIdentity) error {
	if err := checkID(code); err != nil {
		return err
	}
	u, err := s.repos.ShortURLs().Get(ctx, code)
	if err != nil {
		return err
	}
	if err := access.CheckMutate(requester, u.OwnerUserID); err != nil {
		return err
	}
	if err := s.repos.ShortURLs().Delete(ctx, code); err != nil {
		return err
	}
	s.logger.Info(ctx, "short url deleted", "code", code, "by", requester.UserID)
	return nil
}

// ShareURL is the public redirect link for u.
func (s *ShortURLService) ShareURL(u *models.ShortURL) string {
	return s.shareBase + "/u/" + u.Code
}
