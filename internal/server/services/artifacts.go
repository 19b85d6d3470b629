package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/access"
	"github.com/mutix31/Sharebin/internal/server/config"
	"github.com/mutix31/Sharebin/internal/server/cryptox"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/objectstore"
	"github.com/mutix31/Sharebin/internal/server/repositories/artifacts"
	"github.com/mutix31/Sharebin/internal/server/repositories/repomanager"
)

const (
	defaultContentType = "application/octet-stream"
	maxFileNameLen     = 120
	maxTitleLen        = 200
)

// FileUpload is a file payload with its sharing options.
type FileUpload struct {
	Name        string
	ContentType string
	Body        []byte
	ExpiresIn   string
	ViewLimit   string
}

// NoteInput is a text note with its sharing options.
type NoteInput struct {
	Title     string
	Content   string
	ExpiresIn string
	ViewLimit string
}

// ArtifactService is the metadata store for files and notes. It enforces
// expiry and view quotas at read time.
type ArtifactService struct {
	repos      repomanager.RepositoryManager
	store      objectstore.Store
	shareBase  string
	presignTTL time.Duration
	logger     logging.Logger
	now        clock
}

func NewArtifactService(repos repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *ArtifactService {
	return &ArtifactService{
		repos:      repos,
		store:      repos.Store(),
		shareBase:  cfg.ShareBase(),
		presignTTL: cfg.PresignValidityDuration,
		logger:     logger.With("module", "artifacts"),
		now:        time.Now,
	}
}

// randomPayloadKey places payloads under uploads/Y/M/D/<uuid>/<name>.
func randomPayloadKey(now time.Time, name string) string {
	return fmt.Sprintf("uploads/%d/%d/%d/%v/%s", now.Year(), now.Month(), now.Day(), uuid.New(), sanitizeFileName(name))
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if len(out) > maxFileNameLen {
		out = out[len(out)-maxFileNameLen:]
	}
	if out == "" {
		return "file"
	}
	return out
}

func (s *ArtifactService) sharingOptions(expiresIn, viewLimit string) (*time.Time, *int, error) {
	expiresAt, err := models.ExpiresAt(s.now(), expiresIn)
	if err != nil {
		return nil, nil, err
	}
	limit, err := models.ParseViewLimit(viewLimit)
	if err != nil {
		return nil, nil, err
	}
	return expiresAt, limit, nil
}

func (s *ArtifactService) newArtifact(owner models.SessionIdentity, kind models.Kind, expiresAt *time.Time, limit *int) (*models.Artifact, error) {
	id, err := cryptox.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("error generating id: %w", err)
	}
	return &models.Artifact{
		ID:          id,
		Kind:        kind,
		OwnerUserID: owner.UserID,
		OwnerEmail:  owner.Email,
		OwnerName:   owner.Name,
		CreatedAt:   s.now(),
		ExpiresAt:   expiresAt,
		ViewLimit:   limit,
	}, nil
}

// CreateFile stores the payload and then its metadata record. When the
// metadata write fails the payload is removed again, best effort.
func (s *ArtifactService) CreateFile(ctx context.Context, owner models.SessionIdentity, in FileUpload) (*models.Artifact, error) {
	if owner.UserID == "" {
		return nil, common.ErrUnauthenticated
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, common.NewValidationError("file", "name is required")
	}
	if len(in.Body) == 0 {
		return nil, common.NewValidationError("file", "is empty")
	}
	if len(in.Body) > common.MaxArtifactSize {
		return nil, common.NewValidationError("file", "exceeds the 50MB limit")
	}
	expiresAt, limit, err := s.sharingOptions(in.ExpiresIn, in.ViewLimit)
	if err != nil {
		return nil, err
	}

	a, err := s.newArtifact(owner, models.KindFile, expiresAt, limit)
	if err != nil {
		return nil, err
	}
	a.FileName = in.Name
	a.SizeBytes = int64(len(in.Body))
	a.ContentType = in.ContentType
	if a.ContentType == "" {
		a.ContentType = defaultContentType
	}
	a.PayloadLocation = randomPayloadKey(a.CreatedAt, in.Name)

	if err := s.store.Put(ctx, a.PayloadLocation, in.Body, a.ContentType); err != nil {
		s.logger.Error(ctx, "object store failure", "op", "put", "key", a.PayloadLocation, "error", err)
		return nil, common.StoreError("put", a.PayloadLocation, err)
	}

	if err := s.repo(models.KindFile).Create(ctx, a); err != nil {
		if delErr := s.store.Delete(ctx, a.PayloadLocation); delErr != nil {
			s.logger.Warn(ctx, "orphaned payload", "key", a.PayloadLocation, "error", delErr)
		}
		return nil, err
	}

	s.logger.Info(ctx, "file created", "id", a.ID, "size", a.SizeBytes)
	return a, nil
}

// CreateNote stores a note record with inline content.
func (s *ArtifactService) CreateNote(ctx context.Context, owner models.SessionIdentity, in NoteInput) (*models.Artifact, error) {
	if owner.UserID == "" {
		return nil, common.ErrUnauthenticated
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.NewValidationError("title", "is required")
	}
	if len(title) > maxTitleLen {
		return nil, common.NewValidationError("title", "is too long")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, common.NewValidationError("content", "is required")
	}
	if len(in.Content) > common.MaxArtifactSize {
		return nil, common.NewValidationError("content", "exceeds the 50MB limit")
	}
	expiresAt, limit, err := s.sharingOptions(in.ExpiresIn, in.ViewLimit)
	if err != nil {
		return nil, err
	}

	a, err := s.newArtifact(owner, models.KindNote, expiresAt, limit)
	if err != nil {
		return nil, err
	}
	a.Title = title
	a.Content = in.Content
	a.SizeBytes = int64(len(in.Content))
	a.ContentType = "text/plain; charset=utf-8"

	if err := s.repo(models.KindNote).Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "note created", "id", a.ID)
	return a, nil
}

// ReadAndAdmit fetches an artifact and counts one view.
//
// The check and the increment are a plain read-modify-write against the
// store: two concurrent readers can both see viewCount == limit-1, both be
// admitted and both write limit, so a limit may be overshot and counts may
// be lost under concurrency. A single call is never admitted twice.
func (s *ArtifactService) ReadAndAdmit(ctx context.Context, kind models.Kind, id string) (*models.Artifact, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	repo := s.repo(kind)
	if repo == nil {
		return nil, common.ErrorNotFound
	}

	a, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Expired(s.now()) {
		return nil, common.ErrExpired
	}
	if a.Exhausted() {
		return nil, common.ErrLimitReached
	}

	a.ViewCount++
	if err := repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "artifact admitted", "kind", kind, "id", id, "views", a.ViewCount)
	return a, nil
}

// Lookup returns a live artifact without counting a view. It serves
// payloads whose view was admitted earlier.
func (s *ArtifactService) Lookup(ctx context.Context, kind models.Kind, id string) (*models.Artifact, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	repo := s.repo(kind)
	if repo == nil {
		return nil, common.ErrorNotFound
	}
	a, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Expired(s.now()) {
		return nil, common.ErrExpired
	}
	return a, nil
}

// Delete removes an artifact if requester owns it or is an admin. An absent
// record yields common.ErrorNotFound; callers treat it as already deleted.
// For files the payload is removed after the metadata, best effort.
func (s *ArtifactService) Delete(ctx context.Context, kind models.Kind, id string, requester models.SessionIdentity) error {
	if err := checkID(id); err != nil {
		return err
	}
	repo := s.repo(kind)
	if repo == nil {
		return common.ErrorNotFound
	}

	a, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := access.CheckMutate(requester, a.OwnerUserID); err != nil {
		return err
	}

	if err := repo.Delete(ctx, id); err != nil {
		return err
	}

	if a.Kind == models.KindFile && a.PayloadLocation != "" {
		if err := s.store.Delete(ctx, a.PayloadLocation); err != nil {
			s.logger.Warn(ctx, "orphaned payload", "key", a.PayloadLocation, "error", err)
		}
	}

	s.logger.Info(ctx, "artifact deleted", "kind", kind, "id", id, "by", requester.UserID)
	return nil
}

// List returns artifacts newest first. ScopeOwn returns the requester's live
// artifacts. ScopeAll is admin only and includes expired artifacts for
// moderation.
func (s *ArtifactService) List(ctx context.Context, kind models.Kind, requester models.SessionIdentity, scope Scope) ([]*models.Artifact, error) {
	repo := s.repo(kind)
	if repo == nil {
		return nil, common.NewValidationError("kind", "unknown artifact kind")
	}

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

	all, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]*models.Artifact, 0, len(all))
	for _, a := range all {
		if scope == ScopeAll {
			out = append(out, a)
			continue
		}
		if a.OwnerUserID != requester.UserID || a.Expired(now) {
			continue
		}
		out = append(out, a)
	}
	sortArtifacts(out)
	return out, nil
}

// ShareURL is the public link of an artifact.
func (s *ArtifactService) ShareURL(a *models.Artifact) string {
	if a.Kind == models.KindNote {
		return s.shareBase + "/note/" + a.ID
	}
	return s.shareBase + "/view/" + a.ID
}

// DownloadURL returns a presigned URL for a file payload, or "" when the
// store cannot presign and the payload has to be streamed through the API.
func (s *ArtifactService) DownloadURL(ctx context.Context, a *models.Artifact) (string, error) {
	p, ok := s.store.(objectstore.Presigner)
	if !ok || a.Kind != models.KindFile {
		return "", nil
	}
	url, err := p.PresignGet(ctx, a.PayloadLocation, s.presignTTL)
	if err != nil {
		s.logger.Error(ctx, "presign failed", "key", a.PayloadLocation, "error", err)
		return "", common.StoreError("presign", a.PayloadLocation, err)
	}
	return url, nil
}

// Payload loads a file's bytes. It does not count a view; callers admit
// first.
func (s *ArtifactService) Payload(ctx context.Context, a *models.Artifact) ([]byte, error) {
	if a.Kind != models.KindFile {
		return nil, errors.New("only files have payloads")
	}
	b, err := s.store.Get(ctx, a.PayloadLocation)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "object store failure", "op", "get", "key", a.PayloadLocation, "error", err)
		return nil, common.StoreError("get", a.PayloadLocation, err)
	}
	return b, nil
}

func (s *ArtifactService) repo(kind models.Kind) artifacts.Repository {
	r, err := s.repos.Artifacts(kind)
	if err != nil {
		return nil
	}
	return r
}
