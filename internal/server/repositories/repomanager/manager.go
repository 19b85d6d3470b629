// Package repomanager vends the per-kind repositories, all backed by one
// object store.
package repomanager

import (
	"fmt"

	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/objectstore"
	"github.com/mutix31/Sharebin/internal/server/repositories/artifacts"
	"github.com/mutix31/Sharebin/internal/server/repositories/sessions"
	"github.com/mutix31/Sharebin/internal/server/repositories/shorturls"
	"github.com/mutix31/Sharebin/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Sessions() sessions.Repository
	Artifacts(kind models.Kind) (artifacts.Repository, error)
	ShortURLs() shorturls.Repository
	Store() objectstore.Store
}

// ObjectStoreManager builds repositories over a single Store.
type ObjectStoreManager struct {
	store     objectstore.Store
	users     *users.ObjectStoreRepository
	sessions  *sessions.ObjectStoreRepository
	files     *artifacts.ObjectStoreRepository
	notes     *artifacts.ObjectStoreRepository
	shortURLs *shorturls.ObjectStoreRepository
}

func NewObjectStoreManager(store objectstore.Store, logger logging.Logger) (*ObjectStoreManager, error) {
	logger = logger.With("module", "repositories")

	files, err := artifacts.NewObjectStoreRepository(store, models.KindFile, logger)
	if err != nil {
		return nil, err
	}
	notes, err := artifacts.NewObjectStoreRepository(store, models.KindNote, logger)
	if err != nil {
		return nil, err
	}

	return &ObjectStoreManager{
		store:     store,
		users:     users.NewObjectStoreRepository(store, logger),
		sessions:  sessions.NewObjectStoreRepository(store, logger),
		files:     files,
		notes:     notes,
		shortURLs: shorturls.NewObjectStoreRepository(store, logger),
	}, nil
}

func (m *ObjectStoreManager) Users() users.Repository { return m.users }

func (m *ObjectStoreManager) Sessions() sessions.Repository { return m.sessions }

func (m *ObjectStoreManager) Artifacts(kind models.Kind) (artifacts.Repository, error) {
	switch kind {
	case models.KindFile:
		return m.files, nil
	case models.KindNote:
		return m.notes, nil
	}
	return nil, fmt.Errorf("unknown artifact kind %q", kind)
}

func (m *ObjectStoreManager) ShortURLs() shorturls.Repository { return m.shortURLs }

// Store exposes the underlying store for payload blobs.
func (m *ObjectStoreManager) Store() objectstore.Store { return m.store }
