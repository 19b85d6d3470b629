// Package artifacts stores file metadata under metadata/<id>.json and notes
// under notes/<id>.json.
package artifacts

import (
	"context"
	"fmt"

	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/objectstore"
	"github.com/mutix31/Sharebin/internal/server/repositories/records"
)

const (
	FilePrefix = "metadata/"
	NotePrefix = "notes/"
)

type Repository interface {
	Kind() models.Kind
	Create(ctx context.Context, a *models.Artifact) error
	// Get returns common.ErrorNotFound for unknown ids.
	Get(ctx context.Context, id string) (*models.Artifact, error)
	Update(ctx context.Context, a *models.Artifact) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Artifact, error)
}

type ObjectStoreRepository struct {
	kind    models.Kind
	records *records.Collection[models.Artifact]
}

// PrefixFor maps an artifact kind to its key prefix.
func PrefixFor(kind models.Kind) (string, error) {
	switch kind {
	case models.KindFile:
		return FilePrefix, nil
	case models.KindNote:
		return NotePrefix, nil
	}
	return "", fmt.Errorf("unknown artifact kind %q", kind)
}

func NewObjectStoreRepository(store objectstore.Store, kind models.Kind, logger logging.Logger) (*ObjectStoreRepository, error) {
	prefix, err := PrefixFor(kind)
	if err != nil {
		return nil, err
	}
	return &ObjectStoreRepository{kind: kind, records: records.NewCollection[models.Artifact](store, prefix, logger)}, nil
}

func (r *ObjectStoreRepository) Kind() models.Kind { return r.kind }

// Create is last-write-wins; ids come from a random namespace.
func (r *ObjectStoreRepository) Create(ctx context.Context, a *models.Artifact) error {
	if a.Kind != r.kind {
		return fmt.Errorf("artifact kind %q stored in %q repository", a.Kind, r.kind)
	}
	return r.records.Put(ctx, a.ID, a)
}

func (r *ObjectStoreRepository) Get(ctx context.Context, id string) (*models.Artifact, error) {
	return r.records.Get(ctx, id)
}

func (r *ObjectStoreRepository) Update(ctx context.Context, a *models.Artifact) error {
	return r.records.Put(ctx, a.ID, a)
}

func (r *ObjectStoreRepository) Delete(ctx context.Context, id string) error {
	return r.records.Delete(ctx, id)
}

func (r *ObjectStoreRepository) List(ctx context.Context) ([]*models.Artifact, error) {
	return r.records.List(ctx)
}
