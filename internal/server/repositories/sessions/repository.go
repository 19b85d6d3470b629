// Package sessions stores login sessions under sessions/<token>.json.
package sessions

import (
	"context"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/objectstore"
	"github.com/mutix31/Sharebin/internal/server/repositories/records"
)

const Prefix = "sessions/"

type Repository interface {
	Create(ctx context.Context, s *models.Session) error
	// Find returns common.ErrorNotFound for unknown tokens.
	Find(ctx context.Context, token string) (*models.Session, error)
	Update(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, token string) error
	List(ctx context.Context) ([]*models.Session, error)
}

type ObjectStoreRepository struct {
	records *records.Collection[models.Session]
}

func NewObjectStoreRepository(store objectstore.Store, logger logging.Logger) *ObjectStoreRepository {
	return &ObjectStoreRepository{records: records.NewCollection[models.Session](store, Prefix, logger)}
}

// Create is last-write-wins; token entropy makes collisions negligible.
func (r *ObjectStoreRepository) Create(ctx context.Context, s *models.Session) error {
	return r.records.Put(ctx, s.Token, s)
}

func (r *ObjectStoreRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	return r.records.Get(ctx, token)
}

func (r *ObjectStoreRepository) Update(ctx context.Context, s *models.Session) error {
	return r.records.Put(ctx, s.Token, s)
}

func (r *ObjectStoreRepository) Delete(ctx context.Context, token string) error {
	return r.records.Delete(ctx, token)
}

func (r *ObjectStoreRepository) List(ctx context.Context) ([]*models.Session, error) {
	return r.records.List(ctx)
}
