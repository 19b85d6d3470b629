// Package shorturls stores short links under urls/<code>.json.
package shorturls

import (
	"context"

	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/objectstore"
	"github.com/mutix31/Sharebin/internal/server/repositories/records"
)

const Prefix = "urls/"

type Repository interface {
	// Create fails with common.ErrorAlreadyExists when the code is taken.
	Create(ctx context.Context, u *models.ShortURL) error
	Get(ctx context.Context, code string) (*models.ShortURL, error)
	Update(ctx context.Context, u *models.ShortURL) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context) ([]*models.ShortURL, error)
}

type ObjectStoreRepository struct {
	records *records.Collection[models.ShortURL]
}

func NewObjectStoreRepository(store objectstore.Store, logger logging.Logger) *ObjectStoreRepository {
	return &ObjectStoreRepository{records: records.NewCollection[models.ShortURL](store, Prefix, logger)}
}

func (r *ObjectStoreRepository) Create(ctx context.Context, u *models.ShortURL) error {
	return r.records.Create(ctx, u.Code, u)
}

func (r *ObjectStoreRepository) Get(ctx context.Context, code string) (*models.ShortURL, error) {
	return r.records.Get(ctx, code)
}

func (r *ObjectStoreRepository) Update(ctx context.Context, u *models.ShortURL) error {
	return r.records.Put(ctx, u.Code, u)
}

func (r *ObjectStoreRepository) Delete(ctx context.Context, code string) error {
	return r.records.Delete(ctx, code)
}

func (r *ObjectStoreRepository) List(ctx context.Context) ([]*models.ShortURL, error) {
	return r.records.List(ctx)
}
