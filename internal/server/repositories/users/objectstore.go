package users

import (
	"context"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/objectstore"
	"github.com/mutix31/Sharebin/internal/server/repositories/records"
)

const Prefix = "users/"

type ObjectStoreRepository struct {
	records *records.Collection[models.User]
}

func NewObjectStoreRepository(store objectstore.Store, logger logging.Logger) *ObjectStoreRepository {
	return &ObjectStoreRepository{records: records.NewCollection[models.User](store, Prefix, logger)}
}

func (r *ObjectStoreRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	return r.records.Create(ctx, user.Email, user)
}

func (r *ObjectStoreRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.records.Get(ctx, models.NormalizeEmail(email))
}

func (r *ObjectStoreRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	all, err := r.records.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *ObjectStoreRepository) Update(ctx context.Context, user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	return r.records.Put(ctx, user.Email, user)
}

func (r *ObjectStoreRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.records.List(ctx)
}
