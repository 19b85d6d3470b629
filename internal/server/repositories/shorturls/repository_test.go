package shorturls

import (
	"context"
	"errors"
	"testing"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/objectstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	store := objectstore.NewMemoryStore()
	repo := NewObjectStoreRepository(store, logging.Discard())

	u := &models.ShortURL{Code: "Ab3xY9kQ", TargetURL: "https://go.dev", OwnerUserID: "u1"}
	require.NoError(t, repo.Create(ctx, u))

	_, err := store.Get(ctx, "urls/Ab3xY9kQ.json")
	require.NoError(t, err)

	err = repo.Create(ctx, &models.ShortURL{Code: "Ab3xY9kQ", TargetURL: "https://other"})
	assert.True(t, errors.Is(err, common.ErrorAlreadyExists))

	u.VisitCount = 7
	require.NoError(t, repo.Update(ctx, u))
	got, err := repo.Get(ctx, "Ab3xY9kQ")
	require.NoError(t, err)
	assert.Equal(t, 7, got.VisitCount)
	assert.Equal(t, "https://go.dev", got.TargetURL)

	require.NoError(t, repo.Delete(ctx, "Ab3xY9kQ"))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
