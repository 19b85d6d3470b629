package server

import (
	"context"
	"fmt"

	"github.com/mutix31/Sharebin/internal/server/config"
	"github.com/mutix31/Sharebin/internal/server/objectstore"
)

// OpenStore builds the object store selected by cfg.Storage. The returned
// close function releases backend resources and is never nil.
func OpenStore(ctx context.Context, cfg *config.Config) (objectstore.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage {
	case config.StorageMemory:
		return objectstore.NewMemoryStore(), noop, nil

	case config.StorageS3:
		s, err := objectstore.NewS3Store(ctx, objectstore.S3Options{
			User:         cfg.S3RootUser,
			Password:     cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("s3 init error: %w", err)
		}
		return s, noop, nil

	case config.StoragePostgres:
		s, db, err := objectstore.OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("db init error: %w", err)
		}
		return s, db.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}
