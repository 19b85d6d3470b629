// Package objectstore is the key-addressed blob storage sharebin keeps all
// of its records and payloads in. Implementations offer put/get/list/delete
// only: there is no compare-and-swap and no multi-key transaction, and list
// results may lag behind recent writes.
package objectstore

import (
	"context"
	"time"
)

// ObjectInfo describes one listed object. Key is also the handle used to
// fetch the object with Get.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Store is the object store contract.
//
// Get returns common.ErrorNotFound for absent keys. Delete of an absent key
// succeeds.
type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

// Presigner is implemented by stores that can hand out time-limited direct
// download URLs.
type Presigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ContentTypeJSON is used for every metadata record.
const ContentTypeJSON = "application/json"
