// Package records is the typed layer between repositories and the object
// store: one Collection per key prefix, encoding through the codec.
package records

import (
	"context"
	"errors"
	"strings"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/codec"
	"github.com/mutix31/Sharebin/internal/server/objectstore"
)

const keySuffix = ".json"

// Collection stores records of type T under prefix/<id>.json.
type Collection[T codec.Record] struct {
	store  objectstore.Store
	prefix string
	logger logging.Logger
}

func NewCollection[T codec.Record](store objectstore.Store, prefix string, logger logging.Logger) *Collection[T] {
	return &Collection[T]{store: store, prefix: prefix, logger: logger.With("prefix", prefix)}
}

// Key returns the object key of id.
func (c *Collection[T]) Key(id string) string {
	return c.prefix + id + keySuffix
}

// Get fetches and decodes id. Absent records yield common.ErrorNotFound.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	key := c.Key(id)
	b, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		c.logger.Error(ctx, "object store failure", "op", "get", "key", key, "error", err)
		return nil, common.StoreError("get", key, err)
	}

	rec, err := codec.Decode[T](b)
	if err != nil {
		c.logger.Error(ctx, "undecodable record", "key", key, "error", err)
		return nil, err
	}
	return rec, nil
}

// Put encodes rec and writes it under id, replacing what was there.
func (c *Collection[T]) Put(ctx context.Context, id string, rec *T) error {
	key := c.Key(id)
	b, err := codec.Encode(rec)
	if err != nil {
		return err
	}
	if err := c.store.Put(ctx, key, b, objectstore.ContentTypeJSON); err != nil {
		c.logger.Error(ctx, "object store failure", "op", "put", "key", key, "error", err)
		return common.StoreError("put", key, err)
	}
	return nil
}

// Create writes rec only if id is not taken yet. The check and the write are
// separate store calls, so two racing creators can both succeed.
func (c *Collection[T]) Create(ctx context.Context, id string, rec *T) error {
	exists, err := c.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return common.ErrorAlreadyExists
	}
	return c.Put(ctx, id, rec)
}

// Exists reports whether an object is stored under id.
func (c *Collection[T]) Exists(ctx context.Context, id string) (bool, error) {
	key := c.Key(id)
	_, err := c.store.Get(ctx, key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	c.logger.Error(ctx, "object store failure", "op", "get", "key", key, "error", err)
	return false, common.StoreError("get", key, err)
}

// Delete removes id. Deleting an absent record succeeds.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	key := c.Key(id)
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Error(ctx, "object store failure", "op", "delete", "key", key, "error", err)
		return common.StoreError("delete", key, err)
	}
	return nil
}

// List returns every decodable record under the prefix. Records that vanish
// between list and get, fail to fetch, or fail to decode are skipped and
// logged; only a failure of the listing itself is returned.
func (c *Collection[T]) List(ctx context.Context) ([]*T, error) {
	objects, err := c.store.List(ctx, c.prefix)
	if err != nil {
		c.logger.Error(ctx, "object store failure", "op", "list", "key", c.prefix, "error", err)
		return nil, common.StoreError("list", c.prefix, err)
	}

	out := make([]*T, 0, len(objects))
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, keySuffix) {
			continue
		}
		b, err := c.store.Get(ctx, obj.Key)
		if err != nil {
			if !errors.Is(err, common.ErrorNotFound) {
				c.logger.Warn(ctx, "skipping unreadable record", "key", obj.Key, "error", err)
			}
			continue
		}
		rec, err := codec.Decode[T](b)
		if err != nil {
			c.logger.Warn(ctx, "skipping undecodable record", "key", obj.Key, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
