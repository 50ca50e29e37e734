package repository

import (
	"context"
	"encoding/json"
	"errors"

	"talentbridge_backend/internal/util"
	"talentbridge_backend/pkg/logger"
	"talentbridge_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// KVStore is the key/value adapter every repository persists through.
// Writes are atomic per key only.
type KVStore interface {
	// Get returns found=false with a nil error when the key does not exist.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Load decodes the JSON value under key into out. A missing key is found=false
// with a nil error; any other failure is a *util.StorageError.
func Load(ctx context.Context, s KVStore, key string, out any) (bool, error) {
	data, found, err := s.Get(ctx, key)
	if err != nil {
		return false, &util.StorageError{Op: "get", Key: key, Err: err}
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, &util.StorageError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

// Save encodes value as JSON under key.
func Save(ctx context.Context, s KVStore, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &util.StorageError{Op: "encode", Key: key, Err: err}
	}
	if err := s.Set(ctx, key, data); err != nil {
		return &util.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func Remove(ctx context.Context, s KVStore, key string) error {
	if err := s.Delete(ctx, key); err != nil {
		return &util.StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// Get returns the value under key, or def when it is missing or unreadable.
// Read failures are logged and never reach the caller.
func Get[T any](ctx context.Context, s KVStore, key string, def T) T {
	var v T
	found, err := Load(ctx, s, key, &v)
	if err != nil {
		logStorageError(err)
		return def
	}
	if !found {
		return def
	}
	return v
}

// Put writes value under key and reports whether it was persisted.
// Write failures are logged and never reach the caller.
func Put(ctx context.Context, s KVStore, key string, value any) bool {
	if err := Save(ctx, s, key, value); err != nil {
		logStorageError(err)
		return false
	}
	return true
}

func logStorageError(err error) {
	monitoring.StorageFallbacks.Inc()
	var se *util.StorageError
	if errors.As(err, &se) {
		logger.Log.Error("Storage operation failed",
			zap.String("op", se.Op), zap.String("key", se.Key), zap.Error(se.Err))
		return
	}
	logger.Log.Error("Storage operation failed", zap.Error(err))
}

// prefixedStore namespaces every key, so several deployments can share one backend.
type prefixedStore struct {
	KVStore
	prefix string
}

func WithKeyPrefix(s KVStore, prefix string) KVStore {
	if prefix == "" {
		return s
	}
	return &prefixedStore{KVStore: s, prefix: prefix}
}

func (p *prefixedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.KVStore.Get(ctx, p.prefix+key)
}

func (p *prefixedStore) Set(ctx context.Context, key string, value []byte) error {
	return p.KVStore.Set(ctx, p.prefix+key, value)
}

func (p *prefixedStore) Delete(ctx context.Context, key string) error {
	return p.KVStore.Delete(ctx, p.prefix+key)
}
