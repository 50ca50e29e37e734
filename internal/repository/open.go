package repository

import (
	"context"
	"fmt"

	"talentbridge_backend/internal/config"
	"talentbridge_backend/internal/util"
	"talentbridge_backend/pkg/database"
)

// OpenStore connects the backend selected by storage.type.
func OpenStore(ctx context.Context, cfg *config.Config) (KVStore, error) {
	var (
		store KVStore
		err   error
	)

	switch cfg.Storage.Type {
	case util.StorageMemory:
		store = NewMemoryStore()
	case util.StorageSQLite:
		db, openErr := database.OpenSQLite(cfg.Storage.SQLitePath)
		if openErr != nil {
			return nil, openErr
		}
		store, err = NewSQLiteStore(db)
		if err != nil {
			db.Close()
		}
	case util.StorageMySQL:
		db, openErr := database.InitDB(&cfg.Database)
		if openErr != nil {
			return nil, openErr
		}
		store = NewGormStore(db)
	case util.StorageRedis:
		client, openErr := database.InitRedis(&cfg.Redis)
		if openErr != nil {
			return nil, openErr
		}
		store = NewRedisStore(client)
	case util.StorageMinio:
		client, openErr := database.InitMinio(ctx, &cfg.Minio)
		if openErr != nil {
			return nil, openErr
		}
		store = NewMinioStore(client, cfg.Minio.Bucket)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}
	if err != nil {
		return nil, err
	}

	return WithKeyPrefix(store, cfg.Storage.KeyPrefix), nil
}
