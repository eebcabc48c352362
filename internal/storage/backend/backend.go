package backend

import (
	"context"
	"fmt"

	"staff_portal/internal/config"
	"staff_portal/internal/models"
	"staff_portal/internal/storage/file"
	"staff_portal/internal/storage/memory"
	"staff_portal/internal/storage/mongo"
	"staff_portal/internal/storage/postgres"
	"staff_portal/internal/storage/redis"
)

type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
}

// Open builds the store named by cfg.Kind. The returned func releases its connections.
func Open(ctx context.Context, cfg config.Storage) (Store, func(), error) {
	const op = "backend.Open"

	switch cfg.Kind {
	case config.StorageFile:
		return file.New(cfg.FilePath), func() {}, nil
	case config.StorageMemory:
		return memory.New(), func() {}, nil
	case config.StoragePostgres:
		repo, err := postgres.New(ctx, cfg.Postgres, cfg.Document)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		return repo, repo.Close, nil
	case config.StorageRedis:
		repo, err := redis.New(ctx, cfg.Redis, cfg.Document)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		return repo, repo.Close, nil
	case config.StorageMongo:
		repo, err := mongo.New(ctx, cfg.Mongo, cfg.Document)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		return repo, func() { _ = repo.Close(context.Background()) }, nil
	default:
		return nil, nil, fmt.Errorf("%s: unknown storage kind %q", op, cfg.Kind)
	}
}
