package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staff_portal/internal/config"
	"staff_portal/internal/models"
	"staff_portal/internal/storage"

	"github.com/redis/go-redis/v9"
)

// RedisRepo keeps the encoded snapshot under one key.
type RedisRepo struct {
	client *redis.Client
	key    string
}

func New(ctx context.Context, cfg config.Redis, document string) (*RedisRepo, error) {
	const op = "storage.redis.New"

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithClient(client, document), nil
}

func NewWithClient(client *redis.Client, document string) *RedisRepo {
	return &RedisRepo{
		client: client,
		key:    fmt.Sprintf("document:%s", document),
	}
}

func (r *RedisRepo) Load(ctx context.Context) (*models.Snapshot, error) {
	const op = "storage.redis.Load"

	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return storage.Empty(), nil
		}

		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrIO, err)
	}

	snap, err := storage.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return snap, nil
}

func (r *RedisRepo) Save(ctx context.Context, snap *models.Snapshot) error {
	const op = "storage.redis.Save"

	data, err := storage.Encode(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w: %w", op, storage.ErrIO, err)
	}

	return nil
}

// * Close releases the client pool.
func (r *RedisRepo) Close() {
	r.client.Close()
}
