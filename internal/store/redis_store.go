package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"cantina-backend/internal/models"
)

// RedisStore keeps both documents under fixed keys in Redis. Same contract
// as FileStore; useful when several backend instances share one snapshot.
type RedisStore struct {
	client *redis.Client
	seed   SeedFunc
}

func NewRedisStore(addr, password string, db int, seed SeedFunc) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, seed: seed}, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) Load(ctx context.Context) (*models.AppState, error) {
	raw, err := r.client.Get(ctx, SnapshotKey).Bytes()
	if err == nil {
		state, derr := Decode(raw)
		if derr == nil {
			return state, nil
		}
		log.Println("snapshot unreadable, reseeding defaults:", derr)
	} else if err != redis.Nil {
		return nil, err
	}

	state := r.seed()
	if err := r.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (r *RedisStore) Save(ctx context.Context, state *models.AppState) error {
	return r.set(ctx, SnapshotKey, state)
}

func (r *RedisStore) SaveBackup(ctx context.Context, state *models.AppState) error {
	return r.set(ctx, BackupKey, state)
}

func (r *RedisStore) LoadBackup(ctx context.Context) (*models.AppState, error) {
	raw, err := r.client.Get(ctx, BackupKey).Bytes()
	if err == redis.Nil {
		return nil, ErrNoBackup
	}
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

func (r *RedisStore) set(ctx context.Context, key string, state *models.AppState) error {
	raw, err := Encode(state)
	if err != nil {
		return err
	}
	// Snapshots never expire; they are the database.
	return r.client.Set(ctx, key, raw, 0).Err()
}
