package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/masfaiz-code/track-emas-api/internal/application/ports"
	"github.com/masfaiz-code/track-emas-api/internal/config"
	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

const keyPrefix = "snapshot:"

// Adapter implements the SnapshotCache interface for Redis
type Adapter struct {
	client *redis.Client
}

// New creates a new Redis adapter
func New(cfg config.RedisConfig) (ports.SnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Adapter{
		client: client,
	}, nil
}

// Get returns the snapshot cached for a scope, or nil when absent or
// expired
func (a *Adapter) Get(ctx context.Context, scope string) (*models.Snapshot, error) {
	data, err := a.client.Get(ctx, keyPrefix+scope).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// Put replaces the entry for a scope, letting Redis expire it after
// the TTL. A ttl <= 0 stores nothing.
func (a *Adapter) Put(ctx context.Context, scope string, snapshot *models.Snapshot, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return a.client.Set(ctx, keyPrefix+scope, data, ttl).Err()
}

// Clear removes the entry for a scope regardless of TTL
func (a *Adapter) Clear(ctx context.Context, scope string) error {
	return a.client.Del(ctx, keyPrefix+scope).Err()
}

// ClearAll removes every cached entry
func (a *Adapter) ClearAll(ctx context.Context) error {
	keys, err := a.client.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return a.client.Del(ctx, keys...).Err()
}

// Close closes the cache connection
func (a *Adapter) Close() error {
	return a.client.Close()
}
