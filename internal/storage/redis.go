package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"taskboard/internal/model"
)

// DefaultRedisKey is the key the board document is stored under.
const DefaultRedisKey = "taskboard:board"

// RedisBackend stores the board document under a single key with no
// expiry.
type RedisBackend struct {
	client *redis.Client
	key    string
}

func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, key: key}
}

func (r *RedisBackend) Name() string { return "redis" }

func (r *RedisBackend) Load(ctx context.Context) (*model.Board, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var board model.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("decode board document: %w", err)
	}
	return &board, nil
}

func (r *RedisBackend) Save(ctx context.Context, board *model.Board) error {
	data, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("encode board document: %w", err)
	}
	return r.client.Set(ctx, r.key, data, 0).Err()
}
