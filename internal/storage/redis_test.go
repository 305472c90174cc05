package storage_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"taskboard/internal/model"
	"taskboard/internal/storage"
)

func setupRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisBackendRoundTrip(t *testing.T) {
	client := setupRedis(t)
	backend := storage.NewRedisBackend(client, "test:board")
	ctx := context.Background()

	board := model.DefaultBoard(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, backend.Save(ctx, &board))

	loaded, err := backend.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, board, *loaded)
}

func TestRedisBackendEmptyKeyIsNotFound(t *testing.T) {
	client := setupRedis(t)
	backend := storage.NewRedisBackend(client, "")

	_, err := backend.Load(context.Background())

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRedisBackendCorruptValueIsError(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	assert.NoError(t, client.Set(ctx, "test:board", "{not json", 0).Err())
	backend := storage.NewRedisBackend(client, "test:board")

	_, err := backend.Load(ctx)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestRedisBackendUnreachableIsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })
	backend := storage.NewRedisBackend(client, "test:board")

	_, err := backend.Load(context.Background())

	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}
