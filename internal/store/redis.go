package store

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"taskboard/internal/models"
)

// DefaultRedisKey is where the board snapshot lives unless configured otherwise.
const DefaultRedisKey = "taskboard:board"

// RedisStore keeps the JSON encoded board snapshot under a single key.
type RedisStore struct {
	redis *redis.Client
	key   string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if client == nil {
		panic("store.NewRedisStore: client is nil")
	}
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{redis: client, key: key}
}

// OpenRedis connects using either a redis:// URL or the
// "host:port,password=...,ssl=true" connection string form.
func OpenRedis(ctx context.Context, conn, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(conn)
	if err != nil {
		parts := strings.Split(conn, ",")
		opts = &redis.Options{Addr: parts[0]}
		for _, p := range parts[1:] {
			kv := strings.SplitN(p, "=", 2)
			if len(kv) != 2 {
				continue
			}
			switch strings.ToLower(kv[0]) {
			case "password":
				opts.Password = kv[1]
			case "ssl":
				if strings.ToLower(kv[1]) == "true" {
					opts.TLSConfig = &tls.Config{}
				}
			}
		}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewRedisStore(client, key), nil
}

// LoadBoard decodes the saved snapshot.
func (s *RedisStore) LoadBoard(ctx context.Context) (*models.Board, error) {
	data, err := s.redis.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.key, err)
	}

	var b models.Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.key, err)
	}
	if b.Columns == nil {
		b.Columns = []models.Column{}
	}
	if b.Tasks == nil {
		b.Tasks = []models.Task{}
	}
	return &b, nil
}

// SaveBoard overwrites the snapshot; a single SET is atomic.
func (s *RedisStore) SaveBoard(ctx context.Context, b models.Board) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}
	if err := s.redis.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.key, err)
	}
	return nil
}

// Close closes the redis client.
func (s *RedisStore) Close() error {
	return s.redis.Close()
}
