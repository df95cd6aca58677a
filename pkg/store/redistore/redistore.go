package redistore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unmined/taskman/pkg/common/validation"
	"github.com/unmined/taskman/pkg/taskman"
)

// Config holds the Redis store configuration.
type Config struct {
	// Redis is the client used for all operations.
	Redis redis.UniversalClient

	// KeyPrefix namespaces the hash keys. Default "taskman".
	KeyPrefix string

	// Timeout bounds each Redis operation. Default 2s.
	Timeout time.Duration
}

// Store mirrors taskman pool writes into Redis, one hash per pool with
// the task id as the hash field. It implements taskman.PoolStore.
type Store struct {
	cfg Config
}

var _ taskman.PoolStore = (*Store)(nil)

// New creates a Store from cfg.
func New(cfg Config) (*Store, error) {
	if cfg.Redis == nil {
		return nil, validation.ValidateNotNil("redistore", "redis", nil)
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "taskman"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Store{cfg: cfg}, nil
}

// key returns the Redis key for one pool's hash.
func (s *Store) key(pool string) string {
	return fmt.Sprintf("%s:pool:%s", s.cfg.KeyPrefix, pool)
}

// Put records one task output under its pool and id.
func (s *Store) Put(ctx context.Context, pool string, id int, output string) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if err := s.cfg.Redis.HSet(ctx, s.key(pool), strconv.Itoa(id), output).Err(); err != nil {
		return &RedisError{"put", err}
	}
	return nil
}

// Clear removes every entry for one pool.
func (s *Store) Clear(ctx context.Context, pool string) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if err := s.cfg.Redis.Del(ctx, s.key(pool)).Err(); err != nil {
		return &RedisError{"clear", err}
	}
	return nil
}

// Snapshot reads one pool back from Redis.
func (s *Store) Snapshot(ctx context.Context, pool string) (map[int]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	raw, err := s.cfg.Redis.HGetAll(ctx, s.key(pool)).Result()
	if err != nil {
		return nil, &RedisError{"snapshot", err}
	}
	return parseEntries(raw)
}

// parseEntries converts a Redis hash into a pool mapping.
func parseEntries(raw map[string]string) (map[int]string, error) {
	out := make(map[int]string, len(raw))
	for field, v := range raw {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("malformed pool entry id %q: %w", field, err)
		}
		out[id] = v
	}
	return out, nil
}

// RedisError wraps a failed Redis operation.
type RedisError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *RedisError) Error() string {
	return fmt.Sprintf("redistore: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying Redis error.
func (e *RedisError) Unwrap() error {
	return e.Err
}
