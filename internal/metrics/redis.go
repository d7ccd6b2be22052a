package metrics

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/mirage/internal/domain"
)

// Config holds Redis connection settings for the usage recorder.
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisRecorder accumulates usage counters in Redis hashes, one hash
// per kind/model pair.
type RedisRecorder struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisRecorder creates a Redis-backed usage recorder.
func NewRedisRecorder(cfg Config) *RedisRecorder {
	return &RedisRecorder{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		keyPrefix: cfg.KeyPrefix,
	}
}

// Record increments the per-model counters for one request.
func (r *RedisRecorder) Record(ctx context.Context, kind, model string, usage domain.Usage) error {
	key := r.key(kind, model)

	pipe := r.client.Pipeline()
	pipe.HIncrBy(ctx, key, "requests", 1)
	pipe.HIncrBy(ctx, key, "prompt_tokens", int64(usage.PromptTokens))
	pipe.HIncrBy(ctx, key, "completion_tokens", int64(usage.CompletionTokens))
	pipe.HIncrBy(ctx, key, "total_tokens", int64(usage.TotalTokens))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// Snapshot returns the accumulated counters for a kind/model pair.
func (r *RedisRecorder) Snapshot(ctx context.Context, kind, model string) (map[string]string, error) {
	counters, err := r.client.HGetAll(ctx, r.key(kind, model)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read usage counters: %w", err)
	}
	return counters, nil
}

// Close releases the underlying Redis connection.
func (r *RedisRecorder) Close() error {
	return r.client.Close()
}

func (r *RedisRecorder) key(kind, model string) string {
	return fmt.Sprintf("%s:%s:%s", r.keyPrefix, kind, model)
}
