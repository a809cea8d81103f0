package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/irabtech/lms/internal/models"
)

// ErrCacheMiss is returned when no status is cached for the pair.
var ErrCacheMiss = errors.New("cache miss")

// StatusCache keeps CompletionEvaluator tuples warm for UI progress bars.
// The learning flow invalidates the pair on every mutating event, so a cached
// value never hides a completed transition; the TTL only bounds staleness
// against out-of-band course edits.
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, db int, ttl time.Duration) *StatusCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &StatusCache{client: client, ttl: ttl}
}

func statusKey(courseID, userID uuid.UUID) string {
	return fmt.Sprintf("completion:%s:%s", courseID, userID)
}

func (c *StatusCache) Get(ctx context.Context, courseID, userID uuid.UUID) (models.CompletionStatus, error) {
	var status models.CompletionStatus
	data, err := c.client.Get(ctx, statusKey(courseID, userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return status, ErrCacheMiss
		}
		return status, fmt.Errorf("failed to read status cache: %w", err)
	}
	if err := json.Unmarshal(data, &status); err != nil {
		return status, fmt.Errorf("failed to decode cached status: %w", err)
	}
	return status, nil
}

func (c *StatusCache) Set(ctx context.Context, courseID, userID uuid.UUID, status models.CompletionStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}
	if err := c.client.Set(ctx, statusKey(courseID, userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write status cache: %w", err)
	}
	return nil
}

func (c *StatusCache) Invalidate(ctx context.Context, courseID, userID uuid.UUID) error {
	if err := c.client.Del(ctx, statusKey(courseID, userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate status cache: %w", err)
	}
	return nil
}

func (c *StatusCache) Close() error {
	return c.client.Close()
}
