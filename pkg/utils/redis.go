package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hiredeck-utils/internal/config"
	"hiredeck-utils/internal/logging"
	"hiredeck-utils/pkg/models"
)

// RedisClient wraps the Redis client with feed snapshot caching. The cache is
// a boundary concern: core extraction never reads it, handlers write to it
// best-effort after a successful run.
type RedisClient struct {
	client *redis.Client
	config *config.Config
	logger logging.Logger
}

// FeedSnapshot is the cached result of the last successful feed extraction
// for a session.
type FeedSnapshot struct {
	SessionID string              `json:"session_id"`
	Method    string              `json:"method"`
	Jobs      []models.JobSummary `json:"jobs"`
	FetchedAt time.Time           `json:"fetched_at"`
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config) *RedisClient {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisClient{
		client: redis.NewClient(opts),
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// Ping tests the Redis connection
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// StoreFeedSnapshot caches the latest feed extraction for a session with the
// configured TTL.
func (r *RedisClient) StoreFeedSnapshot(ctx context.Context, snapshot *FeedSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal feed snapshot: %w", err)
	}

	key := r.feedKey(snapshot.SessionID)
	if err := r.client.Set(ctx, key, data, r.config.Redis.FeedCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to store feed snapshot: %w", err)
	}
	return nil
}

// GetFeedSnapshot returns the cached feed extraction for a session, or an
// error when none is cached.
func (r *RedisClient) GetFeedSnapshot(ctx context.Context, sessionID string) (*FeedSnapshot, error) {
	data, err := r.client.Get(ctx, r.feedKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("no cached feed for session %s", sessionID)
		}
		return nil, fmt.Errorf("failed to get feed snapshot: %w", err)
	}

	var snapshot FeedSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feed snapshot: %w", err)
	}
	return &snapshot, nil
}

// DropSession removes cached artifacts for a destroyed session.
func (r *RedisClient) DropSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.feedKey(sessionID)).Err()
}

func (r *RedisClient) feedKey(sessionID string) string {
	return fmt.Sprintf("feed:session:%s", sessionID)
}

// IsHealthy checks if Redis is connected and healthy
func (r *RedisClient) IsHealthy(ctx context.Context) error {
	return r.Ping(ctx)
}
