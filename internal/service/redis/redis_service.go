package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss reports an absent key; callers fall through to Postgres.
var ErrCacheMiss = errors.New("cache miss")

type Service struct {
	client *redis.Client
}

func NewRedisService(config RedisConfig) *Service {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		return nil
	}

	log.Printf("✅ Connected to Redis at %s:%s", config.Host, config.Port)
	return &Service{client: client}
}

func (r *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return r.client.Set(ctx, key, jsonValue, ttl).Err()
}

func (r *Service) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get value: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (r *Service) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *Service) Exists(ctx context.Context, key string) (bool, error) {
	result, err := r.client.Exists(ctx, key).Result()
	return result > 0, err
}

// CacheWeeklyInsight keeps the generated weekly payload hot so repeated
// requests for the same week skip Postgres entirely.
func (r *Service) CacheWeeklyInsight(ctx context.Context, userID string, weekStart time.Time, data interface{}, ttl time.Duration) error {
	return r.Set(ctx, weeklyInsightKey(userID, weekStart), data, ttl)
}

func (r *Service) GetWeeklyInsight(ctx context.Context, userID string, weekStart time.Time, dest interface{}) error {
	return r.Get(ctx, weeklyInsightKey(userID, weekStart), dest)
}

func (r *Service) InvalidateWeeklyInsight(ctx context.Context, userID string, weekStart time.Time) error {
	return r.Delete(ctx, weeklyInsightKey(userID, weekStart))
}

func weeklyInsightKey(userID string, weekStart time.Time) string {
	return fmt.Sprintf("weekly_insight:%s:%s", userID, weekStart.Format("2006-01-02"))
}

// CacheMetrics stores a computed analytics result under a per-user metric key.
func (r *Service) CacheMetrics(ctx context.Context, userID, metricType string, data interface{}, ttl time.Duration) error {
	return r.Set(ctx, metricsKey(userID, metricType), data, ttl)
}

func (r *Service) GetMetrics(ctx context.Context, userID, metricType string, dest interface{}) error {
	return r.Get(ctx, metricsKey(userID, metricType), dest)
}

func metricsKey(userID, metricType string) string {
	return fmt.Sprintf("metrics:%s:%s", userID, metricType)
}

func (r *Service) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	pipe := r.client.Pipeline()

	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= int64(limit), nil
}

func (r *Service) Close() error {
	return r.client.Close()
}

func (r *Service) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
