package redis

import (
	"context"
	"time"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type ServiceInterface interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	CacheWeeklyInsight(ctx context.Context, userID string, weekStart time.Time, data interface{}, ttl time.Duration) error
	GetWeeklyInsight(ctx context.Context, userID string, weekStart time.Time, dest interface{}) error
	InvalidateWeeklyInsight(ctx context.Context, userID string, weekStart time.Time) error

	CacheMetrics(ctx context.Context, userID, metricType string, data interface{}, ttl time.Duration) error
	GetMetrics(ctx context.Context, userID, metricType string, dest interface{}) error

	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Health(ctx context.Context) error
	Close() error
}
