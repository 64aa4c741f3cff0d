package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/pkg/config"
	"github.com/go-redis/redis/v8"
)

var (
	ErrCacheNotFound   = errors.New("cache: key not found")
	ErrCacheConnection = errors.New("cache: connection error")
)

// Config holds the configuration for the Redis client
type Config struct {
	Addr             string
	Password         string
	DB               int
	PoolSize         int
	MinIdleConns     int
	MaxRetries       int
	ConnTimeout      time.Duration
	OperationTimeout time.Duration
	DefaultTTL       time.Duration
	KeyPrefix        string
}

// NewConfigFromEnv creates a Redis config from project configuration
func NewConfigFromEnv(cfg *config.Config) *Config {
	opTimeout := cfg.Server.Timeout
	if opTimeout == 0 {
		opTimeout = 2 * time.Second
	}
	return &Config{
		Addr:             fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:         cfg.Redis.Password,
		DB:               cfg.Redis.DB,
		PoolSize:         100,
		MinIdleConns:     10,
		MaxRetries:       3,
		ConnTimeout:      5 * time.Second,
		OperationTimeout: opTimeout,
		DefaultTTL:       5 * time.Minute,
		KeyPrefix:        "habitflow:",
	}
}

// RedisClient wraps the go-redis client with prefixing and TTL defaults
type RedisClient struct {
	client *redis.Client
	config *Config
}

func NewRedisClient(cfg *Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.ConnTimeout,
		ReadTimeout:  cfg.OperationTimeout,
		WriteTimeout: cfg.OperationTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	return &RedisClient{client: client, config: cfg}, nil
}

// GetClient exposes the underlying go-redis client (rate limiter needs it)
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

func (r *RedisClient) key(k string) string {
	return r.config.KeyPrefix + k
}

// Get returns the cached value for key, or ErrCacheNotFound
func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores value under key with the given TTL (0 means the default TTL)
func (r *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = r.config.DefaultTTL
	}
	return r.client.Set(ctx, r.key(key), value, ttl).Err()
}

// Delete removes a single key
func (r *RedisClient) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// DeletePattern removes every key matching the glob pattern. SCAN is used
// instead of KEYS so large caches do not block the server.
func (r *RedisClient) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, r.key(pattern), 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// HealthCheck verifies the connection is alive
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close shuts down the client
func (r *RedisClient) Close() error {
	return r.client.Close()
}
