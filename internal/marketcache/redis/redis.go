package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"counsellor/internal/domain"
)

// Storage caches market data in Redis under "{prefix}:{key}".
type Storage struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// Config contains connection details for Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// NewStorage connects to Redis and verifies the connection.
func NewStorage(ctx context.Context, cfg Config) (*Storage, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return NewStorageWithClient(client, cfg.Prefix, cfg.TTL), nil
}

// NewStorageWithClient wraps an existing client.
func NewStorageWithClient(client goredis.UniversalClient, prefix string, ttl time.Duration) *Storage {
	if prefix == "" {
		prefix = "market"
	}
	return &Storage{client: client, prefix: prefix, ttl: ttl}
}

type record struct {
	JobCount  int      `json:"job_count"`
	AvgSalary *float64 `json:"avg_salary,omitempty"`
}

func (s *Storage) key(k string) string { return s.prefix + ":" + k }

func (s *Storage) Get(ctx context.Context, key string) (domain.MarketData, bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.MarketData{}, false, nil
	}
	if err != nil {
		return domain.MarketData{}, false, err
	}
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.MarketData{}, false, fmt.Errorf("decode cached market data: %w", err)
	}
	return domain.MarketData{JobCount: r.JobCount, AvgSalary: r.AvgSalary}, true, nil
}

func (s *Storage) Set(ctx context.Context, key string, data domain.MarketData) error {
	raw, err := json.Marshal(record{JobCount: data.JobCount, AvgSalary: data.AvgSalary})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), raw, s.ttl).Err()
}

// Close releases the Redis connection.
func (s *Storage) Close() error { return s.client.Close() }
