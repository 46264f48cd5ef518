package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"jobharvest/internal/config"
	"jobharvest/internal/logging"
)

// Store persists crawl task records so the API can answer status polls.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, taskID string) (Record, error)
	Close() error
}

var ErrTaskNotFound = fmt.Errorf("task not found")

// NewStore returns a Redis-backed store when Redis is enabled and reachable,
// otherwise an in-process store. A single server instance works fine from
// memory; Redis matters when status polls land on another instance.
func NewStore(cfg *config.Config, logger logging.Logger) Store {
	if !cfg.Redis.Enabled {
		return NewMemoryStore()
	}

	store, err := NewRedisStore(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory task store", map[string]interface{}{
			"error": err.Error(),
		})
		return NewMemoryStore()
	}

	logger.Info("Task store backed by Redis", map[string]interface{}{
		"url": cfg.Redis.URL,
	})
	return store
}

type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.TaskID] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, taskID string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[taskID]
	if !ok {
		return Record{}, ErrTaskNotFound
	}
	return rec, nil
}

func (s *MemoryStore) Close() error { return nil }

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = cfg.Redis.Timeout
	opts.WriteTimeout = cfg.Redis.Timeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := cfg.Tasks.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func taskKey(taskID string) string {
	return fmt.Sprintf("task:crawl:%s", taskID)
}

func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal task record: %w", err)
	}
	if err := s.client.Set(ctx, taskKey(rec.TaskID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save task record: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, taskID string) (Record, error) {
	data, err := s.client.Get(ctx, taskKey(taskID)).Result()
	if err == redis.Nil {
		return Record{}, ErrTaskNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load task record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return Record{}, fmt.Errorf("failed to unmarshal task record: %w", err)
	}
	return rec, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
