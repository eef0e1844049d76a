package secrets

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSource reads secrets from the fields of a redis hash.
type RedisSource struct {
	client *redis.Client
	key    string
}

// NewRedisSource creates a source for the hash at key.
func NewRedisSource(client *redis.Client, key string) *RedisSource {
	return &RedisSource{client: client, key: key}
}

func (s *RedisSource) Name() string {
	return SourceRedis
}

// Load reads the hash and closes the client; a RedisSource is single use.
func (s *RedisSource) Load(ctx context.Context) (map[string]string, error) {
	defer s.client.Close()

	vars, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets hash %s: %w", s.key, err)
	}
	if len(vars) == 0 {
		return nil, fmt.Errorf("secrets hash %s is empty or missing", s.key)
	}
	return vars, nil
}
