package secrets

import (
	"context"
	"fmt"

	"deploy-launcher/core/storage"

	"github.com/redis/go-redis/v9"
)

// Source loads secret variables.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Load returns the secret variables. An unreachable backend or missing
	// secrets is an error.
	Load(ctx context.Context) (map[string]string, error)
}

// Dependencies carries the backends the remote sources use.
type Dependencies struct {
	// Storage and Bucket back the s3 source.
	Storage storage.Client
	Bucket  string
}

// NewSource builds the source selected by cfg.
func NewSource(cfg Config, deps Dependencies) (Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Source {
	case SourceCommand:
		src, err := NewCommandSource(cfg.Command)
		if err != nil {
			return nil, err
		}
		return src, nil
	case SourceS3:
		if deps.Storage == nil {
			return nil, fmt.Errorf("storage client is required for the %s source", SourceS3)
		}
		if deps.Bucket == "" {
			return nil, fmt.Errorf("storage bucket is required for the %s source", SourceS3)
		}
		return NewObjectSource(deps.Storage, deps.Bucket, cfg.Object), nil
	case SourceRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedisSource(client, cfg.RedisKey), nil
	default:
		return NewDotenvSource(cfg.Path), nil
	}
}
