package secrets

import "fmt"

const (
	SourceDotenv  = "dotenv"
	SourceCommand = "command"
	SourceS3      = "s3"
	SourceRedis   = "redis"
)

// Config holds configuration for the secrets step.
type Config struct {
	// Source selects where secrets come from (dotenv, command, s3, redis).
	Source string `mapstructure:"source" default:"dotenv"`
	// Path is the dotenv file read by the dotenv source.
	Path string `mapstructure:"path" default:".env.secrets"`
	// Command prints KEY=VALUE lines on stdout for the command source.
	Command string `mapstructure:"command" default:""`
	// Object is the key of the dotenv object in the storage bucket for the s3 source.
	Object string `mapstructure:"object" default:"secrets.env"`
	// RedisAddr is the host:port of the redis server for the redis source.
	RedisAddr string `mapstructure:"redis_addr" default:"localhost:6379"`
	// RedisPassword authenticates against the redis server.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB is the redis database index.
	RedisDB int `mapstructure:"redis_db" default:"0"`
	// RedisKey is the hash holding the secrets for the redis source.
	RedisKey string `mapstructure:"redis_key" default:"secrets"`
	// Override replaces variables already present in the environment.
	Override bool `mapstructure:"override" default:"true"`
}

// Validate checks the settings the selected source needs.
func (c Config) Validate() error {
	switch c.Source {
	case SourceDotenv:
		if c.Path == "" {
			return fmt.Errorf("secrets path is required for the %s source", c.Source)
		}
	case SourceCommand:
		if c.Command == "" {
			return fmt.Errorf("secrets command is required for the %s source", c.Source)
		}
	case SourceS3:
		if c.Object == "" {
			return fmt.Errorf("secrets object is required for the %s source", c.Source)
		}
	case SourceRedis:
		if c.RedisAddr == "" || c.RedisKey == "" {
			return fmt.Errorf("secrets redis address and key are required for the %s source", c.Source)
		}
	default:
		return fmt.Errorf("unsupported secrets source %q", c.Source)
	}
	return nil
}
