package config

import (
	"errors"
	"reflect"
	"strings"

	"deploy-launcher/core/database"
	"deploy-launcher/core/logger"
	"deploy-launcher/core/server"
	"deploy-launcher/core/storage"
	"deploy-launcher/feature/migration"
	"deploy-launcher/feature/secrets"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Port is the TCP port the server binds to. Read from PORT.
	Port int `mapstructure:"port" default:"8000"`
	// App identifies the application to the server's module loader.
	App AppConfig `mapstructure:"app"`
	// Server holds configuration for the application server process.
	Server server.Config `mapstructure:"server"`
	// Secrets holds configuration for the secrets step.
	Secrets secrets.Config `mapstructure:"secrets"`
	// Migration holds configuration for the migration step.
	Migration migration.Config `mapstructure:"migration"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// AppConfig names the variable the launcher exports for the server.
type AppConfig struct {
	// Variable is the name of the exported variable (e.g. FLASK_APP).
	Variable string `mapstructure:"variable" default:"APP_MODULE"`
	// Module is its value, typically "module:callable".
	Module string `mapstructure:"module" default:"app:app"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	LoadEnvFile(path)
	return Read()
}

// LoadEnvFile overloads the process environment with the .env file in path.
func LoadEnvFile(path string) {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)
}

// Read builds the configuration from defaults and the current environment.
func Read() (*Config, error) {
	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_COMMAND -> server.command)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings every launch needs. Step specific settings
// are validated by the step that uses them.
func (c *Config) Validate() error {
	return errors.Join(
		c.Log.Validate(),
		c.Secrets.Validate(),
	)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
