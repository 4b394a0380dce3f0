// Package config loads server configuration from environment variables.
//
// Sources, in order of precedence:
//  1. Environment variables
//  2. Default values
//
// Every knob is environment-configurable with a documented default, so the
// server starts with no configuration at all against local mongo/redis.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds everything the server and worker binaries need.
type Config struct {
	// Port is the HTTP listen port. Env: PORT (default 5000).
	Port int `mapstructure:"port" validate:"required,gt=0,lte=65535"`

	// DBHost/DBPort/DBName locate the metadata store.
	// Env: DB_HOST (localhost), DB_PORT (27017), DB_DATABASE (files_manager).
	DBHost string `mapstructure:"db_host" validate:"required"`
	DBPort int    `mapstructure:"db_port" validate:"required,gt=0,lte=65535"`
	DBName string `mapstructure:"db_database" validate:"required"`

	// RedisHost/RedisPort locate the session store and job queue broker.
	// Env: REDIS_HOST (localhost), REDIS_PORT (6379).
	RedisHost string `mapstructure:"redis_host" validate:"required"`
	RedisPort int    `mapstructure:"redis_port" validate:"required,gt=0,lte=65535"`

	// FolderPath is the content-storage root directory.
	// Env: FOLDER_PATH (default /tmp/files_manager).
	FolderPath string `mapstructure:"folder_path" validate:"required"`
}

// MongoURI returns the metadata store connection string.
func (c Config) MongoURI() string {
	return fmt.Sprintf("mongodb://%s:%d", c.DBHost, c.DBPort)
}

// RedisAddr returns the session store / broker address.
func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

var validate = validator.New()

// Load reads configuration from the environment, applies defaults and
// validates the result.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 5000)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 27017)
	v.SetDefault("db_database", "files_manager")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("folder_path", "/tmp/files_manager")

	// The env names predate this implementation; keep them as-is rather
	// than a prefixed scheme.
	bindings := map[string]string{
		"port":        "PORT",
		"db_host":     "DB_HOST",
		"db_port":     "DB_PORT",
		"db_database": "DB_DATABASE",
		"redis_host":  "REDIS_HOST",
		"redis_port":  "REDIS_PORT",
		"folder_path": "FOLDER_PATH",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: binding %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshalling: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return &cfg, nil
}
