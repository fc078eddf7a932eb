package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		// Driver selects the storage backend: sqlite, postgres or libsql.
		Driver string `yaml:"driver" env:"DB_DRIVER"`
		// URL is the connection string: a file path for sqlite, a
		// postgres:// conn string, or a libsql:// endpoint URL.
		URL string `yaml:"url" env:"DATABASE_URL"`
		// AuthToken authenticates against the remote libsql endpoint.
		AuthToken       string `yaml:"auth_token" env:"DB_AUTH_TOKEN"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret            string `yaml:"secret" env:"JWT_SECRET"`
		SessionExpiration string `yaml:"session_expiration" env:"JWT_SESSION_EXPIRATION"`
		Issuer            string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Bootstrap struct {
		AdminEmail    string `yaml:"admin_email" env:"BOOTSTRAP_ADMIN_EMAIL"`
		AdminPassword string `yaml:"admin_password" env:"BOOTSTRAP_ADMIN_PASSWORD"`
		AdminName     string `yaml:"admin_name" env:"BOOTSTRAP_ADMIN_NAME"`
	} `yaml:"bootstrap"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars alone are enough to run.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Driver = "sqlite"
	config.Database.URL = ""
	config.Database.MaxOpenConns = 20
	config.Database.MaxIdleConns = 5
	config.Database.ConnMaxLifetime = "1h"

	// 30-day sessions
	config.JWT.SessionExpiration = "720h"
	config.JWT.Issuer = "studentdesk"

	// Documented default identity, expected to be rotated after deploy.
	config.Bootstrap.AdminEmail = "admin@example.com"
	config.Bootstrap.AdminPassword = "admin123"
	config.Bootstrap.AdminName = "Administrator"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString(&config.Server.Port, "SERVER_PORT")
	setString(&config.Server.Mode, "SERVER_MODE")

	setString(&config.Database.Driver, "DB_DRIVER")
	setString(&config.Database.URL, "DATABASE_URL")
	setString(&config.Database.AuthToken, "DB_AUTH_TOKEN")
	setInt(&config.Database.MaxOpenConns, "DB_MAX_OPEN_CONNS")
	setInt(&config.Database.MaxIdleConns, "DB_MAX_IDLE_CONNS")
	setString(&config.Database.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME")

	setString(&config.JWT.Secret, "JWT_SECRET")
	setString(&config.JWT.SessionExpiration, "JWT_SESSION_EXPIRATION")
	setString(&config.JWT.Issuer, "JWT_ISSUER")

	setString(&config.Bootstrap.AdminEmail, "BOOTSTRAP_ADMIN_EMAIL")
	setString(&config.Bootstrap.AdminPassword, "BOOTSTRAP_ADMIN_PASSWORD")
	setString(&config.Bootstrap.AdminName, "BOOTSTRAP_ADMIN_NAME")

	setString(&config.Logging.Level, "LOG_LEVEL")
	setString(&config.Logging.Format, "LOG_FORMAT")
}

// validateConfig ensures that the configuration is usable. Missing required
// configuration is a fatal startup condition, not a per-request error.
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case "sqlite", "postgres", "libsql":
	default:
		return fmt.Errorf("unknown database driver %q", config.Database.Driver)
	}

	if config.Database.URL == "" {
		return fmt.Errorf("database url is required (DATABASE_URL)")
	}

	if config.Database.Driver == "libsql" && config.Database.AuthToken == "" {
		return fmt.Errorf("auth token is required for the libsql driver (DB_AUTH_TOKEN)")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required (JWT_SECRET)")
	}

	if _, err := time.ParseDuration(config.JWT.SessionExpiration); err != nil {
		return fmt.Errorf("invalid session expiration: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime: %w", err)
	}

	return nil
}

// SessionExpiration returns the parsed session token lifetime.
func (c *Config) SessionExpiration() time.Duration {
	d, err := time.ParseDuration(c.JWT.SessionExpiration)
	if err != nil {
		// validateConfig already rejected unparsable values
		return 30 * 24 * time.Hour
	}
	return d
}

// ConnMaxLifetime returns the parsed connection lifetime.
func (c *Config) ConnMaxLifetime() time.Duration {
	d, err := time.ParseDuration(c.Database.ConnMaxLifetime)
	if err != nil {
		return time.Hour
	}
	return d
}
