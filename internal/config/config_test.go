package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearConfigEnv unsets the variables loadFromEnv reads so the host
// environment cannot leak into assertions.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "SERVER_MODE",
		"DB_DRIVER", "DATABASE_URL", "DB_AUTH_TOKEN",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
		"JWT_SECRET", "JWT_SESSION_EXPIRATION", "JWT_ISSUER",
		"BOOTSTRAP_ADMIN_EMAIL", "BOOTSTRAP_ADMIN_PASSWORD", "BOOTSTRAP_ADMIN_NAME",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_DefaultsWithEnvMinimum(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DATABASE_URL", "students.db")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "students.db", cfg.Database.URL)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionExpiration())
	assert.Equal(t, time.Hour, cfg.ConnMaxLifetime())
	assert.Equal(t, "admin@example.com", cfg.Bootstrap.AdminEmail)
	assert.Equal(t, "admin123", cfg.Bootstrap.AdminPassword)
	assert.Equal(t, "Administrator", cfg.Bootstrap.AdminName)
}

func TestLoadConfig_FileThenEnvPrecedence(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
database:
  driver: postgres
  url: postgres://app@localhost/studentdesk
jwt:
  secret: file-secret
  session_expiration: 24h
`), 0o600))

	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "env-secret", cfg.JWT.Secret, "env should win over the file")
	assert.Equal(t, 24*time.Hour, cfg.SessionExpiration())
}

func TestLoadConfig_MissingDatabaseURL(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "database url is required")
}

func TestLoadConfig_LibSQLRequiresAuthToken(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_DRIVER", "libsql")
	t.Setenv("DATABASE_URL", "libsql://records.turso.io")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "auth token is required")

	t.Setenv("DB_AUTH_TOKEN", "tok")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "tok", cfg.Database.AuthToken)
}

func TestLoadConfig_UnknownDriverRejected(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DATABASE_URL", "whatever")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, `unknown database driver "mysql"`)
}

func TestLoadConfig_BadDurationRejected(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DATABASE_URL", "students.db")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_SESSION_EXPIRATION", "thirty days")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "invalid session expiration")
}
