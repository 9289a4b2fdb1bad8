package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("BORROW_DEFAULT_DAYS", "")
	t.Setenv("BORROW_MAX_DAYS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 14, cfg.Borrow.DefaultDays)
	assert.Equal(t, 365, cfg.Borrow.MaxDays)
	assert.Equal(t, 100, cfg.RateLimitPerMinute())
	assert.Same(t, cfg, AppConfig)
}

func TestLoad_ModePrefixedSettings(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("PROD_JWT_SECRET", "prod-secret")
	t.Setenv("DEV_JWT_SECRET", "dev-secret")
	t.Setenv("BORROW_DEFAULT_DAYS", "21")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "prod-secret", cfg.JWT.Secret)
	assert.Equal(t, 21, cfg.Borrow.DefaultDays)
	assert.Equal(t, 250, cfg.RateLimitPerMinute())
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown mode", map[string]string{"APP_MODE": "staging"}},
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle"}},
		{"non-positive default days", map[string]string{"BORROW_DEFAULT_DAYS": "0"}},
		{"max below default", map[string]string{"BORROW_DEFAULT_DAYS": "30", "BORROW_MAX_DAYS": "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_MODE", "dev")
			t.Setenv("DB_DRIVER", "sqlite")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_EmptyOverdueCronDisablesSweep(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("OVERDUE_CRON", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Borrow.OverdueCron)
}

func TestBuildSQLiteDSN(t *testing.T) {
	dsn := BuildSQLiteDSN("/tmp/lib.db")
	assert.Contains(t, dsn, "file:/tmp/lib.db?")
	assert.Contains(t, dsn, "_txlock=immediate")
	assert.Contains(t, dsn, "_foreign_keys=1")
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(DatabaseConfig{Driver: "oracle"}, nil)
	assert.Error(t, err)
}
