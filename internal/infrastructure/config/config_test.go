package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "office-mgmt", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 5*time.Minute, cfg.Storage.UploadURLTTL)
	assert.Equal(t, time.Hour, cfg.Storage.DownloadURLTTL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("OFFICE_DATABASE_HOST", "db.internal")
	t.Setenv("OFFICE_APP_PORT", "9090")
	t.Setenv("OFFICE_STORAGE_UPLOAD_URL_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 90*time.Second, cfg.Storage.UploadURLTTL)
}

func TestProductionValidation(t *testing.T) {
	t.Setenv("OFFICE_APP_ENV", "production")

	// Missing secret must fail in production.
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("OFFICE_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("OFFICE_DATABASE_PASSWORD", "secret")
	t.Setenv("OFFICE_DATABASE_SSLMODE", "require")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "pw", DBName: "office", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=office sslmode=disable",
		c.DSN())
}
