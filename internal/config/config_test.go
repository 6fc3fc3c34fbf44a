package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/tunebox")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("AUTH_SECRET", "0123456789abcdef0123")
	t.Setenv("S3_BUCKET", "media")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultAppName, cfg.AppName)
	assert.Equal(t, ":8080", cfg.Address())
	assert.Equal(t, defaultShutdownDelay, cfg.ShutdownPeriod)
	assert.Equal(t, defaultIdempotencyTTL, cfg.IdempotencyTTL)
	assert.Zero(t, cfg.TokenTTL)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, defaultS3Region, cfg.S3Region)
	assert.True(t, cfg.IsDev())
}

func TestLoadRequiresSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_SECRET")
}

func TestLoadRejectsShortSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTH_SECRET", "short")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDurations(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("PORT", ":9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3*time.Second, cfg.ShutdownPeriod)
	assert.Equal(t, ":9090", cfg.Address())
}

func TestLoadInvalidBcryptCost(t *testing.T) {
	setRequired(t)
	t.Setenv("BCRYPT_COST", "99")

	_, err := Load()
	require.Error(t, err)
}
