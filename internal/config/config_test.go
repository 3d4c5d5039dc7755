package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".env")

	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		cfg, err := Load(missing)
		assert.ErrorIs(t, err, ErrMissingDatabaseURL)
		assert.Nil(t, cfg)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/bank")

		cfg, err := Load(missing)
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry())
		assert.Equal(t, uint32(16), cfg.Argon2.SaltLength)
		assert.Equal(t, uint8(4), cfg.Argon2.Threads)
	})

	t.Run("missing jwt secret disables tokens", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/bank")
		t.Setenv("JWT_SECRET_KEY", "")

		cfg, err := Load(missing)
		require.NoError(t, err)
		assert.Empty(t, cfg.JWT.SecretKey)
		assert.False(t, cfg.JWT.Enabled())
	})

	t.Run("jwt secret from environment", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/bank")
		t.Setenv("JWT_SECRET_KEY", "s3cret")

		cfg, err := Load(missing)
		require.NoError(t, err)
		assert.Equal(t, "s3cret", cfg.JWT.SecretKey)
		assert.True(t, cfg.JWT.Enabled())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://db/bank")
		t.Setenv("PORT", "3000")
		t.Setenv("ARGON2_TIME", "3")
		t.Setenv("JWT_EXPIRY_HOURS", "2")

		cfg, err := Load(missing)
		require.NoError(t, err)
		assert.Equal(t, "postgres://db/bank", cfg.Database.URL)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, uint32(3), cfg.Argon2.Time)
		assert.Equal(t, 2*time.Hour, cfg.JWT.Expiry())
	})

	t.Run("env file", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=postgres://file/bank\nREDIS_PORT=6380\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "postgres://file/bank", cfg.Database.URL)
		assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
	})
}
