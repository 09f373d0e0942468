package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.App.Port)
		assert.Equal(t, 5*time.Second, cfg.DB.QueryTimeout)
		assert.Equal(t, 12*time.Hour, cfg.Auth.TTL)
		assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
		assert.Empty(t, cfg.Redis.Addr)
		assert.Equal(t, "@every 10m", cfg.Audit.Schedule)
		assert.Equal(t, "postgres://postgres:@localhost:5432/gastrack?sslmode=disable", cfg.ConnectionString())
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef")
		t.Setenv("DB_QUERY_TIMEOUT", "750ms")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
		t.Setenv("AUDIT_SCHEDULE", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 750*time.Millisecond, cfg.DB.QueryTimeout)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
		assert.Empty(t, cfg.Audit.Schedule)
	})

	t.Run("ShortSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "short")

		_, err := Load()
		assert.Error(t, err)
	})
}
