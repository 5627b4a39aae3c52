package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNFromComponents(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "app",
		Password: "pw",
		DBName:   "societyhub",
		SSLMode:  "require",
	}
	assert.Equal(t, "postgres://app:pw@db.internal:5433/societyhub?sslmode=require", c.DSN())
}

func TestDSNPrefersURL(t *testing.T) {
	c := DatabaseConfig{
		URL:  "postgres://localhost:5432/other?sslmode=disable",
		Host: "ignored",
	}
	assert.Equal(t, "postgres://localhost:5432/other?sslmode=disable", c.DSN())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Server.Port)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.Positive(t, cfg.JWT.ExpireHours)
	assert.NotEmpty(t, cfg.Redis.Addr)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRE_HOURS", "48")
	t.Setenv("AWS_PRESIGN_EXPIRE_MINUTES", "30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "*")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 48, cfg.JWT.ExpireHours)
	assert.Equal(t, 30, cfg.AWS.PresignExpireMinutes)
	assert.Equal(t, "*", cfg.Server.CORSAllowedOrigins)
}
