package config_test

import (
	"testing"

	"github.com/amreid/nextup/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NEXTUP_DB", "/tmp/nextup-test.db")
	t.Setenv("NEXTUP_ADDR", "")
	t.Setenv("NEXTUP_JWT_SECRET", "")
	t.Setenv("NEXTUP_CORS_ORIGINS", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/nextup-test.db", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Error(t, cfg.ValidateForServe(), "serving requires a JWT secret")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NEXTUP_DB", "/data/app.db")
	t.Setenv("NEXTUP_ADDR", ":9090")
	t.Setenv("NEXTUP_JWT_SECRET", "s3cret")
	t.Setenv("NEXTUP_CORS_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
	assert.NoError(t, cfg.ValidateForServe())
}
