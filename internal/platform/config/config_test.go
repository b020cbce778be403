package config_test

import (
	"testing"

	"github.com/tripmates/trip_planner_app/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_SplitsAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://trips.example.com")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000", "https://trips.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_SingleAllowedOrigin(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://trips.example.com")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://trips.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_IgnoresEmptyOriginEntries(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000,, ")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}
