package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("INVITATION_TTL", "48h")
	t.Setenv("FRONTEND_BASE_URL", "https://app.example.com/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 48*time.Hour, cfg.InvitationTTL)
	assert.Equal(t, "https://app.example.com", cfg.FrontendBaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigFallsBackOnInvalidDuration(t *testing.T) {
	t.Setenv("INVITATION_TTL", "soon")
	t.Setenv("STORAGE_DRIVER", "sqlite")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, cfg.InvitationTTL)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.False(t, cfg.OTelEnabled())
}
