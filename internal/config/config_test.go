package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:9000/")
	t.Setenv("OFFLINE_MODE", "true")
	t.Setenv("CHAT_TIMEOUT_MS", "1500")
	t.Setenv("BACKEND_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, "http://localhost:9000", cfg.BaseURL)
	assert.True(t, cfg.OfflineMode)
	assert.Equal(t, 1500*time.Millisecond, cfg.ChatTimeout)
	assert.Equal(t, 60*time.Second, cfg.PlannerTimeout)
	assert.Equal(t, 8000, cfg.BackendPort)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.OfflineMode)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, ":memory:", cfg.DatabaseURL)
}
