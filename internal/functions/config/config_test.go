package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "FUNCTIONS_BACKEND", "GEMINI_API_KEY", "GOOGLE_API_KEY",
		"TEXT_MODEL", "IMAGE_MODEL", "IMAGE_STORE_ENDPOINT", "IMAGE_STORE_USE_SSL", "IMAGE_STORE_URL_EXPIRY",
		"IMAGE_STORE_ACCESS_KEY", "IMAGE_STORE_SECRET_KEY", "MINIO_ROOT_USER", "MINIO_ROOT_PASSWORD",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":8082", cfg.Port)
	assert.Equal(t, BackendFake, cfg.Backend)
	assert.False(t, cfg.ImageStore.Enabled())
	assert.Equal(t, time.Hour, cfg.ImageStore.URLExpiry)
	assert.Equal(t, "contentgen-images", cfg.ImageStore.Bucket)
}

func TestLoadGeminiFromKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("PORT", "9000")
	t.Setenv("IMAGE_STORE_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_ROOT_USER", "root")
	t.Setenv("IMAGE_STORE_URL_EXPIRY", "15m")

	cfg, err := Load([]string{"-port", ":1"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, BackendGemini, cfg.Backend)
	assert.Equal(t, "k", cfg.Gemini.APIKey)
	assert.True(t, cfg.ImageStore.Enabled())
	assert.Equal(t, "root", cfg.ImageStore.AccessKey)
	assert.Equal(t, 15*time.Minute, cfg.ImageStore.URLExpiry)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("FUNCTIONS_BACKEND", "openai")
	_, err := Load(nil)
	require.Error(t, err)
}
