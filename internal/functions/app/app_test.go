package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentgen/internal/functions/config"
	"contentgen/internal/imagestore"
)

func TestNewBackendFake(t *testing.T) {
	b, err := newBackend(context.Background(), &config.Config{Backend: config.BackendFake})
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, "FakeLLM", b.Name())
	text, err := b.GenerateText(context.Background(), "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestNewImageStore(t *testing.T) {
	s, err := newImageStore(config.ImageStoreConfig{})
	require.NoError(t, err)
	assert.IsType(t, &imagestore.MemoryStore{}, s)

	s, err = newImageStore(config.ImageStoreConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "contentgen-images",
	})
	require.NoError(t, err)
	assert.IsType(t, &imagestore.S3Store{}, s)

	_, err = newImageStore(config.ImageStoreConfig{Endpoint: "localhost:9000"})
	require.Error(t, err)
}

func TestNewAndShutdown(t *testing.T) {
	for _, k := range []string{"PORT", "FUNCTIONS_BACKEND", "GEMINI_API_KEY", "GOOGLE_API_KEY", "IMAGE_STORE_ENDPOINT"} {
		t.Setenv(k, "")
	}

	a, err := New(context.Background(), []string{"--backend", "fake", "--port", "127.0.0.1:0"})
	require.NoError(t, err)
	require.NoError(t, a.Shutdown(context.Background()))
}
