package imagestore

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, "/images/a.png", []byte{1, 2, 3}, "image/png"))

	u, err := s.URL(ctx, "images/a.png")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), u)
}

func TestMemoryStoreMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.URL(context.Background(), "images/none.png")
	require.ErrorIs(t, err, ErrNotFound)
	require.Error(t, s.Put(context.Background(), "  ", nil, ""))
}

func TestMemoryStoreCopiesContent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, s.Put(ctx, "k", buf, "text/plain"))
	buf[0] = 'z'

	u, err := s.URL(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "data:text/plain;base64,"+base64.StdEncoding.EncodeToString([]byte("abc")), u)
}

func TestNewKey(t *testing.T) {
	tests := map[string]string{
		"image/png":                ".png",
		"image/jpeg":               ".jpg",
		"image/webp; charset=utf8": ".webp",
		"":                         ".png",
	}
	for ct, ext := range tests {
		key := NewKey(ct)
		assert.True(t, strings.HasPrefix(key, "images/"), key)
		assert.True(t, strings.HasSuffix(key, ext), key)
	}
	assert.NotEqual(t, NewKey("image/png"), NewKey("image/png"))
}
