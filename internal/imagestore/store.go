// Package imagestore keeps generated images and hands out URLs for them.
package imagestore

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("image not found")

// Store persists images by key and resolves a URL a browser can load.
type Store interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
	URL(ctx context.Context, key string) (string, error)
}

// NewKey returns a fresh object key under images/ with an extension
// matching contentType.
func NewKey(contentType string) string {
	return "images/" + uuid.NewString() + extension(contentType)
}

func extension(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

func normalizeKey(key string) string {
	return strings.TrimLeft(strings.TrimSpace(key), "/")
}
