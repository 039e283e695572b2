package imagestore

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
)

// MemoryStore keeps images in process. Its URLs are self-contained data:
// URLs, so no second service is needed to serve them.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]object
}

type object struct {
	data        []byte
	contentType string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]object)}
}

func (s *MemoryStore) Put(_ context.Context, key string, content []byte, contentType string) error {
	key = normalizeKey(key)
	if key == "" {
		return fmt.Errorf("key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = object{data: append([]byte(nil), content...), contentType: contentType}
	return nil
}

func (s *MemoryStore) get(key string) (object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.data[normalizeKey(key)]
	if !ok {
		return object{}, ErrNotFound
	}
	return obj, nil
}

func (s *MemoryStore) URL(_ context.Context, key string) (string, error) {
	obj, err := s.get(key)
	if err != nil {
		return "", err
	}
	ct := obj.contentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(obj.data), nil
}
