package session

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"contentgen/internal/generation"
)

// Registry holds the live sessions. It is bounded: when full, the least
// recently used session is evicted and closed, exactly as if its tab had
// been closed.
type Registry struct {
	invoker generation.Invoker
	cache   *lru.Cache[string, *Session]
}

func NewRegistry(capacity int, invoker generation.Invoker) (*Registry, error) {
	if invoker == nil {
		return nil, fmt.Errorf("invoker is required")
	}
	cache, err := lru.NewWithEvict[string, *Session](capacity, func(id string, s *Session) {
		s.Close()
		log.Printf("session %s unmounted", id)
	})
	if err != nil {
		return nil, fmt.Errorf("init session cache: %w", err)
	}
	return &Registry{invoker: invoker, cache: cache}, nil
}

func (r *Registry) Create() (*Session, error) {
	s, err := New(uuid.NewString(), r.invoker)
	if err != nil {
		return nil, err
	}
	r.cache.Add(s.ID(), s)
	return s, nil
}

// Get returns the session and marks it as recently used.
func (r *Registry) Get(id string) (*Session, bool) {
	return r.cache.Get(id)
}

// Remove closes the session; it reports whether it existed.
func (r *Registry) Remove(id string) bool {
	return r.cache.Remove(id)
}

func (r *Registry) Len() int { return r.cache.Len() }

// Close unmounts every session.
func (r *Registry) Close() {
	r.cache.Purge()
}
