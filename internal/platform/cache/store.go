package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/statcrunch/leaguestats/internal/platform/resilience"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is an in-memory key-value cache with per-entry expiry. Writers treat
// it as best-effort; readers must treat hits as advisory and fall back to the
// aggregate store for ground truth.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	flight     resilience.SingleFlight
	closed     bool
	closeOnce  sync.Once
}

var ErrClosed = fmt.Errorf("cache store is closed")

func NewStore(defaultTTL time.Duration) *Store {
	return &Store{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	now := time.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	closed := s.closed
	s.mu.RUnlock()
	if !ok || closed {
		return nil, false
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(now) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores value under key with the default TTL.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	return s.SetWithTTL(ctx, key, value, s.defaultTTL)
}

// SetWithTTL stores value under key, expiring after ttl. A non-positive ttl
// keeps the entry until overwritten or deleted.
func (s *Store) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) error {
	if key == "" {
		return fmt.Errorf("cache key is required")
	}

	expiresAt := time.Time{}
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.entries[key] = entry{
		value:     value,
		expiresAt: expiresAt,
	}
	return nil
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad serves readers that may fall back to the aggregate store; the
// loader result is cached with the default TTL.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		_ = s.SetWithTTL(ctx, key, loaded, s.defaultTTL)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Close releases the store. It is safe to call more than once; only the
// first call takes effect.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.entries = make(map[string]entry)
		s.mu.Unlock()
	})
	return nil
}
