package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/no-draw-tracker/internal/platform/resilience"
)

const loadKey = "snapshot"

// Snapshot holds a single value together with the time it was stored and serves it
// while it is younger than the TTL. A zero TTL never expires.
type Snapshot[T any] struct {
	mu       sync.RWMutex
	value    T
	storedAt time.Time
	present  bool

	ttl    time.Duration
	now    func() time.Time
	flight resilience.Group[T]
}

func NewSnapshot[T any](ttl time.Duration, now func() time.Time) *Snapshot[T] {
	if now == nil {
		now = time.Now
	}
	return &Snapshot[T]{ttl: ttl, now: now}
}

// Get returns the stored value when it is still fresh.
func (s *Snapshot[T]) Get() (T, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	if !s.present {
		return zero, time.Time{}, false
	}
	if s.ttl > 0 && s.now().Sub(s.storedAt) >= s.ttl {
		return zero, time.Time{}, false
	}
	return s.value, s.storedAt, true
}

// Peek returns the stored value regardless of age.
func (s *Snapshot[T]) Peek() (T, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.storedAt, s.present
}

func (s *Snapshot[T]) Set(value T, storedAt time.Time) {
	s.mu.Lock()
	s.value = value
	s.storedAt = storedAt
	s.present = true
	s.mu.Unlock()
}

func (s *Snapshot[T]) Invalidate() {
	s.mu.Lock()
	var zero T
	s.value = zero
	s.storedAt = time.Time{}
	s.present = false
	s.mu.Unlock()
}

// GetOrLoad serves the fresh value or runs loader once for all concurrent callers.
// The loader returns the value and its timestamp; both are stored on success.
func (s *Snapshot[T]) GetOrLoad(ctx context.Context, loader func(context.Context) (T, time.Time, error)) (T, error) {
	if loader == nil {
		var zero T
		return zero, fmt.Errorf("loader is required")
	}

	if value, _, ok := s.Get(); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(loadKey, func() (T, error) {
		if cached, _, ok := s.Get(); ok {
			return cached, nil
		}

		loaded, storedAt, loadErr := loader(ctx)
		if loadErr != nil {
			var zero T
			return zero, loadErr
		}
		s.Set(loaded, storedAt)
		return loaded, nil
	})
	return value, err
}
