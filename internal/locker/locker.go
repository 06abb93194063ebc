package locker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auction-engine/internal/biddingerrors"
)

// Locker serializes work per key. Different keys never block each other.
type Locker interface {
	// Acquire blocks until key is held or ctx/timeout expires. The returned
	// release func is safe to call more than once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type slot struct {
	ch   chan struct{}
	refs int
}

// Local is an in-process keyed semaphore
type Local struct {
	mu      sync.Mutex
	slots   map[string]*slot
	timeout time.Duration
}

// NewLocal creates a Local locker; timeout <= 0 waits for ctx only
func NewLocal(timeout time.Duration) *Local {
	return &Local{
		slots:   make(map[string]*slot),
		timeout: timeout,
	}
}

// Acquire implements Locker
func (l *Local) Acquire(ctx context.Context, key string) (func(), error) {
	s := l.ref(key)

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, s)
		return nil, fmt.Errorf("locker: acquire %s: %w", key, biddingerrors.ErrLockTimeout)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.unref(key, s)
		})
	}, nil
}

func (l *Local) ref(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *Local) unref(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// held returns the number of keys with a holder or waiter. Used in tests.
func (l *Local) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
