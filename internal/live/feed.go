package live

import (
	"context"
	"sync"
)

// Feed holds the latest snapshot of a remotely owned list and fans it out to
// subscribers. Every Publish replaces the value wholesale; subscribers that
// fall behind only ever observe the newest value.
type Feed[T any] struct {
	mu      sync.RWMutex
	value   T
	err     error
	ready   chan struct{}
	isReady bool
	subs    map[int]chan T
	nextID  int
}

func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{
		ready: make(chan struct{}),
		subs:  make(map[int]chan T),
	}
}

// Publish replaces the current value and notifies subscribers.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.value = v
	f.err = nil
	if !f.isReady {
		f.isReady = true
		close(f.ready)
	}

	for _, ch := range f.subs {
		// drop any unread value so the channel always holds the latest one
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

// Load returns the current value and whether anything has been published yet.
func (f *Feed[T]) Load() (T, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value, f.isReady
}

// Subscribe returns a channel that receives every new value, seeded with the
// current one when available. The returned func must be called to release it.
func (f *Feed[T]) Subscribe() (<-chan T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan T, 1)
	id := f.nextID
	f.nextID++
	f.subs[id] = ch

	if f.isReady {
		ch <- f.value
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}
	return ch, cancel
}

// Wait blocks until the first value is published or ctx is done.
func (f *Feed[T]) Wait(ctx context.Context) error {
	select {
	case <-f.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetErr records a subscription failure. The last value is kept.
func (f *Feed[T]) SetErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *Feed[T]) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.err
}

// Status summarises the feed for health reporting.
func (f *Feed[T]) Status() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	switch {
	case f.err != nil:
		return "degraded"
	case !f.isReady:
		return "syncing"
	default:
		return "up"
	}
}
