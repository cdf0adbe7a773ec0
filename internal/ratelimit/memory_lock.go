package ratelimit

import (
	"context"
	"sync"
)

// KeyedLock is an in-process mutex per key. Waiters honor ctx cancellation
// and idle keys are dropped once the last holder or waiter leaves.
type KeyedLock struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	sem  chan struct{}
	refs int
}

func NewKeyedLock() *KeyedLock {
	return &KeyedLock{slots: make(map[string]*slot)}
}

func (k *KeyedLock) Backend() string { return "memory" }

func (k *KeyedLock) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	s, ok := k.slots[key]
	if !ok {
		s = &slot{sem: make(chan struct{}, 1)}
		k.slots[key] = s
	}
	s.refs++
	k.mu.Unlock()

	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		k.unref(key, s)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.sem
			k.unref(key, s)
		})
	}, nil
}

func (k *KeyedLock) unref(key string, s *slot) {
	k.mu.Lock()
	s.refs--
	if s.refs == 0 {
		delete(k.slots, key)
	}
	k.mu.Unlock()
}

func (k *KeyedLock) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.slots)
}
