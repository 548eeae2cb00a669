package rules

import "sync"

// lockRegistry hands out one mutex per user key, serializing
// load-then-save cycles for the same user. The registry is owned by the
// store rather than living in package-level state.
type lockRegistry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for a key and returns its unlock function.
func (r *lockRegistry) lock(key string) func() {
	r.mu.Lock()
	m, ok := r.locks[key]
	if !ok {
		m = &sync.Mutex{}
		r.locks[key] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}
