package tether

import (
	"reflect"
	"sync"
)

var (
	wrappers   = make(map[reflect.Type]*Wrapper)
	wrappersMu sync.RWMutex
)

// wrapperFor returns the cached wrapper for T or builds a new one.
// Failed builds are not cached.
func wrapperFor[T any]() (*Wrapper, error) {
	typ := reflect.TypeFor[T]()

	// Fast path: read-lock cache check
	wrappersMu.RLock()
	if cached, ok := wrappers[typ]; ok {
		wrappersMu.RUnlock()
		return cached, nil
	}
	wrappersMu.RUnlock()

	// Slow path: build and cache with write-lock
	wrappersMu.Lock()
	defer wrappersMu.Unlock()

	// Double-check pattern
	if cached, ok := wrappers[typ]; ok {
		return cached, nil
	}

	w, err := buildWrapper[T]()
	if err != nil {
		return nil, err
	}

	wrappers[typ] = w
	return w, nil
}

// WrapperFor returns the shared wrapper for struct type T.
func WrapperFor[T any]() (*Wrapper, error) {
	return wrapperFor[T]()
}

// ResetCache clears the wrapper cache.
// This is primarily useful for test isolation.
func ResetCache() {
	wrappersMu.Lock()
	defer wrappersMu.Unlock()
	wrappers = make(map[reflect.Type]*Wrapper)
}
