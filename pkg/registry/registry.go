package registry

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/kassemble/pkg/errors"
)

// Registry is a generic, thread-safe registry remembering insertion order
type Registry[K comparable, V any] interface {
	// Register adds an item, failing if the key is taken
	Register(key K, item V) error

	// Put adds or replaces an item and reports whether it replaced one.
	// A replaced item keeps its original position.
	Put(key K, item V) bool

	// Get retrieves an item from the registry
	Get(key K) (V, error)

	// Has checks if an item is registered
	Has(key K) bool

	// Keys returns all keys in insertion order
	Keys() []K

	// Values returns all items in insertion order
	Values() []V

	// Count returns the number of registered items
	Count() int
}

// registry is the internal implementation of Registry
type registry[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	order []K
}

// New creates a new Registry instance
func New[K comparable, V any]() Registry[K, V] {
	return &registry[K, V]{
		items: make(map[K]V),
	}
}

// Register adds an item to the registry
func (r *registry[K, V]) Register(key K, item V) error {
	var zero K
	if key == zero {
		return errors.New(errors.ErrInvalidInput, "registry key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "item '%v' is already registered", key)
	}

	r.items[key] = item
	r.order = append(r.order, key)
	return nil
}

// Put adds or replaces an item
func (r *registry[K, V]) Put(key K, item V) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.items[key]
	if !exists {
		r.order = append(r.order, key)
	}
	r.items[key] = item
	return exists
}

// Get retrieves an item from the registry
func (r *registry[K, V]) Get(key K) (V, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[key]
	if !exists {
		var zero V
		return zero, errors.Newf(errors.ErrNotFound, "item '%v' not found in registry", key)
	}

	return item, nil
}

// Has checks if an item is registered
func (r *registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[key]
	return exists
}

// Keys returns all keys in insertion order
func (r *registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}

// Values returns all items in insertion order
func (r *registry[K, V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values := make([]V, 0, len(r.order))
	for _, key := range r.order {
		values = append(values, r.items[key])
	}
	return values
}

// Count returns the number of registered items
func (r *registry[K, V]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustGet retrieves an item and panics if not found
// This is useful when the item must exist
func MustGet[K comparable, V any](reg Registry[K, V], key K) V {
	item, err := reg.Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to get %v: %v", key, err))
	}
	return item
}
