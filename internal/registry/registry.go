// Package registry maps level-type names to variant factories.
// Variants register themselves in init() so the level loader can pick one by
// the "type" field of a level file without importing every variant.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/maze-collector/internal/level"
)

// ErrUnknownKind is returned by Create for unregistered level types.
var ErrUnknownKind = errors.New("registry: unknown level type")

// Factory builds a variant for one level session.
type Factory func(env level.Env) level.Variant

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a variant factory to the registry.
// Panics if a variant with the same kind is already registered.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("registry: level type %q already registered", kind))
	}
	factories[kind] = f
}

// Kinds returns all registered level types, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()

	kinds := make([]string, 0, len(factories))
	for kind := range factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Create instantiates the variant registered under kind.
func Create(kind string, env level.Env) (level.Variant, error) {
	mu.RLock()
	f, ok := factories[kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return f(env), nil
}

// Exists checks if a level type is registered.
func Exists(kind string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[kind]
	return ok
}
