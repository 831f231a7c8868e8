package proxy

import (
	"strings"
	"sync"
)

// Registry maps lower-cased HTTP method names to handler factories. It is
// the only state shared across invocations within a process, and the
// invocation host may route concurrent invocations into the same process,
// so access is guarded by a read-write lock. Registration is a setup-time
// operation; the last registration for a method wins.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]HandlerFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: map[string]HandlerFactory{},
	}
}

// Register stores the factory under the lower-cased method name,
// overwriting any prior registration for that method.
func (r *Registry) Register(method string, factory HandlerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(method)] = factory
}

// IsRegistered reports whether a factory exists for the method, regardless
// of case.
func (r *Registry) IsRegistered(method string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[strings.ToLower(method)]
	return ok
}

// Resolve builds the Handler for the method via its registered factory.
// The caller must have verified the method with IsRegistered first; the
// dispatcher always does, so that the precise unsupported-method error is
// produced before resolution. Resolving an unregistered method panics.
func (r *Registry) Resolve(cfg Configuration, method string) Handler {
	r.mu.RLock()
	factory := r.factories[strings.ToLower(method)]
	r.mu.RUnlock()
	return factory(cfg)
}
