package minitest

import "sync"

// Registry keeps test classes in registration order.
type Registry struct {
	mu      sync.Mutex
	classes []Class
}

var defaultRegistry Registry

// Register adds classes to the process-wide registry. It is meant to be called
// from init functions of test packages.
func Register(classes ...Class) {
	defaultRegistry.Register(classes...)
}

// Registered returns the classes of the process-wide registry.
func Registered() []Class {
	return defaultRegistry.Classes()
}

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return &defaultRegistry
}

// Register appends classes to the registry.
func (r *Registry) Register(classes ...Class) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.classes = append(r.classes, classes...)
}

// Classes returns a copy of the registered classes in registration order.
func (r *Registry) Classes() []Class {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Class(nil), r.classes...)
}
