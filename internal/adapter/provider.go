// Package adapter contains the infrastructure adapters of the minitest runner.
package adapter

import (
	"context"
	"log/slog"

	"minitest.dev/runner/pkg/minitest"
)

// ModuleProvider hands over the test classes of the loaded module in a stable order.
type ModuleProvider interface {
	Classes(ctx context.Context) ([]minitest.Class, error)
}

// RegistryProvider provides the classes of a registry that carry the TestClass marker.
type RegistryProvider struct {
	registry *minitest.Registry
}

// NewRegistryProvider creates a provider over registry, or over the
// process-wide registry when registry is nil.
func NewRegistryProvider(registry *minitest.Registry) *RegistryProvider {
	if registry == nil {
		registry = minitest.DefaultRegistry()
	}

	return &RegistryProvider{registry: registry}
}

// Classes returns the marked classes in registration order.
func (p *RegistryProvider) Classes(ctx context.Context) ([]minitest.Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	registered := p.registry.Classes()
	classes := make([]minitest.Class, 0, len(registered))

	for _, class := range registered {
		if !class.HasMarker(minitest.MarkerTestClass) {
			slog.Debug("skipping class without TestClass marker", "class", class.Name)
			continue
		}

		classes = append(classes, class)
	}

	slog.Info("provided test classes", "registered", len(registered), "classes", len(classes))

	return classes, nil
}
