package components

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// RegisterBuiltIns registers the built-in component definitions on the provided registry.
// When names is empty, every built-in component is registered.
func RegisterBuiltIns(registry interfaces.ComponentRegistry, names []string) error {
	if registry == nil {
		return fmt.Errorf("components: registry is required")
	}

	definitions := BuiltInDefinitions()
	if len(names) == 0 {
		for _, def := range definitions {
			if err := registry.Register(def); err != nil {
				return err
			}
		}
		return nil
	}

	available := make(map[string]interfaces.ComponentDefinition, len(definitions))
	for _, def := range definitions {
		available[def.Name] = def
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		def, ok := available[name]
		if !ok {
			return fmt.Errorf("components: built-in %q not found", name)
		}
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// NewDefaultRegistry returns a schema-validating registry holding every built-in.
func NewDefaultRegistry() (*Registry, error) {
	registry := NewRegistry(NewValidator())
	if err := RegisterBuiltIns(registry, nil); err != nil {
		return nil, err
	}
	return registry, nil
}
