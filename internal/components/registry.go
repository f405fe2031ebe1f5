package components

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

var namePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// Registry is the thread-safe in-memory implementation of interfaces.ComponentRegistry.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]interfaces.ComponentDefinition
	validator   DefinitionValidator
}

// DefinitionValidator abstracts definition validation so callers can customise behaviour in tests.
type DefinitionValidator interface {
	ValidateDefinition(def interfaces.ComponentDefinition) error
}

// NewRegistry constructs a registry using the supplied validator.
func NewRegistry(validator DefinitionValidator) *Registry {
	return &Registry{
		definitions: make(map[string]interfaces.ComponentDefinition),
		validator:   validator,
	}
}

// Register stores a definition if it passes validation and the name is not taken.
// Names are case sensitive and must start with an upper-case letter.
func (r *Registry) Register(def interfaces.ComponentDefinition) error {
	if !namePattern.MatchString(def.Name) {
		return fmt.Errorf("%w: name %q must start with an upper-case letter", ErrInvalidDefinition, def.Name)
	}
	if def.Handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrInvalidDefinition, def.Name)
	}

	if r.validator != nil {
		if err := r.validator.ValidateDefinition(def); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDefinition, def.Name)
	}

	r.definitions[def.Name] = def
	return nil
}

// Get returns the stored definition.
func (r *Registry) Get(name string) (interfaces.ComponentDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[name]
	return def, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns all registered definitions in name order.
func (r *Registry) List() []interfaces.ComponentDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]interfaces.ComponentDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Remove deletes the definition if it exists.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.definitions, name)
}

// Ensure Registry implements interfaces.ComponentRegistry.
var _ interfaces.ComponentRegistry = (*Registry)(nil)
