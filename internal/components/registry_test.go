package components

import (
	"errors"
	"html/template"
	"testing"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

func noopHandler(interfaces.ComponentContext, map[string]string, interfaces.ComponentChildren) (template.HTML, error) {
	return "", nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry(NewValidator())
	def := interfaces.ComponentDefinition{Name: "Badge", Handler: noopHandler}

	if err := registry.Register(def); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register(def); !errors.Is(err, ErrDuplicateDefinition) {
		t.Fatalf("expected ErrDuplicateDefinition, got %v", err)
	}
	if _, ok := registry.Get("Badge"); !ok {
		t.Fatal("expected Badge to be registered")
	}
	if registry.Has("badge") {
		t.Fatal("expected lookups to be case sensitive")
	}

	registry.Remove("Badge")
	if registry.Has("Badge") {
		t.Fatal("expected Badge to be removed")
	}
	registry.Remove("Missing")
}

func TestRegistryRejectsInvalidDefinitions(t *testing.T) {
	registry := NewRegistry(NewValidator())
	cases := map[string]interfaces.ComponentDefinition{
		"lower case name": {Name: "badge", Handler: noopHandler},
		"blank name":      {Name: "", Handler: noopHandler},
		"punctuation":     {Name: "My-Badge", Handler: noopHandler},
		"no handler":      {Name: "Badge"},
		"bad schema":      {Name: "Badge", Handler: noopHandler, Schema: map[string]any{"type": 12}},
	}
	for name, def := range cases {
		if err := registry.Register(def); !errors.Is(err, ErrInvalidDefinition) {
			t.Fatalf("%s: expected ErrInvalidDefinition, got %v", name, err)
		}
	}
}

func TestRegistryListSorted(t *testing.T) {
	registry, err := NewDefaultRegistry()
	if err != nil {
		t.Fatalf("NewDefaultRegistry: %v", err)
	}
	want := []string{"Alert", "Callout", "Collapsible", "Counter", "Quiz"}
	list := registry.List()
	if len(list) != len(want) {
		t.Fatalf("expected %d definitions, got %d", len(want), len(list))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, list[i].Name)
		}
	}
}

func TestRegisterBuiltInsSubset(t *testing.T) {
	registry := NewRegistry(nil)
	if err := RegisterBuiltIns(registry, []string{"Counter", " Quiz "}); err != nil {
		t.Fatalf("RegisterBuiltIns: %v", err)
	}
	if !registry.Has("Counter") || !registry.Has("Quiz") || registry.Has("Alert") {
		t.Fatalf("unexpected registry contents %v", registry.List())
	}
	if err := RegisterBuiltIns(registry, []string{"Carousel"}); err == nil {
		t.Fatal("expected unknown built-in error")
	}
	if err := RegisterBuiltIns(nil, nil); err == nil {
		t.Fatal("expected nil registry error")
	}
}
