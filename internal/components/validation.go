package components

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// AttributeIssue is a single schema violation.
type AttributeIssue struct {
	Location string
	Message  string
}

// AttributeError reports the attributes of one invocation that failed the
// component schema.
type AttributeError struct {
	Component string
	Issues    []AttributeIssue
}

func (e *AttributeError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s %s: %s", ErrInvalidAttributes.Error(), e.Component, strings.Join(parts, "; "))
}

func (e *AttributeError) Unwrap() error {
	return ErrInvalidAttributes
}

// Validator compiles component schemas and checks invocation attributes
// against them. Compiled schemas are cached.
type Validator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewValidator returns a Validator instance.
func NewValidator() *Validator {
	return &Validator{compiled: map[string]*jsonschema.Schema{}}
}

// ValidateDefinition ensures the definition has a name and a compilable schema.
func (v *Validator) ValidateDefinition(def interfaces.ComponentDefinition) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	if def.Schema == nil {
		return nil
	}
	_, err := v.schemaFor(def)
	return err
}

// ValidateAttributes checks attrs against the definition schema. Definitions
// without a schema accept any attributes.
func (v *Validator) ValidateAttributes(def interfaces.ComponentDefinition, attrs map[string]string) error {
	if def.Schema == nil {
		return nil
	}
	schema, err := v.schemaFor(def)
	if err != nil {
		return err
	}

	payload := make(map[string]any, len(attrs))
	for key, value := range attrs {
		payload[key] = value
	}

	if err := schema.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &AttributeError{Component: def.Name, Issues: collectIssues(validationErr)}
		}
		return fmt.Errorf("%w: %s: %v", ErrInvalidAttributes, def.Name, err)
	}
	return nil
}

// schemaFor returns the compiled schema for def. Entries are keyed by name and
// schema content, so a definition re-registered under the same name with a
// different schema is compiled afresh.
func (v *Validator) schemaFor(def interfaces.ComponentDefinition) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %s schema: %v", ErrInvalidDefinition, def.Name, err)
	}
	key := def.Name + "\x00" + string(encoded)

	v.mu.RLock()
	schema, ok := v.compiled[key]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}

	schema, err = compileSchema(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s schema: %v", ErrInvalidDefinition, def.Name, err)
	}
	v.mu.Lock()
	v.compiled[key] = schema
	v.mu.Unlock()
	return schema, nil
}

func compileSchema(encoded []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func collectIssues(err *jsonschema.ValidationError) []AttributeIssue {
	issues := []AttributeIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, AttributeIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
