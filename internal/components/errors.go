package components

import "errors"

var (
	// ErrInvalidDefinition indicates a definition is missing required data.
	ErrInvalidDefinition = errors.New("components: invalid definition")
	// ErrDuplicateDefinition indicates the component name is already registered.
	ErrDuplicateDefinition = errors.New("components: definition already registered")
	// ErrUnknownComponent indicates markup referenced a name with no definition.
	ErrUnknownComponent = errors.New("components: unknown component")
	// ErrInvalidAttributes indicates invocation attributes failed schema validation.
	ErrInvalidAttributes = errors.New("components: invalid attributes")
)
