package interfaces

import (
	"context"
	"html/template"
)

// ComponentRegistry describes the lifecycle contract for registering and
// resolving embeddable components. Names are matched exactly (case sensitive).
type ComponentRegistry interface {
	// Register stores a definition and returns an error when a component with
	// the same name already exists or the definition fails validation.
	Register(definition ComponentDefinition) error

	// Get returns the definition for the supplied component name.
	Get(name string) (ComponentDefinition, bool)

	// List exposes the current catalogue sorted by name.
	List() []ComponentDefinition

	// Remove deletes the component from the registry. Removing an unknown
	// component is a no-op.
	Remove(name string)
}

// ComponentDefinition captures the metadata, attribute schema, and handler
// that the registry stores.
type ComponentDefinition struct {
	Name        string
	Description string
	// Schema is a JSON schema applied to the invocation attributes. Attribute
	// values are always strings.
	Schema map[string]any
	// RawChildren hands the children to the handler untouched instead of
	// rendering them as Markdown first.
	RawChildren bool
	Handler     ComponentHandler
}

// ComponentChildren carries the nested content of an invocation. HTML is
// empty for definitions that declare RawChildren.
type ComponentChildren struct {
	Raw  string
	HTML template.HTML
}

// ComponentHandler renders a component invocation.
type ComponentHandler func(ctx ComponentContext, attrs map[string]string, children ComponentChildren) (template.HTML, error)

// ComponentContext provides runtime metadata surfaced during rendering.
type ComponentContext struct {
	Context context.Context
	// Name is the component name as written in the markup.
	Name string
	// DocumentID identifies the document being rendered, empty for ad-hoc bodies.
	DocumentID string
	// Path locates the invocation within the body (e.g. "2" or "0.1" when nested).
	Path string
	// ElementID is a deterministic id derived from DocumentID, Path and name.
	ElementID string
	Logger    Logger
}

// ParsedComponent represents an invocation discovered by the markup parser.
type ParsedComponent struct {
	Name        string
	Attributes  map[string]string
	Inner       string
	SelfClosing bool
	// Placeholder is the marker left in the transformed body.
	Placeholder string
}

// ComponentParser extracts top-level component invocations from a Markdown
// body, replacing each with a placeholder carrying its index.
type ComponentParser interface {
	Extract(content string, known func(name string) bool) (string, []ParsedComponent, error)
}

// RenderOptions customises a single render call. Boolean switches only ever
// enable behaviour on top of the pipeline defaults.
type RenderOptions struct {
	DocumentID string
	Sanitize   bool
	HardWraps  bool
	Strict     bool
}

// Renderer turns document bodies into HTML.
type Renderer interface {
	Render(ctx context.Context, body []byte, opts RenderOptions) (template.HTML, error)
	RenderDocument(ctx context.Context, doc *Document) (template.HTML, error)
}
