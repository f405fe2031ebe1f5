// Package folio assembles the content repository, component registry, and
// rendering pipeline behind a single Module.
package folio

import (
	"context"
	"html/template"

	sitecmd "github.com/goliatone/go-folio/internal/commands/site"
	"github.com/goliatone/go-folio/internal/components"
	"github.com/goliatone/go-folio/internal/di"
	"github.com/goliatone/go-folio/internal/quiz"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

type (
	Metadata            = interfaces.Metadata
	Document            = interfaces.Document
	ListOptions         = interfaces.ListOptions
	Page                = interfaces.Page
	RenderOptions       = interfaces.RenderOptions
	ComponentDefinition = interfaces.ComponentDefinition
	ComponentHandler    = interfaces.ComponentHandler
	ComponentContext    = interfaces.ComponentContext
	ComponentChildren   = interfaces.ComponentChildren
	Logger              = interfaces.Logger
	LoggerProvider      = interfaces.LoggerProvider
	DocumentStore       = interfaces.DocumentStore

	ExportOptions = sitecmd.ExportOptions
	ExportResult  = sitecmd.ExportResult

	Quiz        = quiz.Quiz
	QuizState   = quiz.State
	QuizSession = quiz.Session
)

var (
	ErrUnknownComponent      = components.ErrUnknownComponent
	ErrInvalidAttributes     = components.ErrInvalidAttributes
	ErrInvalidQuizDefinition = quiz.ErrInvalidQuizDefinition
)

// Option customises module construction.
type Option = di.Option

// WithLoggerProvider overrides the logger provider built from Config.Logging.
func WithLoggerProvider(provider LoggerProvider) Option { return di.WithLoggerProvider(provider) }

// WithStore replaces the configured document store.
func WithStore(store DocumentStore) Option { return di.WithStore(store) }

// Module is the top level folio runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Close releases resources held by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// List returns collection metadata sorted newest first.
func (m *Module) List(ctx context.Context, collection string, opts ListOptions) ([]Metadata, error) {
	return m.container.Repository().List(ctx, collection, opts)
}

// Get returns the document named identifier. ok is false when nothing matches.
func (m *Module) Get(ctx context.Context, collection, identifier string) (*Document, bool, error) {
	return m.container.Repository().Get(ctx, collection, identifier)
}

// Identifiers lists the identifiers of collection in store order without
// reading document bodies.
func (m *Module) Identifiers(ctx context.Context, collection string) ([]string, error) {
	return m.container.Repository().Identifiers(ctx, collection)
}

// Page returns a 1-based page of collection metadata. perPage <= 0 uses
// Config.Listing.PerPage.
func (m *Module) Page(ctx context.Context, collection string, page, perPage int) (*Page, error) {
	if perPage <= 0 {
		perPage = m.container.Config.Listing.PerPage
	}
	return m.container.Repository().Page(ctx, collection, page, perPage)
}

// Render converts a Markdown body with embedded components to HTML.
func (m *Module) Render(ctx context.Context, body []byte, opts RenderOptions) (template.HTML, error) {
	return m.container.Pipeline().Render(ctx, body, opts)
}

// RenderDocument renders doc with ids scoped to its collection and identifier.
func (m *Module) RenderDocument(ctx context.Context, doc *Document) (template.HTML, error) {
	return m.container.Pipeline().RenderDocument(ctx, doc)
}

// RegisterComponent adds a custom component to the registry.
func (m *Module) RegisterComponent(def ComponentDefinition) error {
	return m.container.Registry().Register(def)
}

// RemoveComponent drops a component from the registry. Later renders treat
// its tags as unknown.
func (m *Module) RemoveComponent(name string) {
	m.container.Registry().Remove(name)
}

// Components lists the registered components sorted by name.
func (m *Module) Components() []ComponentDefinition {
	return m.container.Registry().List()
}

// Export renders a collection into static HTML files.
func (m *Module) Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	return m.container.Exporter().Export(ctx, opts)
}

// ParseQuiz builds a quiz from its YAML definition.
func ParseQuiz(data []byte) (*Quiz, error) {
	return quiz.Parse(data)
}
