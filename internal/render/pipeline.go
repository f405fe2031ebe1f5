// Package render converts document bodies into HTML. Markdown goes through
// goldmark; embedded component tags are cut out before conversion and
// replaced by their registry output afterwards.
package render

import (
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-folio/internal/components"
	"github.com/goliatone/go-folio/internal/components/parser"
	"github.com/goliatone/go-folio/internal/identity"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// AttributeValidator checks invocation attributes before a handler runs.
type AttributeValidator interface {
	ValidateAttributes(def interfaces.ComponentDefinition, attrs map[string]string) error
}

// closingChecker is implemented by parsers that can report closing tags
// without a start tag. Strict renders use it to reject stray closers.
type closingChecker interface {
	CheckClosers(content string, known func(string) bool) error
}

// Pipeline renders Markdown bodies with embedded components. It holds no
// per-call state, so one value can serve concurrent renders.
type Pipeline struct {
	registry  interfaces.ComponentRegistry
	parser    interfaces.ComponentParser
	validator AttributeValidator
	markdown  markdown.Options
	strict    bool
	logger    interfaces.Logger
}

// Option customises the pipeline.
type Option func(*Pipeline)

// WithParser overrides the component markup parser.
func WithParser(p interfaces.ComponentParser) Option {
	return func(pipeline *Pipeline) {
		if p != nil {
			pipeline.parser = p
		}
	}
}

// WithValidator overrides the attribute validator.
func WithValidator(v AttributeValidator) Option {
	return func(pipeline *Pipeline) {
		if v != nil {
			pipeline.validator = v
		}
	}
}

// WithMarkdownOptions sets the default Markdown conversion options.
func WithMarkdownOptions(opts markdown.Options) Option {
	return func(pipeline *Pipeline) {
		pipeline.markdown = opts
	}
}

// WithStrict makes unknown component tags an error instead of passing them
// through as raw markup.
func WithStrict(strict bool) Option {
	return func(pipeline *Pipeline) {
		pipeline.strict = strict
	}
}

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(pipeline *Pipeline) {
		pipeline.logger = logging.OrNoOp(logger)
	}
}

// NewPipeline builds a pipeline dispatching components through registry.
func NewPipeline(registry interfaces.ComponentRegistry, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry:  registry,
		parser:    parser.NewMarkupParser(),
		validator: components.NewValidator(),
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render converts body to HTML. The same body and options always produce the
// same output.
func (p *Pipeline) Render(ctx context.Context, body []byte, opts interfaces.RenderOptions) (template.HTML, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	logger := logging.WithFields(p.logger, map[string]any{
		"operation":   "render.body",
		"document_id": opts.DocumentID,
	})

	out, count, err := p.render(ctx, string(body), opts, "")
	if err != nil {
		logging.WithFields(logger, map[string]any{
			"error": err,
		}).Error("render.pipeline.failed")
		return "", err
	}

	logging.WithFields(logger, map[string]any{
		"components":  count,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("render.pipeline.completed")
	return template.HTML(out), nil
}

// RenderDocument renders doc.Body using the document's collection and
// identifier to derive stable element ids.
func (p *Pipeline) RenderDocument(ctx context.Context, doc *interfaces.Document) (template.HTML, error) {
	if doc == nil {
		return "", fmt.Errorf("render: document is required")
	}
	return p.Render(ctx, doc.Body, interfaces.RenderOptions{
		DocumentID: DocumentID(doc),
	})
}

// DocumentID is the id RenderDocument passes for doc.
func DocumentID(doc *interfaces.Document) string {
	return doc.Collection + "/" + doc.Metadata.Identifier
}

func (p *Pipeline) render(ctx context.Context, body string, opts interfaces.RenderOptions, path string) (string, int, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	strict := p.strict || opts.Strict
	known := p.known
	if strict {
		known = func(string) bool { return true }
	}

	if checker, ok := p.parser.(closingChecker); ok && strict {
		if err := checker.CheckClosers(body, known); err != nil {
			return "", 0, fmt.Errorf("render: parse components: %w", err)
		}
	}

	transformed, parsed, err := p.parser.Extract(body, known)
	if err != nil {
		return "", 0, fmt.Errorf("render: parse components: %w", err)
	}

	mdOpts := p.markdown
	mdOpts.Sanitize = mdOpts.Sanitize || opts.Sanitize
	mdOpts.HardWraps = mdOpts.HardWraps || opts.HardWraps
	html, err := markdown.Convert([]byte(transformed), mdOpts)
	if err != nil {
		return "", 0, fmt.Errorf("render: %w", err)
	}

	out := string(html)
	count := len(parsed)
	for idx, component := range parsed {
		childPath := joinPath(path, idx)
		rendered, nested, err := p.renderComponent(ctx, component, opts, childPath)
		if err != nil {
			return "", 0, err
		}
		count += nested
		marker := component.Placeholder
		if marker == "" {
			marker = parser.Placeholder(idx)
		}
		out = substitute(out, marker, rendered)
	}
	return out, count, nil
}

func (p *Pipeline) renderComponent(ctx context.Context, component interfaces.ParsedComponent, opts interfaces.RenderOptions, path string) (string, int, error) {
	def, ok := p.lookup(component.Name)
	if !ok {
		return "", 0, fmt.Errorf("%w: %s at %s", components.ErrUnknownComponent, component.Name, path)
	}
	if err := p.validator.ValidateAttributes(def, component.Attributes); err != nil {
		return "", 0, fmt.Errorf("render: component %s at %s: %w", component.Name, path, err)
	}

	children := interfaces.ComponentChildren{Raw: dedent(component.Inner)}
	nested := 0
	if !def.RawChildren && strings.TrimSpace(component.Inner) != "" {
		childHTML, count, err := p.render(ctx, dedent(component.Inner), opts, path)
		if err != nil {
			return "", 0, err
		}
		children.HTML = template.HTML(strings.TrimSpace(childHTML))
		nested = count
	}

	elementID := identity.ElementID(opts.DocumentID, path, component.Name)
	rendered, err := def.Handler(interfaces.ComponentContext{
		Context:    ctx,
		Name:       component.Name,
		DocumentID: opts.DocumentID,
		Path:       path,
		ElementID:  elementID,
		Logger:     p.logger,
	}, component.Attributes, children)
	if err != nil {
		logging.WithFields(p.logger, map[string]any{
			"component": component.Name,
			"path":      path,
			"error":     err,
		}).Error("render.component.failed")
		return "", 0, fmt.Errorf("render: component %s at %s: %w", component.Name, path, err)
	}

	logging.WithFields(p.logger, map[string]any{
		"component":  component.Name,
		"path":       path,
		"element_id": elementID,
	}).Debug("render.component.rendered")
	return string(rendered), nested, nil
}

func (p *Pipeline) known(name string) bool {
	_, ok := p.lookup(name)
	return ok
}

func (p *Pipeline) lookup(name string) (interfaces.ComponentDefinition, bool) {
	if p.registry == nil {
		return interfaces.ComponentDefinition{}, false
	}
	return p.registry.Get(name)
}

// substitute swaps a placeholder for rendered output. A placeholder that
// became its own paragraph loses the <p> wrapper.
func substitute(html, placeholder, rendered string) string {
	wrapped := "<p>" + placeholder + "</p>"
	if strings.Contains(html, wrapped) {
		return strings.Replace(html, wrapped, rendered, 1)
	}
	return strings.Replace(html, placeholder, rendered, 1)
}

func joinPath(parent string, idx int) string {
	if parent == "" {
		return strconv.Itoa(idx)
	}
	return parent + "." + strconv.Itoa(idx)
}

// dedent strips the indentation shared by every non-blank line so indented
// children are not read as Markdown code blocks.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	if prefix == "" {
		return s
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}

var _ interfaces.Renderer = (*Pipeline)(nil)
