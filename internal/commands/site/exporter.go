package sitecmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/goliatone/go-folio/internal/identity"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

const (
	indexFile = "index.json"
	cssFile   = "highlight.css"
)

// ErrExporterUnavailable is returned when no exporter is wired.
var ErrExporterUnavailable = errors.New("site command: exporter unavailable")

// DocumentSource returns the documents of a collection sorted newest first.
type DocumentSource interface {
	Documents(ctx context.Context, collection string, opts interfaces.ListOptions) ([]interfaces.Document, error)
}

// ExportOptions describes a single export run.
type ExportOptions struct {
	Collection    string
	OutputDir     string
	Limit         int
	IncludeDrafts bool
	WriteCSS      bool
}

// ExportResult lists what an export wrote.
type ExportResult struct {
	Collection string   `json:"collection"`
	Directory  string   `json:"directory"`
	Pages      []string `json:"pages"`
	Skipped    []string `json:"skipped,omitempty"`
	Index      string   `json:"index"`
	Stylesheet string   `json:"stylesheet,omitempty"`
}

// IndexEntry is one row of the exported index.json.
type IndexEntry struct {
	interfaces.Metadata
	// UUID is stable for a collection and identifier across exports.
	UUID string `json:"uuid"`
	Path string `json:"path"`
}

// Exporter renders collections to static HTML files.
type Exporter struct {
	source         DocumentSource
	renderer       interfaces.Renderer
	highlightStyle string
	logger         interfaces.Logger
}

// ExporterOption customises an Exporter.
type ExporterOption func(*Exporter)

// WithHighlightStyle selects the chroma style written to highlight.css.
func WithHighlightStyle(style string) ExporterOption {
	return func(e *Exporter) {
		e.highlightStyle = style
	}
}

// WithExporterLogger attaches a logger.
func WithExporterLogger(logger interfaces.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logging.OrNoOp(logger)
	}
}

// NewExporter wires an exporter over a document source and renderer.
func NewExporter(source DocumentSource, renderer interfaces.Renderer, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		source:         source,
		renderer:       renderer,
		highlightStyle: markdown.DefaultHighlightStyle,
		logger:         logging.NoOp(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .Stylesheet}}
<link rel="stylesheet" href="{{.Stylesheet}}">
{{- end}}
</head>
<body>
<article class="folio-document" data-collection="{{.Collection}}" data-identifier="{{.Identifier}}">
<header>
<h1>{{.Title}}</h1>
{{- with .Date}}
<time datetime="{{.}}">{{.}}</time>
{{- end}}
</header>
{{.Body}}
</article>
</body>
</html>
`))

type pageData struct {
	Title      string
	Collection string
	Identifier string
	Date       string
	Stylesheet string
	Body       template.HTML
}

// Export renders opts.Collection into opts.OutputDir.
func (e *Exporter) Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	if e == nil || e.source == nil || e.renderer == nil {
		return nil, ErrExporterUnavailable
	}

	listOpts := interfaces.ListOptions{}
	if opts.Limit > 0 {
		limit := opts.Limit
		listOpts.Limit = &limit
	}
	docs, err := e.source.Documents(ctx, opts.Collection, listOpts)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(opts.OutputDir, filepath.FromSlash(opts.Collection))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("site export: create %s: %w", dir, err)
	}

	logger := logging.WithDocumentContext(e.logger, opts.Collection, "", "")
	result := &ExportResult{
		Collection: opts.Collection,
		Directory:  dir,
		Pages:      []string{},
		Index:      filepath.Join(dir, indexFile),
	}

	stylesheet := ""
	if opts.WriteCSS {
		var css bytes.Buffer
		if err := markdown.WriteHighlightCSS(&css, e.highlightStyle); err != nil {
			return nil, fmt.Errorf("site export: highlight css: %w", err)
		}
		result.Stylesheet = filepath.Join(dir, cssFile)
		if err := os.WriteFile(result.Stylesheet, css.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("site export: write %s: %w", result.Stylesheet, err)
		}
		stylesheet = cssFile
	}

	index := make([]IndexEntry, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		id := doc.Metadata.Identifier
		if doc.Metadata.Draft && !opts.IncludeDrafts {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		body, err := e.renderer.RenderDocument(ctx, doc)
		if err != nil {
			return result, fmt.Errorf("site export: render %s/%s: %w", opts.Collection, id, err)
		}

		data := pageData{
			Title:      doc.Metadata.TitleOr(id),
			Collection: opts.Collection,
			Identifier: id,
			Stylesheet: stylesheet,
			Body:       body,
		}
		if doc.Metadata.PublicationDate != nil {
			data.Date = *doc.Metadata.PublicationDate
		}
		var page bytes.Buffer
		if err := pageTemplate.Execute(&page, data); err != nil {
			return result, fmt.Errorf("site export: template %s: %w", id, err)
		}

		name := id + ".html"
		if err := os.WriteFile(filepath.Join(dir, name), page.Bytes(), 0o644); err != nil {
			return result, fmt.Errorf("site export: write %s: %w", name, err)
		}
		result.Pages = append(result.Pages, name)
		index = append(index, IndexEntry{
			Metadata: doc.Metadata,
			UUID:     identity.DocumentUUID(opts.Collection, id).String(),
			Path:     name,
		})
		logging.WithFields(logger, map[string]any{"identifier": id}).Debug("site.export.page_written")
	}

	payload, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return result, fmt.Errorf("site export: encode index: %w", err)
	}
	if err := os.WriteFile(result.Index, payload, 0o644); err != nil {
		return result, fmt.Errorf("site export: write index: %w", err)
	}

	logging.WithFields(logger, map[string]any{
		"pages":   len(result.Pages),
		"skipped": len(result.Skipped),
	}).Info("site.export.completed")
	return result, nil
}
