package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// Options configures Convert.
type Options struct {
	// Extensions names goldmark extensions to enable. Empty enables GFM,
	// footnotes, and task lists.
	Extensions []string
	HardWraps  bool
	// SafeMode drops raw HTML from the Markdown source.
	SafeMode bool
	// Sanitize runs the rendered HTML through a bluemonday UGC policy.
	Sanitize       bool
	HighlightStyle string
	LineNumbers    bool
}

// Convert renders Markdown to HTML. Fenced code blocks are highlighted with
// chroma and emit CSS classes per token type, so output only depends on the
// source text and declared language.
func Convert(source []byte, opts Options) ([]byte, error) {
	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	if opts.Sanitize {
		return sanitizePolicy().SanitizeBytes(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// WriteHighlightCSS writes the stylesheet matching the classes emitted for
// fenced code blocks.
func WriteHighlightCSS(w io.Writer, style string) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	return formatter.WriteCSS(w, styles.Get(styleName(style)))
}

func newGoldmarkEngine(opts Options) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)
	exts = append(exts, highlighting.NewHighlighting(
		highlighting.WithStyle(styleName(opts.HighlightStyle)),
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(true),
			chromahtml.WithLineNumbers(opts.LineNumbers),
		),
	))

	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// KnownExtension reports whether name can be passed in Options.Extensions.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Footnote,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}

func styleName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultHighlightStyle
	}
	return name
}

func sanitizePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("span", "pre", "code", "div", "table", "td", "tr")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup")
	return policy
}
