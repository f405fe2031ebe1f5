// Package markdown turns raw content files into metadata and HTML. It splits
// the leading YAML block from the body, normalises the recognised keys into
// interfaces.Metadata, and converts Markdown to HTML with goldmark.
package markdown
