package interfaces

import (
	"context"
	"strings"
	"time"
)

// Metadata is the normalised frontmatter of a content document. Recognised
// fields are optional pointers so callers can tell "absent" from "empty";
// every parsed key, recognised or not, is kept verbatim in Fields.
type Metadata struct {
	Identifier      string         `json:"identifier"`
	Title           *string        `json:"title,omitempty"`
	Summary         *string        `json:"summary,omitempty"`
	Author          *string        `json:"author,omitempty"`
	PublicationDate *string        `json:"publicationDate,omitempty"`
	HeroImage       *string        `json:"heroImage,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	Draft           bool           `json:"draft,omitempty"`
	Fields          map[string]any `json:"fields,omitempty"`
}

// Document is a single content entry: its metadata plus the unrendered body.
type Document struct {
	Collection string   `json:"collection"`
	Metadata   Metadata `json:"metadata"`
	Body       []byte   `json:"body"`
}

var publicationDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// PublishedAt parses PublicationDate. The boolean is false when the field is
// absent or cannot be parsed as a calendar date.
func (m Metadata) PublishedAt() (time.Time, bool) {
	if m.PublicationDate == nil {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(*m.PublicationDate)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range publicationDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// TitleOr returns the title when present and non-blank, otherwise fallback.
func (m Metadata) TitleOr(fallback string) string {
	if m.Title != nil && strings.TrimSpace(*m.Title) != "" {
		return *m.Title
	}
	return fallback
}

// ListOptions controls pagination of collection listings. A nil Limit returns
// every document after Offset.
type ListOptions struct {
	Limit  *int
	Offset int
}

// Page is a window over a sorted collection listing.
type Page struct {
	Items      []Metadata `json:"items"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
	Total      int        `json:"total"`
	TotalPages int        `json:"total_pages"`
}

// ContentRepository exposes ordered listings and identifier lookups over a
// collection of documents. Lookups that match nothing report found=false
// rather than an error.
type ContentRepository interface {
	List(ctx context.Context, collection string, opts ListOptions) ([]Metadata, error)
	Get(ctx context.Context, collection, identifier string) (*Document, bool, error)
	Page(ctx context.Context, collection string, page, perPage int) (*Page, error)
}
