package content

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/internal/storage"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used for skipped and degraded documents.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Repository) {
		r.logger = logging.OrNoOp(logger)
	}
}

// Repository assembles collections from a DocumentStore. Every call re-reads
// the store, so results never share state across calls.
type Repository struct {
	store  interfaces.DocumentStore
	logger interfaces.Logger
}

// NewRepository builds a repository backed by store.
func NewRepository(store interfaces.DocumentStore, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type scannedEntry struct {
	name       string
	identifier string
}

// List returns the metadata of every readable document in collection, most
// recent publication date first. Documents without a parseable date sort
// after dated ones and keep store order among themselves.
func (r *Repository) List(ctx context.Context, collection string, opts interfaces.ListOptions) ([]interfaces.Metadata, error) {
	docs, err := r.Documents(ctx, collection, opts)
	if err != nil {
		return nil, err
	}
	out := make([]interfaces.Metadata, len(docs))
	for i, doc := range docs {
		out[i] = doc.Metadata
	}
	return out, nil
}

// Documents is List returning full documents, bodies included.
func (r *Repository) Documents(ctx context.Context, collection string, opts interfaces.ListOptions) ([]interfaces.Document, error) {
	if err := validateListOptions(opts); err != nil {
		return nil, err
	}
	entries, err := r.scan(ctx, collection)
	if err != nil {
		return nil, err
	}

	docs := make([]interfaces.Document, 0, len(entries))
	for _, entry := range entries {
		doc, err := r.load(ctx, collection, entry)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logging.WithFields(r.entryLogger(collection, entry), map[string]any{
				"error": err,
			}).Warn("content.list.document_skipped")
			continue
		}
		docs = append(docs, *doc)
	}

	SortByPublicationDate(docs)
	return window(docs, opts), nil
}

// Get returns the document whose identifier matches. found is false when no
// entry matches; that is not an error.
func (r *Repository) Get(ctx context.Context, collection, identifier string) (*interfaces.Document, bool, error) {
	entries, err := r.scan(ctx, collection)
	if err != nil {
		return nil, false, err
	}
	for _, entry := range entries {
		if entry.identifier != identifier {
			continue
		}
		doc, err := r.load(ctx, collection, entry)
		if err != nil {
			if errors.Is(err, storage.ErrEntryNotFound) {
				return nil, false, nil
			}
			return nil, false, fmt.Errorf("%w: %s/%s: %w", ErrDocumentReadFailure, collection, entry.name, err)
		}
		return doc, true, nil
	}
	return nil, false, nil
}

// Page returns the page-th window (1-based) of perPage documents.
func (r *Repository) Page(ctx context.Context, collection string, page, perPage int) (*interfaces.Page, error) {
	if page < 1 || perPage < 1 {
		return nil, ErrInvalidPage
	}
	all, err := r.List(ctx, collection, interfaces.ListOptions{})
	if err != nil {
		return nil, err
	}

	total := len(all)
	totalPages := (total + perPage - 1) / perPage
	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	return &interfaces.Page{
		Items:      all[start:end],
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (r *Repository) scan(ctx context.Context, collection string) ([]scannedEntry, error) {
	if r.store == nil {
		return nil, fmt.Errorf("%w: no document store configured", ErrCollectionNotFound)
	}
	entries, err := r.store.Entries(ctx, collection)
	if err != nil {
		if errors.Is(err, storage.ErrCollectionNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrCollectionNotFound, err)
		}
		return nil, err
	}

	scanned := make([]scannedEntry, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		id := markdown.Identifier(entry.Name)
		if previous, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %q from %s and %s in %s", ErrDuplicateIdentifier, id, previous, entry.Name, collection)
		}
		seen[id] = entry.Name
		scanned = append(scanned, scannedEntry{name: entry.Name, identifier: id})
	}
	return scanned, nil
}

func (r *Repository) load(ctx context.Context, collection string, entry scannedEntry) (*interfaces.Document, error) {
	data, err := r.store.Read(ctx, collection, entry.name)
	if err != nil {
		return nil, err
	}

	parsed := markdown.ParseFrontMatter(data)
	if parsed.Degraded {
		logging.WithFields(r.entryLogger(collection, entry), map[string]any{
			"error": parsed.Err,
		}).Warn("content.frontmatter.degraded")
	}

	return &interfaces.Document{
		Collection: collection,
		Metadata:   markdown.Normalize(entry.name, parsed.Fields),
		Body:       parsed.Body,
	}, nil
}

func (r *Repository) entryLogger(collection string, entry scannedEntry) interfaces.Logger {
	return logging.WithDocumentContext(r.logger, collection, entry.identifier, entry.name)
}

// SortByPublicationDate orders docs by descending publication date in place.
// Missing or unparseable dates compare lower than any present date; equal
// keys keep their relative order.
func SortByPublicationDate(docs []interfaces.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		left, leftOK := docs[i].Metadata.PublishedAt()
		right, rightOK := docs[j].Metadata.PublishedAt()
		switch {
		case !leftOK:
			return false
		case !rightOK:
			return true
		default:
			return left.After(right)
		}
	})
}

func validateListOptions(opts interfaces.ListOptions) error {
	if opts.Limit != nil && *opts.Limit < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, *opts.Limit)
	}
	if opts.Offset < 0 {
		return fmt.Errorf("%w: offset %d", ErrInvalidLimit, opts.Offset)
	}
	return nil
}

func window(docs []interfaces.Document, opts interfaces.ListOptions) []interfaces.Document {
	start := min(opts.Offset, len(docs))
	docs = docs[start:]
	if opts.Limit != nil && *opts.Limit < len(docs) {
		docs = docs[:*opts.Limit]
	}
	return docs
}

// Identifiers lists the identifiers of collection in store order without
// reading document bodies.
func (r *Repository) Identifiers(ctx context.Context, collection string) ([]string, error) {
	entries, err := r.scan(ctx, collection)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.identifier
	}
	return ids, nil
}

// Limit is a helper for building ListOptions with a limit.
func Limit(n int) interfaces.ListOptions {
	return interfaces.ListOptions{Limit: &n}
}

var _ interfaces.ContentRepository = (*Repository)(nil)
