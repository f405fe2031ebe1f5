package interfaces

import "context"

// StoreEntry names a single raw document inside a collection.
type StoreEntry struct {
	Name string
}

// DocumentStore abstracts where raw content documents live. Implementations
// cover the filesystem, in-memory fixtures, and SQL databases.
type DocumentStore interface {
	// Entries lists the documents in the collection sorted by name. Unknown
	// collections fail with an error matching storage.ErrCollectionNotFound.
	Entries(ctx context.Context, collection string) ([]StoreEntry, error)
	// Read returns the full raw text of a single entry.
	Read(ctx context.Context, collection, name string) ([]byte, error)
}
