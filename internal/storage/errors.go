package storage

import (
	"errors"
	"io/fs"
	"strings"
)

var (
	// ErrCollectionNotFound indicates the named collection has no backing location.
	ErrCollectionNotFound = errors.New("storage: collection not found")
	// ErrEntryNotFound indicates the collection exists but the entry does not.
	ErrEntryNotFound = errors.New("storage: entry not found")
)

// validCollection reports whether name can address a collection. Names are
// slash separated and may not escape the store root.
func validCollection(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed != name || name == "." {
		return false
	}
	return fs.ValidPath(name)
}

// validEntry reports whether name can address a single document.
func validEntry(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
