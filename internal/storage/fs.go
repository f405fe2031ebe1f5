package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// DefaultExtensions lists the document extensions scanned when none are configured.
var DefaultExtensions = []string{".mdx", ".md"}

// FSStore reads collections from directories of an fs.FS. Each collection is
// a directory; each regular file with a known extension is an entry.
type FSStore struct {
	fs         fs.FS
	extensions map[string]struct{}
}

// NewFSStore wraps filesystem. Extensions are matched case-insensitively and
// default to DefaultExtensions.
func NewFSStore(filesystem fs.FS, extensions ...string) *FSStore {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	known := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		known[ext] = struct{}{}
	}
	return &FSStore{fs: filesystem, extensions: known}
}

// NewDirStore opens an FSStore rooted at dir on the local disk.
func NewDirStore(dir string, extensions ...string) (*FSStore, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: stat content dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: content dir %s is not a directory", dir)
	}
	return NewFSStore(os.DirFS(filepath.Clean(dir)), extensions...), nil
}

// Entries lists the documents of collection in file name order.
func (s *FSStore) Entries(ctx context.Context, collection string) ([]interfaces.StoreEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validCollection(collection) {
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, collection)
	}

	info, err := fs.Stat(s.fs, collection)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collection)
		}
		return nil, fmt.Errorf("storage: stat collection %s: %w", collection, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrCollectionNotFound, collection)
	}

	dirEntries, err := fs.ReadDir(s.fs, collection)
	if err != nil {
		return nil, fmt.Errorf("storage: list collection %s: %w", collection, err)
	}

	entries := make([]interfaces.StoreEntry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !s.matches(entry.Name()) {
			continue
		}
		entries = append(entries, interfaces.StoreEntry{Name: entry.Name()})
	}
	return entries, nil
}

// Read returns the raw bytes of a single entry.
func (s *FSStore) Read(ctx context.Context, collection, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validCollection(collection) {
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, collection)
	}
	if !validEntry(name) {
		return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, name)
	}

	data, err := fs.ReadFile(s.fs, path.Join(collection, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrEntryNotFound, collection, name)
		}
		return nil, fmt.Errorf("storage: read %s/%s: %w", collection, name, err)
	}
	return data, nil
}

func (s *FSStore) matches(name string) bool {
	_, ok := s.extensions[strings.ToLower(path.Ext(name))]
	return ok
}

var _ interfaces.DocumentStore = (*FSStore)(nil)
