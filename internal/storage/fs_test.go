package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestFSStoreEntriesFiltersByExtension(t *testing.T) {
	store := NewFSStore(fstest.MapFS{
		"posts/b-second.md":     {Data: []byte("# B")},
		"posts/a-first.mdx":     {Data: []byte("# A")},
		"posts/notes.txt":       {Data: []byte("skip")},
		"posts/UPPER.MD":        {Data: []byte("# U")},
		"posts/nested/inner.md": {Data: []byte("# nested")},
	})

	entries, err := store.Entries(context.Background(), "posts")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	want := []string{"UPPER.MD", "a-first.mdx", "b-second.md"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d (%v)", len(want), len(entries), entries)
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Fatalf("entry %d: expected %q, got %q", i, name, entries[i].Name)
		}
	}
}

func TestFSStoreCustomExtensions(t *testing.T) {
	store := NewFSStore(fstest.MapFS{
		"notes/a.txt": {Data: []byte("a")},
		"notes/b.md":  {Data: []byte("b")},
	}, "txt")

	entries, err := store.Entries(context.Background(), "notes")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "a.txt" {
		t.Fatalf("expected only a.txt, got %v", entries)
	}
}

func TestFSStoreMissingCollection(t *testing.T) {
	store := NewFSStore(fstest.MapFS{
		"posts/a.md": {Data: []byte("a")},
		"file.md":    {Data: []byte("x")},
	})

	for _, name := range []string{"projects", "file.md", "", "../posts", " posts"} {
		if _, err := store.Entries(context.Background(), name); !errors.Is(err, ErrCollectionNotFound) {
			t.Fatalf("collection %q: expected ErrCollectionNotFound, got %v", name, err)
		}
	}
}

func TestFSStoreRead(t *testing.T) {
	store := NewFSStore(fstest.MapFS{
		"posts/hello.md": {Data: []byte("---\ntitle: Hello\n---\nbody")},
	})

	data, err := store.Read(context.Background(), "posts", "hello.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "---\ntitle: Hello\n---\nbody" {
		t.Fatalf("unexpected data %q", data)
	}

	if _, err := store.Read(context.Background(), "posts", "missing.md"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if _, err := store.Read(context.Background(), "posts", "../posts/hello.md"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected traversal to be rejected, got %v", err)
	}
}

func TestFSStoreHonoursCancelledContext(t *testing.T) {
	store := NewFSStore(fstest.MapFS{"posts/a.md": {Data: []byte("a")}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Entries(ctx, "posts"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewDirStore(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "posts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "posts", "hello.md"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatalf("NewDirStore: %v", err)
	}
	entries, err := store.Entries(context.Background(), "posts")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "hello.md" {
		t.Fatalf("unexpected entries %v", entries)
	}

	if _, err := NewDirStore(filepath.Join(dir, "posts", "hello.md")); err == nil {
		t.Fatal("expected error for file root")
	}
	if _, err := NewDirStore(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}
