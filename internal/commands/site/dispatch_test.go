package sitecmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/internal/storage"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

type flakySyncer struct {
	failures int
	attempts int
}

func (s *flakySyncer) Sync(context.Context, interfaces.DocumentStore, string, storage.SyncOptions) (*storage.SyncResult, error) {
	s.attempts++
	if s.attempts <= s.failures {
		return nil, errors.New("database is locked")
	}
	return &storage.SyncResult{Written: 1}, nil
}

func TestDispatchSyncCollectionRetries(t *testing.T) {
	syncer := &flakySyncer{failures: 1}
	handler := NewSyncCollectionHandler(syncer, storage.NewMemoryStore(), nil,
		commands.WithTimeout[SyncCollectionCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	defer sub.Unsubscribe()

	if err := dispatcher.Dispatch(context.Background(), SyncCollectionCommand{Collection: "posts"}); err != nil {
		t.Fatalf("expected sync to succeed after a retry, got %v", err)
	}
	if syncer.attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", syncer.attempts)
	}
}

func TestDispatchSyncCollectionGivesUp(t *testing.T) {
	syncer := &flakySyncer{failures: 10}
	handler := NewSyncCollectionHandler(syncer, storage.NewMemoryStore(), nil,
		commands.WithTimeout[SyncCollectionCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	defer sub.Unsubscribe()

	if err := dispatcher.Dispatch(context.Background(), SyncCollectionCommand{Collection: "posts"}); err == nil {
		t.Fatal("expected error once retries are exhausted")
	}
	if syncer.attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", syncer.attempts)
	}
}
