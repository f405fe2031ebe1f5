package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// BunStore persists collections in a SQL database through Bun. It implements
// interfaces.DocumentStore and can be populated from any other store via Sync.
type BunStore struct {
	db     *bun.DB
	logger interfaces.Logger
	now    func() time.Time
}

// BunStoreOption customises the store.
type BunStoreOption func(*BunStore)

// WithBunLogger sets the logger used by Sync.
func WithBunLogger(logger interfaces.Logger) BunStoreOption {
	return func(s *BunStore) {
		s.logger = logging.OrNoOp(logger)
	}
}

// NewBunStore wraps db.
func NewBunStore(db *bun.DB, opts ...BunStoreOption) *BunStore {
	store := &BunStore{
		db:     db,
		logger: logging.NoOp(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

type collectionModel struct {
	bun.BaseModel `bun:"table:folio_collections"`

	Name      string    `bun:",pk"`
	CreatedAt time.Time `bun:"created_at"`
}

type documentModel struct {
	bun.BaseModel `bun:"table:folio_documents"`

	Collection string    `bun:",pk"`
	Name       string    `bun:",pk"`
	Body       string    `bun:"body,type:text"`
	UpdatedAt  time.Time `bun:"updated_at"`
}

// EnsureSchema creates the backing tables when missing.
func (s *BunStore) EnsureSchema(ctx context.Context) error {
	if s.db == nil {
		return errors.New("storage: bun store requires a database")
	}
	models := []any{(*collectionModel)(nil), (*documentModel)(nil)}
	for _, model := range models {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table: %w", err)
		}
	}
	return nil
}

// PutCollection registers collection. Existing collections are left untouched.
func (s *BunStore) PutCollection(ctx context.Context, collection string) error {
	if s.db == nil {
		return errors.New("storage: bun store requires a database")
	}
	if !validCollection(collection) {
		return fmt.Errorf("%w: %q", ErrCollectionNotFound, collection)
	}
	model := collectionModel{Name: collection, CreatedAt: s.now()}
	_, err := s.db.NewInsert().Model(&model).On("CONFLICT (name) DO NOTHING").Exec(ctx)
	return err
}

// PutDocument inserts or replaces collection/name, creating the collection.
func (s *BunStore) PutDocument(ctx context.Context, collection, name string, body []byte) error {
	if !validEntry(name) {
		return fmt.Errorf("%w: %q", ErrEntryNotFound, name)
	}
	if err := s.PutCollection(ctx, collection); err != nil {
		return err
	}
	model := documentModel{
		Collection: collection,
		Name:       name,
		Body:       string(body),
		UpdatedAt:  s.now(),
	}
	_, err := s.db.NewInsert().
		Model(&model).
		On("CONFLICT (collection, name) DO UPDATE").
		Set("body = EXCLUDED.body").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// Entries lists the documents of collection in name order.
func (s *BunStore) Entries(ctx context.Context, collection string) ([]interfaces.StoreEntry, error) {
	if s.db == nil {
		return nil, errors.New("storage: bun store requires a database")
	}
	exists, err := s.db.NewSelect().
		Model((*collectionModel)(nil)).
		Where("name = ?", collection).
		Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: lookup collection %s: %w", collection, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collection)
	}

	var names []string
	if err := s.db.NewSelect().
		Model((*documentModel)(nil)).
		Column("name").
		Where("collection = ?", collection).
		Order("name ASC").
		Scan(ctx, &names); err != nil {
		return nil, fmt.Errorf("storage: list collection %s: %w", collection, err)
	}

	entries := make([]interfaces.StoreEntry, len(names))
	for i, name := range names {
		entries[i] = interfaces.StoreEntry{Name: name}
	}
	return entries, nil
}

// Read returns the stored body of collection/name.
func (s *BunStore) Read(ctx context.Context, collection, name string) ([]byte, error) {
	if s.db == nil {
		return nil, errors.New("storage: bun store requires a database")
	}
	var model documentModel
	err := s.db.NewSelect().
		Model(&model).
		Where("collection = ?", collection).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s", ErrEntryNotFound, collection, name)
		}
		return nil, fmt.Errorf("storage: read %s/%s: %w", collection, name, err)
	}
	return []byte(model.Body), nil
}

// SyncOptions controls Sync behaviour.
type SyncOptions struct {
	// DeleteOrphaned removes rows whose entry no longer exists in the source.
	DeleteOrphaned bool
}

// SyncResult summarises a Sync run.
type SyncResult struct {
	Written int
	Deleted int
	Failed  []string
}

// Sync copies collection from src into the database. Entries that cannot be
// read are recorded in Failed and skipped; their existing rows are kept.
func (s *BunStore) Sync(ctx context.Context, src interfaces.DocumentStore, collection string, opts SyncOptions) (*SyncResult, error) {
	if src == nil {
		return nil, errors.New("storage: sync source is required")
	}
	entries, err := src.Entries(ctx, collection)
	if err != nil {
		return nil, err
	}
	if err := s.PutCollection(ctx, collection); err != nil {
		return nil, err
	}

	logger := logging.WithDocumentContext(s.logger, collection, "", "")
	result := &SyncResult{}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
		data, err := src.Read(ctx, collection, entry.Name)
		if err != nil {
			result.Failed = append(result.Failed, entry.Name)
			logging.WithFields(logger, map[string]any{
				"entry": entry.Name,
				"error": err,
			}).Warn("storage.sync.read_failed")
			continue
		}
		if err := s.PutDocument(ctx, collection, entry.Name, data); err != nil {
			return result, fmt.Errorf("storage: sync %s/%s: %w", collection, entry.Name, err)
		}
		result.Written++
	}

	if opts.DeleteOrphaned {
		query := s.db.NewDelete().
			Model((*documentModel)(nil)).
			Where("collection = ?", collection)
		if len(names) > 0 {
			query = query.Where("name NOT IN (?)", bun.In(names))
		}
		res, err := query.Exec(ctx)
		if err != nil {
			return result, fmt.Errorf("storage: prune %s: %w", collection, err)
		}
		if affected, err := res.RowsAffected(); err == nil {
			result.Deleted = int(affected)
		}
	}

	logging.WithFields(logger, map[string]any{
		"written": result.Written,
		"deleted": result.Deleted,
		"failed":  len(result.Failed),
	}).Info("storage.sync.completed")
	return result, nil
}

var _ interfaces.DocumentStore = (*BunStore)(nil)
