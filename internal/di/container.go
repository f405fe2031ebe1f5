package di

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/uptrace/bun"

	sitecmd "github.com/goliatone/go-folio/internal/commands/site"
	"github.com/goliatone/go-folio/internal/components"
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/logging/console"
	"github.com/goliatone/go-folio/internal/logging/gologger"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/internal/render"
	"github.com/goliatone/go-folio/internal/runtimeconfig"
	"github.com/goliatone/go-folio/internal/storage"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Container wires module dependencies from a validated Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	contentFS  fs.FS
	fileStore  interfaces.DocumentStore
	store      interfaces.DocumentStore
	bunDB      *bun.DB
	ownsDB     bool
	sqlStore   *storage.BunStore
	memory     *storage.MemoryStore
	registry   *components.Registry
	repository *content.Repository
	pipeline   *render.Pipeline
	exporter   *sitecmd.Exporter
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithContentFS reads the filesystem provider from fsys instead of Config.ContentDir.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		if fsys != nil {
			c.contentFS = fsys
		}
	}
}

// WithStore replaces the configured document store.
func WithStore(store interfaces.DocumentStore) Option {
	return func(c *Container) {
		if store != nil {
			c.store = store
		}
	}
}

// WithBunDB supplies the database used by the sql provider. The caller keeps
// ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		if db != nil {
			c.bunDB = db
		}
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStores(); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.configureRendering(); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.repository = content.NewRepository(c.store,
		content.WithLogger(logging.ContentLogger(c.loggerProvider)))
	c.exporter = sitecmd.NewExporter(c.repository, c.pipeline,
		sitecmd.WithHighlightStyle(cfg.Render.HighlightStyle),
		sitecmd.WithExporterLogger(logging.CommandsLogger(c.loggerProvider)))
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), "console") {
		c.loggerProvider = console.NewProvider(console.Options{
			Writer: os.Stderr,
			Level:  console.ParseLevel(c.Config.Logging.Level),
		})
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureStores() error {
	cfg := c.Config
	if c.contentFS != nil {
		c.fileStore = storage.NewFSStore(c.contentFS, cfg.Extensions...)
	} else if dirStore, err := storage.NewDirStore(cfg.ContentDir, cfg.Extensions...); err == nil {
		c.fileStore = dirStore
	} else if cfg.StorageProvider() == "filesystem" && c.store == nil {
		return err
	}

	if c.store != nil {
		return nil
	}

	switch cfg.StorageProvider() {
	case "memory":
		c.memory = storage.NewMemoryStore()
		for _, collection := range cfg.Collections {
			c.memory.AddCollection(collection)
		}
		c.store = c.memory
	case "sql":
		if c.bunDB == nil {
			db, err := storage.OpenDB(storage.DBConfig{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN})
			if err != nil {
				return err
			}
			c.bunDB = db
			c.ownsDB = true
		}
		c.sqlStore = storage.NewBunStore(c.bunDB,
			storage.WithBunLogger(logging.StorageLogger(c.loggerProvider)))
		if err := c.sqlStore.EnsureSchema(context.Background()); err != nil {
			return fmt.Errorf("di: ensure schema: %w", err)
		}
		c.store = c.sqlStore
	default:
		c.store = c.fileStore
	}
	return nil
}

func (c *Container) configureRendering() error {
	cfg := c.Config.Render
	validator := components.NewValidator()
	c.registry = components.NewRegistry(validator)
	if err := components.RegisterBuiltIns(c.registry, cfg.Components); err != nil {
		return err
	}
	c.pipeline = render.NewPipeline(c.registry,
		render.WithMarkdownOptions(markdown.Options{
			Extensions:     cfg.Extensions,
			HardWraps:      cfg.HardWraps,
			SafeMode:       cfg.SafeMode,
			Sanitize:       cfg.Sanitize,
			HighlightStyle: cfg.HighlightStyle,
			LineNumbers:    cfg.LineNumbers,
		}),
		render.WithValidator(validator),
		render.WithStrict(cfg.StrictComponents),
		render.WithLogger(logging.RenderLogger(c.loggerProvider)),
	)
	return nil
}

// LoggerProvider returns the provider used for module loggers; nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Store returns the document store selected by Config.Storage.
func (c *Container) Store() interfaces.DocumentStore { return c.store }

// FileStore returns the content directory store, or nil when unavailable.
func (c *Container) FileStore() interfaces.DocumentStore { return c.fileStore }

// SQLStore returns the Bun store for the sql provider, or nil.
func (c *Container) SQLStore() *storage.BunStore { return c.sqlStore }

// MemoryStore returns the in-memory store for the memory provider, or nil.
func (c *Container) MemoryStore() *storage.MemoryStore { return c.memory }

// Registry returns the component registry.
func (c *Container) Registry() *components.Registry { return c.registry }

// Repository returns the content repository.
func (c *Container) Repository() *content.Repository { return c.repository }

// Pipeline returns the rendering pipeline.
func (c *Container) Pipeline() *render.Pipeline { return c.pipeline }

// Exporter returns the static exporter.
func (c *Container) Exporter() *sitecmd.Exporter { return c.exporter }

// Close releases the database handle when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	return err
}

// CollectionNames returns the configured collection names, trimmed.
func (c *Container) CollectionNames() []string {
	out := make([]string, 0, len(c.Config.Collections))
	for _, name := range c.Config.Collections {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
