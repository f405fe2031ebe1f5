package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-folio/internal/markdown"
)

var ErrContentDirRequired = errors.New("folio config: content directory is required for the filesystem store")
var ErrCollectionNameInvalid = errors.New("folio config: collection names must be non-empty relative paths")
var ErrExtensionsRequired = errors.New("folio config: at least one document extension is required")
var ErrStorageProviderUnknown = errors.New("folio config: storage provider is invalid")
var ErrStorageDriverUnknown = errors.New("folio config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("folio config: storage dsn is required for the sql provider")
var ErrMarkdownExtensionUnknown = errors.New("folio config: markdown extension is invalid")
var ErrLoggingProviderRequired = errors.New("folio config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("folio config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("folio config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("folio config: logging format is invalid")
var ErrListLimitInvalid = errors.New("folio config: default list limit must be zero or positive")

// Config aggregates the settings for the content repository, the rendering
// pipeline, and the surrounding tooling. Zero values are filled in by
// DefaultConfig.
type Config struct {
	ContentDir  string        `yaml:"content_dir"`
	Collections []string      `yaml:"collections"`
	Extensions  []string      `yaml:"extensions"`
	Storage     StorageConfig `yaml:"storage"`
	Render      RenderConfig  `yaml:"render"`
	Listing     ListingConfig `yaml:"listing"`
	Quiz        QuizConfig    `yaml:"quiz"`
	Export      ExportConfig  `yaml:"export"`
	Features    Features      `yaml:"features"`
	Logging     LoggingConfig `yaml:"logging"`
}

// StorageConfig selects where collections are read from.
type StorageConfig struct {
	// Provider is one of filesystem, memory, or sql.
	Provider string `yaml:"provider"`
	// Driver is the SQL driver (sqlite3 or postgres) for the sql provider.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// RenderConfig captures Markdown and component rendering behaviour.
type RenderConfig struct {
	Sanitize         bool     `yaml:"sanitize"`
	SafeMode         bool     `yaml:"safe_mode"`
	HardWraps        bool     `yaml:"hard_wraps"`
	Extensions       []string `yaml:"extensions"`
	HighlightStyle   string   `yaml:"highlight_style"`
	LineNumbers      bool     `yaml:"line_numbers"`
	StrictComponents bool     `yaml:"strict_components"`
	// Components limits the built-in components registered. Empty registers all.
	Components []string `yaml:"components"`
}

// ListingConfig controls default listing windows.
type ListingConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	PerPage      int `yaml:"per_page"`
}

// QuizConfig configures the terminal quiz player.
type QuizConfig struct {
	ShowExplanations bool `yaml:"show_explanations"`
}

// ExportConfig configures static export.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
	WriteCSS  bool   `yaml:"write_css"`
}

// Features toggles optional functionality.
type Features struct {
	Logger bool `yaml:"logger"`
	Watch  bool `yaml:"watch"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	// Provider is gologger or console.
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		ContentDir:  "content",
		Collections: []string{"posts", "projects"},
		Extensions:  []string{".mdx", ".md"},
		Storage: StorageConfig{
			Provider: "filesystem",
			Driver:   "sqlite3",
		},
		Render: RenderConfig{
			HighlightStyle: "github",
		},
		Listing: ListingConfig{
			PerPage: 10,
		},
		Quiz: QuizConfig{
			ShowExplanations: true,
		},
		Export: ExportConfig{
			OutputDir: "dist",
			WriteCSS:  true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate ensures the configuration is coherent.
func (cfg Config) Validate() error {
	provider := cfg.StorageProvider()
	if err := validation.Validate(provider, validation.In("filesystem", "memory", "sql")); err != nil {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	switch provider {
	case "filesystem":
		if strings.TrimSpace(cfg.ContentDir) == "" {
			return ErrContentDirRequired
		}
	case "sql":
		if err := validation.Validate(normalize(cfg.Storage.Driver), validation.In("sqlite3", "sqlite", "postgres", "postgresql", "pg")); err != nil {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}

	for _, name := range cfg.Collections {
		if !validCollectionName(name) {
			return fmt.Errorf("%w: %q", ErrCollectionNameInvalid, name)
		}
	}
	if len(nonBlank(cfg.Extensions)) == 0 {
		return ErrExtensionsRequired
	}
	for _, ext := range cfg.Render.Extensions {
		if !markdown.KnownExtension(ext) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, ext)
		}
	}
	if cfg.Listing.DefaultLimit < 0 || cfg.Listing.PerPage < 0 {
		return ErrListLimitInvalid
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// StorageProvider returns the normalised storage provider, defaulting to filesystem.
func (cfg Config) StorageProvider() string {
	if provider := normalize(cfg.Storage.Provider); provider != "" {
		return provider
	}
	return "filesystem"
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}

func validCollectionName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed != name || strings.HasPrefix(name, "/") {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

func isSupportedProvider(provider string) bool {
	return validation.Validate(provider, validation.In("gologger", "console")) == nil
}

func isSupportedLevel(level string) bool {
	return validation.Validate(normalize(level), validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal")) == nil
}

func isSupportedFormat(format string) bool {
	return validation.Validate(normalize(format), validation.In("json", "console", "pretty")) == nil
}
