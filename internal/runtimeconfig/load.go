package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FOLIO_"

type loadOptions struct {
	envFile string
	lookup  func(string) (string, bool)
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

// WithEnvFile reads overrides from a dotenv file. A missing file is ignored.
// Process environment values take precedence over the file.
func WithEnvFile(path string) LoadOption {
	return func(o *loadOptions) {
		o.envFile = path
	}
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(lookup func(string) (string, bool)) LoadOption {
	return func(o *loadOptions) {
		if lookup != nil {
			o.lookup = lookup
		}
	}
}

// Load builds a Config from DefaultConfig, the YAML file at path (optional
// when empty), and FOLIO_* environment overrides, then validates it.
func Load(path string, opts ...LoadOption) (Config, error) {
	options := loadOptions{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(&options)
	}

	cfg := DefaultConfig()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("folio config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("folio config: parse %s: %w", path, err)
		}
	}

	fileEnv := map[string]string{}
	if options.envFile != "" {
		values, err := godotenv.Read(options.envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("folio config: read env file %s: %w", options.envFile, err)
		}
		if values != nil {
			fileEnv = values
		}
	}
	lookup := func(key string) (string, bool) {
		if value, ok := options.lookup(EnvPrefix + key); ok {
			return value, true
		}
		value, ok := fileEnv[EnvPrefix+key]
		return value, ok
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"CONTENT_DIR":      &cfg.ContentDir,
		"STORAGE_PROVIDER": &cfg.Storage.Provider,
		"STORAGE_DRIVER":   &cfg.Storage.Driver,
		"STORAGE_DSN":      &cfg.Storage.DSN,
		"HIGHLIGHT_STYLE":  &cfg.Render.HighlightStyle,
		"EXPORT_DIR":       &cfg.Export.OutputDir,
		"LOG_LEVEL":        &cfg.Logging.Level,
		"LOG_FORMAT":       &cfg.Logging.Format,
	}
	for key, target := range strs {
		if value, ok := lookup(key); ok {
			*target = strings.TrimSpace(value)
		}
	}

	lists := map[string]*[]string{
		"COLLECTIONS": &cfg.Collections,
		"EXTENSIONS":  &cfg.Extensions,
		"COMPONENTS":  &cfg.Render.Components,
	}
	for key, target := range lists {
		if value, ok := lookup(key); ok {
			*target = splitList(value)
		}
	}

	bools := map[string]*bool{
		"RENDER_SANITIZE":   &cfg.Render.Sanitize,
		"RENDER_STRICT":     &cfg.Render.StrictComponents,
		"RENDER_HARD_WRAPS": &cfg.Render.HardWraps,
		"LOGGER":            &cfg.Features.Logger,
		"WATCH":             &cfg.Features.Watch,
	}
	for key, target := range bools {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("folio config: %s%s: %w", EnvPrefix, key, err)
		}
		*target = parsed
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
