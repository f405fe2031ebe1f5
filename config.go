package folio

import "github.com/goliatone/go-folio/internal/runtimeconfig"

var (
	ErrContentDirRequired       = runtimeconfig.ErrContentDirRequired
	ErrCollectionNameInvalid    = runtimeconfig.ErrCollectionNameInvalid
	ErrExtensionsRequired       = runtimeconfig.ErrExtensionsRequired
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown     = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrListLimitInvalid         = runtimeconfig.ErrListLimitInvalid
)

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	RenderConfig  = runtimeconfig.RenderConfig
	ListingConfig = runtimeconfig.ListingConfig
	QuizConfig    = runtimeconfig.QuizConfig
	ExportConfig  = runtimeconfig.ExportConfig
	Features      = runtimeconfig.Features
	LoggingConfig = runtimeconfig.LoggingConfig
	LoadOption    = runtimeconfig.LoadOption
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file over the defaults and applies FOLIO_*
// environment overrides.
func LoadConfig(path string, opts ...LoadOption) (Config, error) {
	return runtimeconfig.Load(path, opts...)
}

// WithEnvFile loads overrides from a dotenv file.
func WithEnvFile(path string) LoadOption {
	return runtimeconfig.WithEnvFile(path)
}
