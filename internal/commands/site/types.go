package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	exportCollectionMessageType = "folio.site.export_collection"
	syncCollectionMessageType   = "folio.site.sync_collection"
)

// ResultCallback receives export results. The callback is optional and is
// invoked synchronously from the handler.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of an export run.
type ResultEnvelope struct {
	Result   *ExportResult
	Metadata map[string]any
}

// ExportCollectionCommand renders every document of a collection into
// OutputDir/<collection>/<identifier>.html alongside an index.json listing.
type ExportCollectionCommand struct {
	Collection string `json:"collection"`
	OutputDir  string `json:"output_dir"`
	// Limit keeps only the newest documents when positive.
	Limit          int            `json:"limit,omitempty"`
	IncludeDrafts  bool           `json:"include_drafts,omitempty"`
	WriteCSS       bool           `json:"write_css,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (ExportCollectionCommand) Type() string { return exportCollectionMessageType }

// Validate ensures the collection and output directory are set.
func (cmd ExportCollectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Collection, validation.Required, validation.By(notBlank("folio.site.export.collection_required", "collection is required"))),
		validation.Field(&cmd.OutputDir, validation.Required, validation.By(notBlank("folio.site.export.output_dir_required", "output directory is required"))),
		validation.Field(&cmd.Limit, validation.Min(0)),
	)
}

// SyncCollectionCommand mirrors a collection from the content directory into
// the SQL document store.
type SyncCollectionCommand struct {
	Collection     string `json:"collection"`
	DeleteOrphaned bool   `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (SyncCollectionCommand) Type() string { return syncCollectionMessageType }

// Validate ensures a collection is named.
func (cmd SyncCollectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Collection, validation.Required, validation.By(notBlank("folio.site.sync.collection_required", "collection is required"))),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
