package sitecmd

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/storage"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// ErrSyncUnavailable is returned when no SQL store is configured.
var ErrSyncUnavailable = errors.New("site command: sync target unavailable")

// Syncer mirrors a source collection into a persistent store.
type Syncer interface {
	Sync(ctx context.Context, src interfaces.DocumentStore, collection string, opts storage.SyncOptions) (*storage.SyncResult, error)
}

var (
	_ command.Commander[ExportCollectionCommand] = (*ExportCollectionHandler)(nil)
	_ command.Commander[SyncCollectionCommand]   = (*SyncCollectionHandler)(nil)
)

// ExportCollectionHandler runs collection exports through the shared command handler.
type ExportCollectionHandler struct {
	inner *commands.Handler[ExportCollectionCommand]
}

// NewExportCollectionHandler constructs a handler bound to exporter.
func NewExportCollectionHandler(exporter *Exporter, logger interfaces.Logger, opts ...commands.HandlerOption[ExportCollectionCommand]) *ExportCollectionHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg ExportCollectionCommand) error {
		if exporter == nil {
			return ErrExporterUnavailable
		}
		result, err := exporter.Export(ctx, ExportOptions{
			Collection:    strings.TrimSpace(msg.Collection),
			OutputDir:     msg.OutputDir,
			Limit:         msg.Limit,
			IncludeDrafts: msg.IncludeDrafts,
			WriteCSS:      msg.WriteCSS,
		})
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": "export_collection",
			},
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[ExportCollectionCommand]{
		commands.WithLogger[ExportCollectionCommand](baseLogger),
		commands.WithOperation[ExportCollectionCommand]("site.export_collection"),
		commands.WithMessageFields(func(msg ExportCollectionCommand) map[string]any {
			fields := map[string]any{
				"collection": msg.Collection,
				"output_dir": msg.OutputDir,
			}
			if msg.Limit > 0 {
				fields["limit"] = msg.Limit
			}
			if msg.IncludeDrafts {
				fields["include_drafts"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportCollectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportCollectionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExportCollectionCommand].
func (h *ExportCollectionHandler) Execute(ctx context.Context, msg ExportCollectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncCollectionHandler mirrors filesystem collections into the SQL store.
type SyncCollectionHandler struct {
	inner *commands.Handler[SyncCollectionCommand]
}

// NewSyncCollectionHandler constructs a handler copying collections from source into target.
func NewSyncCollectionHandler(target Syncer, source interfaces.DocumentStore, logger interfaces.Logger, opts ...commands.HandlerOption[SyncCollectionCommand]) *SyncCollectionHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg SyncCollectionCommand) error {
		if target == nil || source == nil {
			return ErrSyncUnavailable
		}
		collection := strings.TrimSpace(msg.Collection)
		result, err := target.Sync(ctx, source, collection, storage.SyncOptions{
			DeleteOrphaned: msg.DeleteOrphaned,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"collection":    collection,
				"written_count": result.Written,
				"deleted_count": result.Deleted,
				"failed_count":  len(result.Failed),
			}).Info("site.command.sync_collection.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncCollectionCommand]{
		commands.WithLogger[SyncCollectionCommand](baseLogger),
		commands.WithOperation[SyncCollectionCommand]("site.sync_collection"),
		commands.WithMessageFields(func(msg SyncCollectionCommand) map[string]any {
			fields := map[string]any{"collection": msg.Collection}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncCollectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncCollectionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncCollectionCommand].
func (h *SyncCollectionHandler) Execute(ctx context.Context, msg SyncCollectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

func invokeCallback(cb ResultCallback, env ResultEnvelope) {
	if cb != nil {
		cb(env)
	}
}
