package sitecmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the handlers produced by RegisterSiteCommands. Sync is nil
// when no sync target is supplied.
type HandlerSet struct {
	Export *ExportCollectionHandler
	Sync   *SyncCollectionHandler
}

// Dependencies feeds RegisterSiteCommands.
type Dependencies struct {
	Exporter *Exporter
	// SyncTarget and SyncSource are optional; both are needed for the sync handler.
	SyncTarget Syncer
	SyncSource interfaces.DocumentStore
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	exportHandlerOpts []commands.HandlerOption[ExportCollectionCommand]
	syncHandlerOpts   []commands.HandlerOption[SyncCollectionCommand]
}

// WithExportHandlerOptions forwards options to the ExportCollectionHandler constructor.
func WithExportHandlerOptions(opts ...commands.HandlerOption[ExportCollectionCommand]) Option {
	return func(cfg *options) {
		cfg.exportHandlerOpts = append(cfg.exportHandlerOpts, opts...)
	}
}

// WithSyncHandlerOptions forwards options to the SyncCollectionHandler constructor.
func WithSyncHandlerOptions(opts ...commands.HandlerOption[SyncCollectionCommand]) Option {
	return func(cfg *options) {
		cfg.syncHandlerOpts = append(cfg.syncHandlerOpts, opts...)
	}
}

// RegisterSiteCommands builds the site handlers and registers them with reg when non-nil.
func RegisterSiteCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if deps.Exporter == nil {
		return nil, errors.New("site command registration: exporter is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "site")
	set := &HandlerSet{
		Export: NewExportCollectionHandler(deps.Exporter, logger, cfg.exportHandlerOpts...),
	}
	if deps.SyncTarget != nil && deps.SyncSource != nil {
		set.Sync = NewSyncCollectionHandler(deps.SyncTarget, deps.SyncSource, logger, cfg.syncHandlerOpts...)
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Export); err != nil {
			return nil, err
		}
		if set.Sync != nil {
			if err := reg.RegisterCommand(set.Sync); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// RegisterSyncCron wires the sync handler into a cron registrar. The handler
// runs with a background context.
func RegisterSyncCron(reg CronRegistrar, handler *SyncCollectionHandler, cfg command.HandlerConfig, msg SyncCollectionCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
