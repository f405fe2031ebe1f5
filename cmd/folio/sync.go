package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	command "github.com/goliatone/go-command"

	sitecmd "github.com/goliatone/go-folio/internal/commands/site"
)

func runSync(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("folio sync", flag.ContinueOnError)
	var opts moduleOptions
	opts.register(fs)
	collections := fs.String("collections", "", "Comma separated collections (defaults to the configured list)")
	deleteOrphaned := fs.Bool("delete-orphaned", false, "Remove rows whose source file no longer exists")
	every := fs.String("every", "", "Cron expression (e.g. \"@every 1h\") to keep syncing until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := moduleBuilder(opts)
	if err != nil {
		return err
	}
	defer m.Close()

	container := m.container()
	if container.SQLStore() == nil {
		return errors.New("sync: storage.provider must be sql")
	}
	if container.FileStore() == nil {
		return fmt.Errorf("sync: content directory %q is not readable", m.Config.ContentDir)
	}

	names := splitList(*collections)
	if len(names) == 0 {
		names = container.CollectionNames()
	}

	handler := sitecmd.NewSyncCollectionHandler(container.SQLStore(), container.FileStore(), m.Logger)
	messages := make([]sitecmd.SyncCollectionCommand, 0, len(names))
	for _, name := range names {
		msg := sitecmd.SyncCollectionCommand{
			Collection:     name,
			DeleteOrphaned: *deleteOrphaned,
		}
		if err := handler.Execute(ctx, msg); err != nil {
			return fmt.Errorf("sync %s: %w", name, err)
		}
		fmt.Fprintf(out, "%s: synced\n", name)
		messages = append(messages, msg)
	}

	if *every == "" {
		return nil
	}
	scheduler := newCronScheduler(m.Logger)
	if err := scheduleSync(scheduler, handler, *every, messages); err != nil {
		return err
	}
	fmt.Fprintf(out, "syncing %d collections on %q until interrupted\n", len(messages), *every)
	scheduler.Run(ctx)
	return nil
}

func scheduleSync(scheduler *cronScheduler, handler *sitecmd.SyncCollectionHandler, expression string, messages []sitecmd.SyncCollectionCommand) error {
	cfg := command.HandlerConfig{Expression: expression}
	for _, msg := range messages {
		if err := sitecmd.RegisterSyncCron(scheduler.Register, handler, cfg, msg); err != nil {
			return fmt.Errorf("sync %s: %w", msg.Collection, err)
		}
	}
	return nil
}
