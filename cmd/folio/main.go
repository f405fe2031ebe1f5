package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goliatone/go-folio"
	"github.com/goliatone/go-folio/internal/di"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

var moduleBuilder = buildModule

var errUsage = errors.New(`usage: folio <command> [flags]

commands:
  list    list a collection newest first
  show    print a document's metadata and rendered HTML
  export  render collections to static HTML
  sync    mirror collections into the SQL store
  quiz    play a quiz embedded in a document`)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("folio: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	rest := args[1:]
	ctx = logging.ContextWithFields(ctx, map[string]any{"cli_command": args[0]})
	switch args[0] {
	case "list":
		return runList(ctx, rest, out)
	case "show":
		return runShow(ctx, rest, out)
	case "export":
		return runExport(ctx, rest, out)
	case "sync":
		return runSync(ctx, rest, out)
	case "quiz":
		return runQuiz(ctx, rest, os.Stdin, out)
	case "help", "-h", "--help":
		fmt.Fprintln(out, errUsage.Error())
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}
}

// moduleOptions are the flags shared by every subcommand.
type moduleOptions struct {
	ConfigPath string
	EnvFile    string
	ContentDir string
	Verbose    bool
}

func (o *moduleOptions) register(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", "", "Path to a folio YAML config file")
	fs.StringVar(&o.EnvFile, "env", ".env", "Dotenv file with FOLIO_* overrides (ignored when missing)")
	fs.StringVar(&o.ContentDir, "content-dir", "", "Override the content directory")
	fs.BoolVar(&o.Verbose, "v", false, "Enable debug logging")
}

type module struct {
	*folio.Module
	Config folio.Config
	Logger interfaces.Logger
}

func (m *module) container() *di.Container {
	return m.Module.Container()
}

func buildModule(opts moduleOptions) (*module, error) {
	cfg, err := folio.LoadConfig(opts.ConfigPath, folio.WithEnvFile(opts.EnvFile))
	if err != nil {
		return nil, err
	}
	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.ContentDir = dir
	}
	if opts.Verbose {
		cfg.Features.Logger = true
		cfg.Logging.Level = "debug"
	}

	m, err := folio.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialise folio module: %w", err)
	}
	return &module{
		Module: m,
		Config: cfg,
		Logger: logging.CommandsLogger(m.Container().LoggerProvider()),
	}, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
