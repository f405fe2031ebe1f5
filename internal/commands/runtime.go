package commands

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// DefaultCommandTimeout bounds a command unless WithTimeout overrides it.
// Exporting a large collection with highlighting is the slowest path.
const DefaultCommandTimeout = 30 * time.Second

// boundContext returns a non-nil context limited by timeout when positive.
func boundContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// CommandLogger returns the commands logger tagged with the command group
// (site, sync, ...). A nil provider yields a no-op logger.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.TrimSpace(group)
	if group == "" {
		group = "default"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"command_group": group,
	})
}
