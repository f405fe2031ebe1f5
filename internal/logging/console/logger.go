// Package console writes logfmt-style entries to an io.Writer. It backs the
// "console" logging provider and is handy in tests.
package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Level is an entry severity.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "INFO"
}

// ParseLevel maps a config level name to a Level. Unknown names fall back to info.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Options configures NewProvider. Zero values write to stdout at info level.
type Options struct {
	Writer io.Writer
	Level  Level
	Clock  func() time.Time
}

type sink struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
	clock func() time.Time
}

// Provider hands out loggers sharing one writer.
type Provider struct {
	sink *sink
}

// NewProvider builds a console provider.
func NewProvider(opts Options) *Provider {
	s := &sink{w: opts.Writer, level: opts.Level, clock: opts.Clock}
	if s.w == nil {
		s.w = os.Stdout
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return &Provider{sink: s}
}

// GetLogger satisfies interfaces.LoggerProvider.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	return &logger{sink: p.sink, fields: map[string]any{"logger": name}}
}

type logger struct {
	sink   *sink
	fields map[string]any
	ctx    context.Context
}

var (
	_ interfaces.Logger       = (*logger)(nil)
	_ interfaces.FieldsLogger = (*logger)(nil)
)

func (l *logger) Trace(msg string, args ...any) { l.write(LevelTrace, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.write(LevelDebug, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.write(LevelInfo, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.write(LevelWarn, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.write(LevelError, msg, args) }
func (l *logger) Fatal(msg string, args ...any) { l.write(LevelFatal, msg, args) }

func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := maps.Clone(l.fields)
	maps.Copy(merged, fields)
	return &logger{sink: l.sink, fields: merged, ctx: l.ctx}
}

func (l *logger) WithContext(ctx context.Context) interfaces.Logger {
	return &logger{sink: l.sink, fields: l.fields, ctx: ctx}
}

func (l *logger) write(level Level, msg string, args []any) {
	if level < l.sink.level {
		return
	}
	fields := maps.Clone(l.fields)
	maps.Copy(fields, logging.ContextFields(l.ctx))
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg" + strconv.Itoa(i/2)
		}
		if i+1 < len(args) {
			fields[key] = args[i+1]
		} else {
			fields[key] = nil
		}
	}

	var b strings.Builder
	b.WriteString(l.sink.clock().UTC().Format(time.RFC3339))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(fields[key]))
	}
	b.WriteByte('\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = io.WriteString(l.sink.w, b.String())
}

func formatValue(value any) string {
	var s string
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		s = v
	case time.Time:
		s = v.UTC().Format(time.RFC3339)
	case error:
		s = v.Error()
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprint(v)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
