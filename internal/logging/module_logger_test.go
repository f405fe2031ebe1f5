package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "folio.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, renderModule)

	if len(provider.requested) != 1 || provider.requested[0] != renderModule {
		t.Fatalf("expected module %s, got %v", renderModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != renderModule {
		t.Fatalf("expected module field %s, got %v", renderModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedModuleLoggers(t *testing.T) {
	cases := []struct {
		name   string
		build  func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{"content", ContentLogger, contentModule},
		{"storage", StorageLogger, storageModule},
		{"quiz", QuizLogger, quizModule},
		{"commands", CommandsLogger, commandsModule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = tc.build(provider)
			if len(provider.requested) == 0 || provider.requested[0] != tc.module {
				t.Fatalf("expected %s module request, got %v", tc.module, provider.requested)
			}
		})
	}
}

func TestWithDocumentContextSkipsBlankValues(t *testing.T) {
	rec := &recordingLogger{}

	_ = WithDocumentContext(rec, "posts", "  ", "hello.mdx")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	got := rec.fields[0]
	if got[fieldCollection] != "posts" || got[fieldEntry] != "hello.mdx" {
		t.Fatalf("unexpected fields %v", got)
	}
	if _, ok := got[fieldIdentifier]; ok {
		t.Fatalf("expected blank identifier to be skipped, got %v", got)
	}
}
