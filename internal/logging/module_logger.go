package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

const (
	rootModule     = "folio"
	contentModule  = "folio.content"
	renderModule   = "folio.render"
	storageModule  = "folio.storage"
	quizModule     = "folio.quiz"
	commandsModule = "folio.commands"
)

const (
	fieldCollection = "collection"
	fieldIdentifier = "identifier"
	fieldEntry      = "entry"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered per module.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ContentLogger returns the logger namespace reserved for the content repository.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// RenderLogger returns the logger namespace reserved for the rendering pipeline.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// StorageLogger returns the logger namespace reserved for document stores.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// QuizLogger returns the logger namespace reserved for quiz sessions.
func QuizLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, quizModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithDocumentContext enriches the logger with the collection, document
// identifier and store entry name. Empty values are ignored.
func WithDocumentContext(logger interfaces.Logger, collection, identifier, entry string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(collection); trimmed != "" {
		fields[fieldCollection] = trimmed
	}
	if trimmed := strings.TrimSpace(identifier); trimmed != "" {
		fields[fieldIdentifier] = trimmed
	}
	if trimmed := strings.TrimSpace(entry); trimmed != "" {
		fields[fieldEntry] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
