package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-folio/internal/components/parser"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/quiz"
)

const quizComponent = "Quiz"

func runQuiz(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("folio quiz", flag.ContinueOnError)
	var opts moduleOptions
	opts.register(fs)
	collection := fs.String("collection", "posts", "Collection holding the document")
	id := fs.String("id", "", "Document identifier")
	index := fs.Int("index", 0, "Which Quiz in the document to play (0-based)")
	file := fs.String("file", "", "Play a standalone YAML quiz definition instead of a document")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		q                *quiz.Quiz
		showExplanations = true
		sessionLogger    = logging.NoOp()
	)
	switch {
	case *file != "":
		data, err := os.ReadFile(*file)
		if err != nil {
			return err
		}
		if q, err = quiz.Parse(data); err != nil {
			return err
		}
	case *id != "":
		m, err := moduleBuilder(opts)
		if err != nil {
			return err
		}
		defer m.Close()
		showExplanations = m.Config.Quiz.ShowExplanations
		sessionLogger = logging.QuizLogger(m.container().LoggerProvider())

		doc, ok, err := m.Get(ctx, *collection, *id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("quiz: %s/%s not found", *collection, *id)
		}
		if q, err = quizFromBody(string(doc.Body), *index); err != nil {
			return err
		}
	default:
		return fmt.Errorf("quiz: -id or -file is required")
	}

	session := quiz.NewSession(q, quiz.WithSessionLogger(sessionLogger))
	program := tea.NewProgram(newQuizModel(session, showExplanations),
		tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return err
	}
	if model, ok := final.(quizModel); ok && model.session.State().Completed() {
		result := model.session.Result()
		fmt.Fprintf(out, "score: %d/%d\n", result.Score, result.Total)
	}
	return nil
}

// quizFromBody parses the index-th Quiz component found in body.
func quizFromBody(body string, index int) (*quiz.Quiz, error) {
	_, found, err := parser.NewMarkupParser().Extract(body, func(name string) bool {
		return name == quizComponent
	})
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(found) {
		return nil, fmt.Errorf("quiz: document has %d quiz components, index %d requested", len(found), index)
	}
	component := found[index]
	return quiz.Parse([]byte(component.Inner), quiz.WithTitle(component.Attributes["title"]))
}
