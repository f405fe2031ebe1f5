package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-folio/internal/quiz"
	"github.com/goliatone/go-folio/pkg/testsupport"
)

const quizPost = `---
title: Quiz time
publicationDate: 2024-04-01
---
Warm up first.

<Quiz title="Basics">
- question: What is 2 + 2?
  options: ["3", "4"]
  answer: 1
- question: Capital of France?
  options: [Paris, Rome]
  answer: 0
  explanation: Paris it is.
</Quiz>
`

func writeContent(t *testing.T) string {
	return testsupport.WriteContentTree(t, map[string]string{
		"posts/quiz.mdx":    quizPost,
		"posts/hello.md":    "---\ntitle: Hello\npublicationDate: 2024-01-01\n---\nHi there.\n",
		"projects/site.mdx": "---\ntitle: Site\n---\n<Callout type=\"warning\">Under construction</Callout>\n",
	})
}

func TestRunRequiresCommand(t *testing.T) {
	if err := run(context.Background(), nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected usage error")
	}
	if err := run(context.Background(), []string{"publish"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected unknown command error")
	}
}

func TestRunList(t *testing.T) {
	dir := writeContent(t)
	var out bytes.Buffer
	if err := run(context.Background(), []string{"list", "-content-dir", dir}, &out); err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", out.String())
	}
	if !strings.HasPrefix(lines[1], "quiz") || !strings.HasPrefix(lines[2], "hello") {
		t.Fatalf("expected newest first, got %q", out.String())
	}

	out.Reset()
	if err := run(context.Background(), []string{"list", "-content-dir", dir, "-limit", "1", "-json"}, &out); err != nil {
		t.Fatalf("list json: %v", err)
	}
	if !strings.Contains(out.String(), `"identifier": "quiz"`) || strings.Contains(out.String(), `"hello"`) {
		t.Fatalf("unexpected json listing: %s", out.String())
	}

	out.Reset()
	if err := run(context.Background(), []string{"list", "-content-dir", dir, "-ids"}, &out); err != nil {
		t.Fatalf("list ids: %v", err)
	}
	if out.String() != "hello\nquiz\n" {
		t.Fatalf("expected identifiers in store order, got %q", out.String())
	}
}

func TestRunShow(t *testing.T) {
	dir := writeContent(t)
	var out bytes.Buffer
	err := run(context.Background(), []string{"show", "-content-dir", dir, "-collection", "projects", "-id", "site"}, &out)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out.String(), "folio-callout--warning") || !strings.Contains(out.String(), `"title": "Site"`) {
		t.Fatalf("unexpected show output: %s", out.String())
	}

	if err := run(context.Background(), []string{"show", "-content-dir", dir, "-id", "nope"}, &out); err == nil {
		t.Fatal("expected not found error")
	}
	if err := run(context.Background(), []string{"show", "-content-dir", dir}, &out); err == nil {
		t.Fatal("expected missing id error")
	}
}

func TestRunExport(t *testing.T) {
	dir := writeContent(t)
	dest := t.TempDir()
	var out bytes.Buffer
	if err := run(context.Background(), []string{"export", "-content-dir", dir, "-out", dest}, &out); err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, path := range []string{"posts/quiz.html", "posts/hello.html", "posts/index.json", "projects/site.html", "projects/highlight.css"} {
		if _, err := os.Stat(filepath.Join(dest, filepath.FromSlash(path))); err != nil {
			t.Fatalf("expected %s: %v", path, err)
		}
	}
	if !strings.Contains(out.String(), "posts: 2 pages written") {
		t.Fatalf("unexpected export output: %s", out.String())
	}
}

func TestRunSyncRequiresSQLProvider(t *testing.T) {
	dir := writeContent(t)
	if err := run(context.Background(), []string{"sync", "-content-dir", dir}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for filesystem provider")
	}
}

func TestQuizFromBody(t *testing.T) {
	q, err := quizFromBody(quizPost, 0)
	if err != nil {
		t.Fatalf("quizFromBody: %v", err)
	}
	if q.Title() != "Basics" || q.Len() != 2 {
		t.Fatalf("unexpected quiz: %q with %d questions", q.Title(), q.Len())
	}
	if _, err := quizFromBody(quizPost, 1); err == nil {
		t.Fatal("expected index error")
	}
	if _, err := quizFromBody("<Quiz>\n- question: x\n</Quiz>", 0); err == nil {
		t.Fatal("expected invalid quiz error")
	}
}

func TestQuizFromBodyNestedAndIndented(t *testing.T) {
	body := "<Collapsible title=\"Practice\">\n  <Quiz title=\"Nested\">\n    - question: Two plus two?\n      options: [\"3\", \"4\"]\n      answer: 1\n  </Quiz>\n</Collapsible>\n"
	q, err := quizFromBody(body, 0)
	if err != nil {
		t.Fatalf("quizFromBody: %v", err)
	}
	if q.Title() != "Nested" || q.Len() != 1 {
		t.Fatalf("unexpected quiz: %q with %d questions", q.Title(), q.Len())
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m quizModel, keys ...string) (quizModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(quizModel)
	}
	return m, cmd
}

func TestQuizModelPlaysThrough(t *testing.T) {
	q, err := quizFromBody(quizPost, 0)
	if err != nil {
		t.Fatalf("quizFromBody: %v", err)
	}
	m := newQuizModel(quiz.NewSession(q), true)

	m, _ = press(m, "down", "down", "enter")
	if answer, ok := m.session.State().Answer(0); !ok || answer != 1 {
		t.Fatalf("expected option 1 recorded, got %d %v", answer, ok)
	}
	if !strings.Contains(m.View(), "enter: next") {
		t.Fatalf("expected answered view, got %q", m.View())
	}

	m, _ = press(m, "enter", "j", "k", "enter")
	if !strings.Contains(m.View(), "Paris it is.") {
		t.Fatalf("expected explanation, got %q", m.View())
	}

	m, _ = press(m, "enter")
	state := m.session.State()
	if !state.Completed() || state.Score() != 2 {
		t.Fatalf("expected completed with score 2, got %v %d", state.Completed(), state.Score())
	}
	if !strings.Contains(m.View(), "You scored 2 out of 2") {
		t.Fatalf("unexpected final view: %q", m.View())
	}

	if _, cmd := press(m, "enter"); cmd == nil {
		t.Fatal("expected quit command after completion")
	}
}

func TestQuizModelQuit(t *testing.T) {
	q, err := quiz.New([]quiz.Question{{Text: "Only", Options: []string{"a"}, Correct: 0}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m, cmd := press(newQuizModel(quiz.NewSession(q), false), "q")
	if cmd == nil || !m.quitting || m.View() != "" {
		t.Fatal("expected quit")
	}
}

func TestWatchContentRebuildsOnChange(t *testing.T) {
	dir := writeContent(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rebuilt := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- watchContent(ctx, dir, 20*time.Millisecond, nil, func() error {
			rebuilt <- struct{}{}
			return nil
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-rebuilt:
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("watchContent: %v", err)
			}
			return
		case <-tick.C:
			body := []byte("updated " + time.Now().String())
			if err := os.WriteFile(filepath.Join(dir, "posts", "hello.md"), body, 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
		case <-deadline:
			t.Fatal("timed out waiting for rebuild")
		}
	}
}
