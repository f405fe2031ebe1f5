package folio_test

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/goliatone/go-folio"
	"github.com/goliatone/go-folio/internal/storage"
)

func newModule(t *testing.T) (*folio.Module, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	store.Put("posts", "launch.mdx", []byte("---\ntitle: Launch\npublicationDate: 2024-06-01\ntags: go, web\n---\nWe shipped.\n\n<Counter initial=\"2\" />\n"))
	store.Put("posts", "intro.md", []byte("---\ntitle: Intro\npublicationDate: 2023-02-01\n---\nHello.\n"))
	store.Put("posts", "notes.md", []byte("No frontmatter here.\n"))
	store.AddCollection("projects")

	cfg := folio.DefaultConfig()
	cfg.Storage.Provider = "memory"
	m, err := folio.New(cfg, folio.WithStore(store))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m, store
}

func TestModuleListAndGet(t *testing.T) {
	m, _ := newModule(t)
	ctx := context.Background()

	items, err := m.List(ctx, "posts", folio.ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := []string{}
	for _, item := range items {
		got = append(got, item.Identifier)
	}
	if strings.Join(got, ",") != "launch,intro,notes" {
		t.Fatalf("unexpected order: %v", got)
	}
	if len(items[0].Tags) != 2 {
		t.Fatalf("expected tags, got %v", items[0].Tags)
	}

	doc, ok, err := m.Get(ctx, "posts", "launch")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	html, err := m.RenderDocument(ctx, doc)
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	again, err := m.RenderDocument(ctx, doc)
	if err != nil {
		t.Fatalf("RenderDocument again: %v", err)
	}
	if html != again {
		t.Fatal("expected identical output across renders")
	}
	if !strings.Contains(string(html), "folio-counter") {
		t.Fatalf("expected counter markup, got %q", html)
	}

	if _, ok, err := m.Get(ctx, "posts", "missing"); err != nil || ok {
		t.Fatalf("expected not found, got ok=%v err=%v", ok, err)
	}
}

func TestModulePageUsesConfiguredPerPage(t *testing.T) {
	m, _ := newModule(t)
	page, err := m.Page(context.Background(), "posts", 1, 0)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.PerPage != 10 || page.Total != 3 || len(page.Items) != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestModuleCustomComponent(t *testing.T) {
	m, _ := newModule(t)
	err := m.RegisterComponent(folio.ComponentDefinition{
		Name: "Shout",
		Handler: func(_ folio.ComponentContext, attrs map[string]string, _ folio.ComponentChildren) (template.HTML, error) {
			return template.HTML("<strong>" + template.HTMLEscapeString(strings.ToUpper(attrs["text"])) + "</strong>"), nil
		},
	})
	if err != nil {
		t.Fatalf("RegisterComponent: %v", err)
	}

	html, err := m.Render(context.Background(), []byte(`Say <Shout text="hi" /> now`), folio.RenderOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "<strong>HI</strong>") {
		t.Fatalf("expected custom component output, got %q", html)
	}

	names := []string{}
	for _, def := range m.Components() {
		names = append(names, def.Name)
	}
	if !strings.Contains(strings.Join(names, ","), "Shout") {
		t.Fatalf("expected Shout in %v", names)
	}
}

func TestModuleReplaceComponent(t *testing.T) {
	m, _ := newModule(t)
	shout := func(schema map[string]any, prefix string) folio.ComponentDefinition {
		return folio.ComponentDefinition{
			Name:   "Shout",
			Schema: schema,
			Handler: func(_ folio.ComponentContext, attrs map[string]string, _ folio.ComponentChildren) (template.HTML, error) {
				return template.HTML(prefix + template.HTMLEscapeString(attrs["tone"])), nil
			},
		}
	}
	toneSchema := func(values ...any) map[string]any {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{"tone": map[string]any{"enum": values}},
		}
	}

	if err := m.RegisterComponent(shout(toneSchema("calm"), "v1:")); err != nil {
		t.Fatalf("RegisterComponent: %v", err)
	}
	if _, err := m.Render(context.Background(), []byte(`<Shout tone="loud" />`), folio.RenderOptions{}); !errors.Is(err, folio.ErrInvalidAttributes) {
		t.Fatalf("expected ErrInvalidAttributes, got %v", err)
	}

	m.RemoveComponent("Shout")
	html, err := m.Render(context.Background(), []byte("Say <Shout tone=\"loud\" /> now"), folio.RenderOptions{})
	if err != nil {
		t.Fatalf("Render after remove: %v", err)
	}
	if !strings.Contains(string(html), `<Shout tone="loud" />`) {
		t.Fatalf("expected removed component to pass through, got %q", html)
	}

	if err := m.RegisterComponent(shout(toneSchema("calm", "loud"), "v2:")); err != nil {
		t.Fatalf("RegisterComponent again: %v", err)
	}
	html, err = m.Render(context.Background(), []byte(`<Shout tone="loud" />`), folio.RenderOptions{})
	if err != nil {
		t.Fatalf("expected the replacement schema to apply, got %v", err)
	}
	if !strings.Contains(string(html), "v2:loud") {
		t.Fatalf("expected replacement handler output, got %q", html)
	}
}

func TestModuleStrictRejectsUnknownComponents(t *testing.T) {
	cfg := folio.DefaultConfig()
	cfg.Storage.Provider = "memory"
	cfg.Render.StrictComponents = true
	m, err := folio.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = m.Render(context.Background(), []byte("<Marquee>hi</Marquee>"), folio.RenderOptions{})
	if !errors.Is(err, folio.ErrUnknownComponent) {
		t.Fatalf("expected ErrUnknownComponent, got %v", err)
	}
}

func TestParseQuiz(t *testing.T) {
	q, err := folio.ParseQuiz([]byte("- question: Pick one\n  options: [a, b]\n  answer: 1\n"))
	if err != nil {
		t.Fatalf("ParseQuiz: %v", err)
	}
	state := q.Start()
	state, _ = state.Select(1)
	state, _ = state.Advance()
	if !state.Completed() || state.Score() != 1 {
		t.Fatalf("unexpected state: completed=%v score=%d", state.Completed(), state.Score())
	}

	if _, err := folio.ParseQuiz([]byte("- question: ''\n  options: []\n")); !errors.Is(err, folio.ErrInvalidQuizDefinition) {
		t.Fatalf("expected ErrInvalidQuizDefinition, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := folio.DefaultConfig()
	cfg.Storage.Provider = "ftp"
	if _, err := folio.New(cfg); !errors.Is(err, folio.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}
