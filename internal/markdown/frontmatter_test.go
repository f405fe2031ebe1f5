package markdown

import (
	"testing"
)

func TestParseFrontMatterRoundTrip(t *testing.T) {
	parsed := ParseFrontMatter([]byte("---\ntitle: \"T\"\ndate: 2024-01-01\n---\nHello"))
	if parsed.Degraded {
		t.Fatalf("unexpected degrade: %v", parsed.Err)
	}
	if len(parsed.Fields) != 2 {
		t.Fatalf("expected exactly two fields, got %#v", parsed.Fields)
	}
	if parsed.Fields["title"] != "T" {
		t.Fatalf("title mismatch: %#v", parsed.Fields["title"])
	}
	if parsed.Fields["date"] != "2024-01-01" {
		t.Fatalf("date should stay textual, got %#v", parsed.Fields["date"])
	}
	if string(parsed.Body) != "Hello" {
		t.Fatalf("body mismatch: %q", parsed.Body)
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	source := "# Heading\n\nNo metadata here.\n"
	parsed := ParseFrontMatter([]byte(source))
	if parsed.Degraded {
		t.Fatalf("missing block must not degrade: %v", parsed.Err)
	}
	if len(parsed.Fields) != 0 {
		t.Fatalf("expected no fields, got %#v", parsed.Fields)
	}
	if string(parsed.Body) != source {
		t.Fatalf("expected full source as body, got %q", parsed.Body)
	}
}

func TestParseFrontMatterRequiresBlockAtStart(t *testing.T) {
	for name, source := range map[string]string{
		"leading blank line":  "\n---\ntitle: Late\n---\nBody\n",
		"trailing spaces":     "--- \ntitle: Spaced\n---\nBody\n",
		"leading indentation": "  ---\ntitle: Indented\n---\nBody\n",
	} {
		parsed := ParseFrontMatter([]byte(source))
		if parsed.Degraded || len(parsed.Fields) != 0 {
			t.Fatalf("%s: expected no block, got %#v", name, parsed)
		}
		if string(parsed.Body) != source {
			t.Fatalf("%s: expected full source as body, got %q", name, parsed.Body)
		}
	}

	parsed := ParseFrontMatter([]byte("---\r\ntitle: Windows\r\n---\r\nBody"))
	if value, _ := parsed.Fields.String("title"); value != "Windows" {
		t.Fatalf("expected CRLF block to parse, got %#v", parsed.Fields)
	}
}

func TestParseFrontMatterMalformedDegrades(t *testing.T) {
	source := "---\ntitle: [unterminated\n---\nBody"
	parsed := ParseFrontMatter([]byte(source))
	if !parsed.Degraded || parsed.Err == nil {
		t.Fatalf("expected degraded parse, got %#v", parsed)
	}
	if len(parsed.Fields) != 0 {
		t.Fatalf("expected no fields, got %#v", parsed.Fields)
	}
	if string(parsed.Body) != source {
		t.Fatalf("expected full source as body, got %q", parsed.Body)
	}
}

func TestParseFrontMatterStringifiesScalars(t *testing.T) {
	parsed := ParseFrontMatter([]byte("---\norder: 3\ndraft: true\nrating: 4.5\nempty:\ntags:\n  - go\n  - web\n---\n"))
	cases := map[string]string{
		"order":  "3",
		"draft":  "true",
		"rating": "4.5",
		"empty":  "",
	}
	for key, want := range cases {
		if got := parsed.Fields[key]; got != want {
			t.Fatalf("%s: expected %q, got %#v", key, want, got)
		}
	}
	tags, ok := parsed.Fields["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "go" {
		t.Fatalf("expected tag list to be preserved, got %#v", parsed.Fields["tags"])
	}
}
