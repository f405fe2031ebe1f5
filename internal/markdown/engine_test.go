package markdown

import (
	"bytes"
	"strings"
	"testing"
)

func TestConvertBasicMarkdown(t *testing.T) {
	html, err := Convert([]byte("# Heading\n\nHello **world**"), Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	got := string(html)
	if !strings.Contains(got, `<h1 id="heading">Heading</h1>`) {
		t.Fatalf("expected heading with id, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected strong text, got %q", got)
	}
}

func TestConvertHardWraps(t *testing.T) {
	html, err := Convert([]byte("line one\nline two"), Options{HardWraps: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps, got %q", html)
	}
}

func TestConvertHighlightsFencedCode(t *testing.T) {
	source := "```go\nfunc main() {}\n```\n"
	first, err := Convert([]byte(source), Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	got := string(first)
	if !strings.Contains(got, `class="chroma"`) {
		t.Fatalf("expected chroma wrapper, got %q", got)
	}
	if !strings.Contains(got, `<span class="kd">func</span>`) {
		t.Fatalf("expected keyword token class, got %q", got)
	}

	second, err := Convert([]byte(source), Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected identical output for identical input")
	}
}

func TestConvertSanitizeStripsScripts(t *testing.T) {
	html, err := Convert([]byte("Hi <script>alert(1)</script>\n\n```go\nvar x = 1\n```\n"), Options{Sanitize: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	got := string(html)
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected script to be removed, got %q", got)
	}
	if !strings.Contains(got, `class="chroma"`) {
		t.Fatalf("expected highlight classes to survive sanitising, got %q", got)
	}
}

func TestConvertSafeModeOmitsRawHTML(t *testing.T) {
	html, err := Convert([]byte("<div>raw</div>\n"), Options{SafeMode: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if strings.Contains(string(html), "<div>raw</div>") {
		t.Fatalf("expected raw html to be omitted, got %q", html)
	}
}

func TestWriteHighlightCSS(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHighlightCSS(&buf, ""); err != nil {
		t.Fatalf("WriteHighlightCSS: %v", err)
	}
	if !strings.Contains(buf.String(), ".chroma") {
		t.Fatalf("expected chroma selectors, got %q", buf.String())
	}
}

func TestKnownExtension(t *testing.T) {
	if !KnownExtension(" GFM ") {
		t.Fatal("expected gfm to be known")
	}
	if KnownExtension("mermaid") {
		t.Fatal("expected mermaid to be unknown")
	}
}
