package components

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-folio/internal/identity"
	"github.com/goliatone/go-folio/internal/quiz"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// BuiltInDefinitions returns the component catalogue shipped with go-folio.
func BuiltInDefinitions() []interfaces.ComponentDefinition {
	return []interfaces.ComponentDefinition{
		counterDefinition(),
		calloutDefinition("Alert"),
		calloutDefinition("Callout"),
		collapsibleDefinition(),
		quizDefinition(),
	}
}

var integerAttribute = map[string]any{"type": "string", "pattern": `^\s*-?[0-9]+\s*$`}

var booleanAttribute = map[string]any{"type": "string", "enum": []any{"true", "false", ""}}

func counterDefinition() interfaces.ComponentDefinition {
	return interfaces.ComponentDefinition{
		Name:        "Counter",
		Description: "Interactive counter with increment, decrement and reset controls",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"initial": integerAttribute,
				"step":    integerAttribute,
				"label":   map[string]any{"type": "string"},
			},
		},
		Handler: renderCounter,
	}
}

var counterTemplate = template.Must(template.New("Counter").Parse(
	`<div class="folio-counter" id="{{ .ID }}" data-component="Counter" data-initial="{{ .State.Initial }}" data-step="{{ .State.Step }}">
  <span class="folio-counter__label">{{ .Label }}</span>
  <button type="button" class="folio-counter__button" data-action="decrement" aria-label="Decrease">-</button>
  <output class="folio-counter__value" aria-live="polite">{{ .State.Value }}</output>
  <button type="button" class="folio-counter__button" data-action="increment" aria-label="Increase">+</button>
  <button type="button" class="folio-counter__button" data-action="reset">Reset</button>
</div>`))

func renderCounter(ctx interfaces.ComponentContext, attrs map[string]string, _ interfaces.ComponentChildren) (template.HTML, error) {
	initial, err := intAttribute(attrs, "initial", 0)
	if err != nil {
		return "", err
	}
	step, err := intAttribute(attrs, "step", 1)
	if err != nil {
		return "", err
	}
	return execute(counterTemplate, map[string]any{
		"ID":    ctx.ElementID,
		"State": NewCounterState(initial, step),
		"Label": stringAttribute(attrs, "label", "Count"),
	})
}

func calloutDefinition(name string) interfaces.ComponentDefinition {
	variants := make([]any, 0, len(Variants)+1)
	for _, variant := range Variants {
		variants = append(variants, string(variant))
	}
	variants = append(variants, "")

	return interfaces.ComponentDefinition{
		Name:        name,
		Description: "Highlighted note styled by severity (info, success, warning, error)",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type":  map[string]any{"type": "string", "enum": variants},
				"title": map[string]any{"type": "string"},
			},
		},
		Handler: renderCallout,
	}
}

var calloutTemplate = template.Must(template.New("Callout").Parse(
	`<aside class="folio-callout folio-callout--{{ .Variant }}" id="{{ .ID }}" role="{{ .Variant.Role }}" data-component="{{ .Name }}">
  {{- if .Title }}
  <p class="folio-callout__title">{{ .Title }}</p>
  {{- end }}
  <div class="folio-callout__body">{{ .Body }}</div>
</aside>`))

func renderCallout(ctx interfaces.ComponentContext, attrs map[string]string, children interfaces.ComponentChildren) (template.HTML, error) {
	variant, ok := ParseVariant(attrs["type"])
	if !ok {
		return "", fmt.Errorf("%w: unsupported callout type %q", ErrInvalidAttributes, attrs["type"])
	}
	return execute(calloutTemplate, map[string]any{
		"ID":      ctx.ElementID,
		"Name":    orDefault(ctx.Name, "Callout"),
		"Variant": variant,
		"Title":   stringAttribute(attrs, "title", ""),
		"Body":    children.HTML,
	})
}

func collapsibleDefinition() interfaces.ComponentDefinition {
	return interfaces.ComponentDefinition{
		Name:        "Collapsible",
		Description: "Section that expands and collapses on demand",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"open":  booleanAttribute,
			},
		},
		Handler: renderCollapsible,
	}
}

var collapsibleTemplate = template.Must(template.New("Collapsible").Parse(
	`<details class="folio-collapsible" id="{{ .ID }}" data-component="Collapsible"{{ if .Anchor }} data-anchor="{{ .Anchor }}"{{ end }}{{ if .State.Open }} open{{ end }}>
  <summary class="folio-collapsible__summary">{{ .Title }}</summary>
  <div class="folio-collapsible__body">{{ .Body }}</div>
</details>`))

func renderCollapsible(ctx interfaces.ComponentContext, attrs map[string]string, children interfaces.ComponentChildren) (template.HTML, error) {
	title := stringAttribute(attrs, "title", "Details")
	anchor, err := slug.Normalize(title)
	if err != nil {
		anchor = ""
	}
	return execute(collapsibleTemplate, map[string]any{
		"ID":     ctx.ElementID,
		"Title":  title,
		"Anchor": anchor,
		"State":  CollapsibleState{Open: boolAttribute(attrs, "open")},
		"Body":   children.HTML,
	})
}

func quizDefinition() interfaces.ComponentDefinition {
	return interfaces.ComponentDefinition{
		Name:        "Quiz",
		Description: "Multiple-choice quiz defined as YAML between the tags",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
			},
		},
		RawChildren: true,
		Handler:     renderQuiz,
	}
}

var quizTemplate = template.Must(template.New("Quiz").Parse(
	`<section class="folio-quiz" id="{{ .ID }}" data-component="Quiz" data-quiz-id="{{ .QuizID }}">
  {{- if .Title }}
  <h3 class="folio-quiz__title">{{ .Title }}</h3>
  {{- end }}
  <ol class="folio-quiz__questions">
  {{- range $qi, $q := .Questions }}
    <li class="folio-quiz__question" data-index="{{ $qi }}"{{ if $qi }} hidden{{ end }}>
      <p class="folio-quiz__prompt">{{ $q.Text }}</p>
      <ul class="folio-quiz__options">
      {{- range $oi, $option := $q.Options }}
        <li><button type="button" class="folio-quiz__option" data-option="{{ $oi }}">{{ $option }}</button></li>
      {{- end }}
      </ul>
    </li>
  {{- end }}
  </ol>
  <p class="folio-quiz__score" hidden>Score: <span data-score>0</span> / {{ len .Questions }}</p>
  <script type="application/json" class="folio-quiz__data">{{ .Questions }}</script>
</section>`))

func renderQuiz(ctx interfaces.ComponentContext, attrs map[string]string, children interfaces.ComponentChildren) (template.HTML, error) {
	q, err := quiz.Parse([]byte(children.Raw), quiz.WithTitle(attrs["title"]))
	if err != nil {
		return "", err
	}
	return execute(quizTemplate, map[string]any{
		"ID":        ctx.ElementID,
		"QuizID":    identity.QuizUUID(ctx.DocumentID, ctx.ElementID).String(),
		"Title":     q.Title(),
		"Questions": q.Questions(),
	})
}

func execute(tmpl *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("components: render %s: %w", tmpl.Name(), err)
	}
	return template.HTML(buf.String()), nil
}

func stringAttribute(attrs map[string]string, key, fallback string) string {
	return orDefault(attrs[key], fallback)
}

func orDefault(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}

func intAttribute(attrs map[string]string, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(attrs[key])
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidAttributes, key)
	}
	return value, nil
}

func boolAttribute(attrs map[string]string, key string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(attrs[key]))
	return err == nil && value
}
