package quiz

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the authored form of a quiz, as written inside a Quiz
// component.
type Definition struct {
	Title     string     `yaml:"title,omitempty" json:"title,omitempty"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// ParseDefinition decodes a YAML quiz. Both a bare list of questions and a
// mapping with title/questions keys are accepted:
//
//	title: Arithmetic
//	questions:
//	  - question: What is 2 + 2?
//	    options: ["3", "4", "5"]
//	    answer: 1
//
// The block may be indented as a whole, as it is when nested inside other
// components; the indentation shared by every line is removed first.
func ParseDefinition(data []byte) (Definition, error) {
	trimmed := unindent(data)
	if len(bytes.TrimSpace(trimmed)) == 0 {
		return Definition{}, fmt.Errorf("%w: definition is empty", ErrInvalidQuizDefinition)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(trimmed, &node); err != nil {
		return Definition{}, fmt.Errorf("%w: %v", ErrInvalidQuizDefinition, err)
	}

	var def Definition
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&def.Questions); err != nil {
			return Definition{}, fmt.Errorf("%w: %v", ErrInvalidQuizDefinition, err)
		}
	case yaml.MappingNode:
		if err := root.Decode(&def); err != nil {
			return Definition{}, fmt.Errorf("%w: %v", ErrInvalidQuizDefinition, err)
		}
	default:
		return Definition{}, fmt.Errorf("%w: expected a list of questions", ErrInvalidQuizDefinition)
	}
	def.Title = strings.TrimSpace(def.Title)
	return def, nil
}

// Build validates the definition into a playable quiz.
func (d Definition) Build(opts ...Option) (*Quiz, error) {
	if d.Title != "" {
		opts = append([]Option{WithTitle(d.Title)}, opts...)
	}
	return New(d.Questions, opts...)
}

// Parse is ParseDefinition followed by Build.
func Parse(data []byte, opts ...Option) (*Quiz, error) {
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, err
	}
	return def.Build(opts...)
}

// unindent drops leading and trailing blank lines and strips the whitespace
// prefix common to every non-blank line.
func unindent(data []byte) []byte {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}

	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
