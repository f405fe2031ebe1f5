package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Fields holds the raw key/value pairs of a frontmatter block. Scalars are
// stored as strings; lists and maps keep their decoded shape.
type Fields map[string]any

// String returns the textual value of key when it is a scalar.
func (f Fields) String(key string) (string, bool) {
	value, ok := f[key]
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// Parsed is the result of ParseFrontMatter.
type Parsed struct {
	Fields Fields
	Body   []byte
	// Degraded is set when a block was present but could not be decoded.
	// Fields is empty and Body holds the whole source in that case.
	Degraded bool
	Err      error
}

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// ParseFrontMatter splits source into its leading "---" block and body. It
// never fails: a missing block yields empty fields, and an undecodable block
// yields empty fields with the full source as body. The block counts only
// when the very first line is exactly "---".
func ParseFrontMatter(source []byte) Parsed {
	if !opensBlock(source) {
		return Parsed{Fields: Fields{}, Body: source}
	}

	var raw map[string]any

	body, err := frontmatter.Parse(bytes.NewReader(source), &raw, yamlFormat)
	if err != nil {
		return Parsed{
			Fields:   Fields{},
			Body:     source,
			Degraded: true,
			Err:      fmt.Errorf("parse frontmatter: %w", err),
		}
	}

	fields := make(Fields, len(raw))
	for key, value := range raw {
		fields[key] = normaliseValue(value)
	}
	return Parsed{Fields: fields, Body: body}
}

func opensBlock(source []byte) bool {
	return bytes.HasPrefix(source, []byte("---\n")) || bytes.HasPrefix(source, []byte("---\r\n"))
}

func normaliseValue(value any) any {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format(time.RFC3339)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normaliseValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normaliseValue(item)
		}
		return out
	default:
		return fmt.Sprint(v)
	}
}
