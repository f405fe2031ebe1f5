package markdown

import (
	"maps"
	"path"
	"strconv"
	"strings"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

var (
	titleKeys   = []string{"title"}
	summaryKeys = []string{"summary", "description"}
	authorKeys  = []string{"author"}
	dateKeys    = []string{"publicationDate", "publishedAt", "date"}
	heroKeys    = []string{"heroImage", "image"}
)

// Identifier derives a document identifier from its file name by removing the
// extension. No further sanitising is applied.
func Identifier(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Normalize maps parsed frontmatter onto interfaces.Metadata. Absent keys stay
// nil; every key is also copied verbatim into Metadata.Fields.
func Normalize(filename string, fields Fields) interfaces.Metadata {
	meta := interfaces.Metadata{
		Identifier: Identifier(filename),
		Fields:     make(map[string]any, len(fields)),
	}
	maps.Copy(meta.Fields, fields)

	meta.Title = firstString(fields, titleKeys)
	meta.Summary = firstString(fields, summaryKeys)
	meta.Author = firstString(fields, authorKeys)
	meta.PublicationDate = firstString(fields, dateKeys)
	meta.HeroImage = firstString(fields, heroKeys)
	meta.Tags = stringList(fields["tags"])
	meta.Draft = boolValue(fields["draft"])
	return meta
}

func firstString(fields Fields, keys []string) *string {
	for _, key := range keys {
		if value, ok := fields.String(key); ok {
			return &value
		}
	}
	return nil
}

func stringList(value any) []string {
	switch v := value.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}

func boolValue(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
