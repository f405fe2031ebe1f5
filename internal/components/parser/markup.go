package parser

import (
	"errors"
	"fmt"
	"hash/fnv"
	"html"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

var (
	startTagPattern  = regexp.MustCompile(`<([A-Z][A-Za-z0-9]*)((?:\s+[A-Za-z_:][-A-Za-z0-9_:.]*(?:\s*=\s*(?:"[^"]*"|'[^']*'|\{[^}]*\}|[^\s"'=<>/{}]+))?)*)\s*(/?)>`)
	endTagPattern    = regexp.MustCompile(`</([A-Z][A-Za-z0-9]*)\s*>`)
	attributePattern = regexp.MustCompile(`([A-Za-z_:][-A-Za-z0-9_:.]*)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|\{([^}]*)\}|([^\s"'=<>/{}]+)))?`)
	fencePattern     = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// ErrUnexpectedClose reports a closing tag with no matching start tag.
var ErrUnexpectedClose = errors.New("unexpected closing component")

const (
	placeholderPrefix = "FOLIOCOMPONENT"
	placeholderSuffix = "PLACEHOLDER"
)

// Placeholder returns the marker Extract leaves in place of component i when
// the body does not already contain the marker text. It is plain alphanumeric
// text so it survives Markdown conversion and HTML sanitising untouched.
func Placeholder(i int) string {
	return placeholderPrefix + strconv.Itoa(i) + placeholderSuffix
}

// markerPrefix picks a placeholder prefix that does not occur in content.
// The salt derives from the content so repeated extractions agree.
func markerPrefix(content string) string {
	if !strings.Contains(content, placeholderPrefix) {
		return placeholderPrefix
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(content))
	for seed := uint64(h.Sum32()); ; seed++ {
		candidate := placeholderPrefix + strconv.FormatUint(seed, 36) + "Z"
		if !strings.Contains(content, candidate) {
			return candidate
		}
	}
}

// MarkupParser extracts JSX-like component tags (<Name attr="v">children</Name>
// and <Name attr="v" />) from Markdown. Tags inside fenced code blocks and
// inline code spans are ignored.
type MarkupParser struct{}

// NewMarkupParser creates a parser instance.
func NewMarkupParser() *MarkupParser {
	return &MarkupParser{}
}

// Parse returns the top-level components in content.
func (p *MarkupParser) Parse(content string, known func(string) bool) ([]interfaces.ParsedComponent, error) {
	_, components, err := p.Extract(content, known)
	return components, err
}

// Extract replaces each top-level invocation of a known component with a
// placeholder and returns the rewritten content with the invocations in order.
// Nested invocations stay inside Inner. A start tag without a matching close
// is treated as self-closing; a closing tag without a start tag is left in
// place as text.
func (p *MarkupParser) Extract(content string, known func(string) bool) (string, []interfaces.ParsedComponent, error) {
	if known == nil {
		known = func(string) bool { return true }
	}
	tags := scanTags(content, known)
	if len(tags) == 0 {
		return content, nil, nil
	}

	var (
		builder    strings.Builder
		components []interfaces.ParsedComponent
		position   int
		prefix     = markerPrefix(content)
	)

	for i := 0; i < len(tags); i++ {
		tag := tags[i]
		if tag.closing {
			continue
		}

		builder.WriteString(content[position:tag.start])
		component := interfaces.ParsedComponent{
			Name:        tag.name,
			Attributes:  parseAttributes(tag.attrs),
			SelfClosing: true,
		}
		position = tag.end

		if !tag.selfClosing {
			if closeIdx := matchingClose(tags, i); closeIdx >= 0 {
				closer := tags[closeIdx]
				component.Inner = content[tag.end:closer.start]
				component.SelfClosing = false
				position = closer.end
				i = closeIdx
			}
		}

		component.Placeholder = prefix + strconv.Itoa(len(components)) + placeholderSuffix
		builder.WriteString(component.Placeholder)
		components = append(components, component)
	}
	builder.WriteString(content[position:])

	return builder.String(), components, nil
}

// CheckClosers returns ErrUnexpectedClose for the first top-level closing tag
// of a known component that has no matching start tag.
func (p *MarkupParser) CheckClosers(content string, known func(string) bool) error {
	if known == nil {
		known = func(string) bool { return true }
	}
	tags := scanTags(content, known)
	for i := 0; i < len(tags); i++ {
		tag := tags[i]
		if tag.closing {
			return fmt.Errorf("%w %s at position %d", ErrUnexpectedClose, tag.name, tag.start)
		}
		if !tag.selfClosing {
			if closeIdx := matchingClose(tags, i); closeIdx >= 0 {
				i = closeIdx
			}
		}
	}
	return nil
}

type tagMatch struct {
	name        string
	attrs       string
	start       int
	end         int
	closing     bool
	selfClosing bool
}

// matchingClose finds the close tag balancing tags[open], counting nested
// tags of the same name. Returns -1 when there is none.
func matchingClose(tags []tagMatch, open int) int {
	name := tags[open].name
	depth := 0
	for j := open + 1; j < len(tags); j++ {
		tag := tags[j]
		if tag.name != name || tag.selfClosing {
			continue
		}
		if !tag.closing {
			depth++
			continue
		}
		if depth == 0 {
			return j
		}
		depth--
	}
	return -1
}

func scanTags(content string, known func(string) bool) []tagMatch {
	protected := protectedRanges(content)
	inProtected := func(pos int) bool {
		idx := sort.Search(len(protected), func(i int) bool { return protected[i][1] > pos })
		return idx < len(protected) && protected[idx][0] <= pos
	}

	var tags []tagMatch
	for _, loc := range startTagPattern.FindAllStringSubmatchIndex(content, -1) {
		name := content[loc[2]:loc[3]]
		if !known(name) || inProtected(loc[0]) {
			continue
		}
		tags = append(tags, tagMatch{
			name:        name,
			attrs:       content[loc[4]:loc[5]],
			start:       loc[0],
			end:         loc[1],
			selfClosing: loc[7] > loc[6],
		})
	}
	for _, loc := range endTagPattern.FindAllStringSubmatchIndex(content, -1) {
		name := content[loc[2]:loc[3]]
		if !known(name) || inProtected(loc[0]) {
			continue
		}
		tags = append(tags, tagMatch{
			name:    name,
			start:   loc[0],
			end:     loc[1],
			closing: true,
		})
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].start < tags[j].start })
	return tags
}

// protectedRanges returns sorted, non-overlapping [start, end) byte ranges
// covering fenced code blocks and inline code spans.
func protectedRanges(content string) [][2]int {
	var ranges [][2]int

	var (
		offset    int
		fenceOpen bool
		fenceMark string
		fenceFrom int
		textFrom  int
	)
	for offset < len(content) {
		lineEnd := strings.IndexByte(content[offset:], '\n')
		next := len(content)
		if lineEnd >= 0 {
			next = offset + lineEnd + 1
		}
		line := strings.TrimRight(content[offset:next], "\r\n")

		if match := fencePattern.FindStringSubmatch(line); match != nil {
			marker := match[1]
			switch {
			case !fenceOpen:
				ranges = append(ranges, inlineCodeRanges(content, textFrom, offset)...)
				fenceOpen, fenceMark, fenceFrom = true, marker, offset
			case marker[0] == fenceMark[0] && len(marker) >= len(fenceMark) && strings.TrimSpace(line[len(match[0]):]) == "":
				ranges = append(ranges, [2]int{fenceFrom, next})
				fenceOpen = false
				textFrom = next
			}
		}
		offset = next
	}

	if fenceOpen {
		ranges = append(ranges, [2]int{fenceFrom, len(content)})
	} else {
		ranges = append(ranges, inlineCodeRanges(content, textFrom, len(content))...)
	}
	return ranges
}

func inlineCodeRanges(content string, from, to int) [][2]int {
	var ranges [][2]int
	i := from
	for i < to {
		if content[i] != '`' {
			i++
			continue
		}
		runStart := i
		for i < to && content[i] == '`' {
			i++
		}
		width := i - runStart

		closeAt := -1
		for j := i; j < to; {
			if content[j] != '`' {
				j++
				continue
			}
			k := j
			for k < to && content[k] == '`' {
				k++
			}
			if k-j == width {
				closeAt = k
				break
			}
			j = k
		}
		if closeAt < 0 {
			continue
		}
		ranges = append(ranges, [2]int{runStart, closeAt})
		i = closeAt
	}
	return ranges
}

func parseAttributes(raw string) map[string]string {
	attrs := map[string]string{}
	for _, match := range attributePattern.FindAllStringSubmatchIndex(raw, -1) {
		key := raw[match[2]:match[3]]
		value := "true"
		switch {
		case match[4] >= 0:
			value = html.UnescapeString(raw[match[4]:match[5]])
		case match[6] >= 0:
			value = html.UnescapeString(raw[match[6]:match[7]])
		case match[8] >= 0:
			value = expressionValue(raw[match[8]:match[9]])
		case match[10] >= 0:
			value = raw[match[10]:match[11]]
		}
		attrs[key] = value
	}
	return attrs
}

// expressionValue unwraps brace values such as {3}, {true} or {"text"}.
func expressionValue(expr string) string {
	expr = strings.TrimSpace(expr)
	if len(expr) >= 2 {
		first, last := expr[0], expr[len(expr)-1]
		if (first == '"' || first == '\'' || first == '`') && last == first {
			return expr[1 : len(expr)-1]
		}
	}
	return expr
}

var _ interfaces.ComponentParser = (*MarkupParser)(nil)
