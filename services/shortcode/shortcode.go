// Package shortcode finds bracketed directives such as
// [external_db_query id="3" query="SELECT 1"] in page content.
package shortcode

import (
	"regexp"
	"strings"
)

// Shortcode is one directive occurrence.
type Shortcode struct {
	Tag     string
	Attrs   map[string]string
	Content string // enclosed body, "" for the self-closing form
	Start   int    // byte offsets of the whole occurrence in the source
	End     int
	Escaped bool // [[tag]] form, rendered literally without the outer brackets
}

var attrPattern = regexp.MustCompile(`([\w-]+)\s*=\s*"([^"]*)"(?:\s|$)|([\w-]+)\s*=\s*'([^']*)'(?:\s|$)|([\w-]+)\s*=\s*([^\s'"]+)(?:\s|$)|"([^"]*)"(?:\s|$)|'([^']*)'(?:\s|$)|(\S+)(?:\s|$)`)

// ParseAttrs parses name="value", name='value' and name=value pairs.
// Names are lower-cased; positional values are ignored.
func ParseAttrs(text string) map[string]string {
	attrs := map[string]string{}
	for _, m := range attrPattern.FindAllStringSubmatch(text, -1) {
		switch {
		case m[1] != "":
			attrs[strings.ToLower(m[1])] = m[2]
		case m[3] != "":
			attrs[strings.ToLower(m[3])] = m[4]
		case m[5] != "":
			attrs[strings.ToLower(m[5])] = m[6]
		}
	}
	return attrs
}

// Parse returns every occurrence of tag in content, in order.
func Parse(content, tag string) []Shortcode {
	var found []Shortcode
	open := "[" + tag
	closing := "[/" + tag + "]"

	pos := 0
	for {
		idx := strings.Index(content[pos:], open)
		if idx < 0 {
			return found
		}
		start := pos + idx
		after := start + len(open)

		// [tagger] is a different tag.
		if after < len(content) && !isTagBoundary(content[after]) {
			pos = after
			continue
		}

		end := strings.IndexByte(content[after:], ']')
		if end < 0 {
			return found
		}
		attrEnd := after + end
		attrText := content[after:attrEnd]
		sc := Shortcode{Tag: tag, Start: start, End: attrEnd + 1}

		selfClosing := strings.HasSuffix(strings.TrimSpace(attrText), "/")
		if selfClosing {
			attrText = strings.TrimSuffix(strings.TrimSpace(attrText), "/")
		} else if body, stop, ok := enclosed(content, attrEnd+1, open, closing); ok {
			sc.Content = body
			sc.End = stop
		}
		sc.Attrs = ParseAttrs(attrText)

		if start > 0 && content[start-1] == '[' && sc.End < len(content) && content[sc.End] == ']' {
			sc.Escaped = true
			sc.Start--
			sc.End++
		}

		found = append(found, sc)
		pos = sc.End
	}
}

// enclosed looks for the closing tag of a directive whose opening tag ends at from.
// The body may not contain another opening tag of the same name.
func enclosed(content string, from int, open, closing string) (string, int, bool) {
	rest := content[from:]
	closeIdx := strings.Index(rest, closing)
	if closeIdx < 0 {
		return "", 0, false
	}
	if nextOpen := strings.Index(rest, open); nextOpen >= 0 && nextOpen < closeIdx {
		return "", 0, false
	}
	return rest[:closeIdx], from + closeIdx + len(closing), true
}

func isTagBoundary(b byte) bool {
	switch b {
	case ']', '/', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// Expand replaces every occurrence of tag with render's output.
// Escaped occurrences are emitted literally without their outer brackets.
func Expand(content, tag string, render func(Shortcode) string) string {
	occurrences := Parse(content, tag)
	if len(occurrences) == 0 {
		return content
	}

	var b strings.Builder
	last := 0
	for _, sc := range occurrences {
		b.WriteString(content[last:sc.Start])
		if sc.Escaped {
			b.WriteString(content[sc.Start+1 : sc.End-1])
		} else {
			b.WriteString(render(sc))
		}
		last = sc.End
	}
	b.WriteString(content[last:])
	return b.String()
}
