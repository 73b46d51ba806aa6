// Package text formats free text for rendering: paragraph splitting, list
// items and minimal inline emphasis.
package text

import (
	"html"
	"regexp"
	"strings"
)

var (
	reStrong   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reEmphasis = regexp.MustCompile(`\*(.+?)\*`)
)

// Emphasize escapes text for HTML and converts **bold** into <strong> and
// then *italic* into <em>. Markers do not nest.
func Emphasize(s string) string {
	s = html.EscapeString(s)
	s = reStrong.ReplaceAllString(s, "<strong>$1</strong>")
	return reEmphasis.ReplaceAllString(s, "<em>$1</em>")
}

// ToParagraphs splits text on blank lines, joins lines of every paragraph
// with a single space and drops empty paragraphs. Result is HTML ready:
// escaped, with inline emphasis applied.
func ToParagraphs(s string) []string {
	var (
		paragraphs []string
		buffer     []string
	)
	flush := func() {
		if len(buffer) == 0 {
			return
		}
		if p := strings.TrimSpace(strings.Join(buffer, " ")); p != "" {
			paragraphs = append(paragraphs, Emphasize(p))
		}
		buffer = buffer[:0]
	}

	for line := range strings.Lines(s) {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		buffer = append(buffer, line)
	}
	flush()
	return paragraphs
}

// listMarkers are stripped from the start of list items.
var listMarkers = []string{"- ", "* ", "• "}

// ToListItems returns one HTML ready item per non blank line. Leading list
// marker is dropped.
func ToListItems(s string) []string {
	var items []string
	for line := range strings.Lines(s) {
		line = strings.TrimSpace(line)
		for _, m := range listMarkers {
			if strings.HasPrefix(line, m) {
				line = strings.TrimSpace(line[len(m):])
				break
			}
		}
		if line != "" {
			items = append(items, Emphasize(line))
		}
	}
	return items
}
