package content

import "strings"

// tag identifies section of the tagged input.
type tag string

const (
	tagNone       tag = ""
	tagHeading    tag = "HEADING"
	tagSubheading tag = "SUBHEADING"
	tagBody       tag = "BODY"
	tagBullets    tag = "BULLETS"
	tagMedia      tag = "MEDIA"
	tagQuote      tag = "QUOTE"
	tagName       tag = "NAME"
)

// tagAliases maps every recognized tag line (upper case) to its canonical tag.
var tagAliases = map[string]tag{
	"HEADING":    tagHeading,
	"SUBHEADING": tagSubheading,
	"BODY":       tagBody,
	"BULLETS":    tagBullets,
	"BULLET":     tagBullets,
	"MEDIA":      tagMedia,
	"QUOTE":      tagQuote,
	"NAME":       tagName,
}

// sidebar reports whether segments with this tag belong to grey box.
func (t tag) sidebar() bool {
	return t == tagMedia || t == tagQuote || t == tagName
}

// segment is a piece of tagged input, it never leaves this package.
type segment struct {
	tag  tag
	text string
}

// scanner is a state of the tokenizer fold. With tag set to tagNone scanner
// skips lines (nothing seen yet), otherwise it accumulates lines for the
// current tag until boundary (next tag line or end of input) emits them.
// Buffer is shared by all states derived from the same tag line, so only the
// latest one should be stepped.
type scanner struct {
	tag tag
	buf *strings.Builder
}

func lookupTag(line string) (tag, bool) {
	t, ok := tagAliases[strings.ToUpper(line)]
	return t, ok
}

// step consumes single trimmed line and returns next state and segment
// emitted on boundary, if any.
func (s scanner) step(line string) (scanner, *segment) {
	if t, ok := lookupTag(line); ok {
		return scanner{tag: t}, s.flush()
	}
	if s.tag == tagNone {
		return s, nil
	}
	if s.buf == nil {
		s.buf = &strings.Builder{}
	}
	if s.buf.Len() > 0 {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(line)
	return s, nil
}

// flush returns accumulated segment unless it is empty.
func (s scanner) flush() *segment {
	if s.tag == tagNone || s.buf == nil {
		return nil
	}
	text := strings.TrimSpace(s.buf.String())
	if text == "" {
		return nil
	}
	return &segment{tag: s.tag, text: text}
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return strings.Split(raw, "\n")
}

// tokenize scans raw tagged text and returns segments in encounter order.
// Lines before the first recognized tag are discarded.
func tokenize(raw string) []segment {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var (
		out   []segment
		state scanner
	)
	for _, line := range splitLines(raw) {
		var seg *segment
		if state, seg = state.step(strings.TrimSpace(line)); seg != nil {
			out = append(out, *seg)
		}
	}
	if seg := state.flush(); seg != nil {
		out = append(out, *seg)
	}
	return out
}
