package report

import (
	"fmt"
	"strings"

	"evostudio/content/text"
	"evostudio/media"
)

// MaxBonusElements is the number of columns bonus section could have.
const MaxBonusElements = 3

type BonusType string

const (
	BonusBody  BonusType = "body"
	BonusMedia BonusType = "media"
	BonusQuote BonusType = "quote"
)

// BonusElement is one cell of supplementary row rendered after main
// content. Content is text for body and quote, link or iframe snippet for
// media. Name is quote attribution.
type BonusElement struct {
	Type     BonusType `json:"type" yaml:"type"`
	Content  string    `json:"content" yaml:"content"`
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Portrait bool      `json:"portrait,omitempty" yaml:"portrait,omitempty"`
}

// IsEmpty reports whether element would render nothing.
func (e *BonusElement) IsEmpty() bool {
	switch e.Type {
	case BonusBody:
		return len(text.ToParagraphs(e.Content)) == 0
	case BonusMedia:
		return media.Classify(e.Content, e.Portrait) == nil
	case BonusQuote:
		return strings.TrimSpace(e.Content) == "" && strings.TrimSpace(e.Name) == ""
	}
	return false
}

// normalizeBonus drops empty elements and checks what is left.
func normalizeBonus(elems []BonusElement) ([]BonusElement, error) {
	verr := &ValidationError{}
	out := make([]BonusElement, 0, len(elems))
	for i, e := range elems {
		switch e.Type {
		case BonusBody, BonusMedia, BonusQuote:
		default:
			verr.add(fmt.Sprintf("bonus[%d].type", i), fmt.Sprintf("unknown bonus element type %q", e.Type))
			continue
		}
		if !e.IsEmpty() {
			out = append(out, e)
		}
	}
	if len(out) > MaxBonusElements {
		verr.add("bonus", fmt.Sprintf("at most %d bonus elements allowed, got %d", MaxBonusElements, len(out)))
	}
	if verr.failed() {
		return nil, verr
	}
	return out, nil
}

// gridColumns returns grid-template-columns value for n equal columns.
func gridColumns(n int) string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = "1fr"
	}
	return strings.Join(cols, " ")
}

func writeBonus(w *strings.Builder, elems []BonusElement) {
	if len(elems) == 0 {
		return
	}
	fmt.Fprintf(w, "<section class=\"bonus-section\" style=\"grid-template-columns: %s\">\n", gridColumns(len(elems)))
	for _, e := range elems {
		fmt.Fprintf(w, "<div class=\"bonus-item bonus-%s\">\n", e.Type)
		switch e.Type {
		case BonusBody:
			writeParagraphs(w, e.Content)
		case BonusMedia:
			if m := media.Classify(e.Content, e.Portrait); m != nil {
				w.WriteString(m.HTML(true))
				w.WriteString("\n")
			}
		case BonusQuote:
			writeQuotation(w, e.Content, e.Name)
		}
		w.WriteString("</div>\n")
	}
	w.WriteString("</section>\n")
}
