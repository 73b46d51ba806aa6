package report

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"evostudio/content"
	"evostudio/content/text"
	"evostudio/media"
)

// writeBlock renders single block. Every kind must be handled here, unknown
// kind is an error rather than silently dropped content.
func writeBlock(w *strings.Builder, b *content.Block) error {
	switch b.Kind {
	case content.KindHeading:
		writeHeading(w, "h1", "report-heading", b.Text)
	case content.KindSubheading:
		writeHeading(w, "h2", "report-subheading", b.Text)
	case content.KindBody:
		writeParagraphs(w, b.Text)
	case content.KindBullets:
		writeList(w, b.Text)
	case content.KindGreyBox:
		writeGreyBox(w, b.GreyBox)
	default:
		return fmt.Errorf("unable to render block %q: unknown kind %q", b.ID, b.Kind)
	}
	return nil
}

func writeHeading(w *strings.Builder, tag, class, s string) {
	if s = strings.TrimSpace(s); s == "" {
		return
	}
	fmt.Fprintf(w, "<%s class=\"%s\">%s</%s>\n", tag, class, html.EscapeString(s), tag)
}

func writeParagraphs(w *strings.Builder, s string) {
	for _, p := range text.ToParagraphs(s) {
		w.WriteString("<p>")
		w.WriteString(p)
		w.WriteString("</p>\n")
	}
}

func writeList(w *strings.Builder, s string) {
	items := text.ToListItems(s)
	if len(items) == 0 {
		return
	}
	w.WriteString("<ul class=\"report-list\">\n")
	for _, item := range items {
		w.WriteString("<li>")
		w.WriteString(item)
		w.WriteString("</li>\n")
	}
	w.WriteString("</ul>\n")
}

// writeGreyBox renders media first, then quotation and attribution. Nothing
// is written for empty box.
func writeGreyBox(w *strings.Builder, g *content.GreyBox) {
	if g.IsEmpty() {
		return
	}
	var inner strings.Builder
	if m := media.Classify(g.Media, g.MediaPortrait); m != nil {
		inner.WriteString(m.HTML(false))
		inner.WriteString("\n")
	}
	writeQuotation(&inner, g.Quote, g.Name)
	if inner.Len() == 0 {
		// unrecognized media only
		return
	}
	w.WriteString("<aside class=\"grey-box quote-sidebar\">\n")
	w.WriteString(inner.String())
	w.WriteString("</aside>\n")
}

func writeQuotation(w *strings.Builder, quote, name string) {
	if paragraphs := text.ToParagraphs(quote); len(paragraphs) > 0 {
		w.WriteString("<blockquote class=\"quote-text\">\n")
		for _, p := range paragraphs {
			w.WriteString("<p>")
			w.WriteString(p)
			w.WriteString("</p>\n")
		}
		w.WriteString("</blockquote>\n")
	}
	if name = strings.TrimSpace(name); name != "" {
		fmt.Fprintf(w, "<p class=\"quote-name\">%s</p>\n", html.EscapeString(name))
	}
}
