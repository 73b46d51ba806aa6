// Package css prepares user supplied stylesheets for inlining into produced
// documents. Documents must be self contained, so the only external
// references allowed are webfont stylesheets.
package css

import (
	"bytes"
	"errors"
	"io"
	"net/url"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// DefaultFontHosts lists webfont providers whose stylesheets may be linked.
var DefaultFontHosts = []string{"fonts.googleapis.com", "fonts.bunny.net", "use.typekit.net"}

// Stylesheet is result of sanitizing.
type Stylesheet struct {
	// CSS is re-serialized stylesheet without external imports.
	CSS string
	// FontLinks are webfont stylesheets imported by the original, to be
	// linked from document head.
	FontLinks []string
	Warnings  []string
}

// Sanitizer re-serializes stylesheets dropping everything that would make
// document depend on external resources.
type Sanitizer struct {
	log       *zap.Logger
	fontHosts []string
}

// NewSanitizer creates sanitizer, when fontHosts is empty DefaultFontHosts
// are used.
func NewSanitizer(log *zap.Logger, fontHosts ...string) *Sanitizer {
	if log == nil {
		log = zap.NewNop()
	}
	if len(fontHosts) == 0 {
		fontHosts = DefaultFontHosts
	}
	return &Sanitizer{log: log.Named("css"), fontHosts: fontHosts}
}

// IsFontLink reports whether link points to allowed webfont provider.
func (s *Sanitizer) IsFontLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Scheme != "https" {
		return false
	}
	for _, h := range s.fontHosts {
		if strings.EqualFold(u.Host, h) {
			return true
		}
	}
	return false
}

// Sanitize parses CSS text and writes it back keeping rules, at-rules and
// declarations. @import of webfont stylesheets becomes font link, any other
// @import is dropped with a warning. The optional source parameter
// identifies what's being parsed (for debug logging).
func (s *Sanitizer) Sanitize(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}
	if len(source) > 0 && source[0] != "" {
		s.log.Debug("Sanitizing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	var (
		out    strings.Builder
		depth  int
		parser = css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				s.log.Debug("CSS parse error", zap.Error(err))
				sheet.Warnings = append(sheet.Warnings, err.Error())
			}
			// parsing stops on first error, keep output well formed
			for ; depth > 0; depth-- {
				out.WriteString("}\n")
			}
			sheet.CSS = strings.TrimSpace(out.String())
			return sheet

		case css.AtRuleGrammar:
			if strings.EqualFold(string(data), "@import") {
				link := extractImportURL(parser.Values())
				if s.IsFontLink(link) {
					sheet.FontLinks = append(sheet.FontLinks, link)
				} else {
					sheet.Warnings = append(sheet.Warnings, "external import dropped: "+link)
					s.log.Debug("Dropping @import", zap.String("url", link))
				}
				continue
			}
			out.Write(data)
			writeValues(&out, parser.Values(), true)
			out.WriteString(";\n")

		case css.BeginAtRuleGrammar:
			out.Write(data)
			writeValues(&out, parser.Values(), true)
			out.WriteString(" {\n")
			depth++

		case css.BeginRulesetGrammar:
			out.Write(data)
			writeValues(&out, parser.Values(), false)
			out.WriteString(" {\n")
			depth++

		case css.QualifiedRuleGrammar:
			out.Write(data)
			writeValues(&out, parser.Values(), false)
			out.WriteString(", ")

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			out.WriteString("  ")
			out.Write(data)
			out.WriteString(": ")
			writeValues(&out, parser.Values(), false)
			out.WriteString(";\n")

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if depth > 0 {
				out.WriteString("}\n")
				depth--
			}
		}
	}
}

// writeValues writes tokens collapsing whitespace runs into single space.
func writeValues(out *strings.Builder, tokens []css.Token, leadingSpace bool) {
	pending := leadingSpace
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			pending = true
			continue
		}
		if pending {
			out.WriteByte(' ')
			pending = false
		}
		out.Write(t.Data)
	}
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := strings.TrimSuffix(strings.TrimPrefix(string(t.Data), "url("), ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
