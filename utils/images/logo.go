// Package images turns brand logo files into markup which could be inlined
// into self contained documents.
package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/h2non/filetype"
)

// LogoClass is set on produced logo element.
const LogoClass = "brand-logo"

var ErrUnsupportedLogo = errors.New("unsupported logo format")

// LoadLogo reads logo file and returns its inline markup.
func LoadLogo(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read logo: %w", err)
	}
	return LogoMarkup(data)
}

// LogoMarkup returns inline markup for logo image. SVG documents are cleaned
// and inlined as is, raster images supported by browsers become data URI.
func LogoMarkup(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrUnsupportedLogo
	}
	if looksLikeSVG(data) {
		return inlineSVG(data)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return "", ErrUnsupportedLogo
	}
	switch kind.Extension {
	case "jpg", "png", "gif", "webp":
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLogo, kind.MIME.Value)
	}
	return fmt.Sprintf(`<img class="%s" src="data:%s;base64,%s" alt="">`,
		LogoClass, kind.MIME.Value, base64.StdEncoding.EncodeToString(data)), nil
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return strings.Contains(strings.ToLower(string(head)), "<svg")
}

// inlineSVG drops prolog, comments, scripts and event handlers and returns
// serialized svg element.
func inlineSVG(data []byte) (string, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{Permissive: true}
	if err := doc.ReadFromBytes(data); err != nil {
		return "", fmt.Errorf("unable to parse svg: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return "", fmt.Errorf("%w: no svg root element", ErrUnsupportedLogo)
	}

	svg := root.Copy()
	clean(svg)
	svg.CreateAttr("class", strings.TrimSpace(svg.SelectAttrValue("class", "")+" "+LogoClass))

	out := etree.NewDocument()
	out.SetRoot(svg)
	s, err := out.WriteToString()
	if err != nil {
		return "", fmt.Errorf("unable to serialize svg: %w", err)
	}
	return strings.TrimSpace(s), nil
}

func clean(e *etree.Element) {
	for _, tok := range append([]etree.Token(nil), e.Child...) {
		switch t := tok.(type) {
		case *etree.Comment, *etree.ProcInst, *etree.Directive:
			e.RemoveChild(t)
		case *etree.Element:
			if strings.EqualFold(t.Tag, "script") {
				e.RemoveChild(t)
				continue
			}
			clean(t)
		}
	}
	for _, a := range append([]etree.Attr(nil), e.Attr...) {
		if strings.HasPrefix(strings.ToLower(a.Key), "on") {
			e.RemoveAttr(a.FullKey())
		}
	}
}
