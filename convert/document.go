package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"evostudio/content"
	"evostudio/convert/report"
)

// document is a single decoded input ready for rendering.
type document struct {
	src  string
	kind sourceKind
	date time.Time

	// exactly one of page and fields is used, depending on kind
	page   report.Page
	fields *report.Fields
}

func (d *document) heading() string {
	if d.fields != nil {
		return d.fields.Heading
	}
	return d.page.Blocks.Heading()
}

func (d *document) category() string {
	if d.fields != nil {
		return d.fields.Category
	}
	return d.page.Category
}

func (d *document) blocks() content.Blocks {
	if d.fields != nil {
		return d.fields.Blocks()
	}
	return d.page.Blocks
}

func (d *document) render(r *report.Renderer) (string, error) {
	if d.fields != nil {
		return r.RenderFields(*d.fields)
	}
	return r.RenderPage(d.page)
}

// decodeDocument reads whole input and interprets it according to its kind.
// Category from configuration is used when input does not specify one.
func decodeDocument(r io.Reader, src string, kind sourceKind, category string, now time.Time, log *zap.Logger) (*document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read source: %w", err)
	}

	doc := &document{src: src, kind: kind, date: now}

	switch kind {
	case sourceTagged:
		blocks := content.Parse(string(data))
		if len(blocks) == 0 {
			return nil, errors.New("no content blocks found")
		}
		doc.page = report.Page{Blocks: blocks, Category: category, Date: now}
	case sourceFields:
		f, err := decodeFields(data)
		if err != nil {
			return nil, err
		}
		if f.Category == "" {
			f.Category = category
		}
		doc.fields = f
	default:
		return nil, fmt.Errorf("unsupported source kind: %s", kind)
	}

	log.Debug("Source decoded", zap.String("source", src), zap.Stringer("kind", kind), zap.Int("blocks", len(doc.blocks())))
	return doc, nil
}

func decodeFields(data []byte) (*report.Fields, error) {
	f := report.NewFields()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty fields document")
		}
		return nil, fmt.Errorf("unable to decode fields: %w", err)
	}
	return &f, nil
}
