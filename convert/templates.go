package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"evostudio/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Heading    string
	Category   string
	Date       time.Time
	Style      string
	Kind       string
	SourceFile string
}

func newValues(name config.TemplateFieldName, doc *document, style string) Values {
	return Values{
		Context:    string(name),
		Heading:    doc.heading(),
		Category:   doc.category(),
		Date:       doc.date,
		Style:      style,
		Kind:       doc.kind.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(doc.src), filepath.Ext(doc.src)),
	}
}

func expandTemplate(values Values, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
