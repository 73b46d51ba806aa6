package convert

import (
	"strings"
	"testing"
	"time"

	"evostudio/config"
	"evostudio/convert/report"
)

func testValues(t *testing.T) Values {
	t.Helper()
	doc := setupTestDocument(t, "reports/derby.txt", "Derby Day")
	return newValues(config.OutputNameTemplateFieldName, doc, "card")
}

func TestNewValues(t *testing.T) {
	v := testValues(t)

	if v.Context != string(config.OutputNameTemplateFieldName) {
		t.Errorf("Context = %q", v.Context)
	}
	if v.Heading != "Derby Day" {
		t.Errorf("Heading = %q", v.Heading)
	}
	if v.Category != "Race Report" {
		t.Errorf("Category = %q", v.Category)
	}
	if v.SourceFile != "derby" {
		t.Errorf("SourceFile = %q, want %q", v.SourceFile, "derby")
	}
	if v.Kind != "tagged" || v.Style != "card" {
		t.Errorf("Kind = %q, Style = %q", v.Kind, v.Style)
	}
	if !v.Date.Equal(time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", v.Date)
	}
}

func TestNewValues_Fields(t *testing.T) {
	f := report.NewFields()
	f.Heading = "Stable Visit"
	f.Category = "Stable News"
	doc := &document{src: "visit.yaml", kind: sourceFields, fields: &f}

	v := newValues(config.OutputNameTemplateFieldName, doc, "a4")
	if v.Heading != "Stable Visit" || v.Category != "Stable News" || v.Kind != "fields" {
		t.Errorf("newValues() = %+v", v)
	}
}

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"simple text", "simple-text", "simple-text"},
		{"heading", "{{ .Heading }}", "Derby Day"},
		{"category", "{{ .Category }}", "Race Report"},
		{"date", `{{ .Date.Format "02.01.2006" }}`, "05.03.2026"},
		{"source file", "{{ .SourceFile }}", "derby"},
		{"context", "{{ .Context }}", "output_name_template"},
		{"sprig upper", "{{ .Heading | upper }}", "DERBY DAY"},
		{"sprig replace", `{{ .Category | replace " " "_" }}`, "Race_Report"},
		{"sprig default", `{{ "" | default "none" }}`, "none"},
		{"conditional", `{{ if eq .Style "card" }}mobile{{ else }}print{{ end }}`, "mobile"},
		{"subdirs", "{{ .Category }}/{{ .Heading }}", "Race Report/Derby Day"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(testValues(t), config.OutputNameTemplateFieldName, tt.template)
			if err != nil {
				t.Fatalf("expandTemplate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTemplate_Errors(t *testing.T) {
	_, err := expandTemplate(testValues(t), config.OutputNameTemplateFieldName, "{{ .Heading ")
	if err == nil || !strings.Contains(err.Error(), "unable to parse template field output_name_template") {
		t.Errorf("expandTemplate() error = %v", err)
	}

	if _, err := expandTemplate(testValues(t), config.OutputNameTemplateFieldName, "{{ .Unknown }}"); err == nil {
		t.Error("expected execution error for unknown field")
	}
}
