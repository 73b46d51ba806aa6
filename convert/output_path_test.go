package convert

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"evostudio/config"
	"evostudio/content"
	"evostudio/convert/report"
	"evostudio/state"
)

func setupTestEnvForOutputPath(t *testing.T, noDirs bool, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Report.FileNameTransliterate = transliterate
	cfg.Report.OutputNameTemplate = template

	env := &state.LocalEnv{
		Log:    logger,
		Cfg:    cfg,
		NoDirs: noDirs,
	}
	return env
}

func setupTestDocument(t *testing.T, src, heading string) *document {
	t.Helper()
	var blocks content.Blocks
	if heading != "" {
		blocks = append(blocks, content.NewHeading(heading))
	}
	blocks = append(blocks, content.NewBody("text"))
	return &document{
		src:  src,
		kind: sourceTagged,
		date: time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC),
		page: report.Page{Blocks: blocks, Category: "Race Report"},
	}
}

func TestBuildOutputPath_Heading_NoDirs(t *testing.T) {
	doc := setupTestDocument(t, "week/one/update.txt", "Derby Day")
	env := setupTestEnvForOutputPath(t, true, false, "")

	result := buildOutputPath(doc, "/output", env)
	expected := filepath.Join("/output", "Derby Day.html")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_Heading_WithDirs(t *testing.T) {
	doc := setupTestDocument(t, "week/one/update.txt", "Derby Day")
	env := setupTestEnvForOutputPath(t, false, false, "")

	result := buildOutputPath(doc, "/output", env)
	expected := filepath.Join("/output", "week", "one", "Derby Day.html")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_Heading_Transliterate(t *testing.T) {
	doc := setupTestDocument(t, "update.txt", "Épreuve à Longchamp")
	env := setupTestEnvForOutputPath(t, true, true, "")

	result := buildOutputPath(doc, "/output", env)
	expected := filepath.Join("/output", "epreuve-a-longchamp.html")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_NoHeading(t *testing.T) {
	doc := setupTestDocument(t, "notes/My Update.txt", "")
	env := setupTestEnvForOutputPath(t, true, false, "")

	result := buildOutputPath(doc, "/output", env)
	expected := filepath.Join("/output", "My Update.html")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}

	env.Cfg.Report.FileNameTransliterate = true
	result = buildOutputPath(doc, "/output", env)
	expected = filepath.Join("/output", "my-update.html")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_HeadingWithSeparator(t *testing.T) {
	doc := setupTestDocument(t, "update.txt", "Win/Place")
	env := setupTestEnvForOutputPath(t, true, false, "")

	result := buildOutputPath(doc, "/output", env)
	expected := filepath.Join("/output", "WinPlace.html")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_Template(t *testing.T) {
	doc := setupTestDocument(t, "week/update.txt", "Derby Day")
	env := setupTestEnvForOutputPath(t, true, false, `{{ .Date.Format "2006-01-02" }} {{ .Heading }}`)

	result := buildOutputPath(doc, "/output", env)
	expected := filepath.Join("/output", "2026-03-05 Derby Day.html")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_TemplateSubdirs(t *testing.T) {
	doc := setupTestDocument(t, "week/update.txt", "Derby Day")
	env := setupTestEnvForOutputPath(t, false, true, `{{ .Category }}/{{ .Date.Format "2006" }}/{{ .Heading }}`)

	result := buildOutputPath(doc, "/output", env)
	expected := filepath.Join("/output", "week", "race-report", "2026", "derby-day.html")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_TemplateDotSegments(t *testing.T) {
	doc := setupTestDocument(t, "update.txt", "Derby Day")
	env := setupTestEnvForOutputPath(t, true, false, `../{{ .Heading }}`)

	result := buildOutputPath(doc, "/output", env)
	expected := filepath.Join("/output", "Derby Day.html")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_TemplateFallback(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"parse error", "{{ .Heading "},
		{"execution error", "{{ .Missing }}"},
		{"empty result", "{{ if false }}x{{ end }}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := setupTestDocument(t, "update.txt", "Derby Day")
			env := setupTestEnvForOutputPath(t, true, false, tt.template)

			result := buildOutputPath(doc, "/output", env)
			expected := filepath.Join("/output", "Derby Day.html")

			if result != expected {
				t.Errorf("buildOutputPath() = %q, want %q", result, expected)
			}
		})
	}
}

func TestSplitAndCleanPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a", []string{"a"}},
		{filepath.Join("a", "b", "c"), []string{"a", "b", "c"}},
		{filepath.Join("a", "b") + string(filepath.Separator), []string{"a", "b"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		got := splitAndCleanPath(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}
