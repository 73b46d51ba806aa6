package images

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// 1x1 transparent png
var pngPixel, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

func TestLogoMarkup_SVG(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<!-- exported by editor -->
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" onload="alert(1)">
  <script>alert(2)</script>
  <circle cx="5" cy="5" r="4" fill="#0b3d2e"/>
</svg>`)

	got, err := LogoMarkup(data)
	if err != nil {
		t.Fatalf("LogoMarkup() error = %v", err)
	}
	if !strings.HasPrefix(got, "<svg") {
		t.Errorf("expected svg element first, got %q", got)
	}
	for _, bad := range []string{"<?xml", "exported by editor", "script", "onload"} {
		if strings.Contains(got, bad) {
			t.Errorf("output contains %q: %s", bad, got)
		}
	}
	if !strings.Contains(got, `class="`+LogoClass+`"`) {
		t.Errorf("missing logo class: %s", got)
	}
	if !strings.Contains(got, "<circle") {
		t.Errorf("drawing lost: %s", got)
	}
}

func TestLogoMarkup_PNG(t *testing.T) {
	got, err := LogoMarkup(pngPixel)
	if err != nil {
		t.Fatalf("LogoMarkup() error = %v", err)
	}
	if !strings.HasPrefix(got, `<img class="brand-logo" src="data:image/png;base64,`) {
		t.Errorf("unexpected markup %q", got)
	}
}

func TestLogoMarkup_Unsupported(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty": nil,
		"text":  []byte("just some text, not an image"),
		"html":  []byte("<html><body>no logo</body></html>"),
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := LogoMarkup(data); !errors.Is(err, ErrUnsupportedLogo) {
				t.Errorf("expected ErrUnsupportedLogo, got %v", err)
			}
		})
	}
}

func TestLoadLogo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(path, pngPixel, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLogo(path); err != nil {
		t.Errorf("LoadLogo() error = %v", err)
	}
	if _, err := LoadLogo(filepath.Join(dir, "missing.svg")); err == nil {
		t.Error("expected error for missing file")
	}
}
