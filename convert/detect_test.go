package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestSourceKindOf(t *testing.T) {
	tests := []struct {
		name string
		want sourceKind
	}{
		{"update.txt", sourceTagged},
		{"UPDATE.TXT", sourceTagged},
		{"notes.md", sourceTagged},
		{"draft.text", sourceTagged},
		{"fields.yaml", sourceFields},
		{"fields.YML", sourceFields},
		{"archive.zip", sourceUnknown},
		{"image.png", sourceUnknown},
		{"noext", sourceUnknown},
	}
	for _, tt := range tests {
		if got := sourceKindOf(tt.name); got != tt.want {
			t.Errorf("sourceKindOf(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDetectUTF(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want srcEncoding
	}{
		{"empty", nil, encUnknown},
		{"plain", []byte("HEADING"), encUnknown},
		{"utf8", []byte{0xEF, 0xBB, 0xBF, 'H'}, encUTF8},
		{"utf16 be", []byte{0xFE, 0xFF, 0x00, 'H'}, encUTF16BigEndian},
		{"utf16 le", []byte{0xFF, 0xFE, 'H', 0x00}, encUTF16LittleEndian},
		{"utf32 be", []byte{0x00, 0x00, 0xFE, 0xFF}, encUTF32BigEndian},
		{"utf32 le", []byte{0xFF, 0xFE, 0x00, 0x00}, encUTF32LittleEndian},
		{"short", []byte{0xEF, 0xBB}, encUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectUTF(tt.buf); got != tt.want {
				t.Errorf("detectUTF() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectReader_CodePage(t *testing.T) {
	// "Café" in windows-1252
	data := []byte{'C', 'a', 'f', 0xE9}

	got, err := io.ReadAll(selectReader(bytes.NewReader(data), encUnknown, charmap.Windows1252))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "Café" {
		t.Errorf("selectReader() = %q, want %q", got, "Café")
	}

	got, err = io.ReadAll(selectReader(bytes.NewReader(data), encUnknown, nil))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("selectReader() without code page must not alter input")
	}
}

func TestSelectReader_BOMWinsOverCodePage(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Café")...)

	got, err := io.ReadAll(selectReader(bytes.NewReader(data), encUTF8, charmap.Windows1252))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "Café" {
		t.Errorf("selectReader() = %q, want %q", got, "Café")
	}
}

func TestCheckSource(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

	tests := []struct {
		name   string
		file   string
		header []byte
		want   sourceKind
	}{
		{"text", "a.txt", []byte("HEADING\nhello"), sourceTagged},
		{"yaml", "a.yaml", []byte("heading: x"), sourceFields},
		{"empty", "a.txt", nil, sourceTagged},
		{"utf16 with zero bytes", "a.txt", []byte{0xFF, 0xFE, 'H', 0x00}, sourceTagged},
		{"image renamed", "a.txt", png, sourceUnknown},
		{"binary", "a.yaml", []byte{'a', 0x00, 'b'}, sourceUnknown},
		{"unknown extension", "a.doc", []byte("HEADING"), sourceUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := checkSource(tt.file, tt.header); got != tt.want {
				t.Errorf("checkSource() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsArchiveFile(t *testing.T) {
	dir := t.TempDir()

	arc := filepath.Join(dir, "a.zip")
	makeTestArchive(t, arc, map[string]string{"a.txt": sampleTagged})
	if ok, err := isArchiveFile(arc); err != nil || !ok {
		t.Errorf("isArchiveFile(zip) = %v, %v", ok, err)
	}

	fake := filepath.Join(dir, "fake.zip")
	writeFile(t, fake, []byte("not an archive"))
	if ok, err := isArchiveFile(fake); err != nil || ok {
		t.Errorf("isArchiveFile(fake) = %v, %v", ok, err)
	}

	txt := filepath.Join(dir, "a.txt")
	writeFile(t, txt, []byte(sampleTagged))
	if ok, err := isArchiveFile(txt); err != nil || ok {
		t.Errorf("isArchiveFile(txt) = %v, %v", ok, err)
	}

	if _, err := isArchiveFile(filepath.Join(dir, "missing.zip")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestIsSourceInArchive(t *testing.T) {
	arc := filepath.Join(t.TempDir(), "a.zip")
	makeTestArchive(t, arc, map[string]string{
		"a.txt":   "\xEF\xBB\xBFHEADING\nx",
		"b.yaml":  sampleFields,
		"c.jpeg":  "whatever",
		"d/e.yml": sampleFields,
	})

	zr, err := zip.OpenReader(arc)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer zr.Close()

	want := map[string]struct {
		kind sourceKind
		enc  srcEncoding
	}{
		"a.txt":   {sourceTagged, encUTF8},
		"b.yaml":  {sourceFields, encUnknown},
		"c.jpeg":  {sourceUnknown, encUnknown},
		"d/e.yml": {sourceFields, encUnknown},
	}
	for _, f := range zr.File {
		kind, enc, err := isSourceInArchive(f)
		if err != nil {
			t.Fatalf("isSourceInArchive(%s) error = %v", f.Name, err)
		}
		if w := want[f.Name]; kind != w.kind || enc != w.enc {
			t.Errorf("isSourceInArchive(%s) = %v, %v, want %v, %v", f.Name, kind, enc, w.kind, w.enc)
		}
	}
}

func TestIsSourceFile_Missing(t *testing.T) {
	if _, _, err := isSourceFile(filepath.Join(t.TempDir(), "missing.txt")); !os.IsNotExist(err) {
		t.Errorf("isSourceFile() error = %v, want not exist", err)
	}
}
