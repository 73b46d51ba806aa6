package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

type sourceKind int

const (
	sourceUnknown sourceKind = iota
	// tagged plain text: HEADING, BODY, QUOTE...
	sourceTagged
	// fixed field yaml document
	sourceFields
)

func (k sourceKind) String() string {
	switch k {
	case sourceTagged:
		return "tagged"
	case sourceFields:
		return "fields"
	default:
		return "unknown"
	}
}

// sourceKindOf selects input kind by file name extension.
func sourceKindOf(name string) sourceKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", ".md":
		return sourceTagged
	case ".yaml", ".yml":
		return sourceFields
	default:
		return sourceUnknown
	}
}

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

// detectUTF looks for BOM, UTF-32 must be checked before UTF-16 since
// little endian marks share prefix.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader returns reader producing UTF-8 for detected encoding. Input
// without BOM is decoded with cp when it is set.
func selectReader(r io.Reader, enc srcEncoding, cp encoding.Encoding) io.Reader {
	var dec *encoding.Decoder
	switch enc {
	case encUTF8:
		dec = unicode.UTF8BOM.NewDecoder()
	case encUTF16BigEndian:
		dec = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	case encUTF16LittleEndian:
		dec = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	case encUTF32BigEndian:
		dec = utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder()
	case encUTF32LittleEndian:
		dec = utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder()
	default:
		if cp == nil {
			return r
		}
		dec = cp.NewDecoder()
	}
	return transform.NewReader(r, dec)
}

// headerSize is enough for both BOM and binary signatures.
const headerSize = 512

func readHeader(r io.Reader) ([]byte, error) {
	buf := make([]byte, headerSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// checkSource decides whether header belongs to acceptable source: known
// extension and not a binary file with misleading name.
func checkSource(name string, header []byte) (sourceKind, srcEncoding) {
	kind := sourceKindOf(name)
	if kind == sourceUnknown {
		return sourceUnknown, encUnknown
	}
	enc := detectUTF(header)
	if enc == encUnknown && len(header) > 0 {
		if t, err := filetype.Match(header); err == nil && t != filetype.Unknown {
			return sourceUnknown, encUnknown
		}
		if bytes.IndexByte(header, 0) >= 0 {
			return sourceUnknown, encUnknown
		}
	}
	return kind, enc
}

func isSourceFile(path string) (sourceKind, srcEncoding, error) {
	if sourceKindOf(path) == sourceUnknown {
		return sourceUnknown, encUnknown, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return sourceUnknown, encUnknown, err
	}
	defer f.Close()

	header, err := readHeader(f)
	if err != nil {
		return sourceUnknown, encUnknown, err
	}
	kind, enc := checkSource(path, header)
	return kind, enc, nil
}

func isSourceInArchive(f *zip.File) (sourceKind, srcEncoding, error) {
	if sourceKindOf(f.Name) == sourceUnknown {
		return sourceUnknown, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return sourceUnknown, encUnknown, err
	}
	defer r.Close()

	header, err := readHeader(r)
	if err != nil {
		return sourceUnknown, encUnknown, err
	}
	kind, enc := checkSource(f.Name, header)
	return kind, enc, nil
}

func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header, err := readHeader(f)
	if err != nil {
		return false, err
	}
	return filetype.Is(header, "zip"), nil
}
