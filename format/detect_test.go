package format

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	tu "github.com/tsawler/manucheck/internal/testutil"
)

func zipOf(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, "DOCX"},
		{DOC, "DOC"},
		{PDF, "PDF"},
		{ODT, "ODT"},
		{OOXML, "OOXML"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Supported(t *testing.T) {
	if !DOCX.Supported() {
		t.Error("DOCX should be supported")
	}
	for _, f := range []Format{Unknown, DOC, PDF, ODT, OOXML} {
		if f.Supported() {
			t.Errorf("%v should not be supported", f)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"thesis.docx", DOCX},
		{"thesis.DOCX", DOCX},
		{"thesis.docm", DOCX},
		{"template.dotx", DOCX},
		{"thesis.doc", DOC},
		{"thesis.pdf", PDF},
		{"thesis.odt", ODT},
		{"data.xlsx", OOXML},
		{"slides.pptx", OOXML},
		{"notes.txt", Unknown},
		{"thesis", Unknown},
		{"", Unknown},
		{"/path/to/论文.docx", DOCX},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestIsCandidate(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"thesis.docx", true},
		{"/in/论文.docx", true},
		{"~$thesis.docx", false},
		{".hidden.docx", false},
		{"thesis.pdf", false},
	}

	for _, tt := range tests {
		if got := IsCandidate(tt.filename); got != tt.want {
			t.Errorf("IsCandidate(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"PDF magic bytes", []byte("%PDF-1.7"), PDF},
		{"OLE compound file", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}, DOC},
		{"ZIP needs inspection", []byte{0x50, 0x4B, 0x03, 0x04, 0x00}, Unknown},
		{"empty data", []byte{}, Unknown},
		{"short data", []byte{0x50, 0x4B}, Unknown},
		{"text file", []byte("Hello, World!"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"docx package", tu.NewDocx().Paragraphs("hello").Bytes(t), DOCX},
		{"word parts without content types", zipOf(t, map[string]string{"word/document.xml": "<w:document/>"}), DOCX},
		{"workbook", zipOf(t, map[string]string{"[Content_Types].xml": "<Types/>", "xl/workbook.xml": "<workbook/>"}), OOXML},
		{"opendocument", zipOf(t, map[string]string{"mimetype": "application/vnd.oasis.opendocument.text"}), ODT},
		{"plain zip", zipOf(t, map[string]string{"readme.txt": "hi"}), Unknown},
		{"pdf", []byte("%PDF-1.4\n%%EOF"), PDF},
		{"plain text", []byte("Hello, World! This is plain text."), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFromReader(bytes.NewReader(tt.data), int64(len(tt.data)))
			if err != nil {
				t.Fatalf("DetectFromReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_CorruptZIP(t *testing.T) {
	data := []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00}
	if _, err := DetectFromReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("expected error for truncated archive")
	}
}

func TestDetectFile(t *testing.T) {
	path := tu.NewDocx().Paragraphs("hello").Write(t)
	got, err := DetectFile(path)
	if err != nil {
		t.Fatalf("DetectFile() error = %v", err)
	}
	if got != DOCX {
		t.Errorf("DetectFile() = %v, want DOCX", got)
	}

	renamed := filepath.Join(t.TempDir(), "scan.docx")
	if err := os.WriteFile(renamed, []byte("%PDF-1.4"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got, _ := DetectFile(renamed); got != PDF {
		t.Errorf("DetectFile() = %v, want PDF", got)
	}

	if _, err := DetectFile(filepath.Join(t.TempDir(), "missing.docx")); err == nil {
		t.Error("expected error for missing file")
	}
}
