// Package format detects whether an input file is a word-processing
// package manucheck can check.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates an Office Open XML word-processing package
	// (.docx, .docm, .dotx, .dotm).
	DOCX
	// DOC indicates a legacy binary Word document.
	DOC
	// PDF indicates a PDF document.
	PDF
	// ODT indicates an OpenDocument Text document.
	ODT
	// OOXML indicates an Office Open XML package that is not a
	// word-processing document, such as a workbook or presentation.
	OOXML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	case PDF:
		return "PDF"
	case ODT:
		return "ODT"
	case OOXML:
		return "OOXML"
	default:
		return "Unknown"
	}
}

// Supported reports whether documents of this format can be checked.
func (f Format) Supported() bool {
	return f == DOCX
}

// wordMainContentTypes are the content types of a word-processing main
// document part.
var wordMainContentTypes = []string{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml",
	"application/vnd.ms-word.document.macroEnabled.main+xml",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml",
	"application/vnd.ms-word.template.macroEnabledTemplate.main+xml",
}

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx", ".docm", ".dotx", ".dotm":
		return DOCX
	case ".doc":
		return DOC
	case ".pdf":
		return PDF
	case ".odt":
		return ODT
	case ".xlsx", ".pptx":
		return OOXML
	default:
		return Unknown
	}
}

// IsCandidate reports whether a file should be picked up when expanding a
// directory of inputs. Office lock files ("~$thesis.docx") are skipped.
func IsCandidate(filename string) bool {
	base := filepath.Base(filename)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".") {
		return false
	}
	return Detect(filename) == DOCX
}

// DetectFromMagic checks the leading bytes of a file. ZIP archives are
// reported as Unknown; use DetectFromReader to look inside them.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return PDF
	case bytes.HasPrefix(data, oleMagic):
		return DOC
	default:
		return Unknown
	}
}

// DetectFromReader inspects the content to determine the format. It can
// tell a word-processing package apart from other ZIP-based formats.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, zipMagic) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// DetectFile opens the file at path and inspects its content.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}
	return DetectFromReader(f, info.Size())
}

// detectZIPFormat prefers the declared content types and falls back to
// the part layout.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch f.Name {
		case "mimetype":
			if head, err := readHead(f, 256); err == nil &&
				strings.Contains(string(head), "application/vnd.oasis.opendocument.text") {
				return ODT, nil
			}
		case "[Content_Types].xml":
			head, err := readHead(f, 64<<10)
			if err != nil {
				continue
			}
			for _, ct := range wordMainContentTypes {
				if bytes.Contains(head, []byte(ct)) {
					return DOCX, nil
				}
			}
		}
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"), strings.HasPrefix(f.Name, "ppt/"):
			return OOXML, nil
		}
	}
	return Unknown, nil
}

func readHead(f *zip.File, limit int64) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, limit))
}
