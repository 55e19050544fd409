// Package docx provides read-only access to word-processing (Office Open
// XML) packages.
package docx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Well-known part names.
const (
	DocumentPart      = "word/document.xml"
	RelationshipsPart = "word/_rels/document.xml.rels"
	StylesPart        = "word/styles.xml"
	ContentTypesPart  = "[Content_Types].xml"
)

// ErrPartNotFound is returned when a named part is absent from the package.
var ErrPartNotFound = errors.New("part not found")

// Package is an opened word-processing package.
type Package struct {
	path      string
	zipReader *zip.ReadCloser
	files     map[string]*zip.File
}

// Open opens a package for reading. The caller must Close it.
func Open(filename string) (*Package, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	p := &Package{
		path:      filename,
		zipReader: zr,
		files:     make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		p.files[f.Name] = f
	}
	return p, nil
}

// Close releases resources associated with the Package.
func (p *Package) Close() error {
	if p.zipReader != nil {
		err := p.zipReader.Close()
		p.zipReader = nil
		return err
	}
	return nil
}

// Path returns the file the package was opened from.
func (p *Package) Path() string {
	return p.path
}

// HasPart reports whether the package contains the named part.
func (p *Package) HasPart(name string) bool {
	_, ok := p.files[name]
	return ok
}

// PartNames returns the names of all parts, sorted.
func (p *Package) PartNames() []string {
	names := make([]string, 0, len(p.files))
	for name := range p.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReadPart returns the content of the named part.
func (p *Package) ReadPart(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrPartNotFound)
	}
	if p.zipReader == nil {
		return nil, fmt.Errorf("%s: package is closed", name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}
