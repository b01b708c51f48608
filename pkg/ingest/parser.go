package ingest

import (
	"path/filepath"
	"strings"
)

// Parser extracts plain text from one uploaded file format.
// Implementations are independent and swappable; selection is by extension.
type Parser interface {
	// Extensions returns the lowercase file extensions this parser handles,
	// including the leading dot.
	Extensions() []string

	// Parse converts raw file bytes to retrievable text.
	Parse(filename string, data []byte) (string, error)
}

// Registry selects a parser by file extension.
type Registry struct {
	byExt map[string]Parser
}

func NewRegistry(parsers ...Parser) *Registry {
	r := &Registry{byExt: make(map[string]Parser)}
	for _, p := range parsers {
		for _, ext := range p.Extensions() {
			r.byExt[ext] = p
		}
	}
	return r
}

// DefaultRegistry covers the supported upload formats: txt, csv, pdf.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewPlaintextParser(),
		NewCSVParser(),
		NewPDFParser(),
	)
}

// For returns the parser for the file's extension, or false when the
// format is unsupported.
func (r *Registry) For(filename string) (Parser, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	p, ok := r.byExt[ext]
	return p, ok
}
