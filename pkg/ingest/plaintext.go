package ingest

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PlaintextParser handles .txt uploads.
type PlaintextParser struct{}

var _ Parser = (*PlaintextParser)(nil)

func NewPlaintextParser() *PlaintextParser {
	return &PlaintextParser{}
}

func (p *PlaintextParser) Extensions() []string {
	return []string{".txt", ".text", ".md"}
}

func (p *PlaintextParser) Parse(filename string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: not valid UTF-8 text", filename)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%s: file is empty", filename)
	}
	return text, nil
}
