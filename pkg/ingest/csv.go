package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser flattens delimited-tabular files into one line per row so
// row-level facts stay together inside a chunk.
type CSVParser struct{}

var _ Parser = (*CSVParser)(nil)

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Extensions() []string {
	return []string{".csv"}
}

func (p *CSVParser) Parse(filename string, data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	var lines []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%s: %w", filename, err)
		}
		lines = append(lines, strings.Join(record, ", "))
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("%s: file is empty", filename)
	}
	return strings.Join(lines, "\n"), nil
}
