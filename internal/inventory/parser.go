// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/apperr"
)

// Parser converts raw CSV content into a lazy sequence of [Record] values.
//
// The first row is the header; each subsequent row is keyed by the header
// names. Empty lines are skipped. The sequence is finite and not restartable:
// once the underlying reader is exhausted, Next keeps returning [io.EOF].
//
// Malformed content (inconsistent column counts, invalid UTF-8) surfaces as
// an apperr MALFORMED_INPUT error — before any record of the bad row is
// handed to the caller.
type Parser struct {
	reader *csv.Reader
	header []string
	row    int
	failed bool
}

// NewParser wraps the source in a CSV parser. No input is consumed until the
// first call to Next.
func NewParser(source io.Reader) *Parser {
	reader := csv.NewReader(source)
	// Cells may contain unescaped quotes in the wild; be lenient.
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	return &Parser{reader: reader}
}

/*
Next returns the next record of the file.

Returns:
  - Record: The parsed row (zero value on error/EOF)
  - error: io.EOF at end of input, apperr.Malformed on unparseable content
*/
func (parser *Parser) Next() (Record, error) {
	if parser.failed {
		return Record{}, io.EOF
	}

	// Lazily consume the header on first use.
	if parser.header == nil {
		header, err := parser.reader.Read()
		if err != nil {
			parser.failed = true
			if errors.Is(err, io.EOF) {
				return Record{}, io.EOF
			}
			return Record{}, apperr.Malformed(fmt.Sprintf("Cannot parse CSV header: %v", err))
		}
		if !validUTF8(header) {
			parser.failed = true
			return Record{}, apperr.Malformed("CSV content is not valid UTF-8")
		}
		parser.header = header
	}

	cells, err := parser.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		// Inconsistent column counts land here (csv.ErrFieldCount).
		parser.failed = true
		return Record{}, apperr.Malformed(fmt.Sprintf("Cannot parse CSV row: %v", err))
	}
	if !validUTF8(cells) {
		parser.failed = true
		return Record{}, apperr.Malformed("CSV content is not valid UTF-8")
	}

	parser.row++
	fields := make(map[string]string, len(parser.header))
	for i, name := range parser.header {
		fields[name] = cells[i]
	}

	return Record{Row: parser.row, Fields: fields}, nil
}

// validUTF8 reports whether every cell is well-formed UTF-8.
func validUTF8(cells []string) bool {
	for _, cell := range cells {
		if !utf8.ValidString(cell) {
			return false
		}
	}
	return true
}
