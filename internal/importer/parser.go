package importer

import (
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Dialect configures how a delimited export file is read.
type Dialect struct {
	Delimiter        rune
	HasHeader        bool
	Encoding         string
	DateLayout       string
	DecimalSeparator rune
}

// DefaultDialect returns the conventions most Swedish bank exports use.
func DefaultDialect() Dialect {
	return Dialect{
		Delimiter:        ';',
		HasHeader:        true,
		Encoding:         "utf-8",
		DateLayout:       "2006-01-02",
		DecimalSeparator: ',',
	}
}

// ErrorKind tags a batch-fatal parse failure.
type ErrorKind string

const (
	ErrEmptyFile     ErrorKind = "empty_file"
	ErrInvalidFormat ErrorKind = "invalid_format"
	ErrEncoding      ErrorKind = "encoding_error"
)

// ParseError is a batch-fatal import failure. When one is returned the whole
// import is rejected and no transactions are produced.
type ParseError struct {
	Kind    ErrorKind
	Message string
	Details string
}

func (e *ParseError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ParsedTable is the raw grid read from an export file. Immutable once
// produced; rows may have differing cell counts, normalization decides what
// to do with short rows.
type ParsedTable struct {
	Headers []string
	Rows    [][]string
	Dialect Dialect
}

// RowCount returns the number of data rows.
func (t *ParsedTable) RowCount() int { return len(t.Rows) }

// ColumnCount returns the header count, or the first row's cell count for
// headerless tables.
func (t *ParsedTable) ColumnCount() int {
	if len(t.Headers) > 0 {
		return len(t.Headers)
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

// Parse reads raw export text into a ParsedTable. Quoted fields follow the
// usual escaped-quote convention: a field starting with a quote runs to the
// matching closing quote, consuming delimiters and line terminators
// verbatim, and a doubled quote inside it is one literal quote. Both LF and
// CRLF terminate lines. A leading byte-order mark is stripped.
func Parse(raw string, d Dialect) (*ParsedTable, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")

	if strings.TrimSpace(raw) == "" {
		return nil, &ParseError{Kind: ErrEmptyFile, Message: "file contains no data"}
	}

	if !utf8.ValidString(raw) {
		return nil, &ParseError{
			Kind:    ErrEncoding,
			Message: "file is not valid " + d.Encoding,
			Details: "re-export the file with UTF-8 encoding",
		}
	}

	cr := csv.NewReader(strings.NewReader(raw))
	cr.Comma = d.Delimiter
	cr.FieldsPerRecord = -1 // ragged rows are accepted, normalization skips them
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{
			Kind:    ErrInvalidFormat,
			Message: "malformed delimited text",
			Details: err.Error(),
		}
	}
	if len(records) == 0 {
		return nil, &ParseError{Kind: ErrEmptyFile, Message: "file contains no data"}
	}

	table := &ParsedTable{Dialect: d}
	if d.HasHeader {
		table.Headers = records[0]
		table.Rows = records[1:]
	} else {
		table.Rows = records
	}
	return table, nil
}
