package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrEmptyPath is returned before any filesystem access when the caller
// supplies an empty file path.
var ErrEmptyPath = errors.New("file path cannot be empty")

// RowError reports the first row that failed to decode. The whole parse
// fails; no partial record list is returned.
type RowError struct {
	Line int // 1-based line in the file, header included
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("invalid data at line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ParseFile reads the CSV file at path and decodes every row into a
// Record. The first row is the header and determines the column-to-field
// mapping. Row order is preserved. The call fails atomically: an open
// failure passes the os error through, and the first undecodable row
// aborts with a RowError carrying the decode detail.
func ParseFile(path string) ([]Record, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, rowError(err)
	}
	idx := indexHeader(header)

	records := make([]Record, 0, 64)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, rowError(err)
		}
		// Physical line of the row start; quoted cells may span
		// several lines, so no counter can stand in for this.
		line, _ := r.FieldPos(0)
		rec, err := decodeRecord(idx, row)
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		records = append(records, rec)
	}

	return records, nil
}

// rowError converts a csv.Reader failure into a RowError carrying the
// parser's own line position. Reader I/O errors pass through wrapped.
func rowError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &RowError{Line: parseErr.Line, Err: err}
	}
	return fmt.Errorf("read csv: %w", err)
}
