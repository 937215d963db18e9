package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one row of the reference catalog CSV.
// JSON field names follow the CSV header convention so serialized records
// match the data files maintained by hand.
type Record struct {
	Name     string   `json:"Name"`
	Notes    string   `json:"Notes"`
	URL      string   `json:"URL"`
	Level    uint8    `json:"Level"`
	Example  *string  `json:"Example,omitempty"`
	Platform []string `json:"Platform,omitempty"`
	Type     []string `json:"Type,omitempty"`
	OS       []string `json:"OS,omitempty"`
	Language []string `json:"Language,omitempty"`
	Category []string `json:"Category,omitempty"`
}

// Canonical column names. URL and OS also match their header
// case-insensitively; every other column must match exactly.
const (
	colName     = "Name"
	colNotes    = "Notes"
	colURL      = "URL"
	colLevel    = "Level"
	colExample  = "Example"
	colPlatform = "Platform"
	colType     = "Type"
	colOS       = "OS"
	colLanguage = "Language"
	colCategory = "Category"
)

// MissingFieldError reports a required column absent from the header row.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// TypeMismatchError reports a cell whose value cannot decode into its
// target type.
type TypeMismatchError struct {
	Field string
	Value string
	Err   error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q: cannot decode %q: %v", e.Field, e.Value, e.Err)
}

func (e *TypeMismatchError) Unwrap() error { return e.Err }

// headerIndex maps canonical column names to their position in the
// header row.
type headerIndex map[string]int

func indexHeader(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if strings.EqualFold(name, colURL) {
			name = colURL
		} else if strings.EqualFold(name, colOS) {
			name = colOS
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

func (idx headerIndex) cell(row []string, name string) (string, bool) {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return "", false
	}
	return row[i], true
}

// decodeRecord maps one CSV row onto a Record via the header index.
// Name, Notes, URL and Level are required; the five list columns decode
// through splitList and never fail.
func decodeRecord(idx headerIndex, row []string) (Record, error) {
	var rec Record

	for _, col := range []struct {
		name string
		dst  *string
	}{
		{colName, &rec.Name},
		{colNotes, &rec.Notes},
		{colURL, &rec.URL},
	} {
		v, ok := idx.cell(row, col.name)
		if !ok {
			return Record{}, &MissingFieldError{Field: col.name}
		}
		*col.dst = v
	}

	levelRaw, ok := idx.cell(row, colLevel)
	if !ok {
		return Record{}, &MissingFieldError{Field: colLevel}
	}
	level, err := strconv.ParseUint(levelRaw, 10, 8)
	if err != nil {
		return Record{}, &TypeMismatchError{Field: colLevel, Value: levelRaw, Err: err}
	}
	rec.Level = uint8(level)

	if v, ok := idx.cell(row, colExample); ok && v != "" {
		rec.Example = &v
	}

	for _, col := range []struct {
		name string
		dst  *[]string
	}{
		{colPlatform, &rec.Platform},
		{colType, &rec.Type},
		{colOS, &rec.OS},
		{colLanguage, &rec.Language},
		{colCategory, &rec.Category},
	} {
		if v, ok := idx.cell(row, col.name); ok {
			*col.dst = splitList(v)
		}
	}

	return rec, nil
}

// splitList decodes one comma-separated cell into its ordered pieces,
// trimming each. Splitting an empty cell yields a single empty string;
// the shipped frontend consumes that shape today, so it stays.
func splitList(cell string) []string {
	parts := strings.Split(cell, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
