// Package tables holds the static game-balance sheets used by actions.
//
// A sheet is a CSV document: one header row followed by data rows that are
// parsed positionally. Rows are ordered by key. Loading is all-or-nothing: a
// single missing or malformed field rejects the whole sheet and leaves any
// previously loaded rows untouched.
package tables

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrMissingField = errors.New("tables: missing field")
	ErrBadField     = errors.New("tables: malformed field")
	ErrDuplicateKey = errors.New("tables: duplicate key")
	ErrBadKey       = errors.New("tables: key must be positive")
)

// Row is one parsed sheet line.
type Row interface {
	Key() int64
	Set(fields []string) error
}

// Sheet is an ordered, key-indexed set of rows.
type Sheet struct {
	name   string
	newRow func() Row
	rows   []Row
	index  map[int64]int
}

func newSheet(name string, newRow func() Row) *Sheet {
	return &Sheet{name: name, newRow: newRow, index: map[int64]int{}}
}

// Name is the sheet name, also the CSV file stem.
func (s *Sheet) Name() string {
	return s.name
}

// Len is the number of rows.
func (s *Sheet) Len() int {
	return len(s.rows)
}

// At returns the i-th row in key order.
func (s *Sheet) At(i int) Row {
	return s.rows[i]
}

// Get returns the row with the given key.
func (s *Sheet) Get(key int64) (Row, bool) {
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return s.rows[i], true
}

// Load replaces the sheet content with the rows parsed from src.
func (s *Sheet) Load(src string) error {
	r := csv.NewReader(strings.NewReader(src))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'

	var (
		rows  []Row
		index = map[int64]int{}
		line  = 0
	)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		line++
		if line == 1 {
			continue // header
		}
		if isBlank(record) {
			continue
		}
		row := s.newRow()
		if err := row.Set(record); err != nil {
			return fmt.Errorf("%s row %d: %w", s.name, line, err)
		}
		if row.Key() <= 0 {
			return fmt.Errorf("%s row %d: %w", s.name, line, ErrBadKey)
		}
		if _, dup := index[row.Key()]; dup {
			return fmt.Errorf("%s row %d key %d: %w", s.name, line, row.Key(), ErrDuplicateKey)
		}
		index[row.Key()] = len(rows)
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Key() < rows[j].Key() })
	for i, row := range rows {
		index[row.Key()] = i
	}
	s.rows, s.index = rows, index
	return nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// fieldReader walks a record positionally and remembers the first error.
type fieldReader struct {
	fields []string
	pos    int
	err    error
}

func (f *fieldReader) next() (string, bool) {
	if f.err != nil {
		return "", false
	}
	if f.pos >= len(f.fields) {
		f.err = fmt.Errorf("%w at position %d", ErrMissingField, f.pos)
		return "", false
	}
	v := strings.TrimSpace(f.fields[f.pos])
	f.pos++
	return v, true
}

func (f *fieldReader) int() int64 {
	s, ok := f.next()
	if !ok {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f.err = fmt.Errorf("%w at position %d: %q", ErrBadField, f.pos-1, s)
	}
	return v
}

func (f *fieldReader) text() string {
	s, ok := f.next()
	if ok && s == "" {
		f.err = fmt.Errorf("%w at position %d: empty", ErrBadField, f.pos-1)
	}
	return s
}

func (f *fieldReader) remaining() int {
	return len(f.fields) - f.pos
}
