// Package table implements the in-memory tabular model shared by the CSV loader, the
// worksheet reader and the cross-referencer.
//
// A record may be shorter than the header: trailing cells that the source did not
// supply are absent. FillEmpty pads every record to the header width with empty
// strings and must be called before a table is written anywhere.
package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema is returned (wrapped) whenever a required column is missing or ambiguous.
var ErrSchema = errors.New("schema error")

type Table struct {
	Header  []string
	Records [][]string
}

// MakeTable builds a table from raw worksheet values. The first row is the header and
// every following row is a record, in worksheet order. An empty worksheet yields an
// empty table rather than an error.
func MakeTable(rows [][]interface{}) (*Table, error) {
	if len(rows) == 0 {
		return &Table{Header: []string{}, Records: [][]string{}}, nil
	}

	header := make([]string, len(rows[0]))
	index := map[string]int{}
	for i, v := range rows[0] {
		h := clean(cell(v))
		if _, ok := index[h]; ok && h != "" {
			return nil, fmt.Errorf("duplicate column name '%s' (%w)", h, ErrSchema)
		}

		index[h] = i
		header[i] = h
	}

	records := [][]string{}
	for _, row := range rows[1:] {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = cell(v)
		}

		records = append(records, record)
	}

	return &Table{
		Header:  header,
		Records: records,
	}, nil
}

// Len returns the number of data records.
func (t *Table) Len() int {
	return len(t.Records)
}

// Index returns the position of the first column with exactly the given name.
func (t *Table) Index(column string) (int, bool) {
	for i, h := range t.Header {
		if h == column {
			return i, true
		}
	}

	return -1, false
}

// Get returns the value of a cell, or "" if the cell or the column is absent.
func (t *Table) Get(row int, column string) string {
	if ix, ok := t.Index(column); ok {
		return get(t.Records[row], ix)
	}

	return ""
}

// Column returns a copy of every value in the named column.
func (t *Table) Column(column string) ([]string, error) {
	ix, ok := t.Index(column)
	if !ok {
		return nil, fmt.Errorf("missing '%s' column (%w)", column, ErrSchema)
	}

	values := make([]string, len(t.Records))
	for i, record := range t.Records {
		values[i] = get(record, ix)
	}

	return values, nil
}

// Require checks that every named column is present exactly once.
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		n := 0
		for _, h := range t.Header {
			if h == c {
				n++
			}
		}

		switch {
		case n == 0:
			return fmt.Errorf("missing '%s' column (%w)", c, ErrSchema)

		case n > 1:
			return fmt.Errorf("duplicate column name '%s' (%w)", c, ErrSchema)
		}
	}

	return nil
}

// Select projects the table down to exactly the listed columns, in the listed order.
func (t *Table) Select(columns ...string) (*Table, error) {
	if err := t.Require(columns...); err != nil {
		return nil, err
	}

	xref := make([]int, len(columns))
	for i, c := range columns {
		xref[i], _ = t.Index(c)
	}

	records := make([][]string, len(t.Records))
	for i, row := range t.Records {
		record := make([]string, len(columns))
		for j, ix := range xref {
			record[j] = get(row, ix)
		}

		records[i] = record
	}

	return &Table{
		Header:  append([]string{}, columns...),
		Records: records,
	}, nil
}

// Apply replaces every value in the named column with f(value). Absent cells are
// passed to f as "". Row order and the other columns are left untouched.
func (t *Table) Apply(column string, f func(string) string) error {
	ix, ok := t.Index(column)
	if !ok {
		return fmt.Errorf("missing '%s' column (%w)", column, ErrSchema)
	}

	for i, record := range t.Records {
		if ix >= len(record) {
			record = pad(record, len(t.Header))
			t.Records[i] = record
		}

		record[ix] = f(record[ix])
	}

	return nil
}

// FillEmpty pads every record out to the width of the header so that no cell is absent.
func (t *Table) FillEmpty() {
	for i, record := range t.Records {
		t.Records[i] = pad(record, len(t.Header))
	}
}

// Values returns the header followed by the records, in table order.
func (t *Table) Values() [][]string {
	values := make([][]string, 0, len(t.Records)+1)

	values = append(values, append([]string{}, t.Header...))
	for _, record := range t.Records {
		values = append(values, append([]string{}, record...))
	}

	return values
}

func get(record []string, ix int) string {
	if ix >= 0 && ix < len(record) {
		return record[ix]
	}

	return ""
}

func pad(record []string, width int) []string {
	if len(record) >= width {
		return record
	}

	padded := make([]string, width)
	copy(padded, record)

	return padded
}

func cell(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""

	case string:
		return s

	default:
		return fmt.Sprintf("%v", v)
	}
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
