package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leadsync/ghl-sheets/phone"
)

// ReadCSV parses a comma separated file with a header row. Rows shorter than the header
// are kept as is, i.e. their trailing cells are absent.
func ReadCSV(f io.Reader) (*Table, error) {
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty (%w)", ErrSchema)
	}

	header := make([]string, len(records[0]))
	for i, v := range records[0] {
		header[i] = clean(strings.TrimPrefix(v, "\ufeff"))
	}

	rows := [][]string{}
	for _, record := range records[1:] {
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		rows = append(rows, record)
	}

	return &Table{
		Header:  header,
		Records: rows,
	}, nil
}

// LoadCSV reads a lead export, keeps only the listed columns (in the listed order),
// normalises the 'phone' column and fills in absent values. A missing column is an
// ErrSchema error.
func LoadCSV(file string, columns []string) (*Table, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("invalid CSV file %v (%w)", file, err)
	}

	selected, err := t.Select(columns...)
	if err != nil {
		return nil, fmt.Errorf("invalid CSV file %v (%w)", file, err)
	}

	if _, ok := selected.Index("phone"); ok {
		if err := selected.Apply("phone", phone.Normalize); err != nil {
			return nil, err
		}
	}

	selected.FillEmpty()

	return selected, nil
}

// WriteCSV writes the header and records as comma separated values.
func WriteCSV(f io.Writer, t *Table) error {
	w := csv.NewWriter(f)

	if err := w.Write(t.Header); err != nil {
		return err
	}

	for _, record := range t.Records {
		if err := w.Write(pad(record, len(t.Header))); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
