package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
)

// ReadCSV loads a CSV file into a dataset. The first record is the
// header; empty fields become nulls and numeric-looking fields become
// typed numeric cells.
func ReadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s has no header row", path)
	}

	d := New(records[0]...)
	for _, rec := range records[1:] {
		row := make([]interface{}, len(rec))
		for i, field := range rec {
			row[i] = ParseCell(field)
		}
		if err := d.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// WriteCSV writes the dataset to path. Nulls are written as empty fields.
func WriteCSV(d *Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(d.Names()); err != nil {
		return err
	}
	n := d.NumRows()
	names := d.Names()
	rec := make([]string, len(names))
	for i := 0; i < n; i++ {
		for j, name := range names {
			rec[j] = Format(d.Column(name)[i])
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
