package schema

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadCSV reads a whole CSV stream into a header and data rows. Ragged rows
// are tolerated; resolution indexes are bounds-checked per row.
func ReadCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rec, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rec) == 0 {
		return nil, nil, fmt.Errorf("empty csv input")
	}
	return rec[0], rec[1:], nil
}

// NormalizeCSVFile reads and normalizes one CSV file. The file's base name
// becomes the record source identifier.
func NormalizeCSVFile(path string, m Mapping) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	res, err := NormalizeRows(header, rows, m, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}
