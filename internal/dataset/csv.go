package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/khuatbaonguyen123/linq/internal/row"
)

// openCSV loads a header row plus data rows. CSV carries no types, so
// cells are inferred: empty reads as null, then int, float, and bool
// parses are tried in that order, and anything else stays a string.
func openCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadErr(path, "csv", err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err == io.EOF {
		return nil, loadErr(path, "csv", fmt.Errorf("missing header row"))
	}
	if err != nil {
		return nil, loadErr(path, "csv", err)
	}
	seen := make(map[string]struct{}, len(header))
	for _, col := range header {
		if col == "" {
			return nil, loadErr(path, "csv", fmt.Errorf("header contains an empty column name"))
		}
		if _, dup := seen[col]; dup {
			return nil, loadErr(path, "csv", fmt.Errorf("duplicate header column %q", col))
		}
		seen[col] = struct{}{}
	}

	var records []row.Record
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, loadErr(path, "csv", err)
		}
		rec := make(row.Record, len(header))
		for i, col := range header {
			rec[col] = inferCell(fields[i])
		}
		records = append(records, rec)
	}

	return &Dataset{
		Name:    path,
		Columns: header,
		Records: records,
	}, nil
}

func inferCell(s string) row.Value {
	if s == "" {
		return row.Null{}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return row.Int(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return row.Float(f)
	}
	if s == "true" {
		return row.Bool(true)
	}
	if s == "false" {
		return row.Bool(false)
	}
	return row.String(s)
}
