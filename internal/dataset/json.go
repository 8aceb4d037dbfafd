package dataset

import (
	"encoding/json"
	"fmt"
	"os"
)

// openJSON loads an array of flat objects. Numbers decode through
// json.Number so integers keep full int64 precision.
func openJSON(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadErr(path, "json", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, loadErr(path, "json", err)
	}
	if dec.More() {
		return nil, loadErr(path, "json", fmt.Errorf("trailing data after the record array"))
	}

	records, err := convertRecords(raw)
	if err != nil {
		return nil, loadErr(path, "json", err)
	}

	return &Dataset{
		Name:    path,
		Columns: unionColumns(records),
		Records: records,
	}, nil
}
