package dataset

import (
	"os"

	"gopkg.in/yaml.v3"
)

// openYAML loads a sequence of flat mappings. yaml.v3 decodes integers as
// int and floats as float64, both of which row.FromAny accepts directly.
func openYAML(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, loadErr(path, "yaml", err)
	}

	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, loadErr(path, "yaml", err)
	}

	records, err := convertRecords(raw)
	if err != nil {
		return nil, loadErr(path, "yaml", err)
	}

	return &Dataset{
		Name:    path,
		Columns: unionColumns(records),
		Records: records,
	}, nil
}
