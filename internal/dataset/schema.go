package dataset

import (
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/khuatbaonguyen123/linq/internal/row"
)

// Validate checks every record against the JSON Schema document at
// schemaPath. All violations are collected before failing, so one pass
// reports every bad record.
func (d *Dataset) Validate(schemaPath string) error {
	raw, err := os.ReadFile(schemaPath)
	if err != nil {
		return loadErr(schemaPath, "schema", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("invalid json schema %s: %w", schemaPath, err)
	}

	var violations []string
	for i, rec := range d.Records {
		doc := make(map[string]any, len(rec))
		for k, v := range rec {
			doc[k] = row.ToAny(v)
		}

		result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
		if err != nil {
			return fmt.Errorf("schema validation error: %w", err)
		}
		if !result.Valid() {
			for _, desc := range result.Errors() {
				violations = append(violations, fmt.Sprintf("record %d: %s", i, desc.String()))
			}
		}
	}

	if len(violations) > 0 {
		return &SchemaError{SchemaPath: schemaPath, Violations: violations}
	}
	return nil
}
