package emlakapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildJobSchema returns a JSON-Schema (draft 2020-12 subset) for a single
// job document. The remote API is not versioned, so responses are validated
// on receipt instead of trusting field shapes.
func buildJobSchema() map[string]any {
	listing := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"owner_name":      map[string]any{"type": "string"},
			"contact_number":  map[string]any{"type": "string"},
			"room_count":      map[string]any{"type": "string"},
			"net_area":        map[string]any{"type": "string"},
			"is_in_complex":   map[string]any{"type": "string"},
			"complex_name":    map[string]any{"type": "string"},
			"heating_type":    map[string]any{"type": "string"},
			"parking_type":    map[string]any{"type": "string"},
			"credit_suitable": map[string]any{"type": "string"},
			"price":           map[string]any{"type": "string"},
			"listing_date":    map[string]any{"type": "string"},
		},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":                 map[string]any{"type": "string", "minLength": 1},
			"url":                map[string]any{"type": "string"},
			"month":              map[string]any{"type": "integer", "minimum": 1, "maximum": 12},
			"year":               map[string]any{"type": "integer"},
			"status":             map[string]any{"type": "string", "minLength": 1},
			"total_listings":     map[string]any{"type": "integer", "minimum": 0},
			"processed_listings": map[string]any{"type": "integer", "minimum": 0},
			"listings":           map[string]any{"type": "array", "items": listing},
		},
		"required": []string{"id", "status", "total_listings", "processed_listings"},
	}
}

var jobSchema = mustCompileSchema(buildJobSchema())

func mustCompileSchema(schemaMap map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("marshal schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("job.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add schema: %v", err))
	}
	schema, err := compiler.Compile("job.json")
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schema
}

// validateJobDocument checks a raw job payload against the schema.
func validateJobDocument(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode job document: %w", err)
	}
	if err := jobSchema.Validate(doc); err != nil {
		return fmt.Errorf("job document failed schema validation: %w", err)
	}
	return nil
}
