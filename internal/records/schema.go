package records

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://student-records.json"

var percent = map[string]any{
	"type":    []any{"number", "null"},
	"minimum": 0,
	"maximum": 100,
}

// recordsSchema describes a batch of student records. Unknown fields are
// allowed and pass through to the results.
var recordsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":           map[string]any{"type": []any{"string", "integer"}},
			"name":         map[string]any{"type": "string"},
			"class":        map[string]any{"type": "string"},
			"averageGrade": percent,
			"attendance":   percent,
			"attitude":     percent,
			"tasks": map[string]any{
				"type":    []any{"integer", "null"},
				"minimum": 0,
			},
			"grades": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			},
		},
		"required": []any{"id", "name"},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles recordsSchema on first use.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants plain decoded JSON, not Go ints.
		b, err := json.Marshal(recordsSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Validate checks decoded JSON against the records schema.
func Validate(doc any) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile records schema: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return &ErrInvalidInput{Source: "json", Err: err}
	}
	return nil
}
