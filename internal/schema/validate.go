package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildJSONSchema derives a loose JSON-Schema from a template: objects and
// arrays must keep their shape, leaf values accept anything. Used only for
// the advisory conformance check; model output is never rejected on it.
func BuildJSONSchema(template map[string]any) map[string]any {
	return schemaFor(template).(map[string]any)
}

func schemaFor(v any) any {
	switch t := v.(type) {
	case map[string]any:
		props := make(map[string]any, len(t))
		for k, val := range t {
			props[k] = schemaFor(val)
		}
		return map[string]any{
			"type":       "object",
			"properties": props,
		}
	case []any:
		s := map[string]any{"type": "array"}
		if len(t) > 0 {
			s["items"] = schemaFor(t[0])
		}
		return s
	default:
		// Leaf placeholder: any value, including null, is conformant.
		return map[string]any{}
	}
}

// Conforms validates record against the loose schema derived from template
// and returns the first mismatch, or nil.
func Conforms(template map[string]any, record map[string]any) error {
	schemaMap := BuildJSONSchema(template)
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	// Round-trip through encoding/json so numbers and nested types are in
	// the representation the validator expects.
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
