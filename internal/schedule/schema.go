package schedule

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// slotArraySchema is the contract the completion service is asked to meet:
// a JSON array of slot objects, each with a title, a start time, and either
// an end time or a duration in minutes.
var slotArraySchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":     map[string]any{"type": "string", "minLength": 1},
			"startTime": map[string]any{"type": "string", "minLength": 1},
			"endTime":   map[string]any{"type": "string"},
			"duration":  map[string]any{"type": "integer", "minimum": 1},
			"priority":  map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
			"notes":     map[string]any{"type": "string"},
		},
		"required": []any{"title", "startTime"},
		"anyOf": []any{
			map[string]any{"required": []any{"endTime"}},
			map[string]any{"required": []any{"duration"}},
		},
	},
}

var (
	compileSlotSchema sync.Once
	compiledSlots     *jsonschema.Schema
	slotSchemaErr     error
)

// validateSlotArray checks the extracted candidate slots against the slot
// array schema. Takes the slots after lenient extraction so prose wrappers
// have already been stripped.
func validateSlotArray(slots []RawSlot) error {
	compileSlotSchema.Do(func() {
		defBytes, err := json.Marshal(slotArraySchema)
		if err != nil {
			slotSchemaErr = fmt.Errorf("marshal slot schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			slotSchemaErr = fmt.Errorf("parse slot schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const schemaURL = "schema://study-slots.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			slotSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSlots, slotSchemaErr = c.Compile(schemaURL)
	})
	if slotSchemaErr != nil {
		return slotSchemaErr
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("marshal slots: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse slots: %w", err)
	}
	if err := compiledSlots.Validate(parsed); err != nil {
		return fmt.Errorf("slot schema validation failed: %w", err)
	}
	return nil
}
