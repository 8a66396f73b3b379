package form

import (
	"encoding/json"
	"fmt"
)

// Apply overlays fields, keyed by their JSON names, onto a copy of d. Keys
// that are not form fields are ignored; blank values do not clear anything.
func (d Data) Apply(fields map[string]string) (Data, error) {
	patch := make(map[string]string, len(fields))
	for k, v := range fields {
		if v != "" {
			patch[k] = v
		}
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return d, err
	}
	out := d
	if err := json.Unmarshal(raw, &out); err != nil {
		return d, fmt.Errorf("apply fields: %w", err)
	}
	return out, nil
}

// Overlay unmarshals a possibly partial JSON object over a copy of d. Keys
// missing from raw keep their current value.
func (d Data) Overlay(raw json.RawMessage) (Data, error) {
	if len(raw) == 0 {
		return d, nil
	}
	out := d
	if err := json.Unmarshal(raw, &out); err != nil {
		return d, fmt.Errorf("overlay form data: %w", err)
	}
	return out, nil
}
