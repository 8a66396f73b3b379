package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// objectSchema describes a JSON object of string properties. A nil
// required list makes no property mandatory.
func objectSchema(fields, required []string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         required,
		PropertyOrdering: fields,
	}
}

func arraySchema(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

func stringArraySchema() *genai.Schema {
	return arraySchema(&genai.Schema{Type: genai.TypeString})
}

// decodeJSON unmarshals a model response, tolerating a surrounding code
// fence.
func decodeJSON(op, text string, out any) error {
	if err := json.Unmarshal([]byte(stripFence(text)), out); err != nil {
		return fmt.Errorf("%w: %s: malformed JSON: %v", ErrNoContent, op, err)
	}
	return nil
}

// stripFence removes a leading ```lang line and a trailing ``` line.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
