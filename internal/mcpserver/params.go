package mcpserver

import "encoding/json"

// UnknownField records one argument name the caller sent that a tool's
// parameter struct did not recognize, surfaced back in the response so
// an LLM caller can learn the current schema instead of silently
// failing.
type UnknownField struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// normalizeAliases renames legacy field names to their current
// equivalents in a raw JSON object, and reports every field — aliased
// or not — that isn't in known. A renamed field only applies when the
// current name wasn't already present in data.
func normalizeAliases(data []byte, known map[string]struct{}, aliases map[string]string) (json.RawMessage, []UnknownField, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}

	normalized := make(map[string]json.RawMessage, len(raw))
	var warnings []UnknownField
	for key, value := range raw {
		target := key
		if canonical, ok := aliases[key]; ok {
			if _, present := raw[canonical]; present {
				continue
			}
			target = canonical
		} else if _, ok := known[key]; !ok {
			warnings = append(warnings, decodeUnknownField(key, value))
			continue
		}
		if _, exists := normalized[target]; !exists {
			normalized[target] = value
		}
	}

	out, err := json.Marshal(normalized)
	if err != nil {
		return nil, nil, err
	}
	return out, warnings, nil
}

func decodeUnknownField(name string, data json.RawMessage) UnknownField {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		value = string(data)
	}
	return UnknownField{Name: name, Value: value}
}
