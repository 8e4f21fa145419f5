package persist

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML reads a flat YAML mapping. Nested mappings or sequences are
// skipped: they cannot carry a single parameter value.
func ParseYAML(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("yaml document is not a mapping")
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v.(type) {
		case nil, map[string]any, []any:
			continue
		default:
			values[k] = fmt.Sprint(v)
		}
	}
	return values, nil
}
