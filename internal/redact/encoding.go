package redact

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SanitizeJSON decodes a JSON document, redacts it and re-encodes it with
// two-space indentation. Numbers are kept verbatim.
func (s Sanitizer) SanitizeJSON(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	out, err := json.MarshalIndent(s.Value(v), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// SanitizeYAML decodes a YAML document, redacts it and re-encodes it.
func (s Sanitizer) SanitizeYAML(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	out, err := yaml.Marshal(s.Value(v))
	if err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return out, nil
}
