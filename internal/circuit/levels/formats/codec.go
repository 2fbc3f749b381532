package formats

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Record, error) {
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return r, nil
}

// ParseJSON parses a JSON level file. Unknown fields are rejected.
func ParseJSON(data []byte) (Record, error) {
	var r Record
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Record{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return r, nil
}

// MarshalYAML encodes a record as YAML.
func MarshalYAML(r Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalJSON encodes a record as indented JSON.
func MarshalJSON(r Record) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(data, '\n'), nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}

// Parse routes to the parser for the given extension.
func Parse(data []byte, ext string) (Record, error) {
	switch ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return Record{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// Marshal routes to the encoder for the given extension.
func Marshal(r Record, ext string) ([]byte, error) {
	switch ext {
	case ".yaml", ".yml":
		return MarshalYAML(r)
	case ".json":
		return MarshalJSON(r)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}
