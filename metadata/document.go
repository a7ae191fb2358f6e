package metadata

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Document is the JSON-serializable metadata for a schema: the selected
// models, the enums, and a version fingerprint of the full model set.
type Document struct {
	Models  *Map[*Model] `json:"models"`
	Enums   *Map[Enum]   `json:"enums"`
	Version string       `json:"version"`
}

// Model is the metadata entry for one selected model. The containing map
// keys entries by the model's original schema name while Name carries the
// generated display name; downstream consumers rely on that split.
type Model struct {
	Name             string      `json:"name"`
	TargetName       string      `json:"targetName"`
	PluralTargetName string      `json:"pluralTargetName"`
	Attributes       []Attribute `json:"attributes"`
	Fields           *Map[Field] `json:"fields"`
	Syncable         bool        `json:"syncable"`
}

// Field is the metadata entry for one model field, keyed in the containing
// map by the field's display name.
type Field struct {
	Name       string      `json:"name"`
	TargetName string      `json:"targetName"`
	IsArray    bool        `json:"isArray"`
	Type       FieldType   `json:"type"`
	IsRequired bool        `json:"isRequired"`
	Attributes []Attribute `json:"attributes"`
}

// Attribute is a tagged key-value record. Type is free-form (a directive
// name, or "connection"); Properties carries the arguments verbatim.
type Attribute struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// Enum pairs an enum's registry name with its ordered values.
type Enum struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// FieldType is a tagged record holding exactly one of a scalar tag, an enum
// reference, or a model reference. It marshals to either a bare string
// ("String") or a single-key object ({"enum": ...} / {"model": ...}).
type FieldType struct {
	Scalar string
	Enum   string
	Model  string
}

type enumRef struct {
	Enum string `json:"enum"`
}

type modelRef struct {
	Model string `json:"model"`
}

// MarshalJSON implements json.Marshaler.
func (t FieldType) MarshalJSON() ([]byte, error) {
	switch {
	case t.Scalar != "":
		return json.Marshal(t.Scalar)
	case t.Enum != "":
		return json.Marshal(enumRef{Enum: t.Enum})
	case t.Model != "":
		return json.Marshal(modelRef{Model: t.Model})
	}
	return nil, fmt.Errorf("metadata: empty field type")
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *FieldType) UnmarshalJSON(data []byte) error {
	*t = FieldType{}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.Scalar)
	}

	var ref struct {
		Enum  string `json:"enum"`
		Model string `json:"model"`
	}
	if err := json.Unmarshal(data, &ref); err != nil {
		return err
	}
	t.Enum, t.Model = ref.Enum, ref.Model
	return nil
}

// Map is a string-keyed map that preserves insertion order through JSON
// marshalling and unmarshalling. The document's key order mirrors
// schema-traversal order, which plain Go maps would sort away.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// NewMap returns an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{values: make(map[string]V)}
}

// Set inserts or replaces the value for key, keeping first-insertion order.
func (m *Map[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key.
func (m *Map[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries.
func (m *Map[V]) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *Map[V]) Keys() []string { return append([]string(nil), m.keys...) }

// MarshalJSON implements json.Marshaler, emitting keys in insertion order.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')

		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, recording key order as read.
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("metadata: expected JSON object, got %v", tok)
	}

	m.keys = nil
	m.values = make(map[string]V)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("metadata: expected object key, got %v", tok)
		}

		var v V
		if err := dec.Decode(&v); err != nil {
			return err
		}
		m.Set(key, v)
	}

	_, err = dec.Token() // closing brace
	return err
}
