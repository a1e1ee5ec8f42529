// Package formshape decides which fields a discriminated form collects and how the
// form state is rebuilt when the discriminator changes.
//
// A Schema is a static table: one ordered field list per Kind, plus the allowlist of
// shared keys that survive a kind switch. The schema is the single source of truth for
// which keys are required, so callers never guess at variant shapes.
package formshape

import (
	"fmt"
)

// Kind is a discriminator value, e.g. a freight type or a hero-slide layout.
type Kind string

// FieldType is the primitive type of a form field.
type FieldType string

const (
	Text   FieldType = "text"
	Number FieldType = "number"
	Choice FieldType = "choice"
	Date   FieldType = "date"
	Bool   FieldType = "bool"
)

// DateLayout is the accepted layout for Date fields.
const DateLayout = "2006-01-02"

// Option is one entry of an enumerated choice.
type Option struct {
	Value string `json:"value" mapstructure:"value"`
	Label string `json:"label" mapstructure:"label"`
}

// Field describes a single kind-specific field.
type Field struct {
	Key      string    `json:"key"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	// Positive rejects zero and negative numbers.
	Positive bool     `json:"positive,omitempty"`
	Options  []Option `json:"options,omitempty"`
	Default  any      `json:"default,omitempty"`
}

// Variant is the field list of one Kind.
type Variant struct {
	Kind   Kind
	Fields []Field
}

// Schema maps kinds to their field lists.
type Schema struct {
	name   string
	kinds  []Kind
	fields map[Kind][]Field
	shared []string
}

// NewSchema builds a schema. Variants keep their declaration order.
func NewSchema(name string, shared []string, variants ...Variant) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: make(map[Kind][]Field, len(variants)),
		shared: append([]string(nil), shared...),
	}
	for _, v := range variants {
		if _, dup := s.fields[v.Kind]; dup {
			return nil, fmt.Errorf("%s: duplicate kind %q", name, v.Kind)
		}
		seen := make(map[string]bool, len(v.Fields))
		for _, f := range v.Fields {
			if f.Key == "" {
				return nil, fmt.Errorf("%s/%s: field without key", name, v.Kind)
			}
			if seen[f.Key] {
				return nil, fmt.Errorf("%s/%s: duplicate field %q", name, v.Kind, f.Key)
			}
			if f.Type == Choice && len(f.Options) == 0 {
				return nil, fmt.Errorf("%s/%s: choice field %q has no options", name, v.Kind, f.Key)
			}
			seen[f.Key] = true
		}
		s.kinds = append(s.kinds, v.Kind)
		s.fields[v.Kind] = append([]Field(nil), v.Fields...)
	}
	return s, nil
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Kinds returns the kinds in declaration order.
func (s *Schema) Kinds() []Kind { return append([]Kind(nil), s.kinds...) }

// Shared returns the keys preserved across a kind switch.
func (s *Schema) Shared() []string { return append([]string(nil), s.shared...) }

// Known reports whether kind is part of the schema.
func (s *Schema) Known(kind Kind) bool {
	_, ok := s.fields[kind]
	return ok
}

// FieldsFor returns the ordered fields of kind. Unknown kinds have no fields.
func (s *Schema) FieldsFor(kind Kind) []Field {
	return append([]Field(nil), s.fields[kind]...)
}

// Field looks up a field of kind by key.
func (s *Schema) Field(kind Kind, key string) (Field, bool) {
	for _, f := range s.fields[kind] {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
