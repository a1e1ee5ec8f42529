package formshape

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// State is the in-memory form: the selected kind plus every entered value.
type State struct {
	Kind   Kind           `json:"kind"`
	Values map[string]any `json:"values"`
}

// MissingFieldError names the first required field that is absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

// InvalidFieldError names a field whose value does not fit its type.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// Defaults returns a fresh payload for kind with every field at its default.
func (s *Schema) Defaults(kind Kind) map[string]any {
	fields := s.fields[kind]
	values := make(map[string]any, len(fields)+len(s.shared))
	for _, f := range fields {
		values[f.Key] = defaultFor(f)
	}
	return values
}

// OnKindChanged rebuilds the payload for kind: defaults first, then every shared key
// present in st is copied over. Anything else entered under the previous kind is
// dropped. Selecting the current kind again returns a copy of st.
func (s *Schema) OnKindChanged(kind Kind, st State) State {
	if kind == st.Kind {
		return State{Kind: st.Kind, Values: cloneValues(st.Values)}
	}
	values := s.Defaults(kind)
	for _, key := range s.shared {
		if v, ok := st.Values[key]; ok {
			values[key] = v
		}
	}
	return State{Kind: kind, Values: values}
}

// Project keeps only the values that belong to the fields of st.Kind.
func (s *Schema) Project(st State) map[string]any {
	out := make(map[string]any)
	for _, f := range s.fields[st.Kind] {
		if v, ok := st.Values[f.Key]; ok {
			out[f.Key] = v
		}
	}
	return out
}

// SharedValues keeps only the shared values of st.
func (s *Schema) SharedValues(st State) map[string]any {
	out := make(map[string]any)
	for _, key := range s.shared {
		if v, ok := st.Values[key]; ok {
			out[key] = v
		}
	}
	return out
}

// Validate checks st against the fields of st.Kind. Required fields are checked first,
// in declaration order, and the first gap is returned as *MissingFieldError. Present
// values are then type checked and a mismatch is returned as *InvalidFieldError.
// An unknown kind has no fields and therefore always passes.
func (s *Schema) Validate(st State) error {
	fields := s.fields[st.Kind]
	for _, f := range fields {
		if f.Required && missing(f, st.Values[f.Key]) {
			return &MissingFieldError{Field: f.Key}
		}
	}
	for _, f := range fields {
		v, ok := st.Values[f.Key]
		if !ok || isBlank(v) {
			continue
		}
		if reason := checkType(f, v); reason != "" {
			return &InvalidFieldError{Field: f.Key, Reason: reason}
		}
	}
	return nil
}

func defaultFor(f Field) any {
	if f.Default != nil {
		return f.Default
	}
	switch f.Type {
	case Bool:
		return false
	case Number:
		return nil
	default:
		return ""
	}
}

func missing(f Field, v any) bool {
	// booleans always carry a value
	if f.Type == Bool {
		return false
	}
	if isBlank(v) {
		return true
	}
	if f.Type == Number && f.Positive {
		d, ok := ToDecimal(v)
		return ok && !d.IsPositive()
	}
	return false
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

func checkType(f Field, v any) string {
	switch f.Type {
	case Text:
		if _, ok := v.(string); !ok {
			return "expected text"
		}
	case Number:
		d, ok := ToDecimal(v)
		if !ok {
			return "expected a number"
		}
		if f.Positive && !d.IsPositive() {
			return "must be greater than zero"
		}
	case Choice:
		str, ok := v.(string)
		if !ok {
			return "expected one of the listed options"
		}
		for _, o := range f.Options {
			if o.Value == str {
				return ""
			}
		}
		return fmt.Sprintf("%q is not a listed option", str)
	case Date:
		str, ok := v.(string)
		if !ok {
			return "expected a date"
		}
		if _, err := time.Parse(DateLayout, str); err != nil {
			return "expected a date in YYYY-MM-DD form"
		}
	case Bool:
		if _, ok := v.(bool); !ok {
			return "expected true or false"
		}
	}
	return ""
}

// ToDecimal converts the numeric shapes a decoded form may carry.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case float64:
		return decimal.NewFromFloat(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func cloneValues(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
