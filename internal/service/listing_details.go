package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"

	"nakliye/internal/catalog"
	"nakliye/internal/formshape"
	"nakliye/internal/model"
)

// encodeDetails stores the type-specific values of kind as its typed document.
func encodeDetails(kind formshape.Kind, values map[string]interface{}) (string, error) {
	var doc interface{}
	switch kind {
	case catalog.FreightCommercial:
		doc = &model.CommercialFreightDetails{}
	case catalog.FreightResidential:
		doc = &model.ResidentialMoveDetails{}
	case catalog.FreightEmptyTruck:
		doc = &model.EmptyVehicleDetails{}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s details: %w", kind, err)
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return "", fmt.Errorf("failed to decode %s details: %w", kind, err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decodeValues reads a stored JSON document back into form values. Corrupt documents
// degrade to an empty map.
func decodeValues(raw string) map[string]interface{} {
	values := map[string]interface{}{}
	if raw == "" {
		return values
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	if err := dec.Decode(&values); err != nil {
		log.Printf("WARNING: unreadable details document: %v", err)
		return map[string]interface{}{}
	}
	return values
}

// staleChoices resets choice values that are no longer listed options and reports
// their keys.
func staleChoices(schema *formshape.Schema, st formshape.State, prefix string) []string {
	var cleared []string
	for _, f := range schema.FieldsFor(st.Kind) {
		if f.Type != formshape.Choice {
			continue
		}
		v, ok := st.Values[f.Key].(string)
		if !ok || v == "" {
			continue
		}
		listed := false
		for _, o := range f.Options {
			if o.Value == v {
				listed = true
				break
			}
		}
		if !listed {
			st.Values[f.Key] = schema.Defaults(st.Kind)[f.Key]
			cleared = append(cleared, prefix+f.Key)
		}
	}
	return cleared
}
