package formshape

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func opts(values ...string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: v, Label: v})
	}
	return out
}

func freightFixture(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema("freight",
		[]string{"contactPerson", "mobilePhone", "email", "companyName", "loadingDate", "description", "isActive"},
		Variant{Kind: "Ticari", Fields: []Field{
			{Key: "cargoType", Type: Choice, Required: true, Options: opts("Tekstil", "Gıda")},
			{Key: "vehicleNeeded", Type: Choice, Required: true, Options: opts("Tır", "Kamyon")},
			{Key: "loadingType", Type: Choice, Required: true, Options: opts("Komple", "Parsiyel")},
			{Key: "cargoForm", Type: Choice, Required: true, Options: opts("Paletli", "Dökme")},
			{Key: "cargoWeight", Type: Number, Required: true, Positive: true},
			{Key: "cargoWeightUnit", Type: Choice, Required: true, Options: opts("kg", "ton"), Default: "ton"},
			{Key: "isContinuousLoad", Type: Bool},
		}},
		Variant{Kind: "Evden Eve", Fields: []Field{
			{Key: "residentialTransportType", Type: Choice, Required: true, Options: opts("Şehir İçi", "Şehirler Arası")},
			{Key: "residentialPlaceType", Type: Choice, Required: true, Options: opts("Daire", "Villa")},
			{Key: "residentialElevatorStatus", Type: Choice, Required: true, Options: opts("Var", "Yok")},
			{Key: "residentialFloorLevel", Type: Choice, Required: true, Options: opts("Zemin", "1", "2")},
		}},
		Variant{Kind: "Boş Araç", Fields: []Field{
			{Key: "emptyVehicleType", Type: Choice, Required: true, Options: opts("Tır", "Kamyon")},
			{Key: "serviceType", Type: Choice, Required: true, Options: opts("Yurt İçi", "Uluslararası")},
			{Key: "vehicleStatedCapacity", Type: Number, Required: true, Positive: true},
			{Key: "vehicleStatedCapacityUnit", Type: Choice, Required: true, Options: opts("kg", "ton"), Default: "ton"},
		}},
	)
	require.NoError(t, err)
	return s
}

func slideFixture(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema("hero-slide", []string{"title", "isActive", "order"},
		Variant{Kind: "centered", Fields: []Field{
			{Key: "title", Type: Text, Required: true},
			{Key: "buttonText", Type: Text},
			{Key: "buttonLink", Type: Text},
		}},
		Variant{Kind: "title-only", Fields: []Field{
			{Key: "title", Type: Text, Required: true},
		}},
	)
	require.NoError(t, err)
	return s
}

func completeValues(t *testing.T, s *Schema, kind Kind) map[string]any {
	t.Helper()
	values := map[string]any{}
	for _, f := range s.FieldsFor(kind) {
		switch f.Type {
		case Choice:
			values[f.Key] = f.Options[0].Value
		case Number:
			values[f.Key] = 10.5
		case Bool:
			values[f.Key] = true
		case Date:
			values[f.Key] = "2024-06-01"
		default:
			values[f.Key] = "x"
		}
	}
	return values
}

func TestNewSchemaRejectsBadTables(t *testing.T) {
	tests := []struct {
		name     string
		variants []Variant
	}{
		{"duplicate kind", []Variant{{Kind: "a"}, {Kind: "a"}}},
		{"duplicate field", []Variant{{Kind: "a", Fields: []Field{{Key: "x", Type: Text}, {Key: "x", Type: Text}}}}},
		{"empty key", []Variant{{Kind: "a", Fields: []Field{{Type: Text}}}}},
		{"choice without options", []Variant{{Kind: "a", Fields: []Field{{Key: "x", Type: Choice}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema("bad", nil, tt.variants...)
			require.Error(t, err)
		})
	}
}

func TestFieldsForKeepsDeclarationOrder(t *testing.T) {
	s := freightFixture(t)
	var keys []string
	for _, f := range s.FieldsFor("Boş Araç") {
		keys = append(keys, f.Key)
	}
	require.Equal(t, []string{"emptyVehicleType", "serviceType", "vehicleStatedCapacity", "vehicleStatedCapacityUnit"}, keys)
}

func TestFieldsForUnknownKindIsEmpty(t *testing.T) {
	s := freightFixture(t)
	require.Empty(t, s.FieldsFor("Parsiyel Kargo"))
	require.False(t, s.Known("Parsiyel Kargo"))

	st := State{Kind: "Parsiyel Kargo", Values: map[string]any{"companyName": "X"}}
	require.NoError(t, s.Validate(st), "unknown kind should validate an empty field set")
}

func TestOnKindChangedFreightScenario(t *testing.T) {
	s := freightFixture(t)
	st := State{Kind: "Ticari", Values: map[string]any{
		"cargoType":   "Tekstil",
		"cargoWeight": 12,
		"companyName": "X",
		"mobilePhone": "555",
		"loadingDate": "2024-06-01",
	}}

	got := s.OnKindChanged("Evden Eve", st)

	require.Equal(t, Kind("Evden Eve"), got.Kind)
	for _, key := range []string{"companyName", "mobilePhone", "loadingDate"} {
		require.Equal(t, st.Values[key], got.Values[key], key)
	}
	require.NotContains(t, got.Values, "cargoType")
	require.NotContains(t, got.Values, "cargoWeight")
	for _, f := range s.FieldsFor("Evden Eve") {
		require.Contains(t, got.Values, f.Key)
		require.Equal(t, "", got.Values[f.Key], f.Key)
	}
}

func TestOnKindChangedSlideScenario(t *testing.T) {
	s := slideFixture(t)
	st := State{Kind: "centered", Values: map[string]any{"title": "Promo", "buttonText": "Git"}}

	got := s.OnKindChanged("title-only", st)

	require.Equal(t, "Promo", got.Values["title"])
	require.NotContains(t, got.Values, "buttonText")
}

func TestOnKindChangedPreservesOnlySharedFields(t *testing.T) {
	s := freightFixture(t)
	shared := map[string]any{
		"contactPerson": "Ayşe",
		"mobilePhone":   "5551112233",
		"email":         "a@b.com",
		"companyName":   "ACME",
		"loadingDate":   "2024-06-01",
		"description":   "acil",
		"isActive":      true,
	}

	for _, from := range s.Kinds() {
		for _, to := range s.Kinds() {
			if from == to {
				continue
			}
			t.Run(string(from)+"→"+string(to), func(t *testing.T) {
				values := completeValues(t, s, from)
				for k, v := range shared {
					values[k] = v
				}
				got := s.OnKindChanged(to, State{Kind: from, Values: values})

				for k, v := range shared {
					require.Equal(t, v, got.Values[k], k)
				}
				for _, f := range s.FieldsFor(from) {
					if _, inNew := s.Field(to, f.Key); inNew {
						continue
					}
					require.NotContains(t, got.Values, f.Key)
				}
			})
		}
	}
}

func TestOnKindChangedAppliesDefaults(t *testing.T) {
	s := freightFixture(t)
	got := s.OnKindChanged("Ticari", State{Kind: "Evden Eve", Values: map[string]any{}})

	require.Equal(t, "ton", got.Values["cargoWeightUnit"])
	require.Equal(t, false, got.Values["isContinuousLoad"])
	require.Contains(t, got.Values, "cargoWeight")
	require.Nil(t, got.Values["cargoWeight"])
}

func TestOnKindChangedSameKindIsCopy(t *testing.T) {
	s := freightFixture(t)
	st := State{Kind: "Ticari", Values: map[string]any{"cargoType": "Gıda"}}
	got := s.OnKindChanged("Ticari", st)
	got.Values["cargoType"] = "Tekstil"

	require.Equal(t, "Gıda", st.Values["cargoType"], "input state was mutated")
}

func TestValidateFailsOnFirstMissingField(t *testing.T) {
	s := freightFixture(t)
	for _, kind := range s.Kinds() {
		for _, f := range s.FieldsFor(kind) {
			if !f.Required {
				continue
			}
			t.Run(string(kind)+"/"+f.Key, func(t *testing.T) {
				values := completeValues(t, s, kind)
				delete(values, f.Key)
				err := s.Validate(State{Kind: kind, Values: values})

				var missing *MissingFieldError
				require.ErrorAs(t, err, &missing)
				require.Equal(t, f.Key, missing.Field)
			})
		}
	}
}

func TestValidateEmptyVehicleCapacityScenario(t *testing.T) {
	s := freightFixture(t)
	values := completeValues(t, s, "Boş Araç")
	delete(values, "vehicleStatedCapacity")

	err := s.Validate(State{Kind: "Boş Araç", Values: values})
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "vehicleStatedCapacity", missing.Field)
}

func TestValidateZeroWeightCountsAsMissing(t *testing.T) {
	s := freightFixture(t)
	tests := []struct {
		name string
		zero any
	}{
		{"int", 0},
		{"float", 0.0},
		{"string", "0"},
		{"json number", json.Number("0")},
		{"negative", -3},
		{"decimal", decimal.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := completeValues(t, s, "Ticari")
			values["cargoWeight"] = tt.zero
			err := s.Validate(State{Kind: "Ticari", Values: values})

			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			require.Equal(t, "cargoWeight", missing.Field)
		})
	}
}

func TestValidateContinuousLoadIsNeverMissing(t *testing.T) {
	s := freightFixture(t)
	values := completeValues(t, s, "Ticari")
	delete(values, "isContinuousLoad")

	require.NoError(t, s.Validate(State{Kind: "Ticari", Values: values}))
}

func TestValidateTypeChecks(t *testing.T) {
	s := freightFixture(t)
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"unknown option", "cargoType", "Uranyum"},
		{"non numeric weight", "cargoWeight", "ağır"},
		{"bool as string", "isContinuousLoad", "yes"},
		{"choice as number", "loadingType", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := completeValues(t, s, "Ticari")
			values[tt.key] = tt.value
			err := s.Validate(State{Kind: "Ticari", Values: values})

			var invalid *InvalidFieldError
			require.ErrorAs(t, err, &invalid)
			require.Equal(t, tt.key, invalid.Field)
		})
	}
}

func TestValidateMissingBeatsInvalid(t *testing.T) {
	s := freightFixture(t)
	values := completeValues(t, s, "Ticari")
	values["cargoType"] = "Uranyum"
	delete(values, "cargoWeightUnit")

	err := s.Validate(State{Kind: "Ticari", Values: values})
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "cargoWeightUnit", missing.Field)
}

func TestProject(t *testing.T) {
	s := freightFixture(t)
	st := State{Kind: "Boş Araç", Values: map[string]any{
		"emptyVehicleType": "Tır",
		"cargoType":        "Tekstil",
		"companyName":      "ACME",
	}}

	require.Equal(t, map[string]any{"emptyVehicleType": "Tır"}, s.Project(st))
	require.Equal(t, map[string]any{"companyName": "ACME"}, s.SharedValues(st))
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{"int", 12, "12", true},
		{"int64", int64(7), "7", true},
		{"float", 2.5, "2.5", true},
		{"json number", json.Number("3.25"), "3.25", true},
		{"padded string", " 4 ", "4", true},
		{"text", "abc", "", false},
		{"bool", true, "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToDecimal(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.want, got.String())
			}
		})
	}
}
