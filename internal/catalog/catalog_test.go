package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nakliye/internal/formshape"
	"nakliye/internal/location"
)

func TestLoadEmbeddedData(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	cities := c.Locations().CitiesFor(location.CountryTurkey)
	require.False(t, cities.FreeText, "TR cities should be enumerated")
	require.Len(t, cities.Cities, 81)
	require.Equal(t, "Adana", cities.Cities[0])
	require.Equal(t, "Düzce", cities.Cities[80])

	require.True(t, c.Locations().HasCountry("DE"))

	require.Len(t, c.Locations().DistrictsFor("TR", "İstanbul"), 39)
	require.Empty(t, c.Locations().DistrictsFor("TR", "Bayburt"), "Bayburt should fall back to free text")

	for _, name := range tableNames {
		opts, ok := c.Table(name)
		require.Truef(t, ok, "table %s missing", name)
		require.NotEmpty(t, opts, name)
	}
}

func TestCascadeScenarioOnRealData(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	r := c.Locations()

	start := location.Address{Country: "TR", City: "İstanbul", District: "Kadıköy"}
	require.Equal(t, location.Address{Country: "TR", City: "Ankara"}, r.OnCityChanged("Ankara", start))
	require.Equal(t, location.Address{Country: "DE"}, r.OnCountryChanged("DE", start))
}

func TestFreightSchema(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	s := c.FreightSchema()

	require.Equal(t, []formshape.Kind{FreightCommercial, FreightResidential, FreightEmptyTruck}, s.Kinds())

	st := formshape.State{Kind: FreightEmptyTruck, Values: map[string]any{
		"emptyVehicleType":          "Tır",
		"serviceType":               "Yurt İçi",
		"vehicleStatedCapacityUnit": "ton",
	}}
	var missing *formshape.MissingFieldError
	require.ErrorAs(t, s.Validate(st), &missing)
	require.Equal(t, "vehicleStatedCapacity", missing.Field)

	st.Values["vehicleStatedCapacity"] = 24
	require.NoError(t, s.Validate(st))
}

func TestHeroSlideSchema(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	s := c.HeroSlideSchema()

	require.Len(t, s.Kinds(), 6)

	st := formshape.State{Kind: SlideCentered, Values: map[string]any{"title": "Promo", "buttonText": "Git"}}
	got := s.OnKindChanged(SlideTitleOnly, st)
	require.Equal(t, "Promo", got.Values["title"])
	require.NotContains(t, got.Values, "buttonText")

	split := s.OnKindChanged(SlideSplit, got)
	require.Equal(t, "right", split.Values["imagePosition"])
}

func TestParseRejectsDuplicates(t *testing.T) {
	opts, err := dataFS.ReadFile("data/options.yaml")
	require.NoError(t, err)

	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate country", "countries:\n  - {code: TR, name: A}\n  - {code: TR, name: B}\ncities: []\n"},
		{"duplicate city", "countries: []\ncities:\n  - {name: Ankara, districts: []}\n  - {name: Ankara, districts: []}\n"},
		{"duplicate district", "countries: []\ncities:\n  - {name: Ankara, districts: [Çankaya, Çankaya]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), opts)
			require.Error(t, err)
		})
	}
}

func TestParseRejectsMissingTable(t *testing.T) {
	locs, err := dataFS.ReadFile("data/locations.yaml")
	require.NoError(t, err)

	_, err = Parse(locs, []byte("cargo_types:\n  - {value: a, label: a}\n"))
	require.Error(t, err, "tables other than cargo_types are missing")
}

func TestHasOption(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tests := []struct {
		value string
		want  bool
	}{
		{"TRY", true},
		{"BTC", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			require.Equal(t, tt.want, c.HasOption(TableCurrencies, tt.value))
		})
	}
}
