package location

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fixtureResolver() *Resolver {
	return New(Catalog{
		Countries: []Country{
			{Code: "TR", Name: "Türkiye"},
			{Code: "DE", Name: "Almanya"},
			{Code: "NL", Name: "Hollanda"},
		},
		Cities: []string{"Adana", "Ankara", "İstanbul", "Bayburt"},
		Districts: map[string][]string{
			"Adana":    {"Seyhan", "Çukurova"},
			"Ankara":   {"Çankaya", "Keçiören", "Yenimahalle"},
			"İstanbul": {"Kadıköy", "Beşiktaş", "Yenimahalle"},
		},
	})
}

func TestCitiesFor(t *testing.T) {
	r := fixtureResolver()

	got := r.CitiesFor("TR")
	require.False(t, got.FreeText, "TR should have an enumerated city list")
	require.Equal(t, []string{"Adana", "Ankara", "İstanbul", "Bayburt"}, got.Cities)

	for _, country := range []string{"DE", "NL", "", "XX"} {
		t.Run("free text "+country, func(t *testing.T) {
			got := r.CitiesFor(country)
			require.True(t, got.FreeText)
			require.Empty(t, got.Cities)
		})
	}
}

func TestCitiesForReturnsCopy(t *testing.T) {
	r := fixtureResolver()
	got := r.CitiesFor("TR")
	got.Cities[0] = "Mutated"

	require.Equal(t, "Adana", r.CitiesFor("TR").Cities[0], "catalog was mutated through CitiesFor result")
}

func TestDistrictsFor(t *testing.T) {
	r := fixtureResolver()

	tests := []struct {
		name    string
		country string
		city    string
		want    []string
	}{
		{"enumerated city", "TR", "Ankara", []string{"Çankaya", "Keçiören", "Yenimahalle"}},
		{"city without list", "TR", "Bayburt", nil},
		{"unknown city", "TR", "Gotham", nil},
		{"foreign country", "DE", "Ankara", nil},
		{"foreign free text city", "DE", "Berlin", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.DistrictsFor(tt.country, tt.city)
			if tt.want == nil {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestOnCountryChangedClearsSubordinates(t *testing.T) {
	r := fixtureResolver()

	states := []Address{
		{Country: "TR", City: "İstanbul", District: "Kadıköy"},
		{Country: "TR", City: "Ankara"},
		{Country: "DE", City: "Berlin", District: "Mitte"},
		{},
	}
	for _, s := range states {
		for _, country := range []string{"TR", "DE", "NL"} {
			if country == s.Country {
				continue
			}
			require.Equalf(t, Address{Country: country}, r.OnCountryChanged(country, s), "OnCountryChanged(%q, %+v)", country, s)
		}
	}
}

func TestOnCountryChangedScenario(t *testing.T) {
	r := fixtureResolver()
	got := r.OnCountryChanged("DE", Address{Country: "TR", City: "İstanbul", District: "Kadıköy"})
	require.Equal(t, Address{Country: "DE"}, got)
}

func TestOnCityChanged(t *testing.T) {
	r := fixtureResolver()

	tests := []struct {
		name  string
		state Address
		city  string
		want  Address
	}{
		{
			name:  "district missing from new city",
			state: Address{Country: "TR", City: "İstanbul", District: "Kadıköy"},
			city:  "Ankara",
			want:  Address{Country: "TR", City: "Ankara"},
		},
		{
			name:  "district shared by both cities",
			state: Address{Country: "TR", City: "İstanbul", District: "Yenimahalle"},
			city:  "Ankara",
			want:  Address{Country: "TR", City: "Ankara", District: "Yenimahalle"},
		},
		{
			name:  "new city has no list",
			state: Address{Country: "TR", City: "Ankara", District: "Çankaya"},
			city:  "Bayburt",
			want:  Address{Country: "TR", City: "Bayburt"},
		},
		{
			name:  "foreign free text",
			state: Address{Country: "DE", City: "Berlin", District: "Mitte"},
			city:  "Hamburg",
			want:  Address{Country: "DE", City: "Hamburg"},
		},
		{
			name:  "empty district stays empty",
			state: Address{Country: "TR", City: "Adana"},
			city:  "Ankara",
			want:  Address{Country: "TR", City: "Ankara"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, r.OnCityChanged(tt.city, tt.state))
		})
	}
}

func TestOnCityChangedReselectIsNoop(t *testing.T) {
	r := fixtureResolver()

	states := []Address{
		{Country: "TR", City: "İstanbul", District: "Kadıköy"},
		{Country: "TR", City: "Bayburt", District: "Merkez"},
		{Country: "DE", City: "Berlin", District: "Mitte"},
		{Country: "TR"},
	}
	for _, s := range states {
		require.Equalf(t, s, r.OnCityChanged(s.City, s), "reselecting %q", s.City)
	}
}

func TestNormalize(t *testing.T) {
	r := fixtureResolver()

	tests := []struct {
		name string
		in   Address
		want Address
	}{
		{"valid triple", Address{"TR", "Ankara", "Çankaya"}, Address{"TR", "Ankara", "Çankaya"}},
		{"stale district", Address{"TR", "Ankara", "Kadıköy"}, Address{"TR", "Ankara", ""}},
		{"free text where list exists", Address{"TR", "Adana", "merkez civarı"}, Address{"TR", "Adana", ""}},
		{"free text where no list", Address{"TR", "Bayburt", "Merkez"}, Address{"TR", "Bayburt", "Merkez"}},
		{"city outside list", Address{"TR", "Gotham", "Kadıköy"}, Address{"TR", "", ""}},
		{"foreign keeps free text", Address{"DE", "Berlin", "Mitte"}, Address{"DE", "Berlin", "Mitte"}},
		{"unknown country", Address{"XX", "Somewhere", "Else"}, Address{}},
		{"empty country", Address{"", "Ankara", "Çankaya"}, Address{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, r.Normalize(tt.in))
		})
	}
}

func TestNormalizePairIsIndependent(t *testing.T) {
	r := fixtureResolver()
	p := Pair{
		Origin:      Address{Country: "TR", City: "İstanbul", District: "Çankaya"},
		Destination: Address{Country: "TR", City: "Ankara", District: "Çankaya"},
	}
	got := r.NormalizePair(p)
	require.Empty(t, got.Origin.District, "origin district should be cleared")
	require.Equal(t, "Çankaya", got.Destination.District)
}
