// Package location keeps country → city → district selections consistent.
//
// Turkey ("TR") is the only country with enumerated cities and districts.
// Every other country falls back to free-text city entry and has no district list.
package location

// CountryTurkey is the only country code with an enumerated city list.
const CountryTurkey = "TR"

// Country is a selectable country.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Catalog is the static reference data the resolver reads.
// Cities is ordered; Districts maps a Turkish city to its ordered district list.
type Catalog struct {
	Countries []Country
	Cities    []string
	Districts map[string][]string
}

// Address is one {country, city, district} triple of a form.
type Address struct {
	Country  string `json:"country"`
	City     string `json:"city"`
	District string `json:"district"`
}

// Pair is the origin/destination addresses of a form. Each side is resolved independently.
type Pair struct {
	Origin      Address `json:"origin"`
	Destination Address `json:"destination"`
}

// CityChoices tells the form which affordance to render for the city level.
type CityChoices struct {
	FreeText bool     `json:"free_text"`
	Cities   []string `json:"cities"`
}

// Resolver answers cascade questions over an immutable Catalog.
type Resolver struct {
	countries map[string]Country
	order     []Country
	cities    []string
	citySet   map[string]struct{}
	districts map[string][]string
}

// New copies cat into a Resolver. The caller may discard cat afterwards.
func New(cat Catalog) *Resolver {
	r := &Resolver{
		countries: make(map[string]Country, len(cat.Countries)),
		order:     append([]Country(nil), cat.Countries...),
		cities:    append([]string(nil), cat.Cities...),
		citySet:   make(map[string]struct{}, len(cat.Cities)),
		districts: make(map[string][]string, len(cat.Districts)),
	}
	for _, c := range cat.Countries {
		r.countries[c.Code] = c
	}
	for _, c := range cat.Cities {
		r.citySet[c] = struct{}{}
	}
	for city, list := range cat.Districts {
		r.districts[city] = append([]string(nil), list...)
	}
	return r
}

// Countries returns the ordered country list.
func (r *Resolver) Countries() []Country {
	return append([]Country(nil), r.order...)
}

// HasCountry reports whether code is a configured country.
func (r *Resolver) HasCountry(code string) bool {
	_, ok := r.countries[code]
	return ok
}

// CitiesFor returns the enumerated Turkish cities, or FreeText for any other country.
func (r *Resolver) CitiesFor(country string) CityChoices {
	if country != CountryTurkey {
		return CityChoices{FreeText: true}
	}
	return CityChoices{Cities: append([]string(nil), r.cities...)}
}

// DistrictsFor returns the districts of a Turkish city. The result is empty for
// non-Turkish countries and for cities without an enumerated list.
func (r *Resolver) DistrictsFor(country, city string) []string {
	if country != CountryTurkey {
		return nil
	}
	return append([]string(nil), r.districts[city]...)
}

// OnCountryChanged sets the country and always clears city and district.
func (r *Resolver) OnCountryChanged(country string, a Address) Address {
	return Address{Country: country}
}

// OnCityChanged sets the city and keeps the district only if the new city lists it.
// Reselecting the current city leaves the address untouched.
func (r *Resolver) OnCityChanged(city string, a Address) Address {
	if city == a.City {
		return a
	}
	next := Address{Country: a.Country, City: city}
	if r.hasDistrict(a.Country, city, a.District) {
		next.District = a.District
	}
	return next
}

// Normalize re-validates an address coming from persisted or client data and clears
// whatever no longer fits the catalog. Free-text districts survive only for cities
// that have no enumerated list.
func (r *Resolver) Normalize(a Address) Address {
	if a.Country == "" {
		return Address{}
	}
	if len(r.countries) > 0 && !r.HasCountry(a.Country) {
		return Address{}
	}
	if a.Country != CountryTurkey {
		// free text at both levels
		return a
	}
	if _, ok := r.citySet[a.City]; !ok {
		return Address{Country: a.Country}
	}
	if a.District == "" || len(r.districts[a.City]) == 0 {
		return a
	}
	if !r.hasDistrict(a.Country, a.City, a.District) {
		a.District = ""
	}
	return a
}

// NormalizePair normalizes both sides of p.
func (r *Resolver) NormalizePair(p Pair) Pair {
	return Pair{Origin: r.Normalize(p.Origin), Destination: r.Normalize(p.Destination)}
}

func (r *Resolver) hasDistrict(country, city, district string) bool {
	if district == "" || country != CountryTurkey {
		return false
	}
	for _, d := range r.districts[city] {
		if d == district {
			return true
		}
	}
	return false
}
