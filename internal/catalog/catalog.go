// Package catalog loads the static reference data shared by every form: countries,
// Turkish cities and districts, and the option tables behind each dropdown. It also
// builds the freight and hero-slide form schemas from those tables.
//
// The data is embedded at build time and never mutated after Load.
package catalog

import (
	"bytes"
	"embed"
	"fmt"

	"nakliye/internal/formshape"
	"nakliye/internal/location"

	"github.com/spf13/viper"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Option table names, as exposed by the API.
const (
	TableCargoTypes                  = "cargo_types"
	TableVehicleTypes                = "vehicle_types"
	TableLoadingTypes                = "loading_types"
	TableCargoForms                  = "cargo_forms"
	TableWeightUnits                 = "weight_units"
	TableResidentialTransportTypes   = "residential_transport_types"
	TableResidentialPlaceTypes       = "residential_place_types"
	TableResidentialElevatorStatuses = "residential_elevator_statuses"
	TableResidentialFloorLevels      = "residential_floor_levels"
	TableServiceTypes                = "service_types"
	TableCapacityUnits               = "capacity_units"
	TableWorkingRoutes               = "working_routes"
	TableCurrencies                  = "currencies"
	TableImagePositions              = "image_positions"
)

var tableNames = []string{
	TableCargoTypes,
	TableVehicleTypes,
	TableLoadingTypes,
	TableCargoForms,
	TableWeightUnits,
	TableResidentialTransportTypes,
	TableResidentialPlaceTypes,
	TableResidentialElevatorStatuses,
	TableResidentialFloorLevels,
	TableServiceTypes,
	TableCapacityUnits,
	TableWorkingRoutes,
	TableCurrencies,
	TableImagePositions,
}

type cityEntry struct {
	Name      string   `mapstructure:"name"`
	Districts []string `mapstructure:"districts"`
}

type countryEntry struct {
	Code string `mapstructure:"code"`
	Name string `mapstructure:"name"`
}

// Catalog is the loaded reference data.
type Catalog struct {
	locations location.Catalog
	resolver  *location.Resolver
	tables    map[string][]formshape.Option
	freight   *formshape.Schema
	slides    *formshape.Schema
}

// Load parses the embedded reference data.
func Load() (*Catalog, error) {
	locs, err := dataFS.ReadFile("data/locations.yaml")
	if err != nil {
		return nil, fmt.Errorf("read locations: %w", err)
	}
	opts, err := dataFS.ReadFile("data/options.yaml")
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	return Parse(locs, opts)
}

// Parse builds a Catalog from raw YAML documents.
func Parse(locationsYAML, optionsYAML []byte) (*Catalog, error) {
	locs, err := parseLocations(locationsYAML)
	if err != nil {
		return nil, err
	}
	tables, err := parseTables(optionsYAML)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		locations: locs,
		resolver:  location.New(locs),
		tables:    tables,
	}
	if c.freight, err = buildFreightSchema(tables); err != nil {
		return nil, err
	}
	if c.slides, err = buildHeroSlideSchema(tables); err != nil {
		return nil, err
	}
	return c, nil
}

// Locations returns the cascade resolver over the loaded locations.
func (c *Catalog) Locations() *location.Resolver { return c.resolver }

// LocationCatalog returns the raw location data.
func (c *Catalog) LocationCatalog() location.Catalog { return c.locations }

// FreightSchema returns the listing form schema keyed by freight type.
func (c *Catalog) FreightSchema() *formshape.Schema { return c.freight }

// HeroSlideSchema returns the hero banner schema keyed by slide layout.
func (c *Catalog) HeroSlideSchema() *formshape.Schema { return c.slides }

// Table returns a copy of the named option table.
func (c *Catalog) Table(name string) ([]formshape.Option, bool) {
	t, ok := c.tables[name]
	if !ok {
		return nil, false
	}
	return append([]formshape.Option(nil), t...), true
}

// Tables returns every option table by name.
func (c *Catalog) Tables() map[string][]formshape.Option {
	out := make(map[string][]formshape.Option, len(c.tables))
	for name, t := range c.tables {
		out[name] = append([]formshape.Option(nil), t...)
	}
	return out
}

// HasOption reports whether value is listed in the named table.
func (c *Catalog) HasOption(table, value string) bool {
	for _, o := range c.tables[table] {
		if o.Value == value {
			return true
		}
	}
	return false
}

func readYAML(data []byte) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return v, nil
}

func parseLocations(data []byte) (location.Catalog, error) {
	v, err := readYAML(data)
	if err != nil {
		return location.Catalog{}, fmt.Errorf("parse locations: %w", err)
	}

	var countries []countryEntry
	if err := v.UnmarshalKey("countries", &countries); err != nil {
		return location.Catalog{}, fmt.Errorf("decode countries: %w", err)
	}
	var cities []cityEntry
	if err := v.UnmarshalKey("cities", &cities); err != nil {
		return location.Catalog{}, fmt.Errorf("decode cities: %w", err)
	}

	cat := location.Catalog{Districts: make(map[string][]string, len(cities))}

	seenCountry := make(map[string]bool, len(countries))
	for _, c := range countries {
		if c.Code == "" {
			return location.Catalog{}, fmt.Errorf("country %q has no code", c.Name)
		}
		if seenCountry[c.Code] {
			return location.Catalog{}, fmt.Errorf("duplicate country code %q", c.Code)
		}
		seenCountry[c.Code] = true
		cat.Countries = append(cat.Countries, location.Country{Code: c.Code, Name: c.Name})
	}

	for _, city := range cities {
		if _, dup := cat.Districts[city.Name]; dup {
			return location.Catalog{}, fmt.Errorf("duplicate city %q", city.Name)
		}
		seen := make(map[string]bool, len(city.Districts))
		for _, d := range city.Districts {
			if seen[d] {
				return location.Catalog{}, fmt.Errorf("duplicate district %q in %s", d, city.Name)
			}
			seen[d] = true
		}
		cat.Cities = append(cat.Cities, city.Name)
		cat.Districts[city.Name] = append([]string{}, city.Districts...)
	}

	return cat, nil
}

func parseTables(data []byte) (map[string][]formshape.Option, error) {
	v, err := readYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse options: %w", err)
	}

	tables := make(map[string][]formshape.Option, len(tableNames))
	for _, name := range tableNames {
		var opts []formshape.Option
		if err := v.UnmarshalKey(name, &opts); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		if len(opts) == 0 {
			return nil, fmt.Errorf("option table %s is empty", name)
		}
		tables[name] = opts
	}
	return tables, nil
}
