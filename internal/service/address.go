package service

import (
	"strings"

	"nakliye/internal/location"
)

func trimAddress(a location.Address) location.Address {
	return location.Address{
		Country:  strings.ToUpper(strings.TrimSpace(a.Country)),
		City:     strings.TrimSpace(a.City),
		District: strings.TrimSpace(a.District),
	}
}

// resolveAddress silently corrects a submitted address and then enforces that
// country and city are set, and that a district is picked wherever the city has an
// enumerated district list.
func resolveAddress(res *location.Resolver, field string, a location.Address) (location.Address, error) {
	n := res.Normalize(trimAddress(a))
	if n.Country == "" {
		return n, invalid(field+".country", "required")
	}
	if n.City == "" {
		return n, invalid(field+".city", "required")
	}
	if n.District == "" && len(res.DistrictsFor(n.Country, n.City)) > 0 {
		return n, invalid(field+".district", "required")
	}
	return n, nil
}

// changedParts lists which levels Normalize cleared.
func changedParts(field string, before, after location.Address) []string {
	var out []string
	if before.Country != after.Country {
		out = append(out, field+".country")
	}
	if before.City != after.City {
		out = append(out, field+".city")
	}
	if before.District != after.District {
		out = append(out, field+".district")
	}
	return out
}
