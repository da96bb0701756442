package kernel

import (
	"strings"
)

// Address is a free-text postal address. Every part is optional; geocoding
// works with whatever is present.
type Address struct {
	Line    string
	City    string
	State   string
	Pincode string
}

// NewAddress trims and collapses whitespace in every part.
func NewAddress(line, city, state, pincode string) Address {
	return Address{
		Line:    normalize(line),
		City:    normalize(city),
		State:   normalize(state),
		Pincode: normalize(pincode),
	}
}

// IsEmpty reports whether the address carries nothing to geocode.
func (a Address) IsEmpty() bool {
	return a.Full() == ""
}

// Full joins the non-empty parts as "line, city, state, pincode".
func (a Address) Full() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Line, a.City, a.State, a.Pincode} {
		if p = normalize(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// GeoQueries returns the strings to hand to a geocoder, best first:
// the full address, then the bare pincode.
func (a Address) GeoQueries() []string {
	queries := make([]string, 0, 2)
	if full := a.Full(); full != "" {
		queries = append(queries, full)
	}
	if pin := normalize(a.Pincode); pin != "" && pin != a.Full() {
		queries = append(queries, pin)
	}
	return queries
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
