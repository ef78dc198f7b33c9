package grouping

import "github.com/mmcdole/tablemap/internal/geo"

// Filter is the user's continent/country selection. Empty means "All".
type Filter struct {
	Continent string
	Country   string
}

// FilterFor returns the initial filter for an optional preselected country
func FilterFor(catalog *geo.Catalog, country string) Filter {
	if country == "" {
		return Filter{}
	}
	return Filter{Country: country, Continent: catalog.ContinentOf(country)}
}

// WithContinent selects a continent. Any country selection is dropped, and
// an empty continent clears both.
func (f Filter) WithContinent(continent string) Filter {
	return Filter{Continent: continent}
}

// WithCountry selects a country and derives its continent. An empty country
// (the "All" choice) clears both.
func (f Filter) WithCountry(catalog *geo.Catalog, country string) Filter {
	if country == "" {
		return Filter{}
	}
	return Filter{Country: country, Continent: catalog.ContinentOf(country)}
}

// IsZero reports whether nothing is selected
func (f Filter) IsZero() bool {
	return f.Continent == "" && f.Country == ""
}

// ContinentOptions lists continent choices in catalog order
func ContinentOptions(catalog *geo.Catalog) []string {
	return catalog.Continents()
}

// CountryOptions lists country choices, narrowed to the selected continent
func CountryOptions(catalog *geo.Catalog, f Filter) []geo.Country {
	return catalog.CountriesIn(f.Continent)
}
