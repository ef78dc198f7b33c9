// Package geo holds the static country catalog the list is grouped by.
package geo

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// OtherContinent groups countries the catalog has no continent for
const OtherContinent = "Other"

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Country is one catalog entry
type Country struct {
	ID        string  `yaml:"id"`
	Label     string  `yaml:"label"`
	Continent string  `yaml:"continent"`
	Lat       float64 `yaml:"lat"`
	Lng       float64 `yaml:"lng"`
}

// Catalog is an immutable, ordered set of countries. Declaration order is the
// display order; nothing here sorts.
type Catalog struct {
	countries  []Country
	continents []string
	byID       map[string]int
}

type catalogFile struct {
	Continents []string  `yaml:"continents"`
	Countries  []Country `yaml:"countries"`
}

// NewCatalog builds a catalog. Continents used by countries but missing from
// continentOrder are appended in first-seen order.
func NewCatalog(countries []Country, continentOrder []string) (*Catalog, error) {
	c := &Catalog{
		countries: make([]Country, 0, len(countries)),
		byID:      make(map[string]int, len(countries)),
	}

	seen := make(map[string]bool)
	for _, name := range continentOrder {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		c.continents = append(c.continents, name)
	}

	for _, country := range countries {
		if country.ID == "" {
			return nil, fmt.Errorf("country with label %q has no id", country.Label)
		}
		if _, dup := c.byID[country.ID]; dup {
			return nil, fmt.Errorf("duplicate country id %q", country.ID)
		}
		if country.Label == "" {
			country.Label = country.ID
		}
		c.byID[country.ID] = len(c.countries)
		c.countries = append(c.countries, country)

		continent := continentName(country)
		if !seen[continent] {
			seen[continent] = true
			c.continents = append(c.continents, continent)
		}
	}
	return c, nil
}

// Load parses a YAML catalog
func Load(r io.Reader) (*Catalog, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewCatalog(f.Countries, f.Continents)
}

// LoadFile parses a YAML catalog from disk
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It is parsed once and shared.
func Default() *Catalog {
	defaultOnce.Do(func() {
		var f catalogFile
		if err := yaml.Unmarshal(defaultCatalogYAML, &f); err != nil {
			panic(fmt.Sprintf("geo: embedded catalog is invalid: %v", err))
		}
		c, err := NewCatalog(f.Countries, f.Continents)
		if err != nil {
			panic(fmt.Sprintf("geo: embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func continentName(c Country) string {
	if c.Continent == "" {
		return OtherContinent
	}
	return c.Continent
}

// Countries returns all countries in declaration order
func (c *Catalog) Countries() []Country {
	return append([]Country(nil), c.countries...)
}

// Continents returns continent names in declaration order
func (c *Catalog) Continents() []string {
	return append([]string(nil), c.continents...)
}

// Lookup finds a country by id
func (c *Catalog) Lookup(id string) (Country, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Country{}, false
	}
	return c.countries[i], true
}

// ContinentOf returns the continent of a country, or "" for unknown ids
func (c *Catalog) ContinentOf(id string) string {
	country, ok := c.Lookup(id)
	if !ok {
		return ""
	}
	return continentName(country)
}

// Label returns the display label for id, falling back to the id itself
func (c *Catalog) Label(id string) string {
	if country, ok := c.Lookup(id); ok {
		return country.Label
	}
	return id
}

// CountriesIn returns the countries of one continent in declaration order.
// An empty continent returns every country.
func (c *Catalog) CountriesIn(continent string) []Country {
	if continent == "" {
		return c.Countries()
	}
	var out []Country
	for _, country := range c.countries {
		if continentName(country) == continent {
			out = append(out, country)
		}
	}
	return out
}

// GroupContinent is the continent a country is grouped under
func (c Country) GroupContinent() string {
	return continentName(c)
}
