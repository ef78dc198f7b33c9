// Package grouping projects a flat restaurant collection into a
// continent → country tree under the user's filters.
package grouping

import "github.com/mmcdole/tablemap/internal/geo"

// CountryGroup is one country row and the items shown under it
type CountryGroup[T any] struct {
	CountryID    string `json:"countryId"`
	CountryLabel string `json:"countryLabel"`
	Items        []T    `json:"items"`
}

// ContinentSection is one continent heading and its countries
type ContinentSection[T any] struct {
	Title string            `json:"title"`
	Data  []CountryGroup[T] `json:"data"`
}

// Sections groups the catalog by continent under filter f. Only the live
// scope's group carries items; every other country is empty. Continents and
// countries keep catalog declaration order.
func Sections[T any](catalog *geo.Catalog, liveScope string, items []T, f Filter) []ContinentSection[T] {
	var sections []ContinentSection[T]
	index := make(map[string]int)

	for _, country := range catalog.Countries() {
		continent := country.GroupContinent()

		if f.Continent != "" && continent != f.Continent {
			continue
		}
		if f.Country != "" && country.ID != f.Country {
			continue
		}

		i, ok := index[continent]
		if !ok {
			i = len(sections)
			index[continent] = i
			sections = append(sections, ContinentSection[T]{Title: continent})
		}

		group := CountryGroup[T]{
			CountryID:    country.ID,
			CountryLabel: country.Label,
			Items:        []T{},
		}
		if country.ID == liveScope && (f.Country == "" || f.Country == country.ID) && items != nil {
			group.Items = items
		}
		sections[i].Data = append(sections[i].Data, group)
	}

	return sections
}

// Count returns the number of items across all sections
func Count[T any](sections []ContinentSection[T]) int {
	n := 0
	for _, s := range sections {
		for _, g := range s.Data {
			n += len(g.Items)
		}
	}
	return n
}

// Empty-state messages for a country group with no items
const (
	MessageLoadFailed = "Failed to load restaurants"
	MessageNoData     = "No restaurants available yet"
)

// EmptyMessage explains why a group has no items. Only the live scope can
// have failed to load; everywhere else simply has no data yet.
func EmptyMessage[T any](group CountryGroup[T], liveScope string, loadErr error) string {
	if group.CountryID == liveScope && loadErr != nil {
		return MessageLoadFailed
	}
	return MessageNoData
}
