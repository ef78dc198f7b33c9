package grouping

import (
	"errors"
	"testing"

	"github.com/mmcdole/tablemap/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shape struct {
	title     string
	countries []string
}

func shapeOf[T any](sections []ContinentSection[T]) []shape {
	out := make([]shape, len(sections))
	for i, s := range sections {
		out[i].title = s.Title
		for _, g := range s.Data {
			out[i].countries = append(out[i].countries, g.CountryID)
		}
	}
	return out
}

func TestSections_CatalogOrderWithoutFilters(t *testing.T) {
	sections := Sections(geo.Default(), "UK", []string{"A", "B"}, Filter{})

	assert.Equal(t, []shape{
		{"Oceania", []string{"Australia", "NewZealand"}},
		{"Middle East", []string{"Bahrain", "Oman", "Qatar", "Saudi", "UAE"}},
		{"Africa", []string{"Botswana", "Eswatini", "Mauritius", "SouthAfrica", "Zambia", "Zimbabwe"}},
		{"North America", []string{"Canada", "USA"}},
		{"Asia", []string{"India", "Malaysia", "Pakistan", "Singapore"}},
		{"Europe", []string{"Ireland", "UK"}},
	}, shapeOf(sections))

	assert.Equal(t, 2, Count(sections))
	europe := sections[5]
	assert.Equal(t, []string{}, europe.Data[0].Items)
	assert.Equal(t, []string{"A", "B"}, europe.Data[1].Items)
	assert.Equal(t, "United Kingdom", europe.Data[1].CountryLabel)
}

func TestSections_ContinentFilter(t *testing.T) {
	sections := Sections(geo.Default(), "UK", []string{"A"}, Filter{Continent: "North America"})

	assert.Equal(t, []shape{{"North America", []string{"Canada", "USA"}}}, shapeOf(sections))
	assert.Equal(t, 0, Count(sections))
}

func TestSections_CountryFilter(t *testing.T) {
	cat := geo.Default()

	uk := Sections(cat, "UK", []string{"A"}, FilterFor(cat, "UK"))
	assert.Equal(t, []shape{{"Europe", []string{"UK"}}}, shapeOf(uk))
	assert.Equal(t, []string{"A"}, uk[0].Data[0].Items)

	ireland := Sections(cat, "UK", []string{"A"}, FilterFor(cat, "Ireland"))
	assert.Equal(t, []shape{{"Europe", []string{"Ireland"}}}, shapeOf(ireland))
	assert.Equal(t, []string{}, ireland[0].Data[0].Items)
}

func TestSections_EmptyGroupsHaveNonNilItems(t *testing.T) {
	for _, section := range Sections[string](geo.Default(), "UK", nil, Filter{}) {
		for _, group := range section.Data {
			assert.NotNil(t, group.Items, group.CountryID)
			assert.Empty(t, group.Items, group.CountryID)
		}
	}
}

func TestSections_MismatchedFiltersYieldNothing(t *testing.T) {
	sections := Sections(geo.Default(), "UK", []string{"A"}, Filter{Continent: "Asia", Country: "UK"})
	assert.Empty(t, sections)
}

func TestSections_OtherContinent(t *testing.T) {
	cat, err := geo.NewCatalog([]geo.Country{
		{ID: "UK", Label: "United Kingdom", Continent: "Europe"},
		{ID: "Atlantis"},
	}, nil)
	require.NoError(t, err)

	sections := Sections(cat, "UK", []int{1}, Filter{})
	assert.Equal(t, []shape{
		{"Europe", []string{"UK"}},
		{geo.OtherContinent, []string{"Atlantis"}},
	}, shapeOf(sections))
}

func TestSections_IsPure(t *testing.T) {
	cat := geo.Default()
	items := []string{"A", "B"}
	first := Sections(cat, "UK", items, Filter{})
	second := Sections(cat, "UK", items, Filter{})
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"A", "B"}, items)
}

func TestFilterTransitions(t *testing.T) {
	cat := geo.Default()

	f := Filter{}.WithCountry(cat, "USA")
	assert.Equal(t, Filter{Continent: "North America", Country: "USA"}, f, "country implies continent")

	f = f.WithContinent("Europe")
	assert.Equal(t, Filter{Continent: "Europe"}, f, "changing continent drops the country")

	f = f.WithCountry(cat, "UK").WithContinent("")
	assert.True(t, f.IsZero(), "clearing continent clears country")

	f = Filter{}.WithCountry(cat, "UK").WithCountry(cat, "")
	assert.True(t, f.IsZero(), "choosing All countries clears both")

	assert.Equal(t, Filter{}, FilterFor(cat, ""))
}

func TestOptions(t *testing.T) {
	cat := geo.Default()

	assert.Equal(t, cat.Continents(), ContinentOptions(cat))
	assert.Len(t, CountryOptions(cat, Filter{}), 21)

	opts := CountryOptions(cat, Filter{Continent: "Oceania"})
	require.Len(t, opts, 2)
	assert.Equal(t, "Australia", opts[0].ID)
	assert.Equal(t, "NewZealand", opts[1].ID)
}

func TestEmptyMessage(t *testing.T) {
	uk := CountryGroup[string]{CountryID: "UK"}
	usa := CountryGroup[string]{CountryID: "USA"}
	loadErr := errors.New("boom")

	assert.Equal(t, MessageLoadFailed, EmptyMessage(uk, "UK", loadErr))
	assert.Equal(t, MessageNoData, EmptyMessage(uk, "UK", nil))
	assert.Equal(t, MessageNoData, EmptyMessage(usa, "UK", loadErr))
}
