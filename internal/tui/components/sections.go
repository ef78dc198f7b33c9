package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/tablemap/internal/grouping"
	"github.com/mmcdole/tablemap/internal/search"
	"github.com/mmcdole/tablemap/internal/tui/styles"
)

// SectionsState is everything RenderSections needs besides the sections
type SectionsState struct {
	LiveScope string
	Loading   bool
	Err       error
	Query     string // active in-view name filter
	Width     int
}

// RenderSections draws the continent/country tree as plain lines for a
// viewport. Groups without items show their empty-state message.
func RenderSections(sections []grouping.ContinentSection[search.Match], st SectionsState) string {
	if len(sections) == 0 {
		return styles.DimStyle.Render("No countries match the current filters.")
	}

	var lines []string
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.ContinentStyle.Render(section.Title))

		for _, group := range section.Data {
			label := group.CountryLabel
			if n := len(group.Items); n > 0 {
				label = fmt.Sprintf("%s (%d)", label, n)
			}
			lines = append(lines, styles.CountryStyle.Render(label))

			if len(group.Items) == 0 {
				lines = append(lines, styles.EmptyStyle.Render(emptyText(group, st)))
				continue
			}
			for _, m := range group.Items {
				lines = append(lines, renderRestaurant(m, st.Width))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func emptyText(group grouping.CountryGroup[search.Match], st SectionsState) string {
	if group.CountryID != st.LiveScope {
		return grouping.MessageNoData
	}
	switch {
	case st.Loading:
		return "Loading restaurants…"
	case st.Err == nil && st.Query != "":
		return fmt.Sprintf("No restaurants match %q", st.Query)
	}
	return grouping.EmptyMessage(group, st.LiveScope, st.Err)
}

func renderRestaurant(m search.Match, width int) string {
	name := styles.Highlight(m.Restaurant.Name, m.MatchedIndexes, styles.RestaurantStyle)

	addr := m.Restaurant.Geo.Address
	parts := make([]string, 0, 3)
	for _, p := range []string{addr.StreetAddress, addr.AddressLocality, addr.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return name
	}

	detail := strings.Join(parts, ", ")
	if width > 0 {
		// name column plus separator
		room := width - len(m.Restaurant.Name) - 4 - 3
		detail = styles.Truncate(detail, room)
	}
	if detail == "" {
		return name
	}
	return name + styles.AddressStyle.Render(" · "+detail)
}
