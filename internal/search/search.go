// Package search matches restaurant names against free-text queries.
package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/tablemap/internal/domain"
)

// Rank returns the restaurants whose name fuzzy-matches query, closest first.
// Equal distances keep their input order. An empty query returns the input.
func Rank(query string, restaurants []domain.Restaurant) []domain.Restaurant {
	query = strings.TrimSpace(query)
	if query == "" {
		return restaurants
	}

	names := make([]string, len(restaurants))
	for i, r := range restaurants {
		names[i] = r.Name
	}

	ranks := lfuzzy.RankFindFold(query, names)
	sort.Stable(ranks)

	results := make([]domain.Restaurant, len(ranks))
	for i, rank := range ranks {
		results[i] = restaurants[rank.OriginalIndex]
	}
	return results
}

// Match is one restaurant that survived Filter
type Match struct {
	Restaurant     domain.Restaurant
	Index          int   // position in the input slice
	MatchedIndexes []int // byte offsets into the name, for highlighting
}

// nameSource implements fuzzy.Source over restaurant names
type nameSource []domain.Restaurant

func (s nameSource) String(i int) string { return s[i].Name }
func (s nameSource) Len() int            { return len(s) }

// Filter narrows restaurants as the user types. Results are ordered by match
// quality; an empty query keeps every restaurant in input order.
func Filter(query string, restaurants []domain.Restaurant) []Match {
	if strings.TrimSpace(query) == "" {
		all := make([]Match, len(restaurants))
		for i, r := range restaurants {
			all[i] = Match{Restaurant: r, Index: i}
		}
		return all
	}

	matches := fuzzy.FindFrom(query, nameSource(restaurants))
	results := make([]Match, len(matches))
	for i, m := range matches {
		results[i] = Match{
			Restaurant:     restaurants[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return results
}
