package app

import (
	"math"
	"slices"
	"strings"

	"trip_planner/internal/domain"
)

type interestQueries struct {
	types   []string
	queries []string
}

var interestMapping = map[string]interestQueries{
	"culture":       {[]string{"museum", "art_gallery"}, []string{"museum", "art gallery", "cultural center"}},
	"history":       {[]string{"museum", "historical_site"}, []string{"historical site", "monument", "castle"}},
	"food":          {[]string{"restaurant", "cafe"}, []string{"restaurant", "cafe", "local food"}},
	"dining":        {[]string{"restaurant", "cafe"}, []string{"fine dining", "restaurant", "cafe"}},
	"nature":        {[]string{"park", "natural_feature"}, []string{"park", "garden", "nature reserve"}},
	"outdoors":      {[]string{"park", "recreation_area"}, []string{"outdoor activities", "hiking", "park"}},
	"shopping":      {[]string{"shopping_mall", "store"}, []string{"shopping mall", "market", "boutique"}},
	"nightlife":     {[]string{"bar", "night_club"}, []string{"bar", "nightclub", "entertainment"}},
	"entertainment": {[]string{"amusement_park", "movie_theater"}, []string{"entertainment", "amusement park", "theater"}},
	"relaxation":    {[]string{"spa", "park"}, []string{"spa", "wellness center", "relaxation"}},
	"sports":        {[]string{"sports_facility", "recreation_area"}, []string{"sports facility", "gym", "fitness center"}},
}

var interestSynonyms = map[string]string{
	"museums":     "culture",
	"galleries":   "art",
	"dining":      "food",
	"restaurants": "food",
	"parks":       "nature",
	"outdoor":     "nature",
	"sightseeing": "culture",
	"bars":        "nightlife",
	"clubs":       "nightlife",
}

var (
	defaultQueries = []string{"attractions", "points of interest", "popular places"}
	dayQueries     = []string{"tourist attractions", "local favorites", "hidden gems"}
	poolQueries    = []string{"restaurant", "cafe", "museum", "park", "shopping", "attraction", "landmark"}
)

// NormalizeInterests lowercases and maps synonyms onto the controlled
// vocabulary. Order is kept and duplicates are dropped.
func NormalizeInterests(in []string) []string {
	out := make([]string, 0, len(in))
	for _, i := range in {
		i = strings.ToLower(strings.TrimSpace(i))
		if i == "" {
			continue
		}
		if s, ok := interestSynonyms[i]; ok {
			i = s
		}
		out = append(out, i)
	}
	return uniq(out)
}

// BudgetTier maps a per-day budget onto 1..4, one tier per 100 currency units.
func BudgetTier(total float64, days int) int {
	if days < 1 {
		days = 1
	}
	tier := int(math.Ceil(total / float64(days) / 100))
	return min(max(tier, 1), 4)
}

// BuildProfile derives the normalized profile for one planning run.
func BuildProfile(r PlanRequest, days int) domain.TravelerProfile {
	pace := r.Pace
	if pace == "" {
		pace = domain.PaceModerate
	}
	return domain.TravelerProfile{
		Interests:  NormalizeInterests(r.Interests),
		BudgetTier: BudgetTier(r.Budget, days),
		Pace:       pace,
		PartySize:  r.Travelers,
		Dietary:    r.Dietary,
	}
}

// DayQueries lists the searches for day dayIndex (zero-based) and, aligned
// with them, the provider type each one is filtered by ("" for none).
// interests are the caller's terms, not the normalized profile vocabulary.
func DayQueries(interests []string, mustSee []string, dayIndex int) (queries, types []string) {
	var qs querySet
	for _, q := range defaultQueries {
		qs.add(q, "")
	}
	for _, i := range interests {
		if m, ok := interestMapping[strings.ToLower(strings.TrimSpace(i))]; ok {
			for _, q := range m.queries {
				qs.add(q, m.typeFor(q))
			}
		}
	}
	qs.add(dayQueries[dayIndex%len(dayQueries)], "")
	if dayIndex == 0 {
		for _, m := range mustSee {
			qs.add(strings.TrimSpace(m), "")
		}
	}
	return qs.queries, qs.types
}

// PoolQueries is the broader set used to source optimization candidates.
func PoolQueries(interests []string) (queries, types []string) {
	var qs querySet
	qs.queries, qs.types = DayQueries(interests, nil, 0)
	for _, q := range poolQueries {
		qs.add(q, "")
	}
	return qs.queries, qs.types
}

// typeFor pairs a query with the mapped type of the same name, if any.
func (m interestQueries) typeFor(query string) string {
	want := strings.ReplaceAll(query, " ", "_")
	for _, t := range m.types {
		if t == want {
			return t
		}
	}
	return ""
}

// querySet keeps queries and their types index-aligned; the first
// occurrence of a query wins.
type querySet struct {
	queries []string
	types   []string
}

func (s *querySet) add(query, placeType string) {
	if query == "" || slices.Contains(s.queries, query) {
		return
	}
	s.queries = append(s.queries, query)
	s.types = append(s.types, placeType)
}

func uniq(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
