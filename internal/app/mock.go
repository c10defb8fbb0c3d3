package app

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"trip_planner/internal/domain"
)

// mockNamespace seeds the name-based UUIDs of synthetic places.
var mockNamespace = uuid.MustParse("6f1c2a4e-8d3b-4c59-9a7e-2b0d5e1f3c88")

const mockPerQuery = 3

// mockPlaces is the synthetic stand-in for a provider response. The output is
// a pure function of the inputs: same query and center, same places and ids.
func mockPlaces(at domain.Coordinate, query, placeType string) []domain.Place {
	label := strings.TrimSpace(query)
	if label == "" {
		label = placeType
	}
	if label == "" {
		label = "place"
	}
	types := []string{"point_of_interest", "establishment"}
	if placeType != "" {
		types = append([]string{placeType}, types...)
	}

	out := make([]domain.Place, 0, mockPerQuery)
	for i, suffix := range []string{"A", "B", "C"}[:mockPerQuery] {
		seed := uuid.NewSHA1(mockNamespace, []byte(strings.ToLower(label)+"#"+suffix))
		rating := 3.8 + float64(seed[0]%12)/10
		count := 120 + int(seed[1])*8
		tier := int(seed[2]) % 4
		bearing := float64(seed[3]) * 360 / 256
		dist := 300 + 400*float64(i) + float64(seed[4])

		out = append(out, domain.Place{
			ID:          "mock_" + seed.String()[:13],
			Name:        titleCase(label) + " " + suffix,
			Address:     "Sample address",
			Location:    offset(at, bearing, dist),
			Rating:      &rating,
			RatingCount: &count,
			PriceTier:   &tier,
			Types:       types,
		})
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
