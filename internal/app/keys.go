package app

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"trip_planner/internal/domain"
)

const (
	placesPrefix      = "places:"
	placesBatchPrefix = "places_batch:"
	itineraryPrefix   = "itinerary:"
	coordinatesPrefix = "coordinates:"
)

func coord4(f float64) string { return strconv.FormatFloat(f, 'f', 4, 64) }

// sortedCopy never reorders the caller's slice.
func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

// PlacesKey identifies a single search.
func PlacesKey(at domain.Coordinate, query string, radius int, placeType string) string {
	if query == "" {
		query = "nearby"
	}
	if placeType == "" {
		placeType = "all"
	}
	return placesPrefix + coord4(at.Lat) + ":" + coord4(at.Lng) + ":" + query + ":" + strconv.Itoa(radius) + ":" + placeType
}

// BatchKey identifies a batch search. Queries and types are sorted, so
// callers that list the same terms in a different order share an entry.
func BatchKey(at domain.Coordinate, queries []string, radius int, types []string) string {
	return placesBatchPrefix + coord4(at.Lat) + ":" + coord4(at.Lng) + ":" +
		strings.Join(sortedCopy(queries), "|") + ":" + strconv.Itoa(radius) + ":" +
		strings.Join(sortedCopy(types), "|")
}

// ItineraryKey is the request fingerprint for a finished itinerary.
func ItineraryKey(r PlanRequest) string {
	interests := make([]string, 0, len(r.Interests))
	for _, i := range r.Interests {
		interests = append(interests, strings.ToLower(strings.TrimSpace(i)))
	}
	user := r.UserID
	if user == "" {
		user = "anonymous"
	}
	parts := []string{
		strings.ToLower(strings.TrimSpace(r.Destination)),
		r.StartDate,
		r.EndDate,
		strconv.Itoa(r.Travelers),
		strconv.FormatInt(int64(math.Round(r.Budget)), 10),
		strings.ToUpper(r.Currency),
		string(r.Pace),
		strings.Join(sortedCopy(interests), "|"),
		strings.Join(sortedCopy(r.MustSee), "|"),
		strconv.Itoa(r.ActivitiesPerDay),
		user,
	}
	if r.Location != nil {
		parts = append(parts, coord4(r.Location.Lat)+","+coord4(r.Location.Lng))
	}
	return itineraryPrefix + strings.Join(parts, ":")
}

func CoordinatesKey(destination string) string {
	return coordinatesPrefix + strings.ToLower(strings.TrimSpace(destination))
}
