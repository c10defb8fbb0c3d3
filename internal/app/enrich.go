package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"trip_planner/internal/domain"
)

var genericTitles = []string{"breakfast", "lunch", "dinner", "coffee", "museum", "park", "shopping", "sightseeing"}

func isGenericTitle(title string) bool {
	t := strings.ToLower(title)
	for _, g := range genericTitles {
		if strings.Contains(t, g) {
			return true
		}
	}
	return false
}

// EnrichItinerary swaps placeholder activities ("Lunch", "Museum visit", ...)
// that have no place reference for the best real match near destination.
// Activities whose search degrades are left as they are. it is not modified.
func (p *Planner) EnrichItinerary(ctx context.Context, it domain.Itinerary, destination string) (domain.Itinerary, error) {
	at, err := p.destinations.Resolve(ctx, destination)
	if errors.Is(err, domain.ErrUnknownDestination) {
		return domain.Itinerary{}, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	if err != nil {
		return domain.Itinerary{}, err
	}

	out := it
	out.Days = make([]domain.ItineraryDay, len(it.Days))
	enriched := 0
	for i, day := range it.Days {
		day.Activities = append([]domain.ItineraryActivity(nil), day.Activities...)
		for j := range day.Activities {
			a := &day.Activities[j]
			if a.PlaceID != "" || !isGenericTitle(a.Name) {
				continue
			}
			res := p.places.Search(ctx, at, a.Name, p.cfg.SearchRadius, "")
			if res.Degraded() || len(res.Places) == 0 {
				log.Debug().Str("activity", a.Name).Str("source", string(res.Source)).Msg("no real place for activity")
				continue
			}
			place := res.Places[0]
			loc := place.Location
			a.Name = place.Name
			a.PlaceID = place.ID
			a.Location = &loc
			a.Rating = place.Rating
			a.RatingCount = place.RatingCount
			a.DistanceMeters = distanceMeters(at, loc)
			a.Note = place.Address
			if place.Rating != nil {
				a.Note += " (" + strconv.FormatFloat(*place.Rating, 'f', -1, 64) + "★)"
			}
			enriched++
		}
		out.Days[i] = day
	}
	log.Info().Str("destination", destination).Int("enriched", enriched).Msg("itinerary enriched")
	return out, nil
}
