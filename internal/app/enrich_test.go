package app_test

import (
	"context"
	"errors"
	"testing"

	"trip_planner/internal/app"
	"trip_planner/internal/domain"
)

func TestEnrichItinerary(t *testing.T) {
	flore := place("cafe_1", 4.7, 300, 1)
	flore.Name = "Café de Flore"
	flore.Address = "172 Bd Saint-Germain"
	prov := &fakeProvider{
		results: map[string][]domain.Place{"Breakfast": {flore}},
		fail:    map[string]bool{"Museum visit": true},
	}
	p := newPlanner(t, prov, nil, nil, app.DefaultPlannerConfig())

	in := domain.Itinerary{Days: []domain.ItineraryDay{{Day: 1, Activities: []domain.ItineraryActivity{
		{ID: "1", Name: "Breakfast"},
		{ID: "2", Name: "Museum visit"},
		{ID: "3", Name: "Lunch", PlaceID: "already"},
		{ID: "4", Name: "Boat tour"},
	}}}}

	out, err := p.EnrichItinerary(context.Background(), in, "Paris")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	acts := out.Days[0].Activities
	if acts[0].Name != "Café de Flore" || acts[0].PlaceID != "cafe_1" || acts[0].Location == nil {
		t.Fatalf("breakfast not enriched: %+v", acts[0])
	}
	if acts[0].Note != "172 Bd Saint-Germain (4.7★)" {
		t.Fatalf("note = %q", acts[0].Note)
	}
	if acts[1].Name != "Museum visit" || acts[1].PlaceID != "" {
		t.Fatalf("failed search must leave the activity unchanged: %+v", acts[1])
	}
	if acts[2].Name != "Lunch" || acts[3].Name != "Boat tour" {
		t.Fatalf("unexpected changes: %+v", acts)
	}
	if in.Days[0].Activities[0].Name != "Breakfast" {
		t.Fatal("input itinerary was modified")
	}
	if prov.Calls() != 2 {
		t.Fatalf("upstream calls = %d", prov.Calls())
	}
}

func TestEnrichItinerary_UnknownDestination(t *testing.T) {
	p := newPlanner(t, nil, nil, nil, app.DefaultPlannerConfig())
	_, err := p.EnrichItinerary(context.Background(), domain.Itinerary{}, "Atlantis")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("err = %v", err)
	}
}
