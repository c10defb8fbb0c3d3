package app_test

import (
	"reflect"
	"testing"

	"trip_planner/internal/app"
	"trip_planner/internal/domain"
)

func TestNormalizeInterests(t *testing.T) {
	got := app.NormalizeInterests([]string{"Museums", "dining", "food", " Parks ", "", "bars", "sports"})
	want := []string{"culture", "food", "nature", "nightlife", "sports"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBudgetTier(t *testing.T) {
	cases := []struct {
		total float64
		days  int
		want  int
	}{
		{900, 3, 3},
		{0, 3, 1},
		{100, 1, 1},
		{101, 1, 2},
		{10_000, 2, 4},
		{500, 0, 4},
	}
	for _, c := range cases {
		if got := app.BudgetTier(c.total, c.days); got != c.want {
			t.Errorf("BudgetTier(%v, %d) = %d, want %d", c.total, c.days, got, c.want)
		}
	}
}

func TestDayQueries(t *testing.T) {
	q0, types := app.DayQueries([]string{"Food", "dining"}, []string{"Eiffel Tower", "restaurant"}, 0)
	want := []string{
		"attractions", "points of interest", "popular places",
		"restaurant", "cafe", "local food", "fine dining",
		"tourist attractions", "Eiffel Tower",
	}
	if !reflect.DeepEqual(q0, want) {
		t.Fatalf("day 0 queries = %v", q0)
	}
	wantTypes := []string{"", "", "", "restaurant", "cafe", "", "", "", ""}
	if !reflect.DeepEqual(types, wantTypes) {
		t.Fatalf("types = %q, want %q", types, wantTypes)
	}

	q1, _ := app.DayQueries([]string{"food"}, []string{"Eiffel Tower"}, 1)
	for _, q := range q1 {
		if q == "Eiffel Tower" {
			t.Fatal("must-see terms belong to the first day only")
		}
	}
	if q1[len(q1)-1] != "local favorites" {
		t.Fatalf("day filler = %q", q1[len(q1)-1])
	}
}

func TestDayQueries_TypesOnlyFilterTheirOwnQuery(t *testing.T) {
	q, types := app.DayQueries([]string{"culture", "shopping"}, nil, 2)
	if len(q) != len(types) {
		t.Fatalf("%d queries but %d types", len(q), len(types))
	}
	got := map[string]string{}
	for i := range q {
		got[q[i]] = types[i]
	}
	for query, want := range map[string]string{
		"attractions":   "",
		"museum":        "museum",
		"art gallery":   "art_gallery",
		"shopping mall": "shopping_mall",
		"market":        "",
		"hidden gems":   "",
	} {
		if got[query] != want {
			t.Errorf("type for %q = %q, want %q", query, got[query], want)
		}
	}
}

func TestPoolQueries(t *testing.T) {
	q, types := app.PoolQueries([]string{"culture"})
	if len(q) != len(types) {
		t.Fatalf("%d queries but %d types", len(q), len(types))
	}
	seen := map[string]int{}
	for _, s := range q {
		seen[s]++
	}
	for _, s := range []string{"museum", "landmark", "attraction", "cafe"} {
		if seen[s] != 1 {
			t.Fatalf("%q appears %d times in %v", s, seen[s], q)
		}
	}
}

func TestBuildProfile(t *testing.T) {
	p := app.BuildProfile(app.PlanRequest{Budget: 900, Travelers: 2, Interests: []string{"Galleries"}}, 3)
	if p.Pace != domain.PaceModerate || p.BudgetTier != 3 || p.PartySize != 2 || p.Interests[0] != "art" {
		t.Fatalf("profile: %+v", p)
	}
}
