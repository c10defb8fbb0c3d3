package app_test

import (
	"testing"

	"trip_planner/internal/app"
	"trip_planner/internal/domain"
)

func ranked(n, tier int) []domain.RankedCandidate {
	out := make([]domain.RankedCandidate, 0, n)
	for i := 0; i < n; i++ {
		p := place(string(rune('a'+i)), 4.6, 1500, tier)
		out = append(out, domain.RankedCandidate{Place: p, Score: float64(n - i), Rank: i + 1})
	}
	return out
}

func TestBuildDay_ZeroBudgetKeepsMinimumDay(t *testing.T) {
	a := app.NewAssembler(3, 6)
	day := a.BuildDay(ranked(8, 3), 0, "USD", 0)
	if len(day) != 3 {
		t.Fatalf("expected exactly 3 activities, got %d", len(day))
	}
	for _, act := range day {
		if act.Cost.Amount != 120 || act.Cost.Currency != "USD" {
			t.Fatalf("unexpected cost: %+v", act.Cost)
		}
	}
}

func TestBuildDay_StopsAtMaximum(t *testing.T) {
	a := app.NewAssembler(3, 6)
	day := a.BuildDay(ranked(10, 0), 10_000, "EUR", 0)
	if len(day) != 6 {
		t.Fatalf("expected 6 activities, got %d", len(day))
	}
	if day[0].Note != "Highly rated. Popular destination. Free entry" {
		t.Fatalf("note = %q", day[0].Note)
	}
}

func TestBuildDay_LimitCapsActivities(t *testing.T) {
	a := app.NewAssembler(3, 6)
	if day := a.BuildDay(ranked(10, 0), 10_000, "USD", 4); len(day) != 4 {
		t.Fatalf("expected 4 activities, got %d", len(day))
	}
}

func TestBuildDay_SkipsWhatDoesNotFitAfterMinimum(t *testing.T) {
	cands := ranked(3, 1) // 3 x 30 USD
	cands = append(cands,
		domain.RankedCandidate{Place: place("pricey", 4, 10, 3)}, // 120
		domain.RankedCandidate{Place: place("cheap", 4, 10, 0)},  // 15
	)
	day := app.NewAssembler(3, 6).BuildDay(cands, 100, "USD", 0)

	// 90 spent on the first three leaves 10: neither fits
	got := map[string]bool{}
	for _, act := range day {
		got[act.ID] = true
	}
	if len(day) != 3 || got["pricey"] || got["cheap"] {
		t.Fatalf("unexpected selection: %v", got)
	}

	day = app.NewAssembler(3, 6).BuildDay(cands, 110, "USD", 0)
	got = map[string]bool{}
	for _, act := range day {
		got[act.ID] = true
	}
	if len(day) != 4 || got["pricey"] || !got["cheap"] {
		t.Fatalf("expected cheap to fit the remaining 20: %v", got)
	}
}

func TestBuildDay_TimeOfDayOrdered(t *testing.T) {
	day := app.NewAssembler(3, 6).BuildDay(ranked(6, 1), 1000, "USD", 0)
	order := map[string]int{"Morning": 0, "Afternoon": 1, "Evening": 2}
	for i := 1; i < len(day); i++ {
		if order[day[i-1].TimeOfDay] > order[day[i].TimeOfDay] {
			t.Fatalf("activities out of order at %d: %s before %s", i, day[i-1].TimeOfDay, day[i].TimeOfDay)
		}
	}
	for _, act := range day {
		if act.Duration == "" || act.Category == "" || act.PlaceID != act.ID || act.Location == nil {
			t.Fatalf("incomplete activity: %+v", act)
		}
	}
}

func TestEstimateCost(t *testing.T) {
	two, nine, zero := 2, 9, 0
	cases := []struct {
		tier     *int
		currency string
		want     float64
	}{
		{nil, "USD", 30},
		{&zero, "USD", 15},
		{&two, "eur", 50},
		{&nine, "GBP", 80},
		{&two, "JPY", 60},
	}
	for _, c := range cases {
		if got := app.EstimateCost(c.tier, c.currency); got != c.want {
			t.Errorf("EstimateCost(%v, %s) = %v, want %v", c.tier, c.currency, got, c.want)
		}
	}
}
