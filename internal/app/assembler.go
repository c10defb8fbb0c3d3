package app

import (
	"sort"
	"strings"

	"trip_planner/internal/domain"
)

var (
	categoryRotation = []string{"Culture", "Food", "Entertainment", "Relaxation"}
	slotRotation     = []string{"Morning", "Afternoon", "Evening"}

	categoryDuration = map[string]string{
		"Culture":       "2-3 hours",
		"Food":          "1-2 hours",
		"Entertainment": "2-4 hours",
		"Relaxation":    "1-3 hours",
	}

	// cost bands by price tier 0..3
	costTables = map[string][]float64{
		"USD": {15, 30, 60, 120},
		"EUR": {12, 25, 50, 100},
		"GBP": {10, 20, 40, 80},
	}
)

// EstimateCost prices a tier in currency. Unknown currencies use the USD
// bands; a missing tier counts as 1 and tiers past the table use the top band.
func EstimateCost(tier *int, currency string) float64 {
	table, ok := costTables[strings.ToUpper(currency)]
	if !ok {
		table = costTables["USD"]
	}
	t := 1
	if tier != nil {
		t = *tier
	}
	if t < 0 {
		t = 0
	}
	if t > len(table)-1 {
		t = len(table) - 1
	}
	return table[t]
}

func activityNote(p domain.Place) string {
	var notes []string
	if p.Rating != nil && *p.Rating >= 4.5 {
		notes = append(notes, "Highly rated")
	}
	if p.RatingCount != nil && *p.RatingCount > 1000 {
		notes = append(notes, "Popular destination")
	}
	if p.PriceTier != nil && *p.PriceTier == 0 {
		notes = append(notes, "Free entry")
	}
	return strings.Join(notes, ". ")
}

// Assembler turns ranked candidates into a priced day.
type Assembler struct {
	MinActivities int // accepted regardless of budget
	MaxActivities int
}

func NewAssembler(minActivities, maxActivities int) *Assembler {
	if minActivities < 0 {
		minActivities = 0
	}
	if maxActivities < minActivities {
		maxActivities = minActivities
	}
	return &Assembler{MinActivities: minActivities, MaxActivities: maxActivities}
}

// BuildDay greedily walks ranked in order. A candidate is accepted when its
// cost fits the remaining budget, or unconditionally while fewer than
// MinActivities are accepted. limit caps the day below MaxActivities when
// positive. The returned activities are ordered by time of day.
func (a *Assembler) BuildDay(ranked []domain.RankedCandidate, dailyBudget float64, currency string, limit int) []domain.ItineraryActivity {
	maxN := a.MaxActivities
	if limit > 0 && limit < maxN {
		maxN = limit
	}
	currency = strings.ToUpper(currency)

	out := make([]domain.ItineraryActivity, 0, maxN)
	remaining := dailyBudget
	for _, c := range ranked {
		if len(out) >= maxN {
			break
		}
		cost := EstimateCost(c.PriceTier, currency)
		if cost > remaining && len(out) >= a.MinActivities {
			continue
		}

		pos := len(out)
		category := categoryRotation[pos%len(categoryRotation)]
		loc := c.Location
		out = append(out, domain.ItineraryActivity{
			ID:             c.ID,
			Name:           c.Name,
			Category:       category,
			TimeOfDay:      slotRotation[pos%len(slotRotation)],
			Duration:       categoryDuration[category],
			Cost:           domain.Money{Amount: cost, Currency: currency},
			Note:           activityNote(c.Place),
			PlaceID:        c.ID,
			Location:       &loc,
			Rating:         c.Rating,
			RatingCount:    c.RatingCount,
			PriceTier:      c.PriceTier,
			Score:          c.Score,
			DistanceMeters: c.DistanceMeters,
		})
		remaining -= cost
	}

	sort.SliceStable(out, func(i, j int) bool {
		return slotOrder(out[i].TimeOfDay) < slotOrder(out[j].TimeOfDay)
	})
	return out
}

func slotOrder(slot string) int {
	for i, s := range slotRotation {
		if s == slot {
			return i
		}
	}
	return len(slotRotation)
}
