package domain

import "time"

type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type ItineraryActivity struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Category       string      `json:"category"`
	TimeOfDay      string      `json:"time_of_day"`
	Duration       string      `json:"duration"`
	Cost           Money       `json:"cost"`
	Note           string      `json:"note,omitempty"`
	PlaceID        string      `json:"place_id,omitempty"`
	Location       *Coordinate `json:"location,omitempty"`
	Rating         *float64    `json:"rating,omitempty"`
	RatingCount    *int        `json:"user_ratings_total,omitempty"`
	PriceTier      *int        `json:"price_level,omitempty"`
	Score          float64     `json:"score"`
	DistanceMeters float64     `json:"distance_m,omitempty"`
}

type ItineraryDay struct {
	Day        int                 `json:"day"`
	Date       string              `json:"date"` // YYYY-MM-DD
	Activities []ItineraryActivity `json:"activities"`
}

// Cost sums the day's activity costs.
func (d ItineraryDay) Cost() float64 {
	var total float64
	for _, a := range d.Activities {
		total += a.Cost.Amount
	}
	return total
}

// SubScore is one dimension of a HealthScore breakdown.
type SubScore struct {
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
}

// HealthScore is produced by the external scorer and only attached here.
type HealthScore struct {
	Overall   float64             `json:"overall_score"`
	Status    string              `json:"health_status"`
	Breakdown map[string]SubScore `json:"breakdown,omitempty"`
}

type OptimizationRecord struct {
	ChangesApplied int     `json:"optimizations_applied"`
	Improvement    float64 `json:"improvement"`
	OriginalScore  float64 `json:"original_score"`
	MaxIterations  int     `json:"max_iterations"`
}

// ScoringOutcome records which terminal state the scoring stage reached.
type ScoringOutcome string

const (
	ScoringSkipped   ScoringOutcome = "unavailable"
	ScoringScored    ScoringOutcome = "scored"
	ScoringOptimized ScoringOutcome = "optimized"
	ScoringFailed    ScoringOutcome = "failed"
)

type Itinerary struct {
	TripID       string              `json:"trip_id"`
	Destination  string              `json:"destination"`
	Days         []ItineraryDay      `json:"days"`
	TotalCost    Money               `json:"total_cost"`
	Summary      string              `json:"summary"`
	GeneratedAt  time.Time           `json:"generated_at"`
	Scoring      ScoringOutcome      `json:"scoring"`
	RankFallback bool                `json:"rank_fallback"`
	HealthScore  *HealthScore        `json:"health_score,omitempty"`
	Optimization *OptimizationRecord `json:"optimization_info,omitempty"`
}

// ActivityCount is the number of activities across all days.
func (it Itinerary) ActivityCount() int {
	n := 0
	for _, d := range it.Days {
		n += len(d.Activities)
	}
	return n
}
