package domain

type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceModerate Pace = "moderate"
	PaceFast     Pace = "fast"
)

// TravelerProfile is the normalized planning input handed to the ranker and
// scorer. It is not mutated during a planning run.
type TravelerProfile struct {
	Interests  []string `json:"interests"`
	BudgetTier int      `json:"budget"` // 1 (budget) .. 4 (luxury)
	Pace       Pace     `json:"pace"`
	PartySize  int      `json:"group_size"`
	Dietary    []string `json:"dietary,omitempty"`
}
