package domain

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a point of interest as returned by the provider. ID is the
// provider-assigned identifier and the only identity used for dedup.
type Place struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Address        string     `json:"address"`
	Location       Coordinate `json:"location"`
	Rating         *float64   `json:"rating,omitempty"`
	RatingCount    *int       `json:"user_ratings_total,omitempty"`
	PriceTier      *int       `json:"price_level,omitempty"`
	Types          []string   `json:"types"`
	PhotoReference string     `json:"photo_reference,omitempty"`
}

// RankedCandidate is a Place scored against a TravelerProfile.
type RankedCandidate struct {
	Place
	Score          float64 `json:"score"`
	Rank           int     `json:"rank"`
	DistanceMeters float64 `json:"distance_m"`
}

// SearchSource tells where a search result came from.
type SearchSource string

const (
	SourceCache  SearchSource = "cache"
	SourceText   SearchSource = "text_search"
	SourceNearby SearchSource = "nearby_search"
	SourceBatch  SearchSource = "batch"
	SourceMock   SearchSource = "mock"
	SourceFailed SearchSource = "failed"
)

// SearchResult is the outcome of a place search. Source is SourceMock when the
// provider was unavailable and synthetic places were substituted.
type SearchResult struct {
	Places []Place
	Source SearchSource
}

// Degraded reports whether the result holds no provider data.
func (r SearchResult) Degraded() bool {
	return r.Source == SourceMock || r.Source == SourceFailed
}
