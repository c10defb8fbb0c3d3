package domain

import (
	"context"
	"time"
)

// SharedCache is the out-of-process, TTL-capable tier (Redis). Errors are
// returned to the caller; the Cache Tier decides to swallow them.
type SharedCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	DelPrefix(ctx context.Context, prefix string) (int, error)
	// TTL is the remaining lifetime of key; <= 0 when it has none or is gone.
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// Cache is the two-level Cache Tier. It never reports errors: a failing
// backend is indistinguishable from a miss.
type Cache interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, v any, ttl time.Duration)
	Clear(ctx context.Context, prefixes ...string)
	Stats() CacheStats
}

type CacheStats struct {
	Size     int           `json:"size"`
	Capacity int           `json:"capacity"`
	TTL      time.Duration `json:"-"`
	Shared   bool          `json:"shared"`
}

// PlaceProvider is the upstream points-of-interest API.
type PlaceProvider interface {
	TextSearch(ctx context.Context, query string, at Coordinate, radius int, placeType string) ([]Place, error)
	NearbySearch(ctx context.Context, at Coordinate, radius int, placeType string) ([]Place, error)
}

// CandidateProjection is the reduced view of a Place sent for personalization.
type CandidateProjection struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Types       []string `json:"types"`
	Rating      *float64 `json:"rating,omitempty"`
	PriceTier   *int     `json:"price_level,omitempty"`
	RatingCount *int     `json:"user_ratings_total,omitempty"`
}

type RecommendRequest struct {
	Profile    TravelerProfile       `json:"user_profile"`
	Candidates []CandidateProjection `json:"activities"`
	TopN       int                   `json:"top_n"`
}

type Recommendation struct {
	ActivityID string  `json:"activity_id"`
	Score      float64 `json:"score"`
	Rank       int     `json:"rank"`
}

type RecommendResponse struct {
	Success         bool             `json:"success"`
	Recommendations []Recommendation `json:"recommendations"`
	Error           string           `json:"error,omitempty"`
}

// Personalizer is the optional personalization/ranking service.
type Personalizer interface {
	Recommend(ctx context.Context, req RecommendRequest) (RecommendResponse, error)
}

type OptimizeRequest struct {
	Itinerary     Itinerary       `json:"itinerary"`
	Profile       TravelerProfile `json:"user_profile"`
	CandidatePool []Place         `json:"available_activities"`
	MaxIterations int             `json:"max_iterations"`
}

type OptimizeResult struct {
	Itinerary      Itinerary   `json:"itinerary"`
	HealthScore    HealthScore `json:"health_score"`
	ChangesApplied int         `json:"optimizations_applied"`
	Improvement    float64     `json:"improvement"`
	OriginalScore  float64     `json:"original_score"`
}

// Scorer is the opaque external quality scorer/optimizer.
type Scorer interface {
	HealthCheck(ctx context.Context) bool
	Score(ctx context.Context, it Itinerary, p TravelerProfile) (HealthScore, error)
	Optimize(ctx context.Context, req OptimizeRequest) (OptimizeResult, error)
}

type Destination struct {
	Name     string
	Location Coordinate
	Country  *string
}

// DestinationRepository is the gazetteer used to resolve destination names.
type DestinationRepository interface {
	UpsertDestination(ctx context.Context, d Destination) error
	LookupDestination(ctx context.Context, name string) (Coordinate, error)
	LogMiss(ctx context.Context, name string, reason string) error
}
