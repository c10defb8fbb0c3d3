package app_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"trip_planner/internal/adapters/cache"
	"trip_planner/internal/app"
	"trip_planner/internal/domain"
)

// ---- fakes ----

// fakeProvider answers from a canned map keyed by query ("" = nearby) and
// counts upstream calls.
type fakeProvider struct {
	mu      sync.Mutex
	results map[string][]domain.Place
	fail    map[string]bool
	failAll bool
	calls   int
	seen    []string
}

func (f *fakeProvider) answer(query string) ([]domain.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.seen = append(f.seen, query)
	if f.failAll || f.fail[query] {
		return nil, errors.New("upstream 503")
	}
	if r, ok := f.results[query]; ok {
		return r, nil
	}
	// synthesize a stable per-query place so large batches have content
	id := "p_" + strings.ReplaceAll(query, " ", "_")
	return []domain.Place{place(id, 4.2, 500, 1)}, nil
}

func (f *fakeProvider) TextSearch(ctx context.Context, query string, at domain.Coordinate, radius int, placeType string) ([]domain.Place, error) {
	return f.answer(query)
}

func (f *fakeProvider) NearbySearch(ctx context.Context, at domain.Coordinate, radius int, placeType string) ([]domain.Place, error) {
	return f.answer("")
}

func (f *fakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePersonalizer struct {
	resp  domain.RecommendResponse
	err   error
	calls int
	last  domain.RecommendRequest
}

func (f *fakePersonalizer) Recommend(ctx context.Context, req domain.RecommendRequest) (domain.RecommendResponse, error) {
	f.calls++
	f.last = req
	return f.resp, f.err
}

type fakeScorer struct {
	healthy    bool
	score      domain.HealthScore
	scoreErr   error
	optimize   func(domain.OptimizeRequest) (domain.OptimizeResult, error)
	scoreCalls int
	optCalls   int
	lastOpt    domain.OptimizeRequest
}

func (f *fakeScorer) HealthCheck(ctx context.Context) bool { return f.healthy }

func (f *fakeScorer) Score(ctx context.Context, it domain.Itinerary, p domain.TravelerProfile) (domain.HealthScore, error) {
	f.scoreCalls++
	return f.score, f.scoreErr
}

func (f *fakeScorer) Optimize(ctx context.Context, req domain.OptimizeRequest) (domain.OptimizeResult, error) {
	f.optCalls++
	f.lastOpt = req
	if f.optimize == nil {
		return domain.OptimizeResult{}, errors.New("not implemented")
	}
	return f.optimize(req)
}

type fakeDestinations struct {
	known  map[string]domain.Coordinate
	err    error
	misses []string
}

func (f *fakeDestinations) UpsertDestination(ctx context.Context, d domain.Destination) error {
	return nil
}

func (f *fakeDestinations) LookupDestination(ctx context.Context, name string) (domain.Coordinate, error) {
	if f.err != nil {
		return domain.Coordinate{}, f.err
	}
	if c, ok := f.known[name]; ok {
		return c, nil
	}
	return domain.Coordinate{}, domain.ErrNotFound
}

func (f *fakeDestinations) LogMiss(ctx context.Context, name, reason string) error {
	f.misses = append(f.misses, name)
	return nil
}

// ---- helpers ----

var paris = domain.Coordinate{Lat: 48.8566, Lng: 2.3522}

func newTier() *cache.Tier {
	return cache.NewTier(cache.NewLocal(1000, time.Hour), nil)
}

func newPlanner(t *testing.T, prov domain.PlaceProvider, pers domain.Personalizer, sc domain.Scorer, cfg app.PlannerConfig) *app.Planner {
	t.Helper()
	c := newTier()
	places := app.NewPlaceRepository(prov, c, time.Hour)
	dest := app.NewDestinationResolver(c, nil, 0)
	return app.NewPlanner(places, app.NewRanker(pers), dest, sc, c, cfg)
}

func parisRequest() app.PlanRequest {
	return app.PlanRequest{
		Destination: "Paris",
		StartDate:   "2025-06-01",
		Days:        3,
		Budget:      900,
		Currency:    "USD",
		Interests:   []string{"food", "culture"},
	}
}

func place(id string, rating float64, count, tier int) domain.Place {
	return domain.Place{
		ID:          id,
		Name:        "Place " + id,
		Location:    paris,
		Rating:      &rating,
		RatingCount: &count,
		PriceTier:   &tier,
		Types:       []string{"point_of_interest"},
	}
}

func ids(ps []domain.Place) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}
