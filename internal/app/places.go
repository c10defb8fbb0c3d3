package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"trip_planner/internal/adapters/observability"
	"trip_planner/internal/domain"
)

// PlaceRepository is the only reader and writer of place data in the cache.
// Searches never fail: provider errors degrade to synthetic places.
type PlaceRepository struct {
	provider domain.PlaceProvider
	cache    domain.Cache
	ttl      time.Duration
}

// NewPlaceRepository wires the repository. A nil provider means no
// credentials were configured; every miss is then served synthetic data.
func NewPlaceRepository(provider domain.PlaceProvider, cache domain.Cache, ttl time.Duration) *PlaceRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &PlaceRepository{provider: provider, cache: cache, ttl: ttl}
}

// Search runs one text search (query set) or nearby search (query empty).
func (r *PlaceRepository) Search(ctx context.Context, at domain.Coordinate, query string, radius int, placeType string) domain.SearchResult {
	key := PlacesKey(at, query, radius, placeType)

	var cached []domain.Place
	if r.cache.Get(ctx, key, &cached) {
		observability.ObservePlaceSearch("single", string(domain.SourceCache))
		return domain.SearchResult{Places: cached, Source: domain.SourceCache}
	}

	res := r.fetch(ctx, at, query, radius, placeType)
	if !res.Degraded() {
		r.cache.Set(ctx, key, res.Places, r.ttl)
	}
	observability.ObservePlaceSearch("single", string(res.Source))
	return res
}

func (r *PlaceRepository) fetch(ctx context.Context, at domain.Coordinate, query string, radius int, placeType string) domain.SearchResult {
	if r.provider == nil {
		return domain.SearchResult{Places: mockPlaces(at, query, placeType), Source: domain.SourceMock}
	}

	var (
		places []domain.Place
		err    error
		source domain.SearchSource
	)
	if query != "" {
		source = domain.SourceText
		places, err = r.provider.TextSearch(ctx, query, at, radius, placeType)
	} else {
		source = domain.SourceNearby
		places, err = r.provider.NearbySearch(ctx, at, radius, placeType)
	}
	if err != nil {
		log.Warn().Err(err).Str("query", query).Str("type", placeType).Msg("place search failed; using synthetic places")
		return domain.SearchResult{Places: mockPlaces(at, query, placeType), Source: domain.SourceMock}
	}
	if places == nil {
		places = []domain.Place{}
	}
	return domain.SearchResult{Places: places, Source: source}
}

// SearchBatch runs one Search per query concurrently and merges the results,
// keeping the first occurrence of each place id in query order. types is
// index-aligned with queries; types[i] filters queries[i], "" means unfiltered.
func (r *PlaceRepository) SearchBatch(ctx context.Context, at domain.Coordinate, queries []string, radius int, types []string) domain.SearchResult {
	key := BatchKey(at, queries, radius, types)

	var cached []domain.Place
	if r.cache.Get(ctx, key, &cached) {
		observability.ObservePlaceSearch("batch", string(domain.SourceCache))
		return domain.SearchResult{Places: cached, Source: domain.SourceCache}
	}

	results := make([]domain.SearchResult, len(queries))
	var g errgroup.Group
	for i, q := range queries {
		i, q := i, q
		placeType := ""
		if i < len(types) {
			placeType = types[i]
		}
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					log.Error().Str("query", q).Interface("panic", p).Msg("batch query panicked; contributing nothing")
					results[i] = domain.SearchResult{Source: domain.SourceFailed}
				}
			}()
			results[i] = r.Search(ctx, at, q, radius, placeType)
			return nil
		})
	}
	_ = g.Wait() // per-query failures are already absorbed

	degraded := false
	for _, res := range results {
		degraded = degraded || res.Degraded()
	}
	merged := dedupPlaces(results)

	source := domain.SourceBatch
	if degraded {
		source = domain.SourceMock
		log.Debug().Str("key", key).Msg("batch contains synthetic results; not caching")
	} else {
		r.cache.Set(ctx, key, merged, r.ttl)
	}
	observability.ObservePlaceSearch("batch", string(source))
	return domain.SearchResult{Places: merged, Source: source}
}

// dedupPlaces concatenates results in order; the first place seen with a
// given id wins.
func dedupPlaces(results []domain.SearchResult) []domain.Place {
	seen := make(map[string]struct{})
	out := []domain.Place{}
	for _, res := range results {
		for _, p := range res.Places {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Clear drops every cached place search from both tiers.
func (r *PlaceRepository) Clear(ctx context.Context) {
	r.cache.Clear(ctx, placesPrefix, placesBatchPrefix)
	log.Info().Msg("place cache cleared")
}

func (r *PlaceRepository) Stats() domain.CacheStats {
	return r.cache.Stats()
}
