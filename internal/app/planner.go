package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trip_planner/internal/adapters/observability"
	"trip_planner/internal/domain"
)

type PlannerConfig struct {
	QualityThreshold float64
	MaxIterations    int
	RankTopN         int
	SearchRadius     int
	PoolRadius       int
	MinActivities    int
	MaxActivities    int
	ItineraryTTL     time.Duration
}

func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		QualityThreshold: 80,
		MaxIterations:    5,
		RankTopN:         10,
		SearchRadius:     5000,
		PoolRadius:       10000,
		MinActivities:    3,
		MaxActivities:    6,
		ItineraryTTL:     time.Hour,
	}
}

// Planner runs the whole pipeline: sourcing, ranking and assembly per day,
// then optional scoring and refinement.
type Planner struct {
	places       *PlaceRepository
	ranker       *Ranker
	assembler    *Assembler
	destinations *DestinationResolver
	scorer       domain.Scorer // optional
	cache        domain.Cache
	cfg          PlannerConfig
	now          func() time.Time
}

func NewPlanner(
	places *PlaceRepository,
	ranker *Ranker,
	destinations *DestinationResolver,
	scorer domain.Scorer,
	cache domain.Cache,
	cfg PlannerConfig,
) *Planner {
	return &Planner{
		places:       places,
		ranker:       ranker,
		assembler:    NewAssembler(cfg.MinActivities, cfg.MaxActivities),
		destinations: destinations,
		scorer:       scorer,
		cache:        cache,
		cfg:          cfg,
		now:          time.Now,
	}
}

// PlanItinerary returns a complete itinerary for any valid request. Only
// input validation (wrapping domain.ErrInvalidRequest) and cancellation of ctx
// are reported as errors; every upstream failure degrades instead.
func (p *Planner) PlanItinerary(ctx context.Context, req PlanRequest) (domain.Itinerary, error) {
	days, err := req.normalize(p.now())
	if err != nil {
		return domain.Itinerary{}, err
	}

	key := ItineraryKey(req)
	var cached domain.Itinerary
	if p.cache.Get(ctx, key, &cached) {
		log.Info().Str("key", key).Msg("itinerary cache hit")
		observability.ObservePlan("cached")
		return cached, nil
	}

	at, err := p.center(ctx, req)
	if err != nil {
		return domain.Itinerary{}, err
	}

	profile := BuildProfile(req, days)
	it, err := p.assemble(ctx, req, at, profile, days)
	if err != nil {
		return domain.Itinerary{}, err
	}

	p.scoreAndRefine(ctx, &it, req, at, profile)

	p.cache.Set(ctx, key, it, p.cfg.ItineraryTTL)
	observability.ObservePlan(string(it.Scoring))
	log.Info().
		Str("trip_id", it.TripID).
		Int("days", len(it.Days)).
		Int("activities", it.ActivityCount()).
		Float64("total_cost", it.TotalCost.Amount).
		Str("scoring", string(it.Scoring)).
		Bool("rank_fallback", it.RankFallback).
		Msg("itinerary generated")
	return it, nil
}

// center prefers an explicit coordinate over the destination name.
func (p *Planner) center(ctx context.Context, req PlanRequest) (domain.Coordinate, error) {
	if req.Location != nil {
		return *req.Location, nil
	}
	at, err := p.destinations.Resolve(ctx, req.Destination)
	if errors.Is(err, domain.ErrUnknownDestination) {
		return domain.Coordinate{}, fmt.Errorf("%w: %v; provide location", domain.ErrInvalidRequest, err)
	}
	return at, err
}

func (p *Planner) assemble(ctx context.Context, req PlanRequest, at domain.Coordinate, profile domain.TravelerProfile, days int) (domain.Itinerary, error) {
	start, _ := time.Parse(dateLayout, req.StartDate)
	dailyBudget := req.Budget / float64(days)

	limit := req.ActivitiesPerDay
	if limit > 0 {
		limit = min(max(limit, p.cfg.MinActivities), p.cfg.MaxActivities)
	}

	tripID := req.TripID
	if tripID == "" {
		tripID = uuid.NewString()
	}
	it := domain.Itinerary{
		TripID:      tripID,
		Destination: req.Destination,
		Days:        make([]domain.ItineraryDay, 0, days),
		GeneratedAt: p.now().UTC(),
	}

	for i := 0; i < days; i++ {
		if err := ctx.Err(); err != nil {
			return domain.Itinerary{}, err
		}
		queries, types := DayQueries(req.Interests, req.MustSee, i)
		pool := p.places.SearchBatch(ctx, at, queries, p.cfg.SearchRadius, types)

		ranked := p.ranker.Rank(ctx, profile, pool.Places, p.cfg.RankTopN)
		if ranked.Fallback {
			it.RankFallback = true
		}
		for j := range ranked.Candidates {
			ranked.Candidates[j].DistanceMeters = math.Round(distanceMeters(at, ranked.Candidates[j].Location))
		}

		activities := p.assembler.BuildDay(ranked.Candidates, dailyBudget, req.Currency, limit)
		it.Days = append(it.Days, domain.ItineraryDay{
			Day:        i + 1,
			Date:       start.AddDate(0, 0, i).Format(dateLayout),
			Activities: activities,
		})
		log.Debug().
			Int("day", i+1).
			Int("candidates", len(pool.Places)).
			Str("source", string(pool.Source)).
			Int("activities", len(activities)).
			Msg("day assembled")
	}

	it.TotalCost = domain.Money{Amount: totalCost(it.Days), Currency: req.Currency}
	it.Summary = summarize(it.Days, req)
	it.Scoring = domain.ScoringSkipped
	return it, nil
}

// scoreAndRefine attaches a health score and, below the threshold, asks the
// scorer to optimize. Any failure leaves it exactly as assembled.
func (p *Planner) scoreAndRefine(ctx context.Context, it *domain.Itinerary, req PlanRequest, at domain.Coordinate, profile domain.TravelerProfile) {
	if p.scorer == nil {
		return
	}
	assembled := *it
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("scoring panicked; returning unscored itinerary")
			*it = assembled
			it.Scoring = domain.ScoringFailed
		}
	}()

	if !p.scorer.HealthCheck(ctx) {
		log.Warn().Msg("scorer unavailable; skipping quality optimization")
		return
	}

	hs, err := p.scorer.Score(ctx, *it, profile)
	if err != nil {
		log.Warn().Err(err).Msg("scoring failed; treating scorer as unavailable")
		return
	}
	it.HealthScore = &hs
	it.Scoring = domain.ScoringScored
	log.Info().Float64("score", hs.Overall).Str("status", hs.Status).Msg("itinerary scored")

	if hs.Overall >= p.cfg.QualityThreshold || p.cfg.MaxIterations <= 0 {
		return
	}

	queries, types := PoolQueries(req.Interests)
	pool := p.places.SearchBatch(ctx, at, queries, p.cfg.PoolRadius, types)

	res, err := p.scorer.Optimize(ctx, domain.OptimizeRequest{
		Itinerary:     *it,
		Profile:       profile,
		CandidatePool: pool.Places,
		MaxIterations: p.cfg.MaxIterations,
	})
	if err == nil && len(res.Itinerary.Days) == 0 {
		err = errors.New("optimizer returned no days")
	}
	if err != nil {
		log.Warn().Err(err).Msg("optimization failed; returning unscored itinerary")
		*it = assembled
		it.Scoring = domain.ScoringFailed
		return
	}

	it.Days = res.Itinerary.Days
	it.TotalCost = domain.Money{Amount: totalCost(it.Days), Currency: req.Currency}
	it.Summary = summarize(it.Days, req)
	it.HealthScore = &res.HealthScore
	it.Optimization = &domain.OptimizationRecord{
		ChangesApplied: res.ChangesApplied,
		Improvement:    res.Improvement,
		OriginalScore:  res.OriginalScore,
		MaxIterations:  p.cfg.MaxIterations,
	}
	it.Scoring = domain.ScoringOptimized
	log.Info().
		Int("changes", res.ChangesApplied).
		Float64("from", res.OriginalScore).
		Float64("to", res.HealthScore.Overall).
		Msg("optimization complete")
}

// ClearPlaceCache drops every cached place search.
func (p *Planner) ClearPlaceCache(ctx context.Context) {
	p.places.Clear(ctx)
}

func (p *Planner) CacheStats() domain.CacheStats {
	return p.places.Stats()
}

func totalCost(days []domain.ItineraryDay) float64 {
	var total float64
	for _, d := range days {
		total += d.Cost()
	}
	return math.Round(total*100) / 100
}

func summarize(days []domain.ItineraryDay, req PlanRequest) string {
	activities := 0
	categories := map[string]struct{}{}
	for _, d := range days {
		activities += len(d.Activities)
		for _, a := range d.Activities {
			categories[a.Category] = struct{}{}
		}
	}
	s := fmt.Sprintf("A %d-day %s itinerary for %d traveler(s) with %d activities across %d categories.",
		len(days), req.Pace, req.Travelers, activities, len(categories))
	if len(req.Interests) > 0 {
		s += fmt.Sprintf(" Perfect for %s interests.", strings.Join(req.Interests, ", "))
	}
	return s
}
