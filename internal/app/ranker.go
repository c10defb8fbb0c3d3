package app

import (
	"context"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"trip_planner/internal/adapters/observability"
	"trip_planner/internal/domain"
)

// RankResult is the ranked list plus which path produced it.
type RankResult struct {
	Candidates []domain.RankedCandidate
	Fallback   bool
	Reason     string
}

// Ranker orders candidates for a profile. It never fails: when the
// personalizer is missing or errors, a rating-based heuristic is used.
type Ranker struct {
	personalizer domain.Personalizer
}

func NewRanker(p domain.Personalizer) *Ranker {
	return &Ranker{personalizer: p}
}

// Rank returns at most topN candidates, best first. Ranks start at 1.
func (r *Ranker) Rank(ctx context.Context, profile domain.TravelerProfile, places []domain.Place, topN int) RankResult {
	if len(places) == 0 {
		return RankResult{Candidates: []domain.RankedCandidate{}}
	}
	if r.personalizer == nil {
		return r.fallback(places, topN, "personalization not configured")
	}

	req := domain.RecommendRequest{Profile: profile, TopN: topN, Candidates: make([]domain.CandidateProjection, 0, len(places))}
	for _, p := range places {
		req.Candidates = append(req.Candidates, domain.CandidateProjection{
			ID:          p.ID,
			Name:        p.Name,
			Types:       p.Types,
			Rating:      p.Rating,
			PriceTier:   p.PriceTier,
			RatingCount: p.RatingCount,
		})
	}

	resp, err := r.personalizer.Recommend(ctx, req)
	if err != nil {
		log.Warn().Err(err).Int("candidates", len(places)).Msg("personalization failed; using heuristic ranking")
		return r.fallback(places, topN, err.Error())
	}
	if !resp.Success {
		log.Warn().Str("error", resp.Error).Msg("personalization unsuccessful; using heuristic ranking")
		reason := resp.Error
		if reason == "" {
			reason = "personalization unsuccessful"
		}
		return r.fallback(places, topN, reason)
	}

	scores := make(map[string]float64, len(resp.Recommendations))
	for _, rec := range resp.Recommendations {
		scores[rec.ActivityID] = rec.Score
	}
	out := make([]domain.RankedCandidate, 0, len(places))
	for _, p := range places {
		out = append(out, domain.RankedCandidate{Place: p, Score: scores[p.ID]})
	}
	// stable: equal scores keep provider order
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	observability.ObserveRank("personalized")
	return RankResult{Candidates: finish(out, topN)}
}

func (r *Ranker) fallback(places []domain.Place, topN int, reason string) RankResult {
	out := make([]domain.RankedCandidate, 0, len(places))
	for _, p := range places {
		out = append(out, domain.RankedCandidate{Place: p, Score: HeuristicScore(p)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.ID < b.ID
	})

	observability.ObserveRank("fallback")
	return RankResult{Candidates: finish(out, topN), Fallback: true, Reason: reason}
}

// HeuristicScore is 0.6 of the normalized rating plus 0.4 of the rating
// volume, saturating at 1000 ratings. Missing values count as zero.
func HeuristicScore(p domain.Place) float64 {
	var rating, volume float64
	if p.Rating != nil {
		rating = *p.Rating / 5
	}
	if p.RatingCount != nil {
		volume = math.Min(float64(*p.RatingCount)/1000, 1)
	}
	return 0.6*rating + 0.4*volume
}

func finish(out []domain.RankedCandidate, topN int) []domain.RankedCandidate {
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
