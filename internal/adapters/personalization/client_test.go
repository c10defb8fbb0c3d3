package personalization_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sony/gobreaker"

	"trip_planner/internal/adapters/observability"
	"trip_planner/internal/adapters/personalization"
	"trip_planner/internal/domain"
)

func TestClient_Recommend(t *testing.T) {
	var got domain.RecommendRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommendations" {
			w.WriteHeader(404)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(domain.RecommendResponse{
			Success: true,
			Recommendations: []domain.Recommendation{
				{ActivityID: "b", Score: 0.9, Rank: 1},
				{ActivityID: "a", Score: 0.4, Rank: 2},
			},
		})
	}))
	defer ts.Close()

	cl := personalization.New(ts.URL, time.Second)
	resp, err := cl.Recommend(context.Background(), domain.RecommendRequest{
		Profile:    domain.TravelerProfile{Interests: []string{"food"}, BudgetTier: 2, Pace: domain.PaceModerate},
		Candidates: []domain.CandidateProjection{{ID: "a"}, {ID: "b"}},
		TopN:       2,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !resp.Success || len(resp.Recommendations) != 2 || resp.Recommendations[0].ActivityID != "b" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got.TopN != 2 || len(got.Candidates) != 2 || got.Profile.Interests[0] != "food" {
		t.Fatalf("unexpected request on the wire: %+v", got)
	}
}

func TestClient_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(500)
	}))
	defer ts.Close()

	rejected := observability.ExternalRequests.WithLabelValues("personalization", "recommendations", "breaker_open")
	before := counterValue(rejected)

	cl := personalization.New(ts.URL, time.Second)
	var last error
	for i := 0; i < 8; i++ {
		_, last = cl.Recommend(context.Background(), domain.RecommendRequest{})
	}
	if !errors.Is(last, gobreaker.ErrOpenState) {
		t.Fatalf("expected open breaker, got %v", last)
	}
	if n := atomic.LoadInt32(&hits); n != 5 {
		t.Fatalf("expected 5 upstream calls before tripping, got %d", n)
	}
	if got := counterValue(rejected) - before; got != 3 {
		t.Fatalf("expected 3 calls counted as breaker_open, got %v", got)
	}
}

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	_ = c.Write(&m)
	return m.GetCounter().GetValue()
}
