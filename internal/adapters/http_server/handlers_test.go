package httpserver_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "trip_planner/internal/adapters/http_server"
	"trip_planner/internal/app"
	"trip_planner/internal/domain"
)

type fakePlanner struct {
	got     app.PlanRequest
	err     error
	cleared bool
}

func (f *fakePlanner) PlanItinerary(ctx context.Context, req app.PlanRequest) (domain.Itinerary, error) {
	f.got = req
	if f.err != nil {
		return domain.Itinerary{}, f.err
	}
	return domain.Itinerary{TripID: "t1", Destination: req.Destination, Scoring: domain.ScoringSkipped}, nil
}

func (f *fakePlanner) EnrichItinerary(ctx context.Context, it domain.Itinerary, destination string) (domain.Itinerary, error) {
	it.Summary = "enriched for " + destination
	return it, nil
}

func (f *fakePlanner) ClearPlaceCache(ctx context.Context) { f.cleared = true }

func (f *fakePlanner) CacheStats() domain.CacheStats {
	return domain.CacheStats{Size: 3, Capacity: 1000, TTL: time.Hour}
}

func newServer(p *fakePlanner) *httptest.Server {
	s := httpserver.New(5 * time.Second)
	s.MountHandlers(&httpserver.Handlers{P: p})
	return httptest.NewServer(s.Mux())
}

func TestPlanItinerary_OK(t *testing.T) {
	p := &fakePlanner{}
	ts := newServer(p)
	defer ts.Close()

	body := `{"destination":"Paris","start_date":"2025-06-01","days":3,"budget":900,"currency":"USD","interests":["food"]}`
	resp, err := http.Post(ts.URL+"/v1/itineraries", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("ETag") == "" {
		t.Fatal("missing ETag")
	}
	var it domain.Itinerary
	if err := json.NewDecoder(resp.Body).Decode(&it); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if it.TripID != "t1" || p.got.Days != 3 || p.got.Budget != 900 {
		t.Fatalf("unexpected: %+v / %+v", it, p.got)
	}
}

func TestPlanItinerary_InvalidIsProblem(t *testing.T) {
	ts := newServer(&fakePlanner{err: fmt.Errorf("%w: currency is required", domain.ErrInvalidRequest)})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/itineraries", "application/json", strings.NewReader(`{"destination":"Paris"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type = %s", ct)
	}
}

func TestPlanItinerary_BadJSON(t *testing.T) {
	ts := newServer(&fakePlanner{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/itineraries", "application/json", strings.NewReader(`{"destination":`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestEnrich(t *testing.T) {
	ts := newServer(&fakePlanner{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/itineraries/enrich", "application/json",
		strings.NewReader(`{"destination":"Rome","itinerary":{"trip_id":"x","days":[]}}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	var it domain.Itinerary
	_ = json.NewDecoder(resp.Body).Decode(&it)
	if resp.StatusCode != http.StatusOK || it.Summary != "enriched for Rome" {
		t.Fatalf("status=%d it=%+v", resp.StatusCode, it)
	}
}

func TestCacheAdmin(t *testing.T) {
	p := &fakePlanner{}
	ts := newServer(p)
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/cache/places", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent || !p.cleared {
		t.Fatalf("status=%d cleared=%t", resp.StatusCode, p.cleared)
	}

	resp, err = http.Get(ts.URL + "/v1/cache/stats")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var st map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&st)
	if st["ttl_seconds"] != float64(3600) || st["capacity"] != float64(1000) {
		t.Fatalf("stats: %v", st)
	}
}
