package scorer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"trip_planner/internal/adapters/httpx"
	"trip_planner/internal/domain"
)

// Client is the HTTP transport for the external quality scorer:
// GET /health, POST /score, POST /optimize.
type Client struct {
	base string
	http *httpx.Client
	cb   *gobreaker.CircuitBreaker
}

var _ domain.Scorer = (*Client)(nil)

func New(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: httpx.New(httpx.Options{Service: "scorer", Timeout: timeout}),
		cb:   httpx.NewBreaker("scorer", 3, time.Minute),
	}
}

type scoreRequest struct {
	Itinerary domain.Itinerary       `json:"itinerary"`
	Profile   domain.TravelerProfile `json:"user_profile"`
}

type scoreResponse struct {
	Status      string              `json:"status"`
	Message     string              `json:"message,omitempty"`
	HealthScore *domain.HealthScore `json:"health_score,omitempty"`
}

type optimizeResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Result  *domain.OptimizeResult `json:"optimization_result,omitempty"`
}

// HealthCheck reports false while the breaker is open, without a round-trip.
func (c *Client) HealthCheck(ctx context.Context) bool {
	_, err := httpx.Guard(c.cb, "scorer", "health", func() (struct{}, error) {
		return struct{}{}, c.http.GetJSON(ctx, "health", c.base+"/health", nil)
	})
	return err == nil
}

func (c *Client) Score(ctx context.Context, it domain.Itinerary, p domain.TravelerProfile) (domain.HealthScore, error) {
	return httpx.Guard(c.cb, "scorer", "score", func() (domain.HealthScore, error) {
		var resp scoreResponse
		if err := c.http.PostJSON(ctx, "score", c.base+"/score", scoreRequest{Itinerary: it, Profile: p}, &resp); err != nil {
			return domain.HealthScore{}, err
		}
		if resp.Status != "success" || resp.HealthScore == nil {
			return domain.HealthScore{}, fmt.Errorf("%w: score: %s", domain.ErrUnavailable, orDefault(resp.Message, resp.Status))
		}
		return *resp.HealthScore, nil
	})
}

func (c *Client) Optimize(ctx context.Context, req domain.OptimizeRequest) (domain.OptimizeResult, error) {
	return httpx.Guard(c.cb, "scorer", "optimize", func() (domain.OptimizeResult, error) {
		var resp optimizeResponse
		if err := c.http.PostJSON(ctx, "optimize", c.base+"/optimize", req, &resp); err != nil {
			return domain.OptimizeResult{}, err
		}
		if resp.Status != "success" || resp.Result == nil {
			return domain.OptimizeResult{}, fmt.Errorf("%w: optimize: %s", domain.ErrUnavailable, orDefault(resp.Message, resp.Status))
		}
		return *resp.Result, nil
	})
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
