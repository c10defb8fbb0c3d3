package personalization

import (
	"context"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"trip_planner/internal/adapters/httpx"
	"trip_planner/internal/domain"
)

// Client calls the personalization service's POST /recommendations.
// Calls short-circuit while the breaker is open.
type Client struct {
	url  string
	http *httpx.Client
	cb   *gobreaker.CircuitBreaker
}

var _ domain.Personalizer = (*Client)(nil)

func New(base string, timeout time.Duration) *Client {
	return &Client{
		url:  strings.TrimRight(base, "/") + "/recommendations",
		http: httpx.New(httpx.Options{Service: "personalization", Timeout: timeout}),
		cb:   httpx.NewBreaker("personalization", 5, 30*time.Second),
	}
}

func (c *Client) Recommend(ctx context.Context, req domain.RecommendRequest) (domain.RecommendResponse, error) {
	return httpx.Guard(c.cb, "personalization", "recommendations", func() (domain.RecommendResponse, error) {
		var resp domain.RecommendResponse
		err := c.http.PostJSON(ctx, "recommendations", c.url, req, &resp)
		return resp, err
	})
}
