package places

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trip_planner/internal/adapters/httpx"
	"trip_planner/internal/domain"
)

// Client talks to a Google Places style Text Search / Nearby Search API.
type Client struct {
	base string
	key  string
	http *httpx.Client
}

var _ domain.PlaceProvider = (*Client)(nil)

func New(base, key string, rps int, timeout time.Duration) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("places API key is required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		key:  key,
		http: httpx.New(httpx.Options{
			Service: "places",
			Timeout: timeout,
			RPS:     rps,
			Retries: 3,
		}),
	}, nil
}

// ---- wire format ----

type searchResponse struct {
	Results      []placeResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Vicinity         string   `json:"vicinity"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	PriceLevel       *int     `json:"price_level,omitempty"`
	Types            []string `json:"types"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos,omitempty"`
}

// ---- Public API ----

func (c *Client) TextSearch(ctx context.Context, query string, at domain.Coordinate, radius int, placeType string) ([]domain.Place, error) {
	q := c.params(at, radius, placeType)
	q.Set("query", query)
	return c.search(ctx, "textsearch", q)
}

func (c *Client) NearbySearch(ctx context.Context, at domain.Coordinate, radius int, placeType string) ([]domain.Place, error) {
	return c.search(ctx, "nearbysearch", c.params(at, radius, placeType))
}

// ---- Internals ----

func (c *Client) params(at domain.Coordinate, radius int, placeType string) url.Values {
	q := url.Values{}
	q.Set("location", strconv.FormatFloat(at.Lat, 'f', -1, 64)+","+strconv.FormatFloat(at.Lng, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(radius))
	q.Set("key", c.key)
	if placeType != "" {
		q.Set("type", placeType)
	}
	return q
}

func (c *Client) search(ctx context.Context, endpoint string, q url.Values) ([]domain.Place, error) {
	var resp searchResponse
	u := c.base + "/" + endpoint + "/json?" + q.Encode()
	if err := c.http.GetJSON(ctx, endpoint, u, &resp); err != nil {
		return nil, err
	}
	// The API reports errors in-band with a 200.
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		if resp.ErrorMessage != "" {
			return nil, fmt.Errorf("places %s: %s: %s", endpoint, resp.Status, resp.ErrorMessage)
		}
		return nil, fmt.Errorf("places %s: %s", endpoint, resp.Status)
	}
	return transform(resp.Results), nil
}

func transform(in []placeResult) []domain.Place {
	out := make([]domain.Place, 0, len(in))
	for _, r := range in {
		if r.PlaceID == "" {
			continue
		}
		addr := r.FormattedAddress
		if addr == "" {
			addr = r.Vicinity
		}
		p := domain.Place{
			ID:          r.PlaceID,
			Name:        r.Name,
			Address:     addr,
			Location:    domain.Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			Rating:      r.Rating,
			RatingCount: r.UserRatingsTotal,
			PriceTier:   r.PriceLevel,
			Types:       r.Types,
		}
		if len(r.Photos) > 0 {
			p.PhotoReference = r.Photos[0].PhotoReference
		}
		out = append(out, p)
	}
	return out
}
