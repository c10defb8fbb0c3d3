package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"trip_planner/internal/domain"
)

type builtinCity struct {
	name    string
	country string
	at      domain.Coordinate
}

var builtinCities = []builtinCity{
	{"paris", "France", domain.Coordinate{Lat: 48.8566, Lng: 2.3522}},
	{"london", "United Kingdom", domain.Coordinate{Lat: 51.5074, Lng: -0.1278}},
	{"new york", "United States", domain.Coordinate{Lat: 40.7128, Lng: -74.0060}},
	{"tokyo", "Japan", domain.Coordinate{Lat: 35.6762, Lng: 139.6503}},
	{"rome", "Italy", domain.Coordinate{Lat: 41.9028, Lng: 12.4964}},
	{"barcelona", "Spain", domain.Coordinate{Lat: 41.3851, Lng: 2.1734}},
	{"amsterdam", "Netherlands", domain.Coordinate{Lat: 52.3676, Lng: 4.9041}},
	{"berlin", "Germany", domain.Coordinate{Lat: 52.5200, Lng: 13.4050}},
	{"prague", "Czechia", domain.Coordinate{Lat: 50.0755, Lng: 14.4378}},
	{"vienna", "Austria", domain.Coordinate{Lat: 48.2082, Lng: 16.3738}},
}

// BuiltinDestinations returns the seed gazetteer.
func BuiltinDestinations() []domain.Destination {
	out := make([]domain.Destination, 0, len(builtinCities))
	for _, c := range builtinCities {
		country := c.country
		out = append(out, domain.Destination{Name: c.name, Location: c.at, Country: &country})
	}
	return out
}

// DestinationResolver turns a destination name into a coordinate:
// cache, then gazetteer, then the built-in table.
type DestinationResolver struct {
	cache domain.Cache
	repo  domain.DestinationRepository // optional
	ttl   time.Duration
}

func NewDestinationResolver(cache domain.Cache, repo domain.DestinationRepository, ttl time.Duration) *DestinationResolver {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &DestinationResolver{cache: cache, repo: repo, ttl: ttl}
}

// Resolve returns domain.ErrUnknownDestination when no source knows name.
func (d *DestinationResolver) Resolve(ctx context.Context, name string) (domain.Coordinate, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	if norm == "" {
		return domain.Coordinate{}, domain.ErrUnknownDestination
	}
	key := CoordinatesKey(norm)

	var at domain.Coordinate
	if d.cache.Get(ctx, key, &at) {
		return at, nil
	}

	if d.repo != nil {
		c, err := d.repo.LookupDestination(ctx, norm)
		switch {
		case err == nil:
			d.cache.Set(ctx, key, c, d.ttl)
			return c, nil
		case !errors.Is(err, domain.ErrNotFound):
			log.Warn().Err(err).Str("destination", norm).Msg("gazetteer lookup failed; trying built-in table")
		}
	}

	for _, c := range builtinCities {
		if c.name == norm {
			d.cache.Set(ctx, key, c.at, d.ttl)
			return c.at, nil
		}
	}

	if d.repo != nil {
		if err := d.repo.LogMiss(ctx, norm, "no coordinate"); err != nil {
			log.Debug().Err(err).Str("destination", norm).Msg("recording destination miss failed")
		}
	}
	return domain.Coordinate{}, fmt.Errorf("%q: %w", name, domain.ErrUnknownDestination)
}
