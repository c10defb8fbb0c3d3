package main

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"trip_planner/internal/adapters/observability"
	"trip_planner/internal/app"
	"trip_planner/internal/bootstrap"
	"trip_planner/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "warmer")

	log.Info().
		Strs("destinations", cfg.WarmDestinations).
		Int("workers", cfg.WarmWorkers).
		Msg("warmer starting")

	deps, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}
	defer deps.Close()

	// 2) seed the gazetteer so lookups stop falling through to the built-in table
	if deps.Gazetteer != nil {
		for _, d := range app.BuiltinDestinations() {
			if err := deps.Gazetteer.UpsertDestination(ctx, d); err != nil {
				log.Warn().Str("destination", d.Name).Err(err).Msg("gazetteer upsert failed")
			}
		}
		log.Info().Msg("gazetteer seeded")
	}

	// 3) warm the first-day searches of each destination
	workers := cfg.WarmWorkers
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for _, name := range cfg.WarmDestinations {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(dest string) {
			defer wg.Done()
			defer sem.Release(1)

			at, err := deps.Destinations.Resolve(ctx, dest)
			if err != nil {
				log.Warn().Str("destination", dest).Err(err).Msg("warm skipped")
				return
			}
			queries, types := app.DayQueries(warmInterests, nil, 0)
			res := deps.Places.SearchBatch(ctx, at, queries, cfg.SearchRadius, types)
			log.Info().
				Str("destination", dest).
				Int("places", len(res.Places)).
				Str("source", string(res.Source)).
				Msg("warm ok")
		}(strings.ToLower(name))
	}

	wg.Wait()
	log.Info().Msg("warm-up completed")
}

var warmInterests = []string{"culture", "food", "nature"}
