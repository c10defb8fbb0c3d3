package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"trip_planner/internal/adapters/cache"
	"trip_planner/internal/adapters/personalization"
	"trip_planner/internal/adapters/places"
	redisad "trip_planner/internal/adapters/redis"
	"trip_planner/internal/adapters/scorer"
	"trip_planner/internal/app"
	"trip_planner/internal/domain"
	"trip_planner/internal/shared"
	mysqlrepo "trip_planner/internal/storage/mysql"
)

// Deps is the wired object graph shared by every binary.
type Deps struct {
	Planner      *app.Planner
	Places       *app.PlaceRepository
	Destinations *app.DestinationResolver
	Gazetteer    *mysqlrepo.Repo // nil without MYSQL_DSN

	db    *sql.DB
	redis *redisad.Cache
}

// Build wires collaborators from cfg. Every optional upstream left
// unconfigured degrades the pipeline instead of failing it.
func Build(ctx context.Context, cfg shared.Config) (*Deps, error) {
	d := &Deps{}

	var sharedTier domain.SharedCache
	if cfg.RedisAddr != "" {
		d.redis = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		sharedTier = d.redis
		log.Info().Str("addr", cfg.RedisAddr).Msg("shared cache tier enabled")
	}
	tier := cache.NewTier(cache.NewLocal(cfg.LocalCacheSize, cfg.PlacesCacheTTL), sharedTier)

	var provider domain.PlaceProvider
	if cfg.PlacesKey != "" {
		c, err := places.New(cfg.PlacesBase, cfg.PlacesKey, cfg.PlacesRPS, cfg.UpstreamTimeout)
		if err != nil {
			return nil, fmt.Errorf("places client: %w", err)
		}
		provider = c
	}

	var pers domain.Personalizer
	if cfg.RankerURL != "" {
		pers = personalization.New(cfg.RankerURL, cfg.UpstreamTimeout)
	}

	var sc domain.Scorer
	if cfg.ScorerURL != "" {
		sc = scorer.New(cfg.ScorerURL, cfg.UpstreamTimeout)
	}

	var gazetteer domain.DestinationRepository
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db.Ping: %w", err)
		}
		log.Info().Msg("database connection ok")
		d.db = db
		d.Gazetteer = mysqlrepo.New(db)
		gazetteer = d.Gazetteer
	}

	d.Places = app.NewPlaceRepository(provider, tier, cfg.PlacesCacheTTL)
	d.Destinations = app.NewDestinationResolver(tier, gazetteer, cfg.CoordinatesTTL)
	d.Planner = app.NewPlanner(d.Places, app.NewRanker(pers), d.Destinations, sc, tier, app.PlannerConfig{
		QualityThreshold: cfg.QualityThreshold,
		MaxIterations:    cfg.MaxIterations,
		RankTopN:         cfg.RankTopN,
		SearchRadius:     cfg.SearchRadius,
		PoolRadius:       cfg.PoolRadius,
		MinActivities:    cfg.MinActivities,
		MaxActivities:    cfg.MaxActivities,
		ItineraryTTL:     cfg.ItineraryTTL,
	})

	log.Info().
		Bool("places", provider != nil).
		Bool("personalization", pers != nil).
		Bool("scorer", sc != nil).
		Bool("gazetteer", gazetteer != nil).
		Bool("shared_cache", sharedTier != nil).
		Msg("dependencies wired")
	return d, nil
}

func (d *Deps) Close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
	if d.db != nil {
		_ = d.db.Close()
	}
}
