package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	PlacesBase      string
	PlacesKey       string
	PlacesRPS       int
	RankerURL       string
	ScorerURL       string
	UpstreamTimeout time.Duration

	LocalCacheSize   int
	PlacesCacheTTL   time.Duration
	ItineraryTTL     time.Duration
	CoordinatesTTL   time.Duration
	QualityThreshold float64
	MaxIterations    int
	MinActivities    int
	MaxActivities    int
	RankTopN         int
	SearchRadius     int
	PoolRadius       int

	WarmWorkers      int
	WarmDestinations []string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	secs := func(k string, def int) time.Duration {
		return time.Duration(atoi(k, def)) * time.Second
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", ""),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		PlacesBase:      env("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		PlacesKey:       env("PLACES_API_KEY", ""),
		PlacesRPS:       atoi("PLACES_RPS", 10),
		RankerURL:       env("RANKER_URL", ""),
		ScorerURL:       env("SCORER_URL", ""),
		UpstreamTimeout: time.Duration(atoi("UPSTREAM_TIMEOUT_MS", 8000)) * time.Millisecond,

		LocalCacheSize:   atoi("LOCAL_CACHE_SIZE", 1000),
		PlacesCacheTTL:   secs("PLACES_CACHE_TTL_SECONDS", 3600),
		ItineraryTTL:     secs("ITINERARY_CACHE_TTL_SECONDS", 3600),
		CoordinatesTTL:   secs("COORDINATES_CACHE_TTL_SECONDS", 604800),
		QualityThreshold: atof("QUALITY_THRESHOLD", 80),
		MaxIterations:    atoi("OPTIMIZE_MAX_ITERATIONS", 5),
		MinActivities:    atoi("MIN_ACTIVITIES_PER_DAY", 3),
		MaxActivities:    atoi("MAX_ACTIVITIES_PER_DAY", 6),
		RankTopN:         atoi("RANK_TOP_N", 10),
		SearchRadius:     atoi("SEARCH_RADIUS_M", 5000),
		PoolRadius:       atoi("POOL_RADIUS_M", 10000),

		WarmWorkers:      atoi("WARM_WORKERS", 4),
		WarmDestinations: list(env("WARM_DESTINATIONS", "paris,london,rome")),
	}
	if c.PlacesKey == "" {
		log.Warn().Msg("PLACES_API_KEY is empty; place searches will return synthetic data")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func list(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
