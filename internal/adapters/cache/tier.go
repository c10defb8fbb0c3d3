package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"trip_planner/internal/domain"
)

// maxBackfill bounds how long a copy pulled from the shared tier lives
// locally, so a clear on another instance is seen within this window.
const maxBackfill = time.Minute

// Tier consults the shared store first, then the local one. Every backend
// error is logged and treated as a miss.
type Tier struct {
	local  *Local
	shared domain.SharedCache
}

var _ domain.Cache = (*Tier)(nil)

// NewTier builds the tier; shared may be nil to run in-process only.
func NewTier(local *Local, shared domain.SharedCache) *Tier {
	return &Tier{local: local, shared: shared}
}

func (t *Tier) Get(ctx context.Context, key string, dst any) bool {
	if t.shared != nil {
		ok, err := t.shared.Get(ctx, key, dst)
		if err != nil {
			log.Debug().Err(err).Str("key", key).Msg("shared cache get failed; treating as miss")
		} else if ok {
			t.backfill(ctx, key, dst)
			return true
		}
	}

	b, ok := t.local.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("local cache decode failed; treating as miss")
		return false
	}
	return true
}

// backfill copies a shared hit into the local tier, never past the shared
// entry's own expiry.
func (t *Tier) backfill(ctx context.Context, key string, v any) {
	ttl := maxBackfill
	if rem, err := t.shared.TTL(ctx, key); err == nil && rem > 0 && rem < ttl {
		ttl = rem
	}
	if b, err := json.Marshal(v); err == nil {
		t.local.Set(key, b, ttl)
	}
}

func (t *Tier) Set(ctx context.Context, key string, v any, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache value not serializable")
		return
	}
	t.local.Set(key, b, ttl)
	if t.shared != nil {
		if err := t.shared.Set(ctx, key, json.RawMessage(b), ttl); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("shared cache set failed")
		}
	}
}

func (t *Tier) Clear(ctx context.Context, prefixes ...string) {
	n := t.local.Clear(prefixes...)
	removed := 0
	if t.shared != nil {
		targets := prefixes
		if len(targets) == 0 {
			targets = []string{""}
		}
		for _, p := range targets {
			c, err := t.shared.DelPrefix(ctx, p)
			if err != nil {
				log.Warn().Err(err).Str("prefix", p).Msg("shared cache clear failed")
				continue
			}
			removed += c
		}
	}
	log.Info().Strs("prefixes", prefixes).Int("local", n).Int("shared", removed).Msg("cache cleared")
}

func (t *Tier) Stats() domain.CacheStats {
	return domain.CacheStats{
		Size:     t.local.Len(),
		Capacity: t.local.Capacity(),
		TTL:      t.local.TTL(),
		Shared:   t.shared != nil,
	}
}
