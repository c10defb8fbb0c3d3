package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"trip_planner/internal/adapters/cache"
	redisad "trip_planner/internal/adapters/redis"
	"trip_planner/internal/domain"
)

type brokenShared struct{ calls int }

func (b *brokenShared) Get(ctx context.Context, key string, dst any) (bool, error) {
	b.calls++
	return false, errors.New("connection refused")
}
func (b *brokenShared) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b.calls++
	return errors.New("connection refused")
}
func (b *brokenShared) Del(ctx context.Context, key string) error { return errors.New("connection refused") }
func (b *brokenShared) DelPrefix(ctx context.Context, prefix string) (int, error) {
	return 0, errors.New("connection refused")
}

func (b *brokenShared) TTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, errors.New("connection refused")
}

func TestLocal_EvictsLeastRecentlyUsed(t *testing.T) {
	l := cache.NewLocal(2, time.Hour)
	l.Set("a", []byte("1"), 0)
	l.Set("b", []byte("2"), 0)
	if _, ok := l.Get("a"); !ok { // touch a so b becomes the oldest
		t.Fatalf("expected a")
	}
	l.Set("c", []byte("3"), 0)

	if _, ok := l.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if _, ok := l.Get("a"); !ok {
		t.Fatalf("expected a to survive")
	}
	if l.Len() != 2 {
		t.Fatalf("expected size 2, got %d", l.Len())
	}
}

func TestLocal_PerEntryTTL(t *testing.T) {
	l := cache.NewLocal(10, time.Hour)
	l.Set("short", []byte("x"), 20*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	if _, ok := l.Get("short"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestLocal_ClearByPrefix(t *testing.T) {
	l := cache.NewLocal(10, time.Hour)
	l.Set("places:1", []byte("x"), 0)
	l.Set("places_batch:1", []byte("x"), 0)
	l.Set("itinerary:1", []byte("x"), 0)

	if n := l.Clear("places:", "places_batch:"); n != 2 {
		t.Fatalf("expected 2 cleared, got %d", n)
	}
	if _, ok := l.Get("itinerary:1"); !ok {
		t.Fatalf("itinerary entry should survive a places clear")
	}
}

func TestTier_LocalOnlyRoundTrip(t *testing.T) {
	tier := cache.NewTier(cache.NewLocal(10, time.Hour), nil)
	ctx := context.Background()

	in := []domain.Place{{ID: "p1", Name: "Louvre"}}
	tier.Set(ctx, "places:x", in, time.Minute)

	var out []domain.Place
	if !tier.Get(ctx, "places:x", &out) {
		t.Fatalf("expected hit")
	}
	out[0].Name = "mutated"

	var again []domain.Place
	tier.Get(ctx, "places:x", &again)
	if again[0].Name != "Louvre" {
		t.Fatalf("cached value aliased caller copy: %+v", again)
	}

	st := tier.Stats()
	if st.Size != 1 || st.Capacity != 10 || st.TTL != time.Hour || st.Shared {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestTier_SharedHitBackfillsLocal(t *testing.T) {
	mr := miniredis.RunT(t)
	shared := redisad.New(mr.Addr(), "", 0)
	defer shared.Close()
	ctx := context.Background()

	// another instance wrote the entry
	if err := shared.Set(ctx, "places:k", []domain.Place{{ID: "p9"}}, time.Hour); err != nil {
		t.Fatalf("seed: %v", err)
	}

	local := cache.NewLocal(10, time.Hour)
	tier := cache.NewTier(local, shared)

	var out []domain.Place
	if !tier.Get(ctx, "places:k", &out) || len(out) != 1 || out[0].ID != "p9" {
		t.Fatalf("expected shared hit, got %+v", out)
	}
	if _, ok := local.Get("places:k"); !ok {
		t.Fatalf("expected local tier to be populated after shared hit")
	}

	// the shared tier going away leaves the local copy serving
	mr.Close()
	out = nil
	if !tier.Get(ctx, "places:k", &out) || out[0].ID != "p9" {
		t.Fatalf("expected local hit after shared outage, got %+v", out)
	}
}

func TestTier_BackfillExpiresWithSharedEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	shared := redisad.New(mr.Addr(), "", 0)
	defer shared.Close()
	ctx := context.Background()

	if err := shared.Set(ctx, "places:short", "v", 50*time.Millisecond); err != nil {
		t.Fatalf("seed: %v", err)
	}
	tier := cache.NewTier(cache.NewLocal(10, time.Hour), shared)

	var out string
	if !tier.Get(ctx, "places:short", &out) {
		t.Fatal("expected shared hit")
	}

	// only the local copy could answer now, and it must be gone too
	mr.Close()
	time.Sleep(80 * time.Millisecond)
	if tier.Get(ctx, "places:short", &out) {
		t.Fatal("local backfill outlived the shared entry")
	}
}

func TestTier_SharedErrorsAreMisses(t *testing.T) {
	b := &brokenShared{}
	tier := cache.NewTier(cache.NewLocal(10, time.Hour), b)
	ctx := context.Background()

	var out string
	if tier.Get(ctx, "missing", &out) {
		t.Fatalf("expected miss")
	}

	tier.Set(ctx, "k", "v", time.Minute)
	if !tier.Get(ctx, "k", &out) || out != "v" {
		t.Fatalf("expected local hit despite broken shared tier, got %q", out)
	}
	if b.calls == 0 {
		t.Fatalf("shared tier was never consulted")
	}
	tier.Clear(ctx, "k") // must not panic or surface the error
}

func TestTier_ClearBothTiers(t *testing.T) {
	mr := miniredis.RunT(t)
	shared := redisad.New(mr.Addr(), "", 0)
	defer shared.Close()
	ctx := context.Background()

	tier := cache.NewTier(cache.NewLocal(10, time.Hour), shared)
	tier.Set(ctx, "places:a", 1, time.Hour)
	tier.Set(ctx, "itinerary:b", 2, time.Hour)

	tier.Clear(ctx, "places:")

	var v int
	if tier.Get(ctx, "places:a", &v) {
		t.Fatalf("places entry should be gone from both tiers")
	}
	if !tier.Get(ctx, "itinerary:b", &v) || v != 2 {
		t.Fatalf("itinerary entry should survive")
	}
	if mr.Exists("places:a") {
		t.Fatalf("shared tier still holds places:a")
	}
}
