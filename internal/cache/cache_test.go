package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tpetrov/safellm/internal/similarity"
)

func floatPtr(v float64) *float64 { return &v }

func newTestCache(t *testing.T, opts Options) (*Cache, *MemoryStore) {
	t.Helper()

	svc, err := similarity.NewService("")
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	store := NewMemoryStore(0)
	return New(store, svc, opts), store
}

func TestCache_MissOnEmpty(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	ctx := context.Background()

	_, ok, err := c.Lookup(ctx, "anything")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if ok {
		t.Error("expected miss on empty cache")
	}
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	ctx := context.Background()

	if err := c.Store(ctx, "what is the capital of france", "Paris"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	// Exact repeat: jaccard score 1.0 > 0.8.
	got, ok, err := c.Lookup(ctx, "what is the capital of france")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok || got != "Paris" {
		t.Errorf("Lookup = (%q, %v), want (%q, true)", got, ok, "Paris")
	}

	// Near-duplicate phrasing still hits.
	got, ok, err = c.Lookup(ctx, "what is  the capital of France")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok || got != "Paris" {
		t.Errorf("near-duplicate Lookup = (%q, %v), want (%q, true)", got, ok, "Paris")
	}

	// Unrelated request misses.
	_, ok, err = c.Lookup(ctx, "how do jellyfish reproduce")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if ok {
		t.Error("unrelated request should miss")
	}
}

func TestCache_ThresholdIsStrict(t *testing.T) {
	// "a b c" vs "a b d": jaccard = 2/4 = 0.5 exactly.
	c, _ := newTestCache(t, Options{Threshold: floatPtr(0.5)})
	ctx := context.Background()

	if err := c.Store(ctx, "a b c", "resp"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	_, ok, err := c.Lookup(ctx, "a b d")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if ok {
		t.Error("score equal to threshold must not hit; the comparison is strict")
	}

	c2, _ := newTestCache(t, Options{Threshold: floatPtr(0.4)})
	if err := c2.Store(ctx, "a b c", "resp"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	_, ok, err = c2.Lookup(ctx, "a b d")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok {
		t.Error("score above threshold should hit")
	}
}

func TestCache_ZeroThresholdIsHonored(t *testing.T) {
	// An explicit 0 must not fall back to the default: any positive score
	// hits.
	c, _ := newTestCache(t, Options{Threshold: floatPtr(0)})
	ctx := context.Background()

	if err := c.Store(ctx, "a b c d e", "resp"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	// One shared token out of six: jaccard well below the 0.8 default.
	got, ok, err := c.Lookup(ctx, "a x y")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok || got != "resp" {
		t.Errorf("Lookup = (%q, %v), want any positive score to hit", got, ok)
	}

	// Disjoint texts score exactly 0 and must still miss.
	_, ok, err = c.Lookup(ctx, "q r s")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if ok {
		t.Error("zero score must not exceed a zero threshold")
	}
}

func TestCache_UnsetThresholdUsesDefault(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	ctx := context.Background()

	if err := c.Store(ctx, "a b c d e", "resp"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	// jaccard("a b c d e", "a b c") = 3/5, below the 0.8 default.
	_, ok, err := c.Lookup(ctx, "a b c")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if ok {
		t.Error("unset threshold should fall back to the 0.8 default")
	}
}

func TestCache_FirstMatchWins(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	ctx := context.Background()

	if err := c.Store(ctx, "tell me about go", "first"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := c.Store(ctx, "tell me about go", "second"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, ok, err := c.Lookup(ctx, "tell me about go")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if got != "first" {
		t.Errorf("Lookup = %q, want the earliest stored response %q", got, "first")
	}
}

func TestCache_ConfigurableMethod(t *testing.T) {
	c, _ := newTestCache(t, Options{Method: similarity.MethodCosineTfIdf})
	if c.Method() != similarity.MethodCosineTfIdf {
		t.Errorf("Method() = %q, want %q", c.Method(), similarity.MethodCosineTfIdf)
	}

	ctx := context.Background()
	if err := c.Store(ctx, "the quick brown fox", "resp"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	got, ok, err := c.Lookup(ctx, "the quick brown fox")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok || got != "resp" {
		t.Errorf("Lookup = (%q, %v), want (%q, true)", got, ok, "resp")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	svc, err := similarity.NewService("")
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	store := NewMemoryStore(0)
	c := New(store, svc, Options{TTL: 10 * time.Millisecond})
	ctx := context.Background()

	// Backdate an entry past the TTL.
	expired := Entry{
		Key:      "old question",
		Response: "old answer",
		StoredAt: time.Now().Add(-time.Second),
	}
	if err := store.Append(ctx, expired); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	_, ok, err := c.Lookup(ctx, "old question")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if ok {
		t.Error("expired entry should not be served")
	}
}

func TestMemoryStore_CapacityEvictsOldest(t *testing.T) {
	store := NewMemoryStore(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := Entry{Key: fmt.Sprintf("key-%d", i), Response: fmt.Sprintf("resp-%d", i)}
		if err := store.Append(ctx, entry); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries after eviction, got %d", len(entries))
	}
	if entries[0].Key != "key-2" || entries[2].Key != "key-4" {
		t.Errorf("expected oldest entries evicted, got %q .. %q", entries[0].Key, entries[2].Key)
	}
}

func TestMemoryStore_Concurrency(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = store.Append(ctx, Entry{Key: fmt.Sprintf("w%d-%d", n, j)})
				_, _ = store.Entries(ctx)
			}
		}(i)
	}
	wg.Wait()

	if store.Len() != 1000 {
		t.Errorf("expected 1000 entries, got %d", store.Len())
	}
}
