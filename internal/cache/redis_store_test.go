package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/tpetrov/safellm/internal/similarity"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisStore_AppendAndEntries(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisStore(client, "", 0, 0)
	ctx := context.Background()

	first := Entry{Key: "q1", Response: "r1", StoredAt: time.Now()}
	second := Entry{Key: "q2", Response: "r2", StoredAt: time.Now()}

	if err := store.Append(ctx, first); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, second); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Key != "q1" || entries[1].Key != "q2" {
		t.Errorf("insertion order not preserved: %q, %q", entries[0].Key, entries[1].Key)
	}
}

func TestRedisStore_TrimsToMaxEntries(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisStore(client, "trim-test", 2, 0)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := store.Append(ctx, Entry{Key: key}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after trim, got %d", len(entries))
	}
	if entries[0].Key != "b" || entries[1].Key != "c" {
		t.Errorf("expected oldest entry trimmed, got %q, %q", entries[0].Key, entries[1].Key)
	}
}

func TestRedisStore_SetsKeyTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, "ttl-test", 0, time.Minute)
	ctx := context.Background()

	if err := store.Append(ctx, Entry{Key: "q"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if mr.TTL("ttl-test") != time.Minute {
		t.Errorf("key TTL = %v, want %v", mr.TTL("ttl-test"), time.Minute)
	}

	mr.FastForward(2 * time.Minute)

	entries, err := store.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries after expiry, got %d", len(entries))
	}
}

func TestRedisStore_SkipsMalformedEntries(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, "mixed", 0, 0)
	ctx := context.Background()

	if err := store.Append(ctx, Entry{Key: "good", Response: "resp"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := mr.RPush("mixed", "{not json"); err != nil {
		t.Fatalf("RPush failed: %v", err)
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Key != "good" {
		t.Errorf("expected only the valid entry, got %+v", entries)
	}
}

func TestCache_OverRedisStore(t *testing.T) {
	_, client := newTestRedis(t)

	svc, err := similarity.NewService("")
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	c := New(NewRedisStore(client, "", 0, 0), svc, Options{})
	ctx := context.Background()

	if err := c.Store(ctx, "what is the capital of france", "Paris"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, ok, err := c.Lookup(ctx, "what is the capital of france")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok || got != "Paris" {
		t.Errorf("Lookup = (%q, %v), want (%q, true)", got, ok, "Paris")
	}
}
