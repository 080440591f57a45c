// Package cache serves previously generated responses for requests that are
// near-duplicates of earlier ones, scored by a pluggable similarity method.
package cache

import (
	"context"
	"time"

	"github.com/tpetrov/safellm/internal/similarity"
)

const (
	// DefaultThreshold is the similarity score a stored key must strictly
	// exceed for a lookup to hit.
	DefaultThreshold = 0.8

	// DefaultMethod is the scoring method used when none is configured.
	DefaultMethod = similarity.MethodJaccard
)

// Options tune lookup behavior.
type Options struct {
	// Method selects the similarity scorer. Empty means DefaultMethod.
	Method similarity.Method

	// Threshold is the score a key must strictly exceed. Nil means
	// DefaultThreshold; an explicit 0 hits on any positive score.
	Threshold *float64

	// TTL expires entries older than this at lookup time. Zero means no
	// expiry.
	TTL time.Duration
}

// Cache is a similarity-keyed response cache over an insertion-ordered store.
// Lookup is a first-match linear scan, so insertion order decides which
// response wins when several stored keys qualify.
type Cache struct {
	store      Store
	similarity *similarity.Service
	method     similarity.Method
	threshold  float64
	ttl        time.Duration
}

// New builds a cache over the given store and similarity service.
func New(store Store, svc *similarity.Service, opts Options) *Cache {
	method := opts.Method
	if method == "" {
		method = DefaultMethod
	}
	threshold := DefaultThreshold
	if opts.Threshold != nil {
		threshold = *opts.Threshold
	}
	return &Cache{
		store:      store,
		similarity: svc,
		method:     method,
		threshold:  threshold,
		ttl:        opts.TTL,
	}
}

// Lookup scans stored entries in insertion order and returns the response of
// the first key whose similarity to text strictly exceeds the threshold.
func (c *Cache) Lookup(ctx context.Context, text string) (string, bool, error) {
	entries, err := c.store.Entries(ctx)
	if err != nil {
		return "", false, err
	}

	now := time.Now()
	for _, entry := range entries {
		if c.ttl > 0 && now.Sub(entry.StoredAt) > c.ttl {
			continue
		}
		score, _, err := c.similarity.Calculate(text, entry.Key, c.method)
		if err != nil {
			return "", false, err
		}
		if score > c.threshold {
			return entry.Response, true, nil
		}
	}

	return "", false, nil
}

// Store appends a response keyed by the exact original request text. Storing
// the same key again appends a new entry rather than overwriting.
func (c *Cache) Store(ctx context.Context, text, response string) error {
	return c.store.Append(ctx, Entry{
		Key:      text,
		Response: response,
		StoredAt: time.Now(),
	})
}

// Method returns the similarity method used for lookups.
func (c *Cache) Method() similarity.Method {
	return c.method
}
