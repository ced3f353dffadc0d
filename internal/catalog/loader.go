package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ogarmory/armory-backend/internal/cache"
)

const cacheKey = "catalog:merged"

// Loader fetches the two product feeds, merges them and keeps the result in
// a TTL cache. Load never fails and never returns an empty catalog: source
// failures fall through to the other source, then the cache, then the
// bundled mock list.
type Loader struct {
	primaryURL   string
	secondaryURL string
	client       *http.Client
	cache        cache.Cache
	ttl          time.Duration

	// gen guards against a slow stale fetch overwriting the result of a
	// newer one: only the most recently started Load may write the cache.
	gen atomic.Uint64
}

func NewLoader(primaryURL, secondaryURL string, c cache.Cache, ttl time.Duration, fetchTimeout time.Duration) *Loader {
	return &Loader{
		primaryURL:   primaryURL,
		secondaryURL: secondaryURL,
		client:       &http.Client{Timeout: fetchTimeout},
		cache:        c,
		ttl:          ttl,
	}
}

// Load returns the current merged catalog.
func (l *Loader) Load(ctx context.Context) []Product {
	if cached, err := l.cache.Get(ctx, cacheKey); err == nil {
		var products []Product
		if err := json.Unmarshal(cached, &products); err == nil {
			return products
		}
		// corrupt cache entry: drop it and refetch
		log.Warn().Msg("catalog cache entry corrupt, refetching")
		l.cache.Delete(ctx, cacheKey)
	}

	gen := l.gen.Add(1)

	primary, errA := l.fetch(ctx, l.primaryURL)
	secondary, errB := l.fetch(ctx, l.secondaryURL)

	if errA != nil {
		log.Warn().Err(errA).Str("url", l.primaryURL).Msg("primary catalog feed unavailable")
	}
	if errB != nil {
		log.Warn().Err(errB).Str("url", l.secondaryURL).Msg("secondary catalog feed unavailable")
	}

	if errA != nil && errB != nil {
		log.Error().Msg("all catalog feeds unavailable, serving bundled catalog")
		return MockCatalog()
	}

	merged := Merge(primary, secondary, DefaultDedupKeys)

	// a newer Load started while this one was fetching; its result wins
	if l.gen.Load() != gen {
		log.Debug().Uint64("gen", gen).Msg("stale catalog fetch discarded")
		return merged
	}

	if encoded, err := json.Marshal(merged); err == nil {
		if err := l.cache.Set(ctx, cacheKey, encoded, l.ttl); err != nil {
			log.Warn().Err(err).Msg("could not cache catalog")
		}
	}
	return merged
}

// Invalidate drops the cached catalog so the next Load refetches.
func (l *Loader) Invalidate(ctx context.Context) {
	l.cache.Delete(ctx, cacheKey)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]Product, error) {
	if url == "" {
		return nil, fmt.Errorf("no feed url configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var raw []Product
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(raw))
	for _, p := range raw {
		out = append(out, Normalize(p))
	}
	return out, nil
}
