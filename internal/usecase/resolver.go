package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"AstroFeed/internal/domain/models"
	"AstroFeed/internal/domain/repository"
	"AstroFeed/internal/service/ratelimit"
	"AstroFeed/pkg/cache"
	"AstroFeed/pkg/logger"
)

// RateSpec is the token bucket shape for one provider. A zero capacity
// disables throttling (local providers).
type RateSpec struct {
	Capacity  float64
	RefillSec float64
}

// Resolver walks the configured provider chain for each body: first
// source that supports the body and answers wins. Results are cached
// per (body, timestamp) so repeated feed generations for the same epoch
// never refetch.
type Resolver struct {
	sources []repository.EphemerisSource
	limiter *ratelimit.Limiter
	cache   cache.Service
	ttl     time.Duration
	rates   map[string]RateSpec
	metrics repository.Metrics
	log     *logger.Logger
}

type cachedPosition struct {
	Position models.EclipticPosition `json:"position"`
	Source   string                  `json:"source"`
}

// NewResolver creates a resolver over an ordered source chain. cache
// may be nil to disable caching; metrics may be nil.
func NewResolver(
	sources []repository.EphemerisSource,
	limiter *ratelimit.Limiter,
	c cache.Service,
	ttl time.Duration,
	rates map[string]RateSpec,
	metrics repository.Metrics,
	log *logger.Logger,
) *Resolver {
	if metrics == nil {
		metrics = repository.NopMetrics{}
	}
	return &Resolver{
		sources: sources,
		limiter: limiter,
		cache:   c,
		ttl:     ttl,
		rates:   rates,
		metrics: metrics,
		log:     log,
	}
}

// Resolve returns the position for one body plus the name of the source
// that answered.
func (r *Resolver) Resolve(ctx context.Context, body models.Body, ts time.Time) (*models.EclipticPosition, string, error) {
	key := cache.GenerateKeyWithParams("ephemeris", body.Name, ts.UTC().Format(time.RFC3339))

	if r.cache != nil {
		var hit cachedPosition
		if err := r.cache.Get(ctx, key, &hit); err == nil {
			return &hit.Position, hit.Source, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			r.log.Warn("ephemeris cache read failed",
				logger.String("body", body.Name),
				logger.Error(err),
			)
		}
	}

	var lastErr error
	for _, src := range r.sources {
		if !src.Supports(body) {
			continue
		}

		if spec, ok := r.rates[src.Name()]; ok && spec.Capacity > 0 {
			if err := r.limiter.Wait(ctx, src.Name(), spec.Capacity, spec.RefillSec); err != nil {
				return nil, "", err
			}
		}

		start := time.Now()
		pos, err := src.Fetch(ctx, body, ts)
		r.metrics.RecordProviderLatency(src.Name(), time.Since(start).Seconds())
		r.metrics.RecordProviderRequest(src.Name(), err == nil)

		if err != nil {
			lastErr = err
			r.log.Warn("provider fetch failed",
				logger.String("provider", src.Name()),
				logger.String("body", body.Name),
				logger.Error(err),
			)
			continue
		}

		if r.cache != nil {
			entry := cachedPosition{Position: *pos, Source: src.Name()}
			if err := r.cache.Set(ctx, key, entry, r.ttl); err != nil {
				r.log.Warn("ephemeris cache write failed",
					logger.String("body", body.Name),
					logger.Error(err),
				)
			}
		}
		return pos, src.Name(), nil
	}

	if lastErr != nil {
		return nil, "", fmt.Errorf("all providers failed for %s: %w", body.Name, lastErr)
	}
	return nil, "", fmt.Errorf("no provider supports %s", body.Name)
}

// Resolution is the aggregate outcome of a ResolveAll pass.
type Resolution struct {
	Positions  map[string]models.EclipticPosition
	Sources    map[string]string
	Unresolved []string
}

// ResolveAll resolves every body for the timestamp. A body whose whole
// chain failed lands in Unresolved; the feed carries on without it.
func (r *Resolver) ResolveAll(ctx context.Context, bodies []models.Body, ts time.Time) (*Resolution, error) {
	res := &Resolution{
		Positions: make(map[string]models.EclipticPosition, len(bodies)),
		Sources:   make(map[string]string, len(bodies)),
	}

	for _, body := range bodies {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		pos, source, err := r.Resolve(ctx, body, ts)
		if err != nil {
			r.metrics.RecordError("resolve")
			res.Unresolved = append(res.Unresolved, body.Name)
			continue
		}
		res.Positions[body.Name] = *pos
		res.Sources[body.Name] = source
	}

	sort.Strings(res.Unresolved)
	r.metrics.RecordBodiesResolved(len(res.Positions))
	return res, nil
}
