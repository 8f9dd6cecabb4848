package repository

import (
	"context"
	"time"

	"AstroFeed/internal/domain/models"
)

// EphemerisSource resolves one body position for a timestamp. Sources
// are unreliable by nature; a failed fetch is reported as an error and
// the resolver falls through to the next source in the chain.
type EphemerisSource interface {
	// Name identifies the source in logs, metrics and Transit.Source.
	Name() string

	// Supports reports whether this source can resolve the body at all.
	Supports(body models.Body) bool

	// Fetch returns the ecliptic position for the body at ts.
	Fetch(ctx context.Context, body models.Body, ts time.Time) (*models.EclipticPosition, error)
}

// FeedStore persists generated feeds as flat JSON documents.
type FeedStore interface {
	// Save writes the feed and returns the file path it landed at.
	Save(ctx context.Context, feed *models.Feed) (string, error)

	// Latest loads the most recently saved feed for a mode.
	Latest(ctx context.Context, mode string) (*models.Feed, error)
}

// FeedPublisher pushes generated feeds to downstream consumers
// (message broker, stream subscribers). Publishing is best-effort.
type FeedPublisher interface {
	Publish(ctx context.Context, feed *models.Feed) error
}

// Metrics abstracts the telemetry recorder so use cases do not bind to
// a concrete backend.
type Metrics interface {
	RecordFeedGenerated(mode string)
	RecordProviderRequest(provider string, ok bool)
	RecordProviderLatency(provider string, seconds float64)
	RecordBodiesResolved(n int)
	RecordAspects(n int)
	RecordComputeDuration(seconds float64)
	RecordError(kind string)
}

// NopMetrics is a no-op Metrics for tests and one-shot CLI runs.
type NopMetrics struct{}

func (NopMetrics) RecordFeedGenerated(string)            {}
func (NopMetrics) RecordProviderRequest(string, bool)    {}
func (NopMetrics) RecordProviderLatency(string, float64) {}
func (NopMetrics) RecordBodiesResolved(int)              {}
func (NopMetrics) RecordAspects(int)                     {}
func (NopMetrics) RecordComputeDuration(float64)         {}
func (NopMetrics) RecordError(string)                    {}
