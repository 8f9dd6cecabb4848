package usecase

import (
	"context"
	"testing"
	"time"

	"AstroFeed/internal/domain/models"
)

func TestWeeklyPipelineRun(t *testing.T) {
	p := NewWeeklyPipeline(newTestGenerator(t), 3, nil, testLogger(t))

	ts := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC) // Wednesday
	feeds, err := p.Run(context.Background(), ts, GeneratorOptions{
		Observer: models.Greenwich,
		Bodies:   []string{"Sun", "Moon", "Mars"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(feeds) != 7 {
		t.Fatalf("feeds = %d, want 7", len(feeds))
	}

	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	for i, f := range feeds {
		want := monday.AddDate(0, 0, i)
		if !f.Timestamp.Equal(want) {
			t.Fatalf("day %d timestamp = %v, want %v", i, f.Timestamp, want)
		}
		if f.Mode != "weekly" {
			t.Fatalf("day %d mode = %q", i, f.Mode)
		}
	}
}

func TestWeeklyPipelineAllFail(t *testing.T) {
	broken := &fakeSource{name: "horizons", err: errTestOffline}
	r := newTestResolver(t, nil, broken)
	g := NewTransitGenerator(r, nil, nil, testLogger(t))
	p := NewWeeklyPipeline(g, 2, nil, testLogger(t))

	// Feeds still generate with every body unresolved, so Run succeeds
	// but every feed is empty of transits.
	feeds, err := p.Run(context.Background(), time.Now(), GeneratorOptions{Observer: models.Greenwich})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, f := range feeds {
		if len(f.Transits) != 0 {
			t.Fatalf("expected no transits, got %d", len(f.Transits))
		}
	}
}
