package usecase

import (
	"context"
	"errors"
	"hash/fnv"
	"testing"
	"time"

	"AstroFeed/internal/astro/coord"
	"AstroFeed/internal/domain/models"
)

// deterministicSource maps each body name to a fixed longitude so feed
// tests are reproducible without network access.
type deterministicSource struct{}

func (deterministicSource) Name() string              { return "fake" }
func (deterministicSource) Supports(models.Body) bool { return true }

func (deterministicSource) Fetch(_ context.Context, b models.Body, _ time.Time) (*models.EclipticPosition, error) {
	h := fnv.New32a()
	h.Write([]byte(b.Name))
	lon := float64(h.Sum32() % 360)
	return &models.EclipticPosition{Lon: lon, Speed: 1}, nil
}

func newTestGenerator(t *testing.T) *TransitGenerator {
	t.Helper()
	r := newTestResolver(t, nil, deterministicSource{})
	return NewTransitGenerator(r, NewOracle("", testLogger(t)), nil, testLogger(t))
}

func TestGenerateFullFeed(t *testing.T) {
	g := newTestGenerator(t)
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	feed, err := g.Generate(context.Background(), "now", ts, GeneratorOptions{
		Observer: models.Greenwich,
		Oracle:   true,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if feed.ID == "" {
		t.Fatal("feed ID empty")
	}
	if feed.Mode != "now" {
		t.Fatalf("mode = %q", feed.Mode)
	}
	if feed.SchemaVersion != feedSchemaVersion {
		t.Fatalf("schema version = %d", feed.SchemaVersion)
	}
	if len(feed.Unresolved) != 0 {
		t.Fatalf("unresolved = %v", feed.Unresolved)
	}

	// Every catalog body resolves, and every Arabic Part derives.
	if len(feed.Transits) != len(models.Catalog()) {
		t.Fatalf("transits = %d, want %d", len(feed.Transits), len(models.Catalog()))
	}

	sun, ok := feed.Transits["Sun"]
	if !ok {
		t.Fatal("Sun missing")
	}
	if sun.Sign == "" || sun.Sign13 == "" {
		t.Fatal("Sun sign fields empty")
	}
	if sun.House < 1 || sun.House > 12 {
		t.Fatalf("Sun whole-sign house = %d", sun.House)
	}
	if len(sun.Harmonics) != 24 {
		t.Fatalf("Sun harmonics = %d", len(sun.Harmonics))
	}
	if sun.Source != "fake" {
		t.Fatalf("Sun source = %q", sun.Source)
	}

	if len(feed.Aspects) == 0 {
		t.Fatal("no aspects detected")
	}
	if len(feed.Oracle) == 0 {
		t.Fatal("oracle empty with Oracle: true")
	}
}

func TestGenerateDerivesParts(t *testing.T) {
	g := newTestGenerator(t)
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	feed, err := g.Generate(context.Background(), "now", ts, GeneratorOptions{Observer: models.Greenwich})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	fortune, ok := feed.Transits["Part_of_Fortune"]
	if !ok {
		t.Fatal("Part_of_Fortune missing")
	}
	want := coord.NormalizeDeg(feed.Angles.Ascendant + feed.Transits["Moon"].Lon - feed.Transits["Sun"].Lon)
	if diff := fortune.Lon - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("fortune lon = %v, want %v", fortune.Lon, want)
	}
	if fortune.Source != "derived" {
		t.Fatalf("fortune source = %q", fortune.Source)
	}
	if fortune.Class != models.ClassArabicPart {
		t.Fatalf("fortune class = %q", fortune.Class)
	}
}

func TestGenerateBodySubset(t *testing.T) {
	g := newTestGenerator(t)
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	feed, err := g.Generate(context.Background(), "now", ts, GeneratorOptions{
		Observer:  models.Greenwich,
		Bodies:    []string{"Sun", "Moon", "NotABody"},
		Harmonics: 5,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(feed.Transits) != 2 {
		t.Fatalf("transits = %d, want 2", len(feed.Transits))
	}
	if len(feed.Transits["Sun"].Harmonics) != 5 {
		t.Fatalf("harmonics = %d, want 5", len(feed.Transits["Sun"].Harmonics))
	}
}

func TestGenerateRecordsUnresolved(t *testing.T) {
	planetsDown := &fakeSource{
		name:     "horizons",
		supports: func(b models.Body) bool { return b.Class != models.ClassFixedStar },
		err:      errTestOffline,
	}
	starsUp := &fakeSource{
		name:     "fixed_stars",
		supports: func(b models.Body) bool { return b.Class == models.ClassFixedStar },
		pos:      &models.EclipticPosition{Lon: 100},
	}
	r := newTestResolver(t, nil, planetsDown, starsUp)
	g := NewTransitGenerator(r, nil, nil, testLogger(t))

	feed, err := g.Generate(context.Background(), "now", time.Now(), GeneratorOptions{Observer: models.Greenwich})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(feed.Unresolved) == 0 {
		t.Fatal("expected unresolved bodies")
	}
	for _, name := range feed.Unresolved {
		if _, present := feed.Transits[name]; present {
			t.Fatalf("%s both unresolved and present", name)
		}
	}
	if _, ok := feed.Transits["Regulus"]; !ok {
		t.Fatal("fixed star should still resolve")
	}
}

var errTestOffline = errors.New("provider offline")
