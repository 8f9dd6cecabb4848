package stars

import (
	"context"
	"math"
	"testing"
	"time"

	"AstroFeed/internal/domain/models"
)

func TestProviderFetch(t *testing.T) {
	p := NewProvider()
	pos, err := p.Fetch(context.Background(), models.Body{Name: "Regulus", Class: models.ClassFixedStar}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Lon != 149.83 || pos.Lat != 0 {
		t.Fatalf("got (%v, %v)", pos.Lon, pos.Lat)
	}
	if pos.Retrograde {
		t.Fatalf("fixed stars never retrograde")
	}
}

func TestProviderUnknownStar(t *testing.T) {
	p := NewProvider()
	if _, err := p.Fetch(context.Background(), models.Body{Name: "Nemesis", Class: models.ClassFixedStar}, time.Now()); err == nil {
		t.Fatalf("expected error for unknown star")
	}
}

func TestProviderSupports(t *testing.T) {
	p := NewProvider()
	if !p.Supports(models.Body{Name: "Vega", Class: models.ClassFixedStar}) {
		t.Fatalf("fixed star must be supported")
	}
	if p.Supports(models.Body{Name: "Sun", Class: models.ClassPlanet}) {
		t.Fatalf("planets are not fixed stars")
	}
}

func TestComputeParts(t *testing.T) {
	lons := map[string]float64{"Sun": 0, "Moon": 90, "Venus": 30, "Jupiter": 120, "Mars": 200, "Mercury": 350}
	parts := ComputeParts(100, lons)

	if got := parts["Part_of_Fortune"]; math.Abs(got-190) > 1e-12 {
		t.Fatalf("Fortune = %v, want 190", got)
	}
	if got := parts["Part_of_Spirit"]; math.Abs(got-10) > 1e-12 {
		t.Fatalf("Spirit = %v, want 10", got)
	}
	if got := parts["Part_of_Intellect"]; math.Abs(got-90) > 1e-12 {
		t.Fatalf("Intellect = %v, want 90 (wraparound)", got)
	}
	if len(parts) != 6 {
		t.Fatalf("expected 6 parts, got %d", len(parts))
	}
}

func TestComputePartsMissingIngredient(t *testing.T) {
	parts := ComputeParts(100, map[string]float64{"Sun": 0, "Moon": 90})
	if len(parts) != 2 {
		t.Fatalf("expected only Fortune and Spirit, got %d", len(parts))
	}
	if _, ok := parts["Part_of_Love"]; ok {
		t.Fatalf("Love requires Venus")
	}
}
