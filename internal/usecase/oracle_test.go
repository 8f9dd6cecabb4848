package usecase

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"AstroFeed/internal/astro/aspects"
	"AstroFeed/internal/domain/models"
)

func sampleFeed() *models.Feed {
	return &models.Feed{
		Transits: map[string]models.Transit{
			"Sun":  {Body: "Sun", Sign: "Aries", House: 1},
			"Moon": {Body: "Moon", Sign: "Aries", House: 4},
			"Mars": {Body: "Mars", Sign: "Leo", House: 5},
		},
		Aspects: []aspects.Aspect{
			{BodyA: "Sun", BodyB: "Moon", Type: aspects.Conjunction, Orb: 0.5, Intensity: 120},
			{BodyA: "Sun", BodyB: "Mars", Type: aspects.Trine, Orb: 2.1, Intensity: 80},
			{BodyA: "Moon", BodyB: "Mars", Type: aspects.Square, Orb: 1.0, Intensity: 95},
			{BodyA: "Mars", BodyB: "Sun", Type: aspects.Sextile, Orb: 2.9, Intensity: 40},
		},
	}
}

func TestOracleNarrate(t *testing.T) {
	o := NewOracle("", testLogger(t))
	out := o.Narrate(sampleFeed())

	// Three dominant aspects plus the summary.
	if len(out) != 4 {
		t.Fatalf("lines = %d, want 4", len(out))
	}
	if _, ok := out["Sun_Moon"]; !ok {
		t.Fatal("tightest aspect missing from narration")
	}
	if _, ok := out["Mars_Sun"]; ok {
		t.Fatal("widest aspect should not be narrated")
	}
	for key, line := range out {
		if strings.Contains(line, "{{") {
			t.Fatalf("unrendered placeholder in %s: %q", key, line)
		}
	}
	if !strings.Contains(out["summary"], "4 aspects") {
		t.Fatalf("summary = %q", out["summary"])
	}
}

func TestOracleDeterministic(t *testing.T) {
	o := NewOracle("", testLogger(t))
	a := o.Narrate(sampleFeed())
	b := o.Narrate(sampleFeed())
	for k, v := range a {
		if b[k] != v {
			t.Fatalf("narration differs for %s", k)
		}
	}
}

func TestOracleCustomTables(t *testing.T) {
	dir := t.TempDir()
	themes := map[string]string{"Aries": "test-theme"}
	b, _ := json.Marshal(themes)
	if err := os.WriteFile(filepath.Join(dir, "sign_themes.json"), b, 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}

	o := NewOracle(dir, testLogger(t))
	out := o.Narrate(sampleFeed())
	if !strings.Contains(out["Sun_Moon"], "test-theme") {
		t.Fatalf("custom theme not used: %q", out["Sun_Moon"])
	}
}

func TestOracleMissingDir(t *testing.T) {
	o := NewOracle("/nonexistent/oracle", testLogger(t))
	out := o.Narrate(sampleFeed())
	if len(out) == 0 {
		t.Fatal("defaults should apply when dir is missing")
	}
}

func TestOracleEmptyFeed(t *testing.T) {
	o := NewOracle("", testLogger(t))
	out := o.Narrate(&models.Feed{})
	if _, ok := out["summary"]; !ok {
		t.Fatal("summary should always be present")
	}
}
