package harmonics

import (
	"math"
	"testing"
)

func TestHarmonicIdentity(t *testing.T) {
	for _, lon := range []float64{0, 15.5, 137.2, 359.999, 360, 723} {
		want := math.Mod(lon, 360)
		if got := Harmonic(lon, 1); math.Abs(got-want) > 1e-12 {
			t.Fatalf("Harmonic(%v, 1) = %v, want %v", lon, got, want)
		}
	}
}

func TestHarmonicWraps(t *testing.T) {
	if got := Harmonic(90, 4); got != 0 {
		t.Fatalf("Harmonic(90, 4) = %v, want 0", got)
	}
	if got := Harmonic(100, 2); got != 200 {
		t.Fatalf("Harmonic(100, 2) = %v, want 200", got)
	}
	if got := Harmonic(200, 2); got != 40 {
		t.Fatalf("Harmonic(200, 2) = %v, want 40", got)
	}
}

func TestHarmonicNormalized(t *testing.T) {
	for n := 1; n <= 24; n++ {
		for lon := -360.0; lon < 720; lon += 13.7 {
			h := Harmonic(lon, n)
			if h < 0 || h >= 360 {
				t.Fatalf("Harmonic(%v, %d) = %v out of [0,360)", lon, n, h)
			}
		}
	}
}

func TestSeries(t *testing.T) {
	s := Series(37.5, 24)
	if len(s) != 24 {
		t.Fatalf("series length %d, want 24", len(s))
	}
	for n := 1; n <= 24; n++ {
		if s[n] != Harmonic(37.5, n) {
			t.Fatalf("series[%d] = %v, want %v", n, s[n], Harmonic(37.5, n))
		}
	}
	if len(Series(10, 0)) != DefaultMax {
		t.Fatalf("zero maxN should fall back to DefaultMax")
	}
}
