package coord

import (
	"math"
	"math/rand"
	"testing"
)

func TestToEclipticKnownValue(t *testing.T) {
	// Pollux-like coordinates.
	lon, lat := ToEcliptic(116.32894, 28.026183, MeanObliquity)
	if math.Abs(lon-113.21562829605189) > 1e-9 {
		t.Fatalf("unexpected longitude %v", lon)
	}
	if math.Abs(lat-6.684178764859529) > 1e-9 {
		t.Fatalf("unexpected latitude %v", lat)
	}
}

func TestToEclipticSouthernTarget(t *testing.T) {
	lon, lat := ToEcliptic(250.0, -20.0, MeanObliquity)
	if math.Abs(lon-251.23911220808282) > 1e-9 {
		t.Fatalf("unexpected longitude %v", lon)
	}
	if math.Abs(lat-2.146145948982384) > 1e-9 {
		t.Fatalf("unexpected latitude %v", lat)
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		ra := rng.Float64() * 360
		dec := rng.Float64()*178 - 89 // keep away from the poles
		lon, lat := ToEcliptic(ra, dec, MeanObliquity)
		ra2, dec2 := ToEquatorial(lon, lat, MeanObliquity)
		if math.Abs(ra2-ra) > 1e-6 || math.Abs(dec2-dec) > 1e-6 {
			t.Fatalf("round trip drift: (%v,%v) -> (%v,%v)", ra, dec, ra2, dec2)
		}
	}
}

func TestLongitudeNormalized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		lon, _ := ToEcliptic(rng.Float64()*720-360, rng.Float64()*160-80, MeanObliquity)
		if lon < 0 || lon >= 360 {
			t.Fatalf("longitude %v out of [0,360)", lon)
		}
	}
}

func TestNormalizeDeg(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-30, 330},
		{725, 5},
		{-725, 355},
	}
	for _, c := range cases {
		if got := NormalizeDeg(c.in); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("NormalizeDeg(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
