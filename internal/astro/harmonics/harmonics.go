// Package harmonics generates harmonic longitudes, the base longitude
// multiplied by the harmonic number modulo 360.
package harmonics

import "math"

// DefaultMax is the number of harmonics carried in feeds.
const DefaultMax = 24

// Harmonic returns (lon * n) mod 360, normalized to [0, 360).
func Harmonic(lon float64, n int) float64 {
	h := math.Mod(lon*float64(n), 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Series returns harmonics 1..maxN for a base longitude. A non-positive
// maxN falls back to DefaultMax.
func Series(lon float64, maxN int) map[int]float64 {
	if maxN <= 0 {
		maxN = DefaultMax
	}
	out := make(map[int]float64, maxN)
	for n := 1; n <= maxN; n++ {
		out[n] = Harmonic(lon, n)
	}
	return out
}
