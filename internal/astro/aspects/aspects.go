// Package aspects detects angular relationships between celestial
// bodies and scores their weighted intensity.
package aspects

import "math"

// Type names an aspect geometry.
type Type string

const (
	Conjunction Type = "conjunction"
	Sextile     Type = "sextile"
	Square      Type = "square"
	Trine       Type = "trine"
	Opposition  Type = "opposition"
)

// canonical aspect angles in fixed evaluation order; the first angle
// within tolerance wins when several qualify.
var canonical = []struct {
	typ   Type
	angle float64
}{
	{Conjunction, 0},
	{Sextile, 60},
	{Square, 90},
	{Trine, 120},
	{Opposition, 180},
}

// Body is one participant in the aspect grid. Lon set to NaN marks a
// body whose position could not be resolved; it is skipped, never an
// error.
type Body struct {
	Name     string
	Lon      float64
	Harmonic float64
}

// Aspect is one detected relationship for an unordered body pair.
type Aspect struct {
	BodyA     string  `json:"body_a"`
	BodyB     string  `json:"body_b"`
	Type      Type    `json:"type"`
	Angle     float64 `json:"angle"`
	Exact     float64 `json:"exact"`
	Orb       float64 `json:"orb"`
	Intensity float64 `json:"intensity"`
}

// Separation returns the angular separation of two longitudes in [0, 180].
func Separation(lonA, lonB float64) float64 {
	d := math.Mod(math.Abs(lonA-lonB), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// DetectAll enumerates every unordered pair exactly once, in input
// order, and returns one Aspect per pair within orb tolerance.
func DetectAll(bodies []Body) []Aspect {
	var out []Aspect
	for i := 0; i < len(bodies); i++ {
		if math.IsNaN(bodies[i].Lon) {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			if math.IsNaN(bodies[j].Lon) {
				continue
			}
			if a, ok := detect(bodies[i], bodies[j]); ok {
				out = append(out, a)
			}
		}
	}
	return out
}

func detect(a, b Body) (Aspect, bool) {
	sep := Separation(a.Lon, b.Lon)
	tolerance := math.Min(OrbFor(a.Name), OrbFor(b.Name))

	for _, c := range canonical {
		orb := math.Abs(sep - c.angle)
		if orb <= tolerance {
			return Aspect{
				BodyA:     a.Name,
				BodyB:     b.Name,
				Type:      c.typ,
				Angle:     sep,
				Exact:     c.angle,
				Orb:       orb,
				Intensity: Intensity(c.typ, orb, a, b),
			}, true
		}
	}
	return Aspect{}, false
}
