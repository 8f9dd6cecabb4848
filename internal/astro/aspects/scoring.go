package aspects

import "math"

// Base power per aspect geometry.
var basePower = map[Type]float64{
	Conjunction: 1.40,
	Opposition:  1.60,
	Square:      1.50,
	Trine:       1.10,
	Sextile:     0.70,
}

// Symbolic weighting for fixed stars participating in an aspect.
var starMultiplier = map[string]float64{
	"Algol":     1.40,
	"Regulus":   1.30,
	"Antares":   1.25,
	"Aldebaran": 1.20,
	"Spica":     1.15,
	"Sirius":    1.10,
}

// Symbolic weighting for trans-neptunian participants.
var tnoMultiplier = map[string]float64{
	"Sedna":    1.30,
	"Eris":     1.25,
	"Typhon":   1.20,
	"Orcus":    1.15,
	"Ixion":    1.10,
	"Makemake": 1.10,
	"Haumea":   1.10,
	"Quaoar":   1.05,
	"Varuna":   1.05,
}

// orbFalloffWindow is the fixed linear falloff span for scoring. It is
// independent of the per-class admission orbs.
const orbFalloffWindow = 10.0

// OrbMultiplier decays linearly from 1 at exactness to 0 at the
// falloff window.
func OrbMultiplier(orb float64) float64 {
	return math.Max(0, 1-orb/orbFalloffWindow)
}

// HarmonicMultiplier weights a harmonic value into [1, 1.5).
func HarmonicMultiplier(h float64) float64 {
	return 1 + math.Mod(math.Abs(h), 10)/20
}

// Intensity computes the weighted score for a detected aspect, scaled
// by 100.
func Intensity(typ Type, orb float64, a, b Body) float64 {
	score := basePower[typ] *
		OrbMultiplier(orb) *
		(HarmonicMultiplier(a.Harmonic)+HarmonicMultiplier(b.Harmonic))/2 *
		lookup(starMultiplier, a.Name)*lookup(starMultiplier, b.Name) *
		lookup(tnoMultiplier, a.Name)*lookup(tnoMultiplier, b.Name)
	return score * 100
}

func lookup(table map[string]float64, name string) float64 {
	if m, ok := table[name]; ok {
		return m
	}
	return 1.0
}
