package aspects

// Orb tolerances per body class, in degrees. Anything outside the
// table (asteroids, TNOs, fixed stars, Arabic Parts) gets the tightest
// orb. Pair tolerance is the minimum of the two bodies' orbs.
var orbClasses = map[string]float64{
	"Sun":     6,
	"Moon":    4,
	"Mercury": 3,
	"Venus":   3,
	"Mars":    3,
	"Jupiter": 3,
	"Saturn":  3,
	"Uranus":  2,
	"Neptune": 2,
	"Pluto":   2,
}

const defaultOrb = 1

// OrbFor returns the maximum orb for a body name.
func OrbFor(body string) float64 {
	if orb, ok := orbClasses[body]; ok {
		return orb
	}
	return defaultOrb
}
