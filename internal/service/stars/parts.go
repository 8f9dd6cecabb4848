package stars

import "AstroFeed/internal/astro/coord"

// Arabic Parts are derived points, not fetched bodies: each is the
// Ascendant plus one planet's longitude minus another's. The classical
// day formulas are used throughout.
var partFormulas = map[string][2]string{
	"Part_of_Fortune":   {"Moon", "Sun"},
	"Part_of_Spirit":    {"Sun", "Moon"},
	"Part_of_Love":      {"Venus", "Sun"},
	"Part_of_Victory":   {"Jupiter", "Sun"},
	"Part_of_Courage":   {"Mars", "Sun"},
	"Part_of_Intellect": {"Mercury", "Sun"},
}

// ComputeParts derives every Arabic Part whose ingredient longitudes
// are present in lons. Parts with a missing ingredient are simply
// absent from the result.
func ComputeParts(ascLon float64, lons map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(partFormulas))
	for name, f := range partFormulas {
		plus, okPlus := lons[f[0]]
		minus, okMinus := lons[f[1]]
		if !okPlus || !okMinus {
			continue
		}
		out[name] = coord.NormalizeDeg(ascLon + plus - minus)
	}
	return out
}
