// Package houses derives sidereal time, the Ascendant/Midheaven and
// house cusps (Whole Sign and Placidus) from a Julian Date and an
// observer location.
package houses

import (
	"fmt"
	"math"
	"time"

	"AstroFeed/internal/astro/coord"
)

// Obliquity used for angle and cusp math, in degrees. Distinct from the
// conversion constant in package coord; both follow the upstream tables.
const Obliquity = 23.439291

const j2000 = 2451545.0

// JulianDate converts an ISO-8601 UTC timestamp into a Julian Date
// using the Meeus Gregorian calendar formula. A malformed timestamp is
// a hard input error.
func JulianDate(isoUTC string) (float64, error) {
	t, err := time.Parse(time.RFC3339, isoUTC)
	if err != nil {
		return 0, fmt.Errorf("parse timestamp %q: %w", isoUTC, err)
	}
	return JulianDateTime(t), nil
}

// JulianDateTime converts a time.Time into a Julian Date.
func JulianDateTime(t time.Time) float64 {
	t = t.UTC()
	year := t.Year()
	month := int(t.Month())
	day := float64(t.Day()) + (float64(t.Hour())+float64(t.Minute())/60+float64(t.Second())/3600)/24

	if month <= 2 {
		year--
		month += 12
	}

	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*(float64(year)+4716)) + math.Floor(30.6001*float64(month+1)) + day + b - 1524.5
}

// GMST returns Greenwich Mean Sidereal Time in degrees [0,360) using
// the IAU 1982 polynomial.
func GMST(jd float64) float64 {
	t := (jd - j2000) / 36525
	gmst := 280.46061837 +
		360.98564736629*(jd-j2000) +
		0.000387933*t*t -
		t*t*t/38710000
	return coord.NormalizeDeg(gmst)
}

// LocalSiderealTime returns LST in degrees for an observer longitude
// (east positive).
func LocalSiderealTime(jd, observerLonDeg float64) float64 {
	return coord.NormalizeDeg(GMST(jd) + observerLonDeg)
}

// Ascendant returns the ecliptic longitude rising on the eastern
// horizon for the given Julian Date and observer location.
func Ascendant(jd, observerLatDeg, observerLonDeg float64) float64 {
	eps := Obliquity * math.Pi / 180
	lat := observerLatDeg * math.Pi / 180
	lst := LocalSiderealTime(jd, observerLonDeg) * math.Pi / 180

	tanAsc := -math.Cos(lst) / (math.Sin(lst)*math.Cos(eps) + math.Tan(lat)*math.Sin(eps))
	asc := math.Atan(tanAsc)

	// Keep the Ascendant on the eastern horizon.
	if math.Cos(lst) > 0 {
		asc += math.Pi
	}

	return coord.NormalizeDeg(asc * 180 / math.Pi)
}

// Midheaven returns the culminating ecliptic longitude (MC).
func Midheaven(jd, observerLonDeg float64) float64 {
	eps := Obliquity * math.Pi / 180
	lst := LocalSiderealTime(jd, observerLonDeg) * math.Pi / 180
	mc := math.Atan2(math.Cos(lst), math.Sin(lst)*math.Cos(eps))
	return coord.NormalizeDeg(mc * 180 / math.Pi)
}

// CuspSet holds the twelve house cusp longitudes. Index 0 is house 1.
type CuspSet [12]float64

// Cusp returns the cusp longitude for house (1..12).
func (c CuspSet) Cusp(house int) float64 { return c[house-1] }

// WholeSignCusps computes Whole Sign cusps: house 1 starts at the sign
// boundary containing the Ascendant; each house spans one sign.
func WholeSignCusps(ascLon float64) CuspSet {
	ascSign := int(math.Floor(ascLon / 30))
	var cusps CuspSet
	for i := 0; i < 12; i++ {
		cusps[i] = float64(((ascSign+i)%12)*30)
	}
	return cusps
}

// WholeSignHouse returns the Whole Sign house (1..12) for a body
// longitude given the Ascendant longitude.
func WholeSignHouse(bodyLon, ascLon float64) int {
	ascSign := int(math.Floor(ascLon / 30))
	bodySign := int(math.Floor(bodyLon / 30))
	return (bodySign-ascSign+12)%12 + 1
}

// PlacidusCusps computes Placidus cusps. The Midheaven is cusp 10;
// cusps 11,12,1,2,3 come from the MC right-ascension analog offset by
// 30..150 degrees and rotated back to the ecliptic; cusps 4..9 are the
// opposite points.
func PlacidusCusps(jd, observerLatDeg, observerLonDeg float64) CuspSet {
	mc := Midheaven(jd, observerLonDeg)

	var cusps CuspSet
	cusps[9] = mc // house 10

	seq := []struct {
		house  int
		offset float64
	}{
		{11, 30}, {12, 60}, {1, 90}, {2, 120}, {3, 150},
	}
	for _, s := range seq {
		ra := coord.NormalizeDeg(mc + s.offset)
		lon, _ := coord.ToEcliptic(ra, 0, Obliquity)
		cusps[s.house-1] = lon
	}

	opposites := [][2]int{{4, 10}, {5, 11}, {6, 12}, {7, 1}, {8, 2}, {9, 3}}
	for _, p := range opposites {
		cusps[p[0]-1] = coord.NormalizeDeg(cusps[p[1]-1] + 180)
	}
	return cusps
}

// PlacidusHouse locates the house whose cusp interval contains lon,
// handling wraparound at 360. The second return is false only for a
// malformed cusp set, which a well-formed CuspSet never produces.
func PlacidusHouse(lon float64, cusps CuspSet) (int, bool) {
	lon = coord.NormalizeDeg(lon)
	for h := 1; h <= 12; h++ {
		start := cusps[h-1]
		var end float64
		if h == 12 {
			end = cusps[0]
		} else {
			end = cusps[h]
		}
		if start <= end {
			if lon >= start && lon < end {
				return h, true
			}
		} else { // interval crosses 0 Aries
			if lon >= start || lon < end {
				return h, true
			}
		}
	}
	return 0, false
}
