// Package coord converts between equatorial (RA/DEC) and ecliptic
// (longitude/latitude) coordinate frames via rotation about the obliquity axis.
package coord

import "math"

// MeanObliquity is the mean obliquity of the ecliptic in degrees,
// matching the value used by upstream ephemeris conversions.
const MeanObliquity = 23.439281

// NormalizeDeg wraps an angle into [0, 360).
func NormalizeDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// ToEcliptic converts right ascension and declination (degrees) into
// ecliptic longitude and latitude (degrees). Longitude is normalized
// to [0, 360). Declination near ±90 produces degenerate but defined
// output; callers needing stability should clamp before calling.
func ToEcliptic(raDeg, decDeg, obliquityDeg float64) (lonDeg, latDeg float64) {
	ra := raDeg * math.Pi / 180
	dec := decDeg * math.Pi / 180
	ob := obliquityDeg * math.Pi / 180

	sinBeta := math.Sin(dec)*math.Cos(ob) - math.Cos(dec)*math.Sin(ob)*math.Sin(ra)
	beta := math.Asin(sinBeta)

	y := math.Sin(ra)*math.Cos(ob) + math.Tan(dec)*math.Sin(ob)
	x := math.Cos(ra)
	lam := math.Atan2(y, x)

	return NormalizeDeg(lam * 180 / math.Pi), beta * 180 / math.Pi
}

// ToEquatorial is the inverse of ToEcliptic: ecliptic longitude and
// latitude (degrees) back into right ascension and declination.
func ToEquatorial(lonDeg, latDeg, obliquityDeg float64) (raDeg, decDeg float64) {
	lon := lonDeg * math.Pi / 180
	lat := latDeg * math.Pi / 180
	ob := obliquityDeg * math.Pi / 180

	sinDec := math.Sin(lat)*math.Cos(ob) + math.Cos(lat)*math.Sin(ob)*math.Sin(lon)
	dec := math.Asin(sinDec)

	y := math.Sin(lon)*math.Cos(ob) - math.Tan(lat)*math.Sin(ob)
	x := math.Cos(lon)
	ra := math.Atan2(y, x)

	return NormalizeDeg(ra * 180 / math.Pi), dec * 180 / math.Pi
}
