// Package zodiac maps ecliptic longitudes onto zodiac signs.
package zodiac

import "math"

// Signs lists the twelve signs in ecliptic order, 30 degrees each.
var Signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Signs13 is the sidereal 13-sign variant including Ophiuchus; each
// segment spans 360/13 degrees.
var Signs13 = [13]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Ophiuchus", "Sagittarius", "Capricorn",
	"Aquarius", "Pisces",
}

// SignOf returns the sign name for an ecliptic longitude.
func SignOf(lon float64) string {
	idx := int(math.Floor(normalize(lon)/30)) % 12
	return Signs[idx]
}

// Sign13Of returns the 13-sign name for an ecliptic longitude.
func Sign13Of(lon float64) string {
	idx := int(normalize(lon)/(360.0/13)) % 13
	return Signs13[idx]
}

// DegreeInSign returns the degree position within the sign, [0, 30).
func DegreeInSign(lon float64) float64 {
	return math.Mod(normalize(lon), 30)
}

func normalize(lon float64) float64 {
	d := math.Mod(lon, 360)
	if d < 0 {
		d += 360
	}
	return d
}
