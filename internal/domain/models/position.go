package models

// EclipticPosition is the raw per-body result supplied by an ephemeris
// source. Longitude is normalized to [0,360) by the producing source.
type EclipticPosition struct {
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
	Retrograde bool    `json:"retrograde"`
	Speed      float64 `json:"speed"` // degrees/day along the ecliptic
}

// Equatorial is the transient RA/DEC form used while converting
// provider output into ecliptic coordinates.
type Equatorial struct {
	RA  float64 `json:"right_ascension"`
	Dec float64 `json:"declination"`
}
