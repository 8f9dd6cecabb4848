package usecase

import (
	"time"

	"AstroFeed/internal/astro/houses"
	"AstroFeed/internal/domain/models"
)

// HousesResult is the response body for house computations.
type HousesResult struct {
	Timestamp  time.Time       `json:"timestamp"`
	JulianDate float64         `json:"julian_date"`
	Observer   models.Observer `json:"observer"`
	Angles     models.Angles   `json:"angles"`
	System     string          `json:"system"`
	Cusps      [12]float64     `json:"cusps"`
}

// ComputeHouses derives angles and cusps for a timestamp and observer.
// System is "whole_sign" or "placidus"; anything else falls back to
// whole sign.
func ComputeHouses(ts time.Time, observer models.Observer, system string) *HousesResult {
	ts = ts.UTC()
	jd := houses.JulianDateTime(ts)
	asc := houses.Ascendant(jd, observer.Lat, observer.Lon)
	mc := houses.Midheaven(jd, observer.Lon)

	var cusps houses.CuspSet
	switch system {
	case "placidus":
		cusps = houses.PlacidusCusps(jd, observer.Lat, observer.Lon)
	default:
		system = "whole_sign"
		cusps = houses.WholeSignCusps(asc)
	}

	return &HousesResult{
		Timestamp:  ts,
		JulianDate: jd,
		Observer:   observer,
		Angles:     models.Angles{Ascendant: asc, Midheaven: mc},
		System:     system,
		Cusps:      [12]float64(cusps),
	}
}
