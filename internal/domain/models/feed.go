package models

import (
	"time"

	"AstroFeed/internal/astro/aspects"
)

// Observer is the geographic reference for angle and house math.
type Observer struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Greenwich is the default observer (Royal Observatory).
var Greenwich = Observer{Lat: 51.4769, Lon: 0.0}

// Angles holds the timestamp-scoped chart angles.
type Angles struct {
	Ascendant float64 `json:"ascendant"`
	Midheaven float64 `json:"midheaven"`
}

// Feed is one generated transit document, serialized as-is to JSON.
type Feed struct {
	ID            string             `json:"id"`
	Mode          string             `json:"mode"` // now | daily | weekly
	GeneratedUTC  time.Time          `json:"generated_utc"`
	Timestamp     time.Time          `json:"timestamp"`
	JulianDate    float64            `json:"julian_date"`
	Observer      Observer           `json:"observer"`
	Angles        Angles             `json:"angles"`
	WholeSign     [12]float64        `json:"whole_sign_cusps"`
	Placidus      [12]float64        `json:"placidus_cusps"`
	Transits      map[string]Transit `json:"transits"`
	Aspects       []aspects.Aspect   `json:"aspects"`
	Oracle        map[string]string  `json:"oracle,omitempty"`
	Unresolved    []string           `json:"unresolved,omitempty"`
	SchemaVersion int                `json:"schema_version"`
}
