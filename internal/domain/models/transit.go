package models

// Transit is the enriched per-body record carried in feeds.
type Transit struct {
	Body          string          `json:"body"`
	Class         BodyClass       `json:"class"`
	Lon           float64         `json:"lon"`
	Lat           float64         `json:"lat"`
	Retrograde    bool            `json:"retrograde"`
	Speed         float64         `json:"speed"`
	Sign          string          `json:"sign"`
	Sign13        string          `json:"sign_13"`
	DegreeInSign  float64         `json:"degree_in_sign"`
	House         int             `json:"house"`          // Whole Sign
	PlacidusHouse int             `json:"placidus_house"` // 0 when unresolved
	Harmonics     map[int]float64 `json:"harmonics,omitempty"`
	Source        string          `json:"source,omitempty"` // provider that resolved the body
}
