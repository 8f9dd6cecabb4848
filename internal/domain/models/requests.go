package models

// ComputeRequest is the validated body for POST /api/compute.
type ComputeRequest struct {
	Timestamp string   `json:"timestamp" validate:"required"`
	Lat       *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon       *float64 `json:"lon" validate:"omitempty,gte=-180,lte=180"`
	Bodies    []string `json:"bodies" validate:"omitempty,dive,min=1"`
	Harmonics int      `json:"harmonics" default:"24" validate:"gte=0,lte=360"`
	Oracle    bool     `json:"oracle"`
}

// HousesRequest is the query form for GET /api/houses.
type HousesRequest struct {
	Timestamp string   `query:"ts" json:"ts" validate:"required"`
	System    string   `query:"system" json:"system" default:"whole_sign" validate:"oneof=whole_sign placidus"`
	Lat       *float64 `query:"lat" json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon       *float64 `query:"lon" json:"lon" validate:"omitempty,gte=-180,lte=180"`
}
