// Package stars supplies fixed-star longitudes from a static table and
// derives Arabic Part longitudes from chart angles.
package stars

import (
	"context"
	"fmt"
	"time"

	"AstroFeed/internal/domain/models"
	drepo "AstroFeed/internal/domain/repository"
)

// Fixed-star ecliptic longitudes. Approximate but stable values; fixed
// stars drift about 50 arcseconds per year, well inside the 1 degree
// orb they carry.
var fixedStars = map[string]float64{
	"Regulus":        149.83,
	"Spica":          203.84,
	"Aldebaran":      69.79,
	"Antares":        249.76,
	"Algol":          56.17,
	"Arcturus":       204.23,
	"Betelgeuse":     88.75,
	"Canopus":        104.96,
	"Capella":        81.86,
	"Deneb":          335.33,
	"Fomalhaut":      333.86,
	"Pollux":         113.22,
	"Procyon":        115.79,
	"Rigel":          76.83,
	"Sirius":         104.08,
	"Vega":           285.32,
	"Zubenelgenubi":  225.04,
	"Zubeneschamali": 229.37,
}

// Provider implements an EphemerisSource over the static table.
type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "fixed_stars" }

func (p *Provider) Supports(body models.Body) bool {
	return body.Class == models.ClassFixedStar
}

func (p *Provider) Fetch(_ context.Context, body models.Body, _ time.Time) (*models.EclipticPosition, error) {
	lon, ok := fixedStars[body.Name]
	if !ok {
		return nil, fmt.Errorf("unknown fixed star %q", body.Name)
	}
	return &models.EclipticPosition{Lon: lon}, nil
}

var _ drepo.EphemerisSource = (*Provider)(nil)
