// Package miriade fetches positions from the IMCCE Miriade ephemcc
// service, used as the fallback source for small bodies.
package miriade

import (
	"context"
	"fmt"
	"time"

	"AstroFeed/internal/astro/coord"
	"AstroFeed/internal/domain/models"
	drepo "AstroFeed/internal/domain/repository"
	xhttp "AstroFeed/pkg/http"
)

const DefaultBaseURL = "https://api.imcce.fr/webservices/miriade/ephemcc"

// Client implements an EphemerisSource backed by Miriade.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (c *Client) Name() string { return "miriade" }

// Supports covers solar-system small bodies; Miriade does not serve
// the Sun/Moon geocentric tables this pipeline needs for majors.
func (c *Client) Supports(body models.Body) bool {
	switch body.Class {
	case models.ClassAsteroid, models.ClassDwarfPlanet, models.ClassCentaur, models.ClassTNO:
		return true
	default:
		return false
	}
}

type apiResponse struct {
	Data [][]interface{} `json:"data"`
}

// Fetch tries heliocentric ecliptic coordinates first and falls back
// to an equatorial query converted through the obliquity rotation.
func (c *Client) Fetch(ctx context.Context, body models.Body, ts time.Time) (*models.EclipticPosition, error) {
	epoch := ts.UTC().Format(time.RFC3339)

	if pos, err := c.query(ctx, body.Name, epoch, "helioc", "eclh"); err == nil {
		return pos, nil
	}

	resp, err := c.request(ctx, body.Name, epoch, "equ", "eq")
	if err != nil {
		return nil, fmt.Errorf("miriade %s: %w", body.Name, err)
	}
	ra, dec, err := firstRow(resp)
	if err != nil {
		return nil, fmt.Errorf("miriade %s: %w", body.Name, err)
	}
	lon, lat := coord.ToEcliptic(ra, dec, coord.MeanObliquity)
	return &models.EclipticPosition{Lon: lon, Lat: lat}, nil
}

func (c *Client) query(ctx context.Context, name, epoch, typ, coordSys string) (*models.EclipticPosition, error) {
	resp, err := c.request(ctx, name, epoch, typ, coordSys)
	if err != nil {
		return nil, err
	}
	lon, lat, err := firstRow(resp)
	if err != nil {
		return nil, err
	}
	return &models.EclipticPosition{Lon: coord.NormalizeDeg(lon), Lat: lat}, nil
}

func (c *Client) request(ctx context.Context, name, epoch, typ, coordSys string) (*apiResponse, error) {
	var resp apiResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
		QueryParams: map[string][]string{
			"obj":    {name},
			"type":   {typ},
			"coord":  {coordSys},
			"ep":     {epoch},
			"output": {"json"},
		},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// firstRow pulls the two coordinate columns out of the first data row.
// Miriade rows are positional: identifier, epoch, then coordinates.
func firstRow(resp *apiResponse) (float64, float64, error) {
	if len(resp.Data) == 0 || len(resp.Data[0]) < 5 {
		return 0, 0, fmt.Errorf("empty ephemeris response")
	}
	row := resp.Data[0]
	a, okA := asFloat(row[2])
	b, okB := asFloat(row[3])
	if !okA || !okB {
		return 0, 0, fmt.Errorf("non-numeric coordinate columns")
	}
	return a, b, nil
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

var _ drepo.EphemerisSource = (*Client)(nil)
