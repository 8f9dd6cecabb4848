// Package horizons fetches geocentric positions from the NASA/JPL
// Horizons API and converts them into ecliptic coordinates.
package horizons

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"AstroFeed/internal/astro/coord"
	"AstroFeed/internal/domain/models"
	drepo "AstroFeed/internal/domain/repository"
	xhttp "AstroFeed/pkg/http"
)

const DefaultBaseURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

// NAIF major-body identifiers.
var planetIDs = map[string]int{
	"Sun":     10,
	"Moon":    301,
	"Mercury": 199,
	"Venus":   299,
	"Mars":    499,
	"Jupiter": 599,
	"Saturn":  699,
	"Uranus":  799,
	"Neptune": 899,
	"Pluto":   999,
}

// Client implements an EphemerisSource backed by JPL Horizons.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates a Horizons client with the given endpoint and timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (c *Client) Name() string { return "horizons" }

// Supports covers everything Horizons can target: major planets by
// NAIF id, small bodies by name lookup.
func (c *Client) Supports(body models.Body) bool {
	switch body.Class {
	case models.ClassPlanet, models.ClassAsteroid, models.ClassDwarfPlanet,
		models.ClassCentaur, models.ClassTNO:
		return true
	default:
		return false
	}
}

type apiResponse struct {
	Result string `json:"result"`
	Error  string `json:"error"`
}

// Fetch queries a single observer-table row for body at ts and
// converts RA/DEC into ecliptic longitude/latitude.
func (c *Client) Fetch(ctx context.Context, body models.Body, ts time.Time) (*models.EclipticPosition, error) {
	target := targetFor(body)

	stop := ts.Add(time.Minute)
	var resp apiResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
		QueryParams: map[string][]string{
			"format":     {"json"},
			"COMMAND":    {quote(target)},
			"EPHEM_TYPE": {"OBSERVER"},
			"CENTER":     {quote("500@399")},
			"START_TIME": {quote(ts.UTC().Format("2006-01-02 15:04"))},
			"STOP_TIME":  {quote(stop.UTC().Format("2006-01-02 15:04"))},
			"STEP_SIZE":  {quote("1m")},
			"QUANTITIES": {quote("1,3")},
			"ANG_FORMAT": {"DEG"},
			"CSV_FORMAT": {"YES"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("horizons query %s: %w", body.Name, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("horizons query %s: %s", body.Name, resp.Error)
	}

	ra, dec, dra, ddec, err := parseObserverTable(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("horizons parse %s: %w", body.Name, err)
	}

	lon, lat := coord.ToEcliptic(ra, dec, coord.MeanObliquity)

	// Retrograde test: step the equatorial rates one day backwards and
	// compare the resulting longitudes. Rates arrive in arcsec/hour.
	draDay := dra * 24 / 3600
	ddecDay := ddec * 24 / 3600
	lonPrev, _ := coord.ToEcliptic(ra-draDay, dec-ddecDay, coord.MeanObliquity)

	speed := lon - lonPrev
	if speed > 180 {
		speed -= 360
	} else if speed < -180 {
		speed += 360
	}

	return &models.EclipticPosition{
		Lon:        lon,
		Lat:        lat,
		Retrograde: speed < 0,
		Speed:      speed,
	}, nil
}

func targetFor(body models.Body) string {
	if id, ok := planetIDs[body.Name]; ok {
		return strconv.Itoa(id)
	}
	return body.Name
}

func quote(s string) string { return "'" + s + "'" }

// parseObserverTable extracts RA, DEC and their rates from the first
// CSV row between the $$SOE/$$EOE markers of a Horizons result blob.
func parseObserverTable(result string) (ra, dec, dra, ddec float64, err error) {
	start := strings.Index(result, "$$SOE")
	end := strings.Index(result, "$$EOE")
	if start < 0 || end < 0 || end < start {
		return 0, 0, 0, 0, fmt.Errorf("no ephemeris rows in result")
	}

	for _, line := range strings.Split(result[start+len("$$SOE"):end], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var nums []float64
		for _, field := range strings.Split(line, ",") {
			v, perr := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if perr == nil {
				nums = append(nums, v)
			}
		}
		// RA, DEC, dRA*cosD, d(DEC)/dt
		if len(nums) >= 4 {
			return nums[0], nums[1], nums[2], nums[3], nil
		}
		if len(nums) >= 2 {
			return nums[0], nums[1], 0, 0, nil
		}
	}
	return 0, 0, 0, 0, fmt.Errorf("no parseable ephemeris row")
}

var _ drepo.EphemerisSource = (*Client)(nil)
