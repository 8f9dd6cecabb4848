package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"AstroFeed/internal/astro/aspects"
	models "AstroFeed/internal/domain/models"
	domrepo "AstroFeed/internal/domain/repository"
	"AstroFeed/internal/service/ratelimit"
	"AstroFeed/internal/usecase"
	xlogger "AstroFeed/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubStore struct {
	feeds map[string]*models.Feed
}

func (s *stubStore) Save(_ context.Context, feed *models.Feed) (string, error) {
	if s.feeds == nil {
		s.feeds = make(map[string]*models.Feed)
	}
	s.feeds[feed.Mode] = feed
	return "feed_" + feed.Mode + ".json", nil
}

func (s *stubStore) Latest(_ context.Context, mode string) (*models.Feed, error) {
	if f, ok := s.feeds[mode]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("no feed for %s", mode)
}

// fixedSource resolves every body deterministically for handler tests.
type fixedSource struct{}

func (fixedSource) Name() string              { return "fixed" }
func (fixedSource) Supports(models.Body) bool { return true }
func (fixedSource) Fetch(_ context.Context, b models.Body, _ time.Time) (*models.EclipticPosition, error) {
	lon := float64((len(b.Name) * 37) % 360)
	return &models.EclipticPosition{Lon: lon}, nil
}

func newTestServer(t *testing.T, store *stubStore) *echo.Echo {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	resolver := usecase.NewResolver(
		[]domrepo.EphemerisSource{fixedSource{}},
		ratelimit.New(), nil, 0, nil, nil, l,
	)
	gen := usecase.NewTransitGenerator(resolver, nil, nil, l)

	h := NewFeedsHandler(l, store, gen, models.Greenwich, nil)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, e *echo.Echo, method, target string, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("parse envelope: %v (body %s)", err, rec.Body.String())
	}
	return rec, env
}

func TestFeedEndpoint(t *testing.T) {
	store := &stubStore{feeds: map[string]*models.Feed{
		"now": {ID: "f1", Mode: "now", SchemaVersion: 2},
	}}
	e := newTestServer(t, store)

	_, env := doRequest(t, e, http.MethodGet, "/api/feed", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}
	if !strings.Contains(string(env.Data), `"f1"`) {
		t.Fatalf("data = %s", env.Data)
	}
}

func TestFeedEndpointMissing(t *testing.T) {
	e := newTestServer(t, &stubStore{})
	_, env := doRequest(t, e, http.MethodGet, "/api/feed?mode=daily", "")
	if env.Status != http.StatusNotFound {
		t.Fatalf("status = %d", env.Status)
	}
}

func TestFeedEndpointBadMode(t *testing.T) {
	e := newTestServer(t, &stubStore{})
	_, env := doRequest(t, e, http.MethodGet, "/api/feed?mode=hourly", "")
	if env.Status != http.StatusBadRequest {
		t.Fatalf("status = %d", env.Status)
	}
}

func TestTransitEndpoint(t *testing.T) {
	store := &stubStore{feeds: map[string]*models.Feed{
		"now": {
			Mode: "now",
			Transits: map[string]models.Transit{
				"Mars": {Body: "Mars", Sign: "Leo", House: 5},
			},
		},
	}}
	e := newTestServer(t, store)

	_, env := doRequest(t, e, http.MethodGet, "/api/transits/Mars", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d", env.Status)
	}
	if !strings.Contains(string(env.Data), `"Leo"`) {
		t.Fatalf("data = %s", env.Data)
	}

	_, env = doRequest(t, e, http.MethodGet, "/api/transits/Jupiter", "")
	if env.Status != http.StatusNotFound {
		t.Fatalf("missing body status = %d", env.Status)
	}
}

func TestAspectsEndpointFilter(t *testing.T) {
	store := &stubStore{feeds: map[string]*models.Feed{
		"now": {
			Mode: "now",
			Aspects: []aspects.Aspect{
				{BodyA: "Sun", BodyB: "Moon", Type: aspects.Conjunction},
				{BodyA: "Mars", BodyB: "Venus", Type: aspects.Trine},
			},
		},
	}}
	e := newTestServer(t, store)

	_, env := doRequest(t, e, http.MethodGet, "/api/aspects?body=Mars", "")
	var got []aspects.Aspect
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("parse aspects: %v", err)
	}
	if len(got) != 1 || got[0].BodyA != "Mars" {
		t.Fatalf("filtered = %+v", got)
	}
}

func TestHousesEndpoint(t *testing.T) {
	e := newTestServer(t, &stubStore{})

	_, env := doRequest(t, e, http.MethodGet, "/api/houses?ts=2020-01-01T12:00:00Z&system=placidus", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d (data %s)", env.Status, env.Data)
	}

	var res usecase.HousesResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("parse houses: %v", err)
	}
	if res.System != "placidus" {
		t.Fatalf("system = %q", res.System)
	}
	if res.JulianDate < 2458849 || res.JulianDate > 2458851 {
		t.Fatalf("julian date = %v", res.JulianDate)
	}
}

func TestHousesEndpointMissingTimestamp(t *testing.T) {
	e := newTestServer(t, &stubStore{})
	_, env := doRequest(t, e, http.MethodGet, "/api/houses", "")
	if env.Status != http.StatusBadRequest {
		t.Fatalf("status = %d", env.Status)
	}
}

func TestComputeEndpoint(t *testing.T) {
	e := newTestServer(t, &stubStore{})

	body := `{"timestamp":"2026-03-01T12:00:00Z","bodies":["Sun","Moon"],"harmonics":6}`
	_, env := doRequest(t, e, http.MethodPost, "/api/compute", body)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d (data %s)", env.Status, env.Data)
	}

	var feed models.Feed
	if err := json.Unmarshal(env.Data, &feed); err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	if len(feed.Transits) != 2 {
		t.Fatalf("transits = %d", len(feed.Transits))
	}
	if len(feed.Transits["Sun"].Harmonics) != 6 {
		t.Fatalf("harmonics = %d", len(feed.Transits["Sun"].Harmonics))
	}
}

func TestComputeEndpointBadLat(t *testing.T) {
	e := newTestServer(t, &stubStore{})

	body := `{"timestamp":"2026-03-01T12:00:00Z","lat":123.0}`
	_, env := doRequest(t, e, http.MethodPost, "/api/compute", body)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("status = %d", env.Status)
	}
}
