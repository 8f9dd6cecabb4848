package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"AstroFeed/internal/astro/aspects"
	"AstroFeed/internal/astro/harmonics"
	"AstroFeed/internal/astro/houses"
	"AstroFeed/internal/astro/zodiac"
	"AstroFeed/internal/domain/models"
	"AstroFeed/internal/domain/repository"
	"AstroFeed/internal/service/stars"
	"AstroFeed/pkg/logger"
)

const feedSchemaVersion = 2

// GeneratorOptions are the per-run knobs for a feed computation.
type GeneratorOptions struct {
	Observer  models.Observer
	Harmonics int  // max harmonic carried per body, 0 = default
	Oracle    bool // attach oracle narration
	Bodies    []string
}

// TransitGenerator turns a timestamp into a complete feed document:
// angles, cusps, per-body transits, derived parts, aspects, narration.
type TransitGenerator struct {
	resolver *Resolver
	oracle   *Oracle
	metrics  repository.Metrics
	log      *logger.Logger
}

// NewTransitGenerator creates a generator. oracle may be nil when
// narration is disabled; metrics may be nil.
func NewTransitGenerator(resolver *Resolver, oracle *Oracle, metrics repository.Metrics, log *logger.Logger) *TransitGenerator {
	if metrics == nil {
		metrics = repository.NopMetrics{}
	}
	return &TransitGenerator{
		resolver: resolver,
		oracle:   oracle,
		metrics:  metrics,
		log:      log,
	}
}

// Generate computes the feed for one mode and timestamp.
func (g *TransitGenerator) Generate(ctx context.Context, mode string, ts time.Time, opts GeneratorOptions) (*models.Feed, error) {
	start := time.Now()
	ts = ts.UTC()

	jd := houses.JulianDateTime(ts)
	asc := houses.Ascendant(jd, opts.Observer.Lat, opts.Observer.Lon)
	mc := houses.Midheaven(jd, opts.Observer.Lon)
	wholeSign := houses.WholeSignCusps(asc)
	placidus := houses.PlacidusCusps(jd, opts.Observer.Lat, opts.Observer.Lon)

	catalog := selectBodies(opts.Bodies)

	// Arabic Parts are derived after resolution, not fetched.
	var fetchable []models.Body
	for _, b := range catalog {
		if b.Class != models.ClassArabicPart {
			fetchable = append(fetchable, b)
		}
	}

	res, err := g.resolver.ResolveAll(ctx, fetchable, ts)
	if err != nil {
		return nil, err
	}

	maxHarmonic := opts.Harmonics
	if maxHarmonic <= 0 {
		maxHarmonic = harmonics.DefaultMax
	}

	transits := make(map[string]models.Transit, len(catalog))
	for _, b := range fetchable {
		pos, ok := res.Positions[b.Name]
		if !ok {
			continue
		}
		transits[b.Name] = g.buildTransit(b.Name, b.Class, pos, asc, placidus, maxHarmonic, res.Sources[b.Name])
	}

	// Derived Arabic Parts from whatever planets resolved.
	if wantsParts(catalog) {
		lons := make(map[string]float64, len(res.Positions))
		for name, pos := range res.Positions {
			lons[name] = pos.Lon
		}
		for name, lon := range stars.ComputeParts(asc, lons) {
			pos := models.EclipticPosition{Lon: lon}
			transits[name] = g.buildTransit(name, models.ClassArabicPart, pos, asc, placidus, maxHarmonic, "derived")
		}
	}

	detected := aspects.DetectAll(aspectBodies(transits))
	g.metrics.RecordAspects(len(detected))

	feed := &models.Feed{
		ID:            uuid.NewString(),
		Mode:          mode,
		GeneratedUTC:  time.Now().UTC(),
		Timestamp:     ts,
		JulianDate:    jd,
		Observer:      opts.Observer,
		Angles:        models.Angles{Ascendant: asc, Midheaven: mc},
		WholeSign:     [12]float64(wholeSign),
		Placidus:      [12]float64(placidus),
		Transits:      transits,
		Aspects:       detected,
		Unresolved:    res.Unresolved,
		SchemaVersion: feedSchemaVersion,
	}

	if opts.Oracle && g.oracle != nil {
		feed.Oracle = g.oracle.Narrate(feed)
	}

	g.metrics.RecordFeedGenerated(mode)
	g.metrics.RecordComputeDuration(time.Since(start).Seconds())
	g.log.Info("feed generated",
		logger.String("mode", mode),
		logger.Time("timestamp", ts),
		logger.Int("bodies", len(transits)),
		logger.Int("aspects", len(detected)),
		logger.Int("unresolved", len(res.Unresolved)),
	)

	return feed, nil
}

func (g *TransitGenerator) buildTransit(name string, class models.BodyClass, pos models.EclipticPosition, asc float64, placidus houses.CuspSet, maxHarmonic int, source string) models.Transit {
	t := models.Transit{
		Body:         name,
		Class:        class,
		Lon:          pos.Lon,
		Lat:          pos.Lat,
		Retrograde:   pos.Retrograde,
		Speed:        pos.Speed,
		Sign:         zodiac.SignOf(pos.Lon),
		Sign13:       zodiac.Sign13Of(pos.Lon),
		DegreeInSign: zodiac.DegreeInSign(pos.Lon),
		House:        houses.WholeSignHouse(pos.Lon, asc),
		Harmonics:    harmonics.Series(pos.Lon, maxHarmonic),
		Source:       source,
	}
	if h, ok := houses.PlacidusHouse(pos.Lon, placidus); ok {
		t.PlacidusHouse = h
	}
	return t
}

// selectBodies maps requested names to catalog entries, or the full
// catalog when names is empty. Unknown names are ignored.
func selectBodies(names []string) []models.Body {
	catalog := models.Catalog()
	if len(names) == 0 {
		return catalog
	}

	byName := make(map[string]models.Body, len(catalog))
	for _, b := range catalog {
		byName[b.Name] = b
	}

	var out []models.Body
	for _, n := range names {
		if b, ok := byName[n]; ok {
			out = append(out, b)
		}
	}
	return out
}

func wantsParts(catalog []models.Body) bool {
	for _, b := range catalog {
		if b.Class == models.ClassArabicPart {
			return true
		}
	}
	return false
}

// aspectBodies projects transits into the aspect engine's input,
// preserving catalog order so detection is deterministic.
func aspectBodies(transits map[string]models.Transit) []aspects.Body {
	var out []aspects.Body
	for _, b := range models.Catalog() {
		t, ok := transits[b.Name]
		if !ok {
			continue
		}
		// Fall back to the base longitude when the run carries fewer
		// harmonics than the scoring harmonic.
		h := t.Lon
		if v, ok := t.Harmonics[harmonicForScoring]; ok {
			h = v
		}
		out = append(out, aspects.Body{Name: t.Body, Lon: t.Lon, Harmonic: h})
	}
	return out
}

// harmonicForScoring is the harmonic whose longitude feeds the
// intensity formula's harmonic multiplier.
const harmonicForScoring = 7
