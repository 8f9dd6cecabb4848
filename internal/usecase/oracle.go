package usecase

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"AstroFeed/internal/astro/zodiac"
	"AstroFeed/internal/domain/models"
	"AstroFeed/pkg/logger"
)

// Oracle renders short symbolic narration for a feed from template
// tables. Tables live as JSON files in a data directory and fall back
// to built-in defaults, so a missing directory never fails a feed.
type Oracle struct {
	signThemes  map[string]string
	houseThemes map[string]string
	templates   []string
	log         *logger.Logger
}

// dominantAspects is how many aspects the oracle narrates, tightest
// orb first.
const dominantAspects = 3

var defaultSignThemes = map[string]string{
	"Aries":       "raw initiative",
	"Taurus":      "steady ground",
	"Gemini":      "restless exchange",
	"Cancer":      "protective depth",
	"Leo":         "radiant will",
	"Virgo":       "exacting craft",
	"Libra":       "weighed balance",
	"Scorpio":     "buried intensity",
	"Sagittarius": "far aim",
	"Capricorn":   "patient structure",
	"Aquarius":    "cold clarity",
	"Pisces":      "dissolving tide",
}

var defaultHouseThemes = map[string]string{
	"1": "the self", "2": "held resources", "3": "near exchange",
	"4": "the root", "5": "creation", "6": "daily labor",
	"7": "the other", "8": "shared debt", "9": "far horizons",
	"10": "public standing", "11": "the circle", "12": "the hidden",
}

var defaultTemplates = []string{
	"{{planet}} in {{sign}} forms a {{aspect}} with {{other}}, stirring {{theme}} through {{house}}.",
	"A {{aspect}} binds {{planet}} and {{other}}; {{theme}} presses on {{house}}.",
	"{{planet}} meets {{other}} by {{aspect}}, turning {{theme}} toward {{house}}.",
}

// NewOracle loads template tables from dir. Missing or malformed files
// are logged and replaced by defaults.
func NewOracle(dir string, log *logger.Logger) *Oracle {
	o := &Oracle{
		signThemes:  defaultSignThemes,
		houseThemes: defaultHouseThemes,
		templates:   defaultTemplates,
		log:         log,
	}

	if dir == "" {
		return o
	}

	if m, err := loadStringTable(filepath.Join(dir, "sign_themes.json")); err == nil {
		o.signThemes = m
	} else if !os.IsNotExist(err) {
		log.Warn("oracle sign table unreadable", logger.Error(err))
	}
	if m, err := loadStringTable(filepath.Join(dir, "house_themes.json")); err == nil {
		o.houseThemes = m
	} else if !os.IsNotExist(err) {
		log.Warn("oracle house table unreadable", logger.Error(err))
	}
	if t, err := loadStringList(filepath.Join(dir, "templates.json")); err == nil && len(t) > 0 {
		o.templates = t
	} else if err != nil && !os.IsNotExist(err) {
		log.Warn("oracle templates unreadable", logger.Error(err))
	}

	return o
}

// Narrate renders one line per dominant aspect, keyed by the aspect
// pair, plus a summary line. Output is deterministic for a given feed.
func (o *Oracle) Narrate(feed *models.Feed) map[string]string {
	out := make(map[string]string)

	ranked := make([]int, len(feed.Aspects))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		ai, bi := feed.Aspects[ranked[a]], feed.Aspects[ranked[b]]
		if ai.Orb != bi.Orb {
			return ai.Orb < bi.Orb
		}
		return ai.Intensity > bi.Intensity
	})

	n := dominantAspects
	if n > len(ranked) {
		n = len(ranked)
	}
	for i := 0; i < n; i++ {
		asp := feed.Aspects[ranked[i]]
		key := asp.BodyA + "_" + asp.BodyB

		t, ok := feed.Transits[asp.BodyA]
		if !ok {
			continue
		}

		tmpl := o.templates[i%len(o.templates)]
		line := strings.NewReplacer(
			"{{planet}}", displayName(asp.BodyA),
			"{{other}}", displayName(asp.BodyB),
			"{{aspect}}", string(asp.Type),
			"{{sign}}", t.Sign,
			"{{theme}}", o.signThemes[t.Sign],
			"{{house}}", o.houseThemes[fmt.Sprintf("%d", t.House)],
			"{{retro}}", retroWord(t.Retrograde),
		).Replace(tmpl)
		out[key] = line
	}

	out["summary"] = fmt.Sprintf("%d aspects active; the tightest belong to %s.",
		len(feed.Aspects), dominantSign(feed))
	return out
}

func loadStringTable(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

func loadStringList(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return list, nil
}

func displayName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func retroWord(retro bool) string {
	if retro {
		return "retrograde"
	}
	return "direct"
}

// dominantSign is the sign holding the most transiting bodies, ties
// broken by zodiac order.
func dominantSign(feed *models.Feed) string {
	counts := make(map[string]int)
	for _, t := range feed.Transits {
		counts[t.Sign]++
	}

	best, bestCount := "none", 0
	for _, sign := range zodiac.Signs {
		if counts[sign] > bestCount {
			best, bestCount = sign, counts[sign]
		}
	}
	return best
}
