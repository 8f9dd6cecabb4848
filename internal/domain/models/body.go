package models

// BodyClass is the closed enumeration of celestial body kinds carried
// in feeds. Orb classes and provider routing key off it.
type BodyClass string

const (
	ClassPlanet      BodyClass = "planet"
	ClassAsteroid    BodyClass = "asteroid"
	ClassDwarfPlanet BodyClass = "dwarf_planet"
	ClassCentaur     BodyClass = "centaur"
	ClassTNO         BodyClass = "tno"
	ClassFixedStar   BodyClass = "fixed_star"
	ClassArabicPart  BodyClass = "arabic_part"
)

// Body is one catalog entry.
type Body struct {
	Name  string    `json:"name"`
	Class BodyClass `json:"class"`
}

var majorPlanets = []string{
	"Sun", "Moon", "Mercury", "Venus", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
}

var asteroids = []string{
	"Ceres", "Pallas", "Juno", "Vesta", "Psyche", "Eros",
	"Hygiea", "Hebe", "Iris", "Flora", "Metis", "Astraea",
}

var dwarfPlanets = []string{
	"Eris", "Sedna", "Haumea", "Makemake", "Orcus", "Quaoar",
}

var centaurs = []string{
	"Chiron", "Nessus", "Chariklo", "Pholus", "Asbolus",
}

var tnos = []string{
	"Ixion", "Varuna", "Salacia", "Typhon", "2002 AW197", "2003 VS2",
}

var fixedStars = []string{
	"Regulus", "Spica", "Aldebaran", "Antares", "Algol", "Arcturus",
	"Betelgeuse", "Canopus", "Capella", "Deneb", "Fomalhaut", "Pollux",
	"Procyon", "Rigel", "Sirius", "Vega", "Zubenelgenubi", "Zubeneschamali",
}

var arabicParts = []string{
	"Part_of_Fortune", "Part_of_Spirit", "Part_of_Love",
	"Part_of_Victory", "Part_of_Courage", "Part_of_Intellect",
}

// Catalog returns every body the generator resolves, grouped by class
// in feed order.
func Catalog() []Body {
	var out []Body
	add := func(names []string, class BodyClass) {
		for _, n := range names {
			out = append(out, Body{Name: n, Class: class})
		}
	}
	add(majorPlanets, ClassPlanet)
	add(asteroids, ClassAsteroid)
	add(dwarfPlanets, ClassDwarfPlanet)
	add(centaurs, ClassCentaur)
	add(tnos, ClassTNO)
	add(fixedStars, ClassFixedStar)
	add(arabicParts, ClassArabicPart)
	return out
}

// ClassOf returns the catalog class for a body name, or "" when the
// body is not in the catalog.
func ClassOf(name string) BodyClass {
	for _, b := range Catalog() {
		if b.Name == name {
			return b.Class
		}
	}
	return ""
}
