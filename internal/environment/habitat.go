package environment

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"biosphere-server/internal/dice"
)

type Zone string

const (
	ZoneLand   Zone = "Land"
	ZoneWater  Zone = "Water"
	ZoneJovian Zone = "Jovian"
)

// HabitatContext is the resolved place a creature or biome lives in.
type HabitatContext struct {
	Habitat string `json:"habitat"`
	Zone    Zone   `json:"zone"`
}

const (
	FallbackLandHabitat  = "Plain"
	FallbackWaterHabitat = "Sea"
)

var landHabitats = dice.NewTable(
	dice.Entry[string]{Outcome: "Plain", Threshold: 6},
	dice.Entry[string]{Outcome: "Desert", Threshold: 8},
	dice.Entry[string]{Outcome: "Coastal", Threshold: 9},
	dice.Entry[string]{Outcome: "Woodland", Threshold: 10},
	dice.Entry[string]{Outcome: "Swampland", Threshold: 11},
	dice.Entry[string]{Outcome: "Mountain", Threshold: 12},
	dice.Entry[string]{Outcome: "Arctic", Threshold: 13},
	dice.Entry[string]{Outcome: "Jungle", Threshold: 18},
)

var waterHabitats = dice.NewTable(
	dice.Entry[string]{Outcome: "Shallows", Threshold: 7},
	dice.Entry[string]{Outcome: "Ocean", Threshold: 8},
	dice.Entry[string]{Outcome: "Lake", Threshold: 9},
	dice.Entry[string]{Outcome: "River", Threshold: 10},
	dice.Entry[string]{Outcome: "Lagoon", Threshold: 11},
	dice.Entry[string]{Outcome: "Deep Ocean", Threshold: 12},
	dice.Entry[string]{Outcome: "Sea", Threshold: 13},
	dice.Entry[string]{Outcome: "Reef", Threshold: 18},
)

var jovianHabitats = dice.NewTable(
	dice.Entry[string]{Outcome: "High Atmosphere", Threshold: 7},
	dice.Entry[string]{Outcome: "Mid Atmosphere", Threshold: 9},
	dice.Entry[string]{Outcome: "Tidal", Threshold: 15},
	dice.Entry[string]{Outcome: "Deep Atmosphere", Threshold: 16},
	dice.Entry[string]{Outcome: "Storm-Dwelling", Threshold: 18},
)

// HabitatTable returns the habitat table for zone.
func HabitatTable(zone Zone) dice.Table[string] {
	switch zone {
	case ZoneWater:
		return waterHabitats
	case ZoneJovian:
		return jovianHabitats
	default:
		return landHabitats
	}
}

// ZoneOf reports which zone's table lists habitat.
func ZoneOf(habitat string) (Zone, bool) {
	for _, zone := range []Zone{ZoneLand, ZoneWater, ZoneJovian} {
		for _, h := range HabitatTable(zone).Outcomes() {
			if h == habitat {
				return zone, true
			}
		}
	}
	return "", false
}

// Viable reports whether habitat can exist under the given settings.
// Habitats without a constraint are always viable.
func Viable(habitat string, s Settings) bool {
	t, h := s.Temperature, s.Hydrology
	switch habitat {
	case "Arctic":
		return t < 273
	case "Desert":
		return t > 300 && h < 20
	case "Coastal":
		return h > 0
	case "Woodland":
		return t >= 278 && t <= 298 && h >= 30 && h <= 80
	case "Swampland":
		return t > 283 && h > 60
	case "Mountain":
		return h < 90
	case "Plain":
		return t >= 278 && t <= 308 && h >= 10 && h <= 70
	case "Jungle":
		return t > 293 && h > 50
	case "Ocean", "Deep Ocean", "Sea":
		return h > 50
	case "Lake", "River":
		return h > 10
	case "Lagoon":
		return h > 40 && t > 288
	case "Reef":
		return h > 60 && t > 293
	default:
		return true
	}
}

// ViableHabitats restricts the zone's table to habitats viable under s,
// keeping their thresholds.
func ViableHabitats(zone Zone, s Settings) dice.Table[string] {
	table := HabitatTable(zone)
	if zone == ZoneJovian {
		return table
	}
	return table.Filter(func(h string) bool { return Viable(h, s) })
}

// AvailableHabitats lists every habitat a creature could be generated in,
// land habitats first. A dry world keeps only land habitats, a fully
// flooded world only water habitats and a gas giant its own atmosphere
// layers.
func AvailableHabitats(s Settings) []string {
	if s.IsJovian() {
		return jovianHabitats.Outcomes()
	}

	var zones []Zone
	switch {
	case s.Hydrology <= 0:
		zones = []Zone{ZoneLand}
	case s.Hydrology >= 100:
		zones = []Zone{ZoneWater}
	default:
		zones = []Zone{ZoneLand, ZoneWater}
	}

	var out []string
	for _, zone := range zones {
		out = append(out, ViableHabitats(zone, s).Outcomes()...)
	}
	return out
}

// HydrologyModifier biases zone and habitat rolls toward land on dry worlds
// and toward water on wet ones.
func HydrologyModifier(hydrology float64) int {
	switch {
	case hydrology <= 10:
		return -2
	case hydrology <= 50:
		return -1
	case hydrology >= 90:
		return 2
	case hydrology >= 80:
		return 1
	default:
		return 0
	}
}

// LookupHabitat resolves a habitat name typed by a person. Exact matches
// ignore case and separators; otherwise the closest name within a small
// edit distance wins.
func LookupHabitat(name string) (HabitatContext, bool) {
	key := normalizeKey(name)
	if key == "" {
		return HabitatContext{}, false
	}

	type candidate struct {
		habitat string
		zone    Zone
		dist    int
	}
	var candidates []candidate
	for _, zone := range []Zone{ZoneLand, ZoneWater, ZoneJovian} {
		for _, h := range HabitatTable(zone).Outcomes() {
			cand := normalizeKey(h)
			if cand == key {
				return HabitatContext{Habitat: h, Zone: zone}, true
			}
			if len(key) < 3 {
				continue
			}
			dist := levenshtein.ComputeDistance(key, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			candidates = append(candidates, candidate{habitat: h, zone: zone, dist: dist})
		}
	}
	if len(candidates) == 0 {
		return HabitatContext{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist == candidates[j].dist {
			return strings.Compare(candidates[i].habitat, candidates[j].habitat) < 0
		}
		return candidates[i].dist < candidates[j].dist
	})
	best := candidates[0]
	return HabitatContext{Habitat: best.habitat, Zone: best.zone}, true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
