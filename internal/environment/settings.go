// Package environment holds the planetary settings every resolver reads and
// the habitat resolver that fixes where a creature lives.
package environment

import (
	"strings"

	"biosphere-server/internal/dice"
	"biosphere-server/internal/shared/errors"
)

type ChemistryBasis string

const (
	ChemistryHydrogen    ChemistryBasis = "Hydrogen-Based"
	ChemistryAmmonia     ChemistryBasis = "Ammonia-Based"
	ChemistryHydrocarbon ChemistryBasis = "Hydrocarbon-Based"
	ChemistryCarbon      ChemistryBasis = "Carbon-Based"
	ChemistryChlorine    ChemistryBasis = "Chlorine-Based"
	ChemistrySilicon     ChemistryBasis = "Silicon-Based"
	ChemistrySulfur      ChemistryBasis = "Sulfur-Based"
	ChemistryMachine     ChemistryBasis = "Machine"
)

// ChemistryTable is rolled with 3d6 when settings leave the chemistry open.
var ChemistryTable = dice.NewTable(
	dice.Entry[ChemistryBasis]{Outcome: ChemistryHydrogen, Threshold: 5},
	dice.Entry[ChemistryBasis]{Outcome: ChemistryAmmonia, Threshold: 7},
	dice.Entry[ChemistryBasis]{Outcome: ChemistryHydrocarbon, Threshold: 8},
	dice.Entry[ChemistryBasis]{Outcome: ChemistryCarbon, Threshold: 11},
	dice.Entry[ChemistryBasis]{Outcome: ChemistryChlorine, Threshold: 12},
	dice.Entry[ChemistryBasis]{Outcome: ChemistrySilicon, Threshold: 15},
	dice.Entry[ChemistryBasis]{Outcome: ChemistrySulfur, Threshold: 17},
	dice.Entry[ChemistryBasis]{Outcome: ChemistryMachine, Threshold: 18},
)

// Chemistries lists every chemistry basis in table order.
func Chemistries() []ChemistryBasis {
	return ChemistryTable.Outcomes()
}

// ParseChemistry accepts the canonical label or a loose spelling such as
// "carbon", "silicon_based" or "MACHINE".
func ParseChemistry(value string) (ChemistryBasis, bool) {
	key := normalizeKey(value)
	key = strings.TrimSuffix(key, "based")
	if key == "" {
		return "", false
	}
	for _, c := range Chemistries() {
		canonical := strings.TrimSuffix(normalizeKey(string(c)), "based")
		if canonical == key {
			return c, true
		}
	}
	return "", false
}

// Settings describes the planet a species or ecosystem is generated for.
// Resolvers only ever read it.
type Settings struct {
	Temperature      float64        `json:"temperature"`
	Hydrology        float64        `json:"hydrology"`
	Gravity          float64        `json:"gravity"`
	LandMasses       int            `json:"land_masses"`
	PrimaryChemistry ChemistryBasis `json:"primary_chemistry,omitempty"`
	PlanetType       PlanetType     `json:"planet_type,omitempty"`

	AtmosphericPressure float64 `json:"atmospheric_pressure,omitempty"`
	DayLength           float64 `json:"day_length,omitempty"`
	YearLength          float64 `json:"year_length,omitempty"`
	HasMagneticField    bool    `json:"has_magnetic_field,omitempty"`
	OrbitalTilt         float64 `json:"orbital_tilt,omitempty"`
	RadiationLevel      float64 `json:"radiation_level,omitempty"`
	HasSeasonalCycles   bool    `json:"has_seasonal_cycles,omitempty"`
	TectonicActivity    float64 `json:"tectonic_activity,omitempty"`
}

const (
	MinTemperature = 150.0
	MaxTemperature = 350.0
	MinHydrology   = 0.0
	MaxHydrology   = 120.0
	MinGravity     = 0.1
	MaxGravity     = 10.0

	DefaultTemperature = 287.0
	DefaultGravity     = 1.0
)

// DefaultSettings returns an Earth-like world with carbon chemistry.
func DefaultSettings() Settings {
	s, _ := Preset(PlanetGaian)
	return s
}

// WithDefaults fills fields a caller left unset. Zero gravity becomes 1 G,
// zero temperature becomes 287 K and a negative land-mass target becomes 0.
// Loosely spelled chemistry and planet type values are canonicalized.
func (s Settings) WithDefaults() Settings {
	if c, ok := ParseChemistry(string(s.PrimaryChemistry)); ok {
		s.PrimaryChemistry = c
	}
	if p, ok := ParsePlanetType(string(s.PlanetType)); ok {
		s.PlanetType = p
	}
	if s.Gravity == 0 {
		s.Gravity = DefaultGravity
	}
	if s.Temperature == 0 {
		s.Temperature = DefaultTemperature
	}
	if s.LandMasses < 0 {
		s.LandMasses = 0
	}
	return s
}

// Validate reports the first field outside its accepted range.
func (s Settings) Validate() error {
	if s.Temperature <= 0 {
		return errors.Validationf("temperature must be positive, got %.1f", s.Temperature)
	}
	if s.Hydrology < MinHydrology || s.Hydrology > MaxHydrology {
		return errors.Validationf("hydrology must be between %.0f and %.0f, got %.1f", MinHydrology, MaxHydrology, s.Hydrology)
	}
	if s.Gravity < MinGravity || s.Gravity > MaxGravity {
		return errors.Validationf("gravity must be between %.1f and %.1f, got %.2f", MinGravity, MaxGravity, s.Gravity)
	}
	if s.LandMasses < 0 {
		return errors.Validationf("land masses must not be negative, got %d", s.LandMasses)
	}
	if s.PrimaryChemistry != "" {
		if _, ok := ParseChemistry(string(s.PrimaryChemistry)); !ok {
			return errors.Validationf("unknown chemistry basis %q", s.PrimaryChemistry)
		}
	}
	if s.PlanetType != "" {
		if _, ok := ParsePlanetType(string(s.PlanetType)); !ok {
			return errors.Validationf("unknown planet type %q", s.PlanetType)
		}
	}
	return nil
}

// IsJovian reports whether the planet is a gas giant.
func (s Settings) IsJovian() bool {
	return s.PlanetType == PlanetJovian
}

func normalizeKey(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		if r == ' ' || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
