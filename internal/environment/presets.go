package environment

import (
	"biosphere-server/internal/dice"
)

type PlanetType string

const (
	PlanetJovian       PlanetType = "Jovian"
	PlanetArean        PlanetType = "Arean"
	PlanetArid         PlanetType = "Arid"
	PlanetOceanic      PlanetType = "Oceanic"
	PlanetPanthalassic PlanetType = "Panthalassic"
	PlanetPromethean   PlanetType = "Promethean"
	PlanetSnowball     PlanetType = "Snowball"
	PlanetGaian        PlanetType = "Gaian"
	PlanetVesperian    PlanetType = "Vesperian"
)

var planetTypes = []PlanetType{
	PlanetJovian,
	PlanetArean,
	PlanetArid,
	PlanetOceanic,
	PlanetPanthalassic,
	PlanetPromethean,
	PlanetSnowball,
	PlanetGaian,
	PlanetVesperian,
}

var presets = map[PlanetType]Settings{
	PlanetJovian: {
		Temperature: 150, Hydrology: 0, Gravity: 2.5, LandMasses: 0,
		PrimaryChemistry: ChemistryHydrogen, PlanetType: PlanetJovian,
		AtmosphericPressure: 100, DayLength: 10, YearLength: 4333,
		HasMagneticField: true, OrbitalTilt: 3, RadiationLevel: 10,
		HasSeasonalCycles: false, TectonicActivity: 0,
	},
	PlanetArean: {
		Temperature: 250, Hydrology: 5, Gravity: 0.4, LandMasses: 3,
		PrimaryChemistry: ChemistryCarbon, PlanetType: PlanetArean,
		AtmosphericPressure: 0.6, DayLength: 24.6, YearLength: 687,
		HasMagneticField: false, OrbitalTilt: 25, RadiationLevel: 2,
		HasSeasonalCycles: true, TectonicActivity: 0.1,
	},
	PlanetArid: {
		Temperature: 310, Hydrology: 10, Gravity: 1, LandMasses: 2,
		PrimaryChemistry: ChemistryCarbon, PlanetType: PlanetArid,
		AtmosphericPressure: 0.8, DayLength: 30, YearLength: 365,
		HasMagneticField: true, OrbitalTilt: 10, RadiationLevel: 1.5,
		HasSeasonalCycles: false, TectonicActivity: 0.5,
	},
	PlanetOceanic: {
		Temperature: 290, Hydrology: 100, Gravity: 1, LandMasses: 0,
		PrimaryChemistry: ChemistryCarbon, PlanetType: PlanetOceanic,
		AtmosphericPressure: 1, DayLength: 24, YearLength: 365,
		HasMagneticField: true, OrbitalTilt: 23.5, RadiationLevel: 1,
		HasSeasonalCycles: true, TectonicActivity: 1,
	},
	PlanetPanthalassic: {
		Temperature: 280, Hydrology: 100, Gravity: 1.5, LandMasses: 0,
		PrimaryChemistry: ChemistryHydrocarbon, PlanetType: PlanetPanthalassic,
		AtmosphericPressure: 5, DayLength: 20, YearLength: 500,
		HasMagneticField: true, OrbitalTilt: 5, RadiationLevel: 1,
		HasSeasonalCycles: false, TectonicActivity: 0.2,
	},
	PlanetPromethean: {
		Temperature: 250, Hydrology: 20, Gravity: 0.8, LandMasses: 1,
		PrimaryChemistry: ChemistrySilicon, PlanetType: PlanetPromethean,
		AtmosphericPressure: 0.9, DayLength: 30, YearLength: 400,
		HasMagneticField: true, OrbitalTilt: 15, RadiationLevel: 1,
		HasSeasonalCycles: true, TectonicActivity: 1.5,
	},
	PlanetSnowball: {
		Temperature: 200, Hydrology: 50, Gravity: 1, LandMasses: 1,
		PrimaryChemistry: ChemistryCarbon, PlanetType: PlanetSnowball,
		AtmosphericPressure: 1, DayLength: 24, YearLength: 365,
		HasMagneticField: true, OrbitalTilt: 23.5, RadiationLevel: 1,
		HasSeasonalCycles: true, TectonicActivity: 1,
	},
	PlanetGaian: {
		Temperature: 287, Hydrology: 70, Gravity: 1, LandMasses: 1,
		PrimaryChemistry: ChemistryCarbon, PlanetType: PlanetGaian,
		AtmosphericPressure: 1, DayLength: 24, YearLength: 365,
		HasMagneticField: true, OrbitalTilt: 23.5, RadiationLevel: 1,
		HasSeasonalCycles: true, TectonicActivity: 1,
	},
	PlanetVesperian: {
		Temperature: 300, Hydrology: 50, Gravity: 1, LandMasses: 1,
		PrimaryChemistry: ChemistryCarbon, PlanetType: PlanetVesperian,
		AtmosphericPressure: 1, DayLength: 100, YearLength: 365,
		HasMagneticField: true, OrbitalTilt: 0, RadiationLevel: 1,
		HasSeasonalCycles: false, TectonicActivity: 0.5,
	},
}

// PlanetTypes lists the archetypes that have presets.
func PlanetTypes() []PlanetType {
	out := make([]PlanetType, len(planetTypes))
	copy(out, planetTypes)
	return out
}

// ParsePlanetType matches an archetype name case-insensitively.
func ParsePlanetType(value string) (PlanetType, bool) {
	key := normalizeKey(value)
	if key == "" {
		return "", false
	}
	for _, p := range planetTypes {
		if normalizeKey(string(p)) == key {
			return p, true
		}
	}
	return "", false
}

// Preset returns the archetype settings for planetType.
func Preset(planetType PlanetType) (Settings, bool) {
	s, ok := presets[planetType]
	return s, ok
}

// Randomize rolls a custom world. The result carries no archetype.
func Randomize(r *dice.Roller) Settings {
	return Settings{
		Temperature:      MinTemperature + r.Float64()*(MaxTemperature-MinTemperature),
		Hydrology:        r.Float64() * MaxHydrology,
		Gravity:          MinGravity + r.Float64()*(MaxGravity-MinGravity),
		LandMasses:       1 + r.IntN(7),
		PrimaryChemistry: dice.Pick(r, Chemistries()),

		AtmosphericPressure: r.Float64() * 5,
		DayLength:           r.Float64() * 100,
		YearLength:          100 + r.Float64()*1000,
		HasMagneticField:    r.Float64() > 0.3,
		OrbitalTilt:         r.Float64() * 90,
		RadiationLevel:      r.Float64() * 5,
		HasSeasonalCycles:   r.Float64() > 0.2,
		TectonicActivity:    r.Float64() * 3,
	}
}
