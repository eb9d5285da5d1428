// Package archive is the persistence boundary: a versioned, field-named
// document for planets and species, with schema validation and optional
// zstd compression.
package archive

import (
	"biosphere-server/internal/biology"
	"biosphere-server/internal/ecosystem"
	"biosphere-server/internal/environment"
)

// SchemaVersion is written into every document. Readers reject documents
// from a newer schema.
const SchemaVersion = 1

// Document holds either a whole planet or a loose set of ecosystems from a
// species batch.
type Document struct {
	SchemaVersion int            `json:"SchemaVersion"`
	Planet        *PlanetDTO     `json:"Planet,omitempty"`
	Ecosystems    []EcosystemDTO `json:"Ecosystems,omitempty"`
}

type SettingsDTO struct {
	Temperature         float64 `json:"Temperature"`
	Hydrology           float64 `json:"Hydrology"`
	Gravity             float64 `json:"Gravity"`
	LandMasses          int     `json:"LandMasses"`
	PrimaryChemistry    string  `json:"PrimaryChemistry"`
	PlanetType          string  `json:"PlanetType"`
	AtmosphericPressure float64 `json:"AtmosphericPressure"`
	DayLength           float64 `json:"DayLength"`
	YearLength          float64 `json:"YearLength"`
	HasMagneticField    bool    `json:"HasMagneticField"`
	OrbitalTilt         float64 `json:"OrbitalTilt"`
	RadiationLevel      float64 `json:"RadiationLevel"`
	HasSeasonalCycles   bool    `json:"HasSeasonalCycles"`
	TectonicActivity    float64 `json:"TectonicActivity"`
}

type PlanetDTO struct {
	Name                string         `json:"Name"`
	Settings            SettingsDTO    `json:"Settings"`
	LandMasses          []LandMassDTO  `json:"LandMasses"`
	WaterBodies         []WaterBodyDTO `json:"WaterBodies"`
	TotalEcosystemCount int            `json:"TotalEcosystemCount"`
}

type LandMassDTO struct {
	Name   string         `json:"Name"`
	Biomes []EcosystemDTO `json:"Biomes"`
}

type WaterBodyDTO struct {
	Name      string         `json:"Name"`
	WaterType string         `json:"WaterType"`
	Biomes    []EcosystemDTO `json:"Biomes"`
}

type EcosystemDTO struct {
	Name        string        `json:"Name"`
	HabitatType string        `json:"HabitatType"`
	Zone        string        `json:"Zone"`
	EcosystemID int           `json:"EcosystemID"`
	LocationID  int           `json:"LocationID"`
	Creatures   []CreatureDTO `json:"Creatures"`
}

// CreatureDTO is the flat per-creature record. Its keys are the creature's
// attribute names.
type CreatureDTO struct {
	Name          string `json:"Name"`
	ChemicalBasis string `json:"ChemicalBasis"`
	Habitat       string `json:"Habitat"`
	HabitatZone   string `json:"HabitatZone"`
	TrophicLevel  string `json:"TrophicLevel"`

	SizeCategory           string  `json:"SizeCategory"`
	SpecificSize           float64 `json:"SpecificSize"`
	GravitySizeMultiplier  float64 `json:"GravitySizeMultiplier"`
	WeightInPounds         float64 `json:"WeightInPounds"`
	Symmetry               string  `json:"Symmetry"`
	SymmetryNumber         int     `json:"SymmetryNumber"`
	Locomotion             string  `json:"Locomotion"`
	BreathingMethod        string  `json:"BreathingMethod"`
	TemperatureRegulation  string  `json:"TemperatureRegulation"`
	LimbStructure          string  `json:"LimbStructure"`
	ActualLimbCount        int     `json:"ActualLimbCount"`
	TailFeatures           string  `json:"TailFeatures"`
	ManipulatorType        string  `json:"ManipulatorType"`
	ActualManipulatorCount int     `json:"ActualManipulatorCount"`
	Skeleton               string  `json:"Skeleton"`
	SkinCovering           string  `json:"SkinCovering"`
	SkinType               string  `json:"SkinType"`

	GrowthPattern        string `json:"GrowthPattern"`
	Sexes                string `json:"Sexes"`
	Gestation            string `json:"Gestation"`
	SpecialGestation     string `json:"SpecialGestation"`
	ReproductiveStrategy string `json:"ReproductiveStrategy"`

	PrimarySense      string            `json:"PrimarySense"`
	SenseCapabilities map[string]string `json:"SenseCapabilities"`
	SpecialSenses     []string          `json:"SpecialSenses"`

	AnimalIntelligence string         `json:"AnimalIntelligence"`
	MatingBehavior     string         `json:"MatingBehavior"`
	SocialOrganization string         `json:"SocialOrganization"`
	MentalTraits       map[string]int `json:"MentalTraits"`
}

func NewPlanetDocument(p *ecosystem.Planet) Document {
	dto := FromPlanet(p)
	return Document{SchemaVersion: SchemaVersion, Planet: &dto}
}

func NewSpeciesDocument(ecosystems []ecosystem.Ecosystem) Document {
	out := make([]EcosystemDTO, len(ecosystems))
	for i, e := range ecosystems {
		out[i] = fromEcosystem(e)
	}
	return Document{SchemaVersion: SchemaVersion, Ecosystems: out}
}

func FromSettings(s environment.Settings) SettingsDTO {
	return SettingsDTO{
		Temperature:         s.Temperature,
		Hydrology:           s.Hydrology,
		Gravity:             s.Gravity,
		LandMasses:          s.LandMasses,
		PrimaryChemistry:    string(s.PrimaryChemistry),
		PlanetType:          string(s.PlanetType),
		AtmosphericPressure: s.AtmosphericPressure,
		DayLength:           s.DayLength,
		YearLength:          s.YearLength,
		HasMagneticField:    s.HasMagneticField,
		OrbitalTilt:         s.OrbitalTilt,
		RadiationLevel:      s.RadiationLevel,
		HasSeasonalCycles:   s.HasSeasonalCycles,
		TectonicActivity:    s.TectonicActivity,
	}
}

func (d SettingsDTO) Settings() environment.Settings {
	return environment.Settings{
		Temperature:         d.Temperature,
		Hydrology:           d.Hydrology,
		Gravity:             d.Gravity,
		LandMasses:          d.LandMasses,
		PrimaryChemistry:    environment.ChemistryBasis(d.PrimaryChemistry),
		PlanetType:          environment.PlanetType(d.PlanetType),
		AtmosphericPressure: d.AtmosphericPressure,
		DayLength:           d.DayLength,
		YearLength:          d.YearLength,
		HasMagneticField:    d.HasMagneticField,
		OrbitalTilt:         d.OrbitalTilt,
		RadiationLevel:      d.RadiationLevel,
		HasSeasonalCycles:   d.HasSeasonalCycles,
		TectonicActivity:    d.TectonicActivity,
	}
}

func FromPlanet(p *ecosystem.Planet) PlanetDTO {
	dto := PlanetDTO{
		Name:                p.Name,
		Settings:            FromSettings(p.Settings),
		LandMasses:          make([]LandMassDTO, len(p.LandMasses)),
		WaterBodies:         make([]WaterBodyDTO, len(p.WaterBodies)),
		TotalEcosystemCount: p.TotalEcosystemCount(),
	}
	for i, lm := range p.LandMasses {
		dto.LandMasses[i] = LandMassDTO{Name: lm.Name, Biomes: fromEcosystems(lm.Biomes)}
	}
	for i, wb := range p.WaterBodies {
		dto.WaterBodies[i] = WaterBodyDTO{Name: wb.Name, WaterType: wb.WaterType, Biomes: fromEcosystems(wb.Biomes)}
	}
	return dto
}

func (d PlanetDTO) Planet() *ecosystem.Planet {
	p := &ecosystem.Planet{
		Name:        d.Name,
		Settings:    d.Settings.Settings(),
		LandMasses:  make([]ecosystem.LandMass, len(d.LandMasses)),
		WaterBodies: make([]ecosystem.WaterBody, len(d.WaterBodies)),
	}
	for i, lm := range d.LandMasses {
		p.LandMasses[i] = ecosystem.LandMass{Name: lm.Name, Biomes: toEcosystems(lm.Biomes)}
	}
	for i, wb := range d.WaterBodies {
		p.WaterBodies[i] = ecosystem.WaterBody{Name: wb.Name, WaterType: wb.WaterType, Biomes: toEcosystems(wb.Biomes)}
	}
	return p
}

func fromEcosystems(in []ecosystem.Ecosystem) []EcosystemDTO {
	out := make([]EcosystemDTO, len(in))
	for i, e := range in {
		out[i] = fromEcosystem(e)
	}
	return out
}

func fromEcosystem(e ecosystem.Ecosystem) EcosystemDTO {
	creatures := make([]CreatureDTO, len(e.Creatures))
	for i, c := range e.Creatures {
		creatures[i] = FromCreature(c)
	}
	return EcosystemDTO{
		Name:        e.Name,
		HabitatType: e.HabitatType,
		Zone:        string(e.Zone),
		EcosystemID: e.EcosystemID,
		LocationID:  e.LocationID,
		Creatures:   creatures,
	}
}

func toEcosystems(in []EcosystemDTO) []ecosystem.Ecosystem {
	out := make([]ecosystem.Ecosystem, len(in))
	for i, e := range in {
		out[i] = e.Ecosystem()
	}
	return out
}

func (d EcosystemDTO) Ecosystem() ecosystem.Ecosystem {
	creatures := make([]biology.Creature, len(d.Creatures))
	for i, c := range d.Creatures {
		creatures[i] = c.Creature()
	}
	return ecosystem.Ecosystem{
		Name:        d.Name,
		HabitatType: d.HabitatType,
		Zone:        environment.Zone(d.Zone),
		EcosystemID: d.EcosystemID,
		LocationID:  d.LocationID,
		Creatures:   creatures,
	}
}

func FromCreature(c biology.Creature) CreatureDTO {
	p := c.Physiology
	return CreatureDTO{
		Name:          c.Name,
		ChemicalBasis: string(c.ChemicalBasis),
		Habitat:       c.Habitat.Habitat,
		HabitatZone:   string(c.Habitat.Zone),
		TrophicLevel:  c.TrophicLevel,

		SizeCategory:           c.Size.Category,
		SpecificSize:           c.Size.SpecificSize,
		GravitySizeMultiplier:  c.Size.GravitySizeMultiplier,
		WeightInPounds:         c.Size.WeightInPounds,
		Symmetry:               p.Symmetry,
		SymmetryNumber:         p.SymmetryNumber,
		Locomotion:             c.Locomotion,
		BreathingMethod:        p.BreathingMethod,
		TemperatureRegulation:  p.TemperatureRegulation,
		LimbStructure:          p.LimbStructure,
		ActualLimbCount:        p.ActualLimbCount,
		TailFeatures:           p.TailFeatures,
		ManipulatorType:        p.ManipulatorType,
		ActualManipulatorCount: p.ActualManipulatorCount,
		Skeleton:               p.Skeleton,
		SkinCovering:           p.SkinCovering,
		SkinType:               p.SkinType,

		GrowthPattern:        p.GrowthPattern,
		Sexes:                c.Reproduction.Sexes,
		Gestation:            c.Reproduction.Gestation,
		SpecialGestation:     c.Reproduction.SpecialGestation,
		ReproductiveStrategy: c.Reproduction.ReproductiveStrategy,

		PrimarySense:      c.Senses.PrimarySense,
		SenseCapabilities: c.Senses.Capabilities,
		SpecialSenses:     c.Senses.Special,

		AnimalIntelligence: c.Behavior.AnimalIntelligence,
		MatingBehavior:     c.Behavior.MatingBehavior,
		SocialOrganization: c.Behavior.SocialOrganization,
		MentalTraits:       c.Behavior.MentalTraits,
	}
}

// Creature rebuilds a finished creature. Archived creatures are always
// complete.
func (d CreatureDTO) Creature() biology.Creature {
	special := d.SpecialSenses
	if special == nil {
		special = []string{}
	}
	return biology.Creature{
		Name:          d.Name,
		Stage:         biology.StageComplete,
		ChemicalBasis: environment.ChemistryBasis(d.ChemicalBasis),
		Habitat:       environment.HabitatContext{Habitat: d.Habitat, Zone: environment.Zone(d.HabitatZone)},
		TrophicLevel:  d.TrophicLevel,
		Locomotion:    d.Locomotion,
		Size: biology.Size{
			Category:              d.SizeCategory,
			SpecificSize:          d.SpecificSize,
			GravitySizeMultiplier: d.GravitySizeMultiplier,
			WeightInPounds:        d.WeightInPounds,
		},
		Physiology: biology.Physiology{
			Symmetry:               d.Symmetry,
			SymmetryNumber:         d.SymmetryNumber,
			LimbStructure:          d.LimbStructure,
			ActualLimbCount:        d.ActualLimbCount,
			Skeleton:               d.Skeleton,
			ManipulatorType:        d.ManipulatorType,
			ActualManipulatorCount: d.ActualManipulatorCount,
			TailFeatures:           d.TailFeatures,
			SkinCovering:           d.SkinCovering,
			SkinType:               d.SkinType,
			BreathingMethod:        d.BreathingMethod,
			TemperatureRegulation:  d.TemperatureRegulation,
			GrowthPattern:          d.GrowthPattern,
		},
		Reproduction: biology.Reproduction{
			Sexes:                d.Sexes,
			Gestation:            d.Gestation,
			SpecialGestation:     d.SpecialGestation,
			ReproductiveStrategy: d.ReproductiveStrategy,
		},
		Senses: biology.Senses{
			PrimarySense: d.PrimarySense,
			Capabilities: d.SenseCapabilities,
			Special:      special,
		},
		Behavior: biology.Behavior{
			AnimalIntelligence: d.AnimalIntelligence,
			MatingBehavior:     d.MatingBehavior,
			SocialOrganization: d.SocialOrganization,
			MentalTraits:       d.MentalTraits,
		},
	}
}
