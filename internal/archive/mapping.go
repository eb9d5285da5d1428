package archive

import (
	"encoding/json"
	"fmt"

	"biosphere-server/internal/biology"
)

// CreatureToMap flattens c into attribute-name keys. Nested values keep
// their Go types: SenseCapabilities is a map[string]string, SpecialSenses a
// []string and MentalTraits a map[string]int.
func CreatureToMap(c biology.Creature) map[string]any {
	d := FromCreature(c)
	return map[string]any{
		"Name":                   d.Name,
		"ChemicalBasis":          d.ChemicalBasis,
		"Habitat":                d.Habitat,
		"HabitatZone":            d.HabitatZone,
		"TrophicLevel":           d.TrophicLevel,
		"SizeCategory":           d.SizeCategory,
		"SpecificSize":           d.SpecificSize,
		"GravitySizeMultiplier":  d.GravitySizeMultiplier,
		"WeightInPounds":         d.WeightInPounds,
		"Symmetry":               d.Symmetry,
		"SymmetryNumber":         d.SymmetryNumber,
		"Locomotion":             d.Locomotion,
		"BreathingMethod":        d.BreathingMethod,
		"TemperatureRegulation":  d.TemperatureRegulation,
		"LimbStructure":          d.LimbStructure,
		"ActualLimbCount":        d.ActualLimbCount,
		"TailFeatures":           d.TailFeatures,
		"ManipulatorType":        d.ManipulatorType,
		"ActualManipulatorCount": d.ActualManipulatorCount,
		"Skeleton":               d.Skeleton,
		"SkinCovering":           d.SkinCovering,
		"SkinType":               d.SkinType,
		"GrowthPattern":          d.GrowthPattern,
		"Sexes":                  d.Sexes,
		"Gestation":              d.Gestation,
		"SpecialGestation":       d.SpecialGestation,
		"ReproductiveStrategy":   d.ReproductiveStrategy,
		"PrimarySense":           d.PrimarySense,
		"SenseCapabilities":      d.SenseCapabilities,
		"SpecialSenses":          d.SpecialSenses,
		"AnimalIntelligence":     d.AnimalIntelligence,
		"MatingBehavior":         d.MatingBehavior,
		"SocialOrganization":     d.SocialOrganization,
		"MentalTraits":           d.MentalTraits,
	}
}

// CreatureFromMap accepts maps built by CreatureToMap as well as maps
// decoded from JSON, where numbers arrive as float64 and nested values as
// generic maps and slices.
func CreatureFromMap(m map[string]any) (biology.Creature, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return biology.Creature{}, fmt.Errorf("failed to encode creature map: %w", err)
	}
	var d CreatureDTO
	if err := json.Unmarshal(raw, &d); err != nil {
		return biology.Creature{}, fmt.Errorf("failed to decode creature map: %w", err)
	}
	return d.Creature(), nil
}
