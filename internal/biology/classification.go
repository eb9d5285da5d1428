package biology

import (
	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
)

// resolveChemistry uses the planet's chemistry when set and rolls 3d6 on the
// chemistry table otherwise.
func resolveChemistry(r *dice.Roller, s environment.Settings) environment.ChemistryBasis {
	if c, ok := environment.ParseChemistry(string(s.PrimaryChemistry)); ok {
		return c
	}
	return dice.Seek3d6(r, environment.ChemistryTable)
}

func resolveTrophic(r *dice.Roller) string {
	return dice.Seek3d6(r, trophicTable)
}

// LocomotionTable returns the locomotion table for a habitat. Unknown land
// habitats use the plain table and unknown water habitats the sea table.
func LocomotionTable(habitat environment.HabitatContext) dice.Table[string] {
	if habitat.Zone == environment.ZoneJovian {
		return locomotionTables["Jovian"]
	}
	if t, ok := locomotionTables[habitat.Habitat]; ok {
		return t
	}
	if habitat.Zone == environment.ZoneWater {
		return locomotionTables[environment.FallbackWaterHabitat]
	}
	return locomotionTables[environment.FallbackLandHabitat]
}

func resolveLocomotion(r *dice.Roller, c Creature) string {
	modifier := 0
	switch c.TrophicLevel {
	case TrophicPouncing, TrophicChasing, TrophicOmnivore, TrophicGathering, TrophicScavenger:
		modifier++
	}
	return dice.Seek(LocomotionTable(c.Habitat), r.RollDice(2, 6, modifier))
}
