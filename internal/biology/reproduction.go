package biology

import (
	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
)

// machineReproduction is the fixed profile of machine life.
var machineReproduction = Reproduction{
	Sexes:                SexesAsexual,
	Gestation:            GestationReplication,
	ReproductiveStrategy: StrategyReplication,
}

func resolveReproduction(r *dice.Roller, c Creature) Reproduction {
	if c.ChemicalBasis == environment.ChemistryMachine {
		return machineReproduction
	}

	var rep Reproduction
	rep.Sexes = resolveSexes(r, c)
	rep.Gestation = resolveGestation(r, c)
	rep.SpecialGestation = resolveSpecialGestation(r)
	rep.ReproductiveStrategy = resolveStrategy(r, c, rep)
	return rep
}

func resolveSexes(r *dice.Roller, c Creature) string {
	modifier := 0
	if c.Locomotion == LocomotionImmobile {
		modifier--
	}
	if c.Physiology.Symmetry == SymmetryAsymmetric {
		modifier--
	}
	if c.Autotroph() {
		modifier--
	}

	sexes := dice.Seek(sexesTable, r.RollDice(2, 6, modifier))
	if sexes != SexesRollTwice {
		return sexes
	}

	// Both rerolls stop short of the combine row.
	first := dice.Seek(sexesTable, r.RollClamped(2, 6, modifier, 2, 11))
	second := dice.Seek(sexesTable, r.RollClamped(2, 6, modifier, 2, 11))
	if first == second {
		return first
	}
	return first + " / " + second
}

func resolveGestation(r *dice.Roller, c Creature) string {
	modifier := 0
	switch c.Locomotion {
	case LocomotionSwimming, LocomotionFloating:
		modifier--
	case LocomotionImmobile:
		modifier -= 2
	}
	if c.Habitat.Zone == environment.ZoneWater {
		modifier--
	}
	if c.Physiology.TemperatureRegulation == RegulationWarm {
		modifier++
	}
	return dice.Seek(gestationTable, r.RollDice(2, 6, modifier))
}

// resolveSpecialGestation grants a special gestation on a natural 12. An
// empty result means none.
func resolveSpecialGestation(r *dice.Roller) string {
	if r.D6(2) != 12 {
		return ""
	}
	return dice.Seek(specialGestationTable, r.D6(1))
}

func resolveStrategy(r *dice.Roller, c Creature, rep Reproduction) string {
	modifier := 0
	switch c.Size.Category {
	case SizeLarge:
		modifier -= 2
	case SizeSmall:
		modifier++
	}
	if rep.Gestation == GestationSpawning {
		modifier += 2
	}
	return dice.Seek(strategyTable, r.RollDice(2, 6, modifier))
}
