package biology

import (
	"strings"

	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
)

// resolvePhysiology runs the body-plan sub-steps in order; each reads the
// fields set before it.
func resolvePhysiology(r *dice.Roller, s environment.Settings, c Creature) Physiology {
	var p Physiology

	p.Symmetry, p.SymmetryNumber = resolveSymmetry(r, c)
	p.LimbStructure, p.ActualLimbCount = resolveLimbs(r, p)
	p.Skeleton = resolveSkeleton(r, c, p)
	p.ManipulatorType, p.ActualManipulatorCount = resolveManipulators(r, c, p)
	p.TailFeatures = resolveTail(r, c, p)
	p.SkinCovering, p.SkinType = resolveSkin(r, c, p)
	p.BreathingMethod = resolveBreathing(r, c)
	p.TemperatureRegulation = resolveRegulation(r, s, c)
	p.GrowthPattern = resolveGrowth(r, c, p)
	return p
}

func resolveSymmetry(r *dice.Roller, c Creature) (string, int) {
	modifier := 0
	if c.Habitat.Zone == environment.ZoneJovian {
		modifier++
	}
	symmetry := dice.Seek(symmetryTable, r.RollDice(2, 6, modifier))

	switch symmetry {
	case SymmetryBilateral:
		return symmetry, 2
	case SymmetryTrilateral:
		return symmetry, 3
	case SymmetryRadial:
		return symmetry, r.RollDice(1, 6, 3)
	case SymmetrySpherical:
		return symmetry, sphericalSides(r.D6(1))
	default:
		return symmetry, 0
	}
}

func sphericalSides(roll int) int {
	switch {
	case roll <= 1:
		return 4
	case roll <= 3:
		return 6
	case roll == 4:
		return 8
	case roll == 5:
		return 12
	default:
		return 20
	}
}

// sideMultiplier is the number of limbs or manipulators one segment or set
// contributes.
func sideMultiplier(p Physiology) int {
	switch p.Symmetry {
	case SymmetryBilateral, SymmetryTrilateral, SymmetryRadial:
		return p.SymmetryNumber
	default:
		return 1
	}
}

func resolveLimbs(r *dice.Roller, p Physiology) (string, int) {
	switch p.Symmetry {
	case SymmetryAsymmetric:
		return LimbsAsymmetric, max(0, r.RollDice(2, 6, -2))
	case SymmetrySpherical:
		return LimbsSpherical, p.SymmetryNumber
	}

	modifier := 0
	switch p.Symmetry {
	case SymmetryTrilateral:
		modifier = -1
	case SymmetryRadial:
		modifier = -2
	}
	structure := dice.Seek(limbTable, r.RollDice(2, 6, modifier))

	segments := 0
	switch structure {
	case LimbsOneSegment:
		segments = 1
	case LimbsTwoSegments:
		segments = 2
	case Limbs1dSegments:
		segments = r.D6(1)
	case Limbs2dSegments:
		segments = r.D6(2)
	case Limbs3dSegments:
		segments = r.D6(3)
	}
	return structure, sideMultiplier(p) * segments
}

func resolveSkeleton(r *dice.Roller, c Creature, p Physiology) string {
	modifier := 0
	switch c.Size.Category {
	case SizeMedium:
		modifier++
	case SizeLarge:
		modifier += 2
	}
	if c.Habitat.Zone == environment.ZoneLand {
		modifier++
	}
	if p.Symmetry == SymmetryAsymmetric {
		modifier--
	}
	return dice.Seek(skeletonTable, r.RollDice(2, 6, modifier))
}

// resolveManipulators never returns more manipulators than limbs.
func resolveManipulators(r *dice.Roller, c Creature, p Physiology) (string, int) {
	if p.ActualLimbCount == 0 {
		return ManipulatorsNone, 0
	}

	modifier := manipulatorModifier(c, p)
	kind, sets := rollManipulators(r, modifier)

	if kind == ManipulatorsPrehensile && r.Chance() {
		extra, extraSets := rollManipulators(r, modifier)
		if extra != ManipulatorsNone && extra != ManipulatorsPrehensile {
			return kind + " and " + extra, min(p.ActualLimbCount, sets+extraSets*sideMultiplier(p))
		}
	}

	count := sets * sideMultiplier(p)
	if kind == ManipulatorsPrehensile {
		count = sets
	}
	return kind, min(p.ActualLimbCount, count)
}

func manipulatorModifier(c Creature, p Physiology) int {
	modifier := 0
	switch {
	case p.ActualLimbCount == 2:
		modifier--
	case p.ActualLimbCount > 6:
		modifier += 2
	case p.ActualLimbCount > 4:
		modifier++
	}
	switch {
	case c.Flying():
		modifier--
	case c.Locomotion == LocomotionSwimming:
		modifier -= 2
	case c.Locomotion == LocomotionClimbing:
		modifier++
	}
	if c.TrophicLevel == TrophicGathering {
		modifier++
	}
	return modifier
}

func rollManipulators(r *dice.Roller, modifier int) (string, int) {
	kind := dice.Seek(manipulatorTable, r.RollDice(2, 6, modifier))
	switch kind {
	case ManipulatorsNone:
		return kind, 0
	case ManipulatorsTwoSets:
		return kind, 2
	case ManipulatorsDieSets, ManipulatorsDexterous:
		return kind, r.D6(1)
	default:
		return kind, 1
	}
}

// resolveTail is skipped for spherical bodies. Otherwise a tail grows on 5+
// on 1d, swimmers getting +1.
func resolveTail(r *dice.Roller, c Creature, p Physiology) string {
	if p.Symmetry == SymmetrySpherical {
		return TailNone
	}
	modifier := 0
	if c.Locomotion == LocomotionSwimming {
		modifier++
	}
	if r.RollDice(1, 6, modifier) < 5 {
		return TailNone
	}

	feature := dice.Seek(tailTable, r.D6(2))
	if feature != TailCombination {
		return feature
	}

	var features []string
	for i := 0; i < 2; i++ {
		f := dice.Seek(tailTable, r.RollDice(1, 6, 5))
		if f == TailCombination || f == TailNoFeatures {
			continue
		}
		if len(features) == 0 || features[0] != f {
			features = append(features, f)
		}
	}
	if len(features) == 0 {
		return TailNoFeatures
	}
	return strings.Join(features, ", ")
}

// resolveSkin forces an exoskeleton covering onto external skeletons.
func resolveSkin(r *dice.Roller, c Creature, p Physiology) (string, string) {
	covering := dice.Seek(coveringTable, r.D6(1))
	if p.Skeleton == SkeletonExternal {
		covering = CoveringExoskeleton
	}

	modifier := 0
	switch c.Habitat.Habitat {
	case "Arctic":
		modifier++
	case "Desert":
		modifier--
	}
	if c.Habitat.Zone == environment.ZoneWater {
		modifier++
	}
	modifier += coveringModifier(covering, c)

	return covering, dice.Seek(skinTypeTables[covering], r.RollDice(2, 6, modifier))
}

func coveringModifier(covering string, c Creature) int {
	switch covering {
	case CoveringSkin:
		if c.Size.Category == SizeLarge {
			return 1
		}
	case CoveringScales:
		if c.Habitat.Habitat == "Desert" {
			return 2
		}
	case CoveringFur:
		switch c.Habitat.Habitat {
		case "Arctic":
			return 2
		case "Desert", "Jungle":
			return -2
		}
	case CoveringFeathers:
		if c.Locomotion == LocomotionWingedFlight {
			return 1
		}
	case CoveringExoskeleton:
		modifier := -3
		if c.Size.Category == SizeLarge {
			modifier++
		}
		return modifier
	}
	return 0
}

func resolveBreathing(r *dice.Roller, c Creature) string {
	zone := c.Habitat.Zone
	if zone == environment.ZoneLand || zone == environment.ZoneJovian || c.Flying() {
		return BreathingAir
	}
	if c.Habitat.Habitat == "Deep Ocean" {
		return BreathingWater
	}

	modifier := 0
	switch c.Habitat.Habitat {
	case "Shallows":
		modifier += 2
	case "Reef", "Lagoon":
		modifier++
	case "Ocean", "Sea":
		modifier--
	}
	switch c.Locomotion {
	case LocomotionFloating:
		modifier += 2
	case LocomotionSailing:
		modifier += 3
	case LocomotionWalking:
		modifier++
	case LocomotionSwimming:
		modifier--
	}

	if r.RollDice(2, 6, modifier) >= 8 {
		return BreathingAir
	}
	return BreathingWater
}

func resolveRegulation(r *dice.Roller, s environment.Settings, c Creature) string {
	modifier := 0
	if c.Habitat.Habitat == "Arctic" {
		modifier += 2
	}
	switch c.Size.Category {
	case SizeLarge:
		modifier++
	case SizeSmall:
		modifier--
	}
	if c.Flying() {
		modifier++
	}
	if c.Habitat.Zone == environment.ZoneWater {
		modifier--
	}
	switch c.ChemicalBasis {
	case environment.ChemistryHydrogen, environment.ChemistryAmmonia:
		modifier -= 2
	}
	if s.Temperature < 250 {
		modifier++
	}

	switch roll := r.RollDice(2, 6, modifier); {
	case roll >= 10:
		return RegulationWarm
	case roll >= 7:
		return RegulationVariable
	default:
		return RegulationCold
	}
}

func resolveGrowth(r *dice.Roller, c Creature, p Physiology) string {
	modifier := 0
	if p.Skeleton == SkeletonExternal {
		modifier--
	}
	if c.Size.Category == SizeLarge {
		modifier++
	}
	if c.Locomotion == LocomotionImmobile {
		modifier++
	}
	return dice.Seek(growthTable, r.RollDice(2, 6, modifier))
}
