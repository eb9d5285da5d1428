package biology

import (
	"math"

	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
)

const sizeJitter = 0.05

func resolveSize(r *dice.Roller, s environment.Settings, c Creature) Size {
	roll := r.RollDice(1, 6, sizeModifier(s, c))

	category := SizeLarge
	switch {
	case roll <= 2:
		category = SizeSmall
	case roll <= 4:
		category = SizeMedium
	}

	canonical := r.Vary(dice.Seek(sizeTables[category], r.D6(1)), sizeJitter)
	multiplier := dice.Search(gravitySizeMultiplier, s.Gravity)
	size := canonical * multiplier * 3

	return Size{
		Category:              category,
		SpecificSize:          size,
		GravitySizeMultiplier: multiplier,
		WeightInPounds:        Weight(size, c.ChemicalBasis, s.Gravity),
	}
}

func sizeModifier(s environment.Settings, c Creature) int {
	modifier := 0

	switch g := s.Gravity; {
	case g <= 0.4:
		modifier += 2
	case g <= 0.75:
		modifier++
	case g >= 1.5 && g <= 2.0:
		modifier--
	case g > 2.0:
		modifier -= 2
	}

	if c.Habitat.Zone == environment.ZoneWater {
		modifier++
	}
	switch c.Habitat.Habitat {
	case "Ocean", "Shallows", "Plain":
		modifier++
	case "Lagoon", "River", "Coastal", "Desert", "Mountain":
		modifier--
	}

	switch c.TrophicLevel {
	case TrophicGrazing:
		modifier++
	case TrophicParasite:
		modifier -= 4
	}

	switch c.Locomotion {
	case LocomotionSlithering:
		modifier--
	case LocomotionWingedFlight:
		modifier -= 3
	}
	return modifier
}

// Weight is the apparent weight in pounds of a creature of the given final
// size in yards. Silicon life is twice as dense and hydrogen life a tenth.
func Weight(size float64, chemistry environment.ChemistryBasis, gravity float64) float64 {
	weight := math.Pow(size/2, 3) * 200
	switch chemistry {
	case environment.ChemistrySilicon:
		weight *= 2
	case environment.ChemistryHydrogen:
		weight /= 10
	}
	return weight * gravity
}
