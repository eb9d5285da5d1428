package biology

import (
	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
)

const primarySenseBonus = 4

func resolveSenses(r *dice.Roller, s environment.Settings, c Creature) Senses {
	senses := Senses{PrimarySense: resolvePrimarySense(r, c)}
	c.Senses = senses

	caps := make(map[string]string, 4)
	caps[CapabilityVision] = resolveVision(r, c)
	caps[CapabilityHearing] = resolveHearing(r, c, caps[CapabilityVision])
	caps[CapabilityTouch] = resolveTouch(r, c, caps[CapabilityVision])
	caps[CapabilityTaste] = resolveTaste(r, c)
	senses.Capabilities = caps

	c.Senses = senses
	senses.Special = resolveSpecialSenses(r, s, c)
	return senses
}

func resolvePrimarySense(r *dice.Roller, c Creature) string {
	modifier := 0
	if c.Habitat.Zone == environment.ZoneWater {
		modifier -= 2
	}
	if c.Autotroph() {
		modifier += 2
	}
	return dice.Seek(primarySenseTable, r.RollDice(3, 6, modifier))
}

func primaryBonus(c Creature, sense string) int {
	if c.Senses.PrimarySense == sense {
		return primarySenseBonus
	}
	return 0
}

func poorVision(vision string) bool {
	return vision == "Blindness" || vision == "Light Sense"
}

func badSight(vision string) bool {
	return vision == "Bad Sight and Colorblindness" || vision == "Bad Sight"
}

func resolveVision(r *dice.Roller, c Creature) string {
	modifier := primaryBonus(c, SenseVision)
	switch c.Locomotion {
	case LocomotionDigging, LocomotionImmobile:
		modifier -= 4
	case LocomotionClimbing:
		modifier += 2
	case LocomotionWingedFlight:
		modifier += 3
	}
	if c.Habitat.Habitat == "Deep Ocean" {
		modifier -= 4
	}
	if c.TrophicLevel == TrophicFilterFeeder {
		modifier -= 2
	}
	if IsCarnivore(c.TrophicLevel) || c.TrophicLevel == TrophicGathering {
		modifier += 2
	}
	return dice.Seek(visionTable, r.RollDice(3, 6, modifier))
}

// resolveHearing compensates for weak eyes.
func resolveHearing(r *dice.Roller, c Creature, vision string) string {
	modifier := primaryBonus(c, SenseHearing)
	switch {
	case poorVision(vision):
		modifier += 2
	case badSight(vision):
		modifier++
	}
	if c.Habitat.Zone == environment.ZoneWater {
		modifier++
	}
	if c.Locomotion == LocomotionImmobile {
		modifier -= 4
	}
	return dice.Seek(hearingTable, r.RollDice(3, 6, modifier))
}

func resolveTouch(r *dice.Roller, c Creature, vision string) string {
	modifier := primaryBonus(c, SenseTouchAndTaste)
	if c.Physiology.Skeleton == SkeletonExternal {
		modifier -= 2
	}
	if c.Habitat.Zone == environment.ZoneWater {
		modifier += 2
	}
	switch c.Locomotion {
	case LocomotionDigging:
		modifier += 2
	case LocomotionWingedFlight:
		modifier -= 2
	}
	if poorVision(vision) {
		modifier += 2
	}
	if c.TrophicLevel == TrophicTrapping {
		modifier++
	}
	if c.Size.Category == SizeSmall {
		modifier++
	}
	return dice.Seek(touchTable, r.RollDice(2, 6, modifier))
}

func resolveTaste(r *dice.Roller, c Creature) string {
	modifier := primaryBonus(c, SenseTouchAndTaste)
	switch c.TrophicLevel {
	case TrophicChasing, TrophicGathering:
		modifier += 2
	case TrophicFilterFeeder, TrophicPhotosynthetic, TrophicChemosynthetic, TrophicTrapping:
		modifier -= 2
	}
	if c.Reproduction.Sexes != SexesAsexual {
		modifier += 2
	}
	if c.Locomotion == LocomotionImmobile {
		modifier -= 4
	}
	return dice.Seek(tasteTable, r.RollDice(2, 6, modifier))
}

// specialSense is rolled only when viable holds; it is granted on 11+.
type specialSense struct {
	name     string
	viable   func(environment.Settings, Creature) bool
	modifier func(environment.Settings, Creature) int
}

func always(environment.Settings, Creature) bool { return true }

func openPlains(c Creature) bool {
	return c.Habitat.Habitat == "Plain" || c.Habitat.Habitat == "Desert"
}

var specialSenses = []specialSense{
	{
		name:   Special360Vision,
		viable: always,
		modifier: func(_ environment.Settings, c Creature) int {
			m := 0
			if openPlains(c) {
				m++
			}
			if IsHerbivore(c.TrophicLevel) {
				m++
			}
			if c.Physiology.Symmetry == SymmetryRadial || c.Physiology.Symmetry == SymmetrySpherical {
				m++
			}
			return m
		},
	},
	{
		name:   SpecialDirection,
		viable: always,
		modifier: func(_ environment.Settings, c Creature) int {
			m := 0
			if c.Habitat.Habitat == "Ocean" {
				m++
			}
			if c.Locomotion == LocomotionWingedFlight || c.Locomotion == LocomotionDigging {
				m++
			}
			return m
		},
	},
	{
		name:   SpecialDiscrimHearing,
		viable: always,
		modifier: func(_ environment.Settings, c Creature) int {
			if c.Senses.Capabilities[CapabilityHearing] == HearingUltrasonic {
				return 2
			}
			return 0
		},
	},
	{
		name:   SpecialPeripheral,
		viable: always,
		modifier: func(_ environment.Settings, c Creature) int {
			m := 0
			if openPlains(c) {
				m++
			}
			if IsHerbivore(c.TrophicLevel) {
				m += 2
			}
			return m
		},
	},
	{
		name:   SpecialNightVision,
		viable: always,
		modifier: func(_ environment.Settings, c Creature) int {
			m := 0
			if c.Habitat.Zone == environment.ZoneWater {
				m += 2
			}
			if IsCarnivore(c.TrophicLevel) {
				m += 2
			}
			return m
		},
	},
	{
		name: SpecialUltravision,
		viable: func(_ environment.Settings, c Creature) bool {
			return c.Habitat.Zone != environment.ZoneWater && c.ChemicalBasis != environment.ChemistryAmmonia
		},
		modifier: func(environment.Settings, Creature) int { return 0 },
	},
	{
		name: SpecialHeat,
		viable: func(_ environment.Settings, c Creature) bool {
			return c.Habitat.Zone != environment.ZoneWater
		},
		modifier: func(_ environment.Settings, c Creature) int {
			m := 0
			if IsCarnivore(c.TrophicLevel) {
				m++
			}
			if c.Habitat.Habitat == "Arctic" {
				m++
			}
			return m
		},
	},
	{
		name: SpecialElectric,
		viable: func(_ environment.Settings, c Creature) bool {
			return c.Habitat.Zone == environment.ZoneWater
		},
		modifier: func(_ environment.Settings, c Creature) int {
			if IsCarnivore(c.TrophicLevel) {
				return 1
			}
			return 0
		},
	},
	{
		name: SpecialBalance,
		viable: func(_ environment.Settings, c Creature) bool {
			return c.Habitat.Zone == environment.ZoneLand
		},
		modifier: func(s environment.Settings, c Creature) int {
			m := 0
			if c.Locomotion == LocomotionClimbing {
				m += 2
			}
			if c.Habitat.Habitat == "Mountain" {
				m++
			}
			if s.Gravity <= 0.5 {
				m--
			}
			if s.Gravity >= 1.5 {
				m++
			}
			return m
		},
	},
}

// resolveSpecialSenses returns granted senses in table order. Ultrasonic
// hearing always brings sonar with it.
func resolveSpecialSenses(r *dice.Roller, s environment.Settings, c Creature) []string {
	granted := []string{}
	for _, sense := range specialSenses {
		if !sense.viable(s, c) {
			continue
		}
		if r.RollDice(2, 6, sense.modifier(s, c)) >= specialSenseThreshold {
			granted = append(granted, sense.name)
		}
	}
	if c.Senses.Capabilities[CapabilityHearing] == HearingUltrasonic {
		granted = append(granted, SpecialSonar)
	}
	return granted
}
