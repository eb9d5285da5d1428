// Package biology resolves a creature's complete trait set. Resolvers run in
// a fixed order; each reads the environment and the trait groups resolved
// before it and returns its own group.
package biology

import (
	"biosphere-server/internal/environment"
)

// Stage names the last trait group a Creature has resolved. A group is
// valid once Stage has reached the stage that produces it.
type Stage int

const (
	StageEmpty Stage = iota
	StageClassified
	StageMobile
	StageSized
	StagePhysiology
	StageReproduction
	StageSenses
	StageBehavior
)

// StageComplete is the stage of a fully resolved creature.
const StageComplete = StageBehavior

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageClassified:
		return "classification"
	case StageMobile:
		return "locomotion"
	case StageSized:
		return "size"
	case StagePhysiology:
		return "physiology"
	case StageReproduction:
		return "reproduction"
	case StageSenses:
		return "senses"
	case StageBehavior:
		return "behavior"
	default:
		return "unknown"
	}
}

// Creature is the aggregate trait record. Names are assigned by the caller
// once every stage has run.
type Creature struct {
	Name  string
	Stage Stage

	ChemicalBasis environment.ChemistryBasis
	Habitat       environment.HabitatContext
	TrophicLevel  string
	Locomotion    string

	Size         Size
	Physiology   Physiology
	Reproduction Reproduction
	Senses       Senses
	Behavior     Behavior
}

type Size struct {
	Category              string
	SpecificSize          float64
	GravitySizeMultiplier float64
	WeightInPounds        float64
}

type Physiology struct {
	Symmetry               string
	SymmetryNumber         int
	LimbStructure          string
	ActualLimbCount        int
	Skeleton               string
	ManipulatorType        string
	ActualManipulatorCount int
	TailFeatures           string
	SkinCovering           string
	SkinType               string
	BreathingMethod        string
	TemperatureRegulation  string
	GrowthPattern          string
}

type Reproduction struct {
	Sexes                string
	Gestation            string
	SpecialGestation     string
	ReproductiveStrategy string
}

type Senses struct {
	PrimarySense string
	Capabilities map[string]string
	Special      []string
}

// HasSpecial reports whether sense was granted.
func (s Senses) HasSpecial(sense string) bool {
	for _, v := range s.Special {
		if v == sense {
			return true
		}
	}
	return false
}

type Behavior struct {
	AnimalIntelligence string
	MatingBehavior     string
	SocialOrganization string
	MentalTraits       map[string]int
}

// MentalTraitLabel returns the qualitative label for a trait's score.
func (b Behavior) MentalTraitLabel(trait string) string {
	return MentalTraitLabel(trait, b.MentalTraits[trait])
}

// Reached reports whether the creature has resolved stage.
func (c Creature) Reached(stage Stage) bool {
	return c.Stage >= stage
}

// Complete reports whether every trait group has been resolved.
func (c Creature) Complete() bool {
	return c.Stage >= StageComplete
}

// Flying covers both winged and buoyant flight.
func (c Creature) Flying() bool {
	return c.Locomotion == LocomotionWingedFlight || c.Locomotion == LocomotionBuoyantFlight
}

func (c Creature) Autotroph() bool {
	return IsAutotroph(c.TrophicLevel)
}

func IsAutotroph(trophic string) bool {
	return trophic == TrophicPhotosynthetic || trophic == TrophicChemosynthetic
}

func IsCarnivore(trophic string) bool {
	switch trophic {
	case TrophicPouncing, TrophicChasing, TrophicTrapping, TrophicHighjacking:
		return true
	}
	return false
}

func IsHerbivore(trophic string) bool {
	return trophic == TrophicGathering || trophic == TrophicGrazing
}
