package biology

import (
	"biosphere-server/internal/dice"
)

func row(outcome string, threshold int) dice.Entry[string] {
	return dice.Entry[string]{Outcome: outcome, Threshold: threshold}
}

const (
	TrophicChemosynthetic = "Chemosynthetic"
	TrophicPhotosynthetic = "Photosynthetic"
	TrophicDecomposer     = "Decomposer"
	TrophicScavenger      = "Scavenger"
	TrophicOmnivore       = "Omnivore"
	TrophicGathering      = "Gathering Herbivore"
	TrophicGrazing        = "Grazing Herbivore"
	TrophicPouncing       = "Pouncing Carnivore"
	TrophicChasing        = "Chasing Carnivore"
	TrophicTrapping       = "Trapping Carnivore"
	TrophicHighjacking    = "Highjacking Carnivore"
	TrophicFilterFeeder   = "Filter Feeder"
	TrophicParasite       = "Parasite"
	TrophicSymbiote       = "Symbiote"
)

var trophicTable = dice.NewTable(
	row(TrophicChemosynthetic, 3),
	row(TrophicPhotosynthetic, 4),
	row(TrophicDecomposer, 5),
	row(TrophicScavenger, 6),
	row(TrophicOmnivore, 7),
	row(TrophicGathering, 9),
	row(TrophicGrazing, 11),
	row(TrophicPouncing, 12),
	row(TrophicChasing, 13),
	row(TrophicTrapping, 14),
	row(TrophicHighjacking, 15),
	row(TrophicFilterFeeder, 16),
	row(TrophicParasite, 17),
	row(TrophicSymbiote, 18),
)

const (
	LocomotionImmobile      = "immobile"
	LocomotionSlithering    = "slithering"
	LocomotionSwimming      = "swimming"
	LocomotionDigging       = "digging"
	LocomotionWalking       = "walking"
	LocomotionClimbing      = "climbing"
	LocomotionFloating      = "floating"
	LocomotionSailing       = "sailing"
	LocomotionWingedFlight  = "winged flight"
	LocomotionBuoyantFlight = "buoyant flight"
)

// locomotionTables is keyed by habitat. Gas giant layers share the "Jovian"
// table.
var locomotionTables = map[string]dice.Table[string]{
	"Arctic": dice.NewTable(
		row(LocomotionImmobile, 2), row(LocomotionSlithering, 4), row(LocomotionSwimming, 6),
		row(LocomotionDigging, 7), row(LocomotionWalking, 9), row(LocomotionWingedFlight, 11),
	),
	"Shallows": dice.NewTable(
		row(LocomotionImmobile, 3), row(LocomotionFloating, 4), row(LocomotionSailing, 5),
		row(LocomotionSwimming, 8), row(LocomotionWingedFlight, 11),
	),
	"Reef": dice.NewTable(
		row(LocomotionImmobile, 5), row(LocomotionFloating, 6), row(LocomotionDigging, 7),
		row(LocomotionWalking, 9), row(LocomotionSwimming, 13),
	),
	"Desert": dice.NewTable(
		row(LocomotionImmobile, 2), row(LocomotionSlithering, 4), row(LocomotionDigging, 5),
		row(LocomotionWalking, 8), row(LocomotionWingedFlight, 11),
	),
	"Jovian": dice.NewTable(
		row(LocomotionSwimming, 5), row(LocomotionWingedFlight, 8), row(LocomotionBuoyantFlight, 13),
	),
	"Coastal": dice.NewTable(
		row(LocomotionImmobile, 2), row(LocomotionSlithering, 4), row(LocomotionDigging, 5),
		row(LocomotionWalking, 7), row(LocomotionClimbing, 8), row(LocomotionSwimming, 9),
		row(LocomotionWingedFlight, 11),
	),
	"Lagoon": dice.NewTable(
		row(LocomotionImmobile, 4), row(LocomotionFloating, 5), row(LocomotionSlithering, 6),
		row(LocomotionWalking, 7), row(LocomotionDigging, 8), row(LocomotionSwimming, 9),
		row(LocomotionWingedFlight, 11),
	),
	"Lake": dice.NewTable(
		row(LocomotionImmobile, 3), row(LocomotionFloating, 4), row(LocomotionWalking, 5),
		row(LocomotionSlithering, 6), row(LocomotionSwimming, 9), row(LocomotionWingedFlight, 11),
	),
	"Mountain": dice.NewTable(
		row(LocomotionImmobile, 2), row(LocomotionSlithering, 4), row(LocomotionDigging, 5),
		row(LocomotionWalking, 7), row(LocomotionClimbing, 8), row(LocomotionWingedFlight, 11),
	),
	"Plain": dice.NewTable(
		row(LocomotionImmobile, 2), row(LocomotionSlithering, 4), row(LocomotionDigging, 5),
		row(LocomotionWalking, 8), row(LocomotionWingedFlight, 11),
	),
	"River": dice.NewTable(
		row(LocomotionImmobile, 3), row(LocomotionFloating, 4), row(LocomotionSlithering, 5),
		row(LocomotionDigging, 6), row(LocomotionWalking, 7), row(LocomotionSwimming, 9),
		row(LocomotionWingedFlight, 11),
	),
	"Swampland": dice.NewTable(
		row(LocomotionImmobile, 2), row(LocomotionSwimming, 5), row(LocomotionSlithering, 6),
		row(LocomotionDigging, 7), row(LocomotionWalking, 8), row(LocomotionClimbing, 9),
		row(LocomotionWingedFlight, 11),
	),
	"Woodland": dice.NewTable(
		row(LocomotionImmobile, 2), row(LocomotionSlithering, 4), row(LocomotionDigging, 5),
		row(LocomotionWalking, 7), row(LocomotionClimbing, 9), row(LocomotionWingedFlight, 11),
	),
	"Jungle": dice.NewTable(
		row(LocomotionImmobile, 2), row(LocomotionSlithering, 4), row(LocomotionDigging, 5),
		row(LocomotionWalking, 7), row(LocomotionClimbing, 9), row(LocomotionWingedFlight, 11),
	),
	"Ocean": dice.NewTable(
		row(LocomotionImmobile, 3), row(LocomotionFloating, 5), row(LocomotionSailing, 6),
		row(LocomotionSwimming, 11), row(LocomotionWingedFlight, 12),
	),
	"Deep Ocean": dice.NewTable(
		row(LocomotionImmobile, 4), row(LocomotionFloating, 6), row(LocomotionWalking, 7),
		row(LocomotionSwimming, 12),
	),
	"Sea": dice.NewTable(
		row(LocomotionImmobile, 3), row(LocomotionFloating, 4), row(LocomotionSailing, 5),
		row(LocomotionSwimming, 10), row(LocomotionWingedFlight, 12),
	),
}

const (
	SizeSmall  = "Small"
	SizeMedium = "Medium"
	SizeLarge  = "Large"
)

func sizeEntry(size float64, threshold int) dice.Entry[float64] {
	return dice.Entry[float64]{Outcome: size, Threshold: threshold}
}

// sizeTables map a 1d6 roll to a canonical size in yards.
var sizeTables = map[string]dice.Table[float64]{
	SizeSmall: dice.NewTable(
		sizeEntry(0.05, 1), sizeEntry(0.07, 2), sizeEntry(0.1, 3),
		sizeEntry(0.15, 4), sizeEntry(0.2, 5), sizeEntry(0.3, 6),
	),
	SizeMedium: dice.NewTable(
		sizeEntry(0.5, 1), sizeEntry(0.7, 2), sizeEntry(1.0, 3),
		sizeEntry(1.5, 4), sizeEntry(2.0, 5), sizeEntry(3.0, 6),
	),
	SizeLarge: dice.NewTable(
		sizeEntry(5.0, 1), sizeEntry(7.0, 2), sizeEntry(10.0, 3),
		sizeEntry(15.0, 4), sizeEntry(20.0, 5),
	),
}

var gravitySizeMultiplier = dice.Breakpoints{
	{Key: 0.1, Value: 4.6},
	{Key: 0.2, Value: 2.9},
	{Key: 0.3, Value: 2.2},
	{Key: 0.4, Value: 1.8},
	{Key: 0.5, Value: 1.6},
	{Key: 0.6, Value: 1.4},
	{Key: 0.7, Value: 1.3},
	{Key: 0.8, Value: 1.2},
	{Key: 0.9, Value: 1.1},
	{Key: 1.0, Value: 1.0},
	{Key: 1.25, Value: 0.9},
	{Key: 1.5, Value: 0.75},
	{Key: 2.0, Value: 0.6},
	{Key: 2.5, Value: 0.5},
	{Key: 3.5, Value: 0.4},
	{Key: 5.0, Value: 0.3},
}

const (
	SymmetryBilateral  = "Bilateral"
	SymmetryTrilateral = "Trilateral"
	SymmetryRadial     = "Radial"
	SymmetrySpherical  = "Spherical"
	SymmetryAsymmetric = "Asymmetric"
)

var symmetryTable = dice.NewTable(
	row(SymmetryBilateral, 7),
	row(SymmetryTrilateral, 8),
	row(SymmetryRadial, 9),
	row(SymmetrySpherical, 10),
	row(SymmetryAsymmetric, 12),
)

const (
	LimbsLimbless    = "Limbless"
	LimbsOneSegment  = "One segment"
	LimbsTwoSegments = "Two segments"
	Limbs1dSegments  = "1d segments"
	Limbs2dSegments  = "2d segments"
	Limbs3dSegments  = "3d segments"

	LimbsAsymmetric = "Irregular limbs"
	LimbsSpherical  = "One limb per side"
)

var limbTable = dice.NewTable(
	row(LimbsLimbless, 2),
	row(LimbsOneSegment, 4),
	row(LimbsTwoSegments, 7),
	row(Limbs1dSegments, 9),
	row(Limbs2dSegments, 11),
	row(Limbs3dSegments, 12),
)

const (
	SkeletonNone        = "None"
	SkeletonHydrostatic = "Hydrostatic"
	SkeletonExternal    = "External skeleton"
	SkeletonInternal    = "Internal skeleton"
	SkeletonCombination = "Combination"
)

var skeletonTable = dice.NewTable(
	row(SkeletonNone, 3),
	row(SkeletonHydrostatic, 5),
	row(SkeletonExternal, 7),
	row(SkeletonInternal, 10),
	row(SkeletonCombination, 12),
)

const (
	ManipulatorsNone       = "No manipulators"
	ManipulatorsBadGrip    = "1 set of manipulators, Bad Grip"
	ManipulatorsPrehensile = "Prehensile tail or trunk"
	ManipulatorsNormalGrip = "1 set of manipulators with normal Grip"
	ManipulatorsTwoSets    = "2 sets of manipulators"
	ManipulatorsDieSets    = "1d sets of manipulators"
	ManipulatorsDexterous  = "1d sets of manipulators with High Manual Dexterity"
)

var manipulatorTable = dice.NewTable(
	row(ManipulatorsNone, 6),
	row(ManipulatorsBadGrip, 7),
	row(ManipulatorsPrehensile, 8),
	row(ManipulatorsNormalGrip, 9),
	row(ManipulatorsTwoSets, 10),
	row(ManipulatorsDieSets, 11),
	row(ManipulatorsDexterous, 12),
)

const (
	TailNone        = "None"
	TailNoFeatures  = "No features"
	TailCombination = "Combination"
)

var tailTable = dice.NewTable(
	row(TailNoFeatures, 5),
	row("Striker tail", 6),
	row("Long tail", 7),
	row("Constricting tail", 8),
	row("Barbed striker tail", 9),
	row("Gripping tail", 10),
	row("Branching tail", 11),
	row(TailCombination, 12),
)

const (
	CoveringSkin        = "Skin"
	CoveringScales      = "Scales"
	CoveringFur         = "Fur"
	CoveringFeathers    = "Feathers"
	CoveringExoskeleton = "Exoskeleton"
)

var coveringTable = dice.NewTable(
	row(CoveringSkin, 2),
	row(CoveringScales, 3),
	row(CoveringFur, 4),
	row(CoveringFeathers, 5),
	row(CoveringExoskeleton, 6),
)

var skinTypeTables = map[string]dice.Table[string]{
	CoveringSkin: dice.NewTable(
		row("Soft skin", 4), row("Normal skin", 5), row("Hide", 7),
		row("Thick Hide", 8), row("Armor shell", 9), row("Blubber", 12),
	),
	CoveringFeathers: dice.NewTable(
		row("Normal skin", 5), row("Feathers", 8), row("Thick feathers", 10),
		row("Feathers over Hide", 11), row("Spines", 14),
	),
	CoveringExoskeleton: dice.NewTable(
		row("Light exoskeleton", 2), row("Tough exoskeleton", 4),
		row("Heavy exoskeleton", 5), row("Armor shell", 8),
	),
	CoveringScales: dice.NewTable(
		row("Normal skin", 3), row("Scales", 8), row("Heavy scales", 10), row("Armor shell", 14),
	),
	CoveringFur: dice.NewTable(
		row("Normal skin", 5), row("Fur", 7), row("Thick fur", 9),
		row("Thick fur over Hide", 11), row("Spines", 14),
	),
}

const (
	BreathingAir   = "Air-breathing"
	BreathingWater = "Water-breathing"

	RegulationWarm     = "Warm-blooded"
	RegulationVariable = "Variable"
	RegulationCold     = "Cold-blooded"
)

var growthTable = dice.NewTable(
	row("Metamorphosis", 5),
	row("Molting", 6),
	row("Continuous Growth", 11),
	row("Unusual Growth Pattern", 14),
)

const (
	SexesAsexual       = "Asexual reproduction or Parthenogenesis"
	SexesHermaphrodite = "Hermaphrodite"
	SexesTwo           = "Two Sexes"
	SexesSwitching     = "Switching between male and female"
	SexesThreeOrMore   = "Three or more Sexes"
	SexesRollTwice     = "Roll twice and combine"
)

var sexesTable = dice.NewTable(
	row(SexesAsexual, 4),
	row(SexesHermaphrodite, 5),
	row(SexesTwo, 7),
	row(SexesSwitching, 10),
	row(SexesThreeOrMore, 11),
	row(SexesRollTwice, 12),
)

const (
	GestationSpawning    = "Spawning/Pollinating"
	GestationEggLaying   = "Egg-Laying"
	GestationLiveBearing = "Live-Bearing"
	GestationPouch       = "Live-Bearing with Pouch"
	GestationReplication = "Replication"
)

var gestationTable = dice.NewTable(
	row(GestationSpawning, 6),
	row(GestationEggLaying, 7),
	row(GestationLiveBearing, 9),
	row(GestationPouch, 11),
)

var specialGestationTable = dice.NewTable(
	row("Brood Parasite", 1),
	row("Parasitic Young", 2),
	row("Cannibalistic Young (fatal to parent)", 4),
	row("Cannibalistic Young (consume each other)", 6),
)

const (
	StrategyStrongK     = "Strong K-Strategy"
	StrategyModerateK   = "Moderate K-Strategy"
	StrategyMedian      = "Median Strategy"
	StrategyModerateR   = "Moderate r-Strategy"
	StrategyStrongR     = "Strong r-Strategy"
	StrategyReplication = "Replication"
)

var strategyTable = dice.NewTable(
	row(StrategyStrongK, 4),
	row(StrategyModerateK, 6),
	row(StrategyMedian, 7),
	row(StrategyModerateR, 8),
	row(StrategyStrongR, 10),
)

const (
	SenseHearing       = "Hearing"
	SenseVision        = "Vision"
	SenseTouchAndTaste = "Touch and Taste"

	CapabilityVision  = "Vision"
	CapabilityHearing = "Hearing"
	CapabilityTouch   = "Touch"
	CapabilityTaste   = "Taste/Smell"
)

var primarySenseTable = dice.NewTable(
	row(SenseHearing, 7),
	row(SenseVision, 12),
	row(SenseTouchAndTaste, 18),
)

var visionTable = dice.NewTable(
	row("Blindness", 6),
	row("Light Sense", 7),
	row("Bad Sight and Colorblindness", 8),
	row("Bad Sight", 9),
	row("Normal Vision", 10),
	row("Telescopic Vision", 15),
)

const HearingUltrasonic = "Ultrasonic Hearing"

var hearingTable = dice.NewTable(
	row("Deafness", 6),
	row("Hard of Hearing", 7),
	row("Normal Hearing", 9),
	row("Extended Range Hearing", 11),
	row("Acute Hearing", 12),
	row("Subsonic Hearing", 13),
	row(HearingUltrasonic, 14),
)

var touchTable = dice.NewTable(
	row("Numb", 2),
	row("Poor sense of touch", 3),
	row("Human-level touch", 5),
	row("Acute Touch", 7),
	row("Sensitive to vibrations", 9),
)

var tasteTable = dice.NewTable(
	row("No Sense of Smell or Taste", 3),
	row("No Sense of Smell", 4),
	row("Normal Taste/Smell", 6),
	row("Acute Taste/Smell", 9),
	row("Discriminatory Smell/Discriminatory Taste", 11),
)

const (
	Special360Vision      = "360° Vision"
	SpecialDirection      = "Absolute Direction"
	SpecialDiscrimHearing = "Discriminatory Hearing"
	SpecialPeripheral     = "Peripheral Vision"
	SpecialNightVision    = "Night Vision"
	SpecialUltravision    = "Ultravision"
	SpecialHeat           = "Heat Sensitive"
	SpecialElectric       = "Sensitive to Electric Fields"
	SpecialBalance        = "Perfect Balance"
	SpecialSonar          = "Sonar"

	specialSenseThreshold = 11
)

var intelligenceTable = dice.NewTable(
	row("Mindless", 3),
	row("Instinctual", 4),
	row("Low Intelligence", 6),
	row("High Intelligence", 9),
	row("Presapient", 11),
)

const (
	MatingNone      = "Mating only, no pair bond"
	MatingTemporary = "Temporary pair bond"
	MatingPermanent = "Permanent pair bond"
	MatingHarem     = "Harem"
	MatingHive      = "Hive"
)

var matingTable = dice.NewTable(
	row(MatingNone, 5),
	row(MatingTemporary, 6),
	row(MatingPermanent, 8),
	row(MatingHarem, 9),
	row(MatingHive, 11),
)

const (
	SocialSolitary    = "Solitary"
	SocialPairBonded  = "Pair-bonded"
	SocialSmallGroup  = "Small group"
	SocialMediumGroup = "Medium group"
	SocialLargeHerd   = "Large Herd"
)

var socialTable = dice.NewTable(
	row(SocialSolitary, 6),
	row(SocialPairBonded, 7),
	row(SocialSmallGroup, 9),
	row(SocialMediumGroup, 11),
	row(SocialLargeHerd, 12),
)

const (
	TraitChauvinism     = "Chauvinism"
	TraitConcentration  = "Concentration"
	TraitCuriosity      = "Curiosity"
	TraitEgoism         = "Egoism"
	TraitEmpathy        = "Empathy"
	TraitGregariousness = "Gregariousness"
	TraitImagination    = "Imagination"
	TraitSuspicion      = "Suspicion"
	TraitPlayfulness    = "Playfulness"
)

// MentalTraits lists the nine traits in resolution order.
var MentalTraits = []string{
	TraitChauvinism,
	TraitConcentration,
	TraitCuriosity,
	TraitEgoism,
	TraitEmpathy,
	TraitGregariousness,
	TraitImagination,
	TraitSuspicion,
	TraitPlayfulness,
}

// mentalLabels maps each trait's score thresholds to a qualitative label.
var mentalLabels = map[string]dice.Table[string]{
	TraitCuriosity: dice.NewTable(
		row("Incurious", -2), row("Staid", -1), row("Normal", 0), row("Nosy", 1), row("Curious", 2),
	),
	TraitChauvinism: dice.NewTable(
		row("Undiscriminating", -3), row("Broad-Minded", -1), row("Normal", 0), row("Chauvinistic", 3),
	),
	TraitConcentration: dice.NewTable(
		row("Short Attention Span", -2), row("Distractible (quirk)", -1), row("Normal", 0),
		row("Attentive", 1), row("Single-Minded", 2), row("Single-Minded and High Pain Threshold", 3),
	),
	TraitEgoism: dice.NewTable(
		row("Selfless", -2), row("Humble", -1), row("Normal", 0), row("Proud", 1), row("Selfish", 2),
	),
	TraitEmpathy: dice.NewTable(
		row("Low Empathy", -3), row("Callous", -2), row("Oblivious", -1), row("Normal", 0),
		row("Responsive", 1), row("Empathetic", 2),
	),
	TraitGregariousness: dice.NewTable(
		row("Loner", -2), row("Uncongenial", -1), row("Normal", 0), row("Congenial", 1),
		row("Chummy", 2), row("Gregarious", 3),
	),
	TraitImagination: dice.NewTable(
		row("Hidebound", -2), row("Dull", -1), row("Normal", 0), row("Imaginative", 2),
	),
	TraitSuspicion: dice.NewTable(
		row("Fearless", -1), row("Normal", 0), row("Careful", 1), row("Fearful", 2),
	),
	TraitPlayfulness: dice.NewTable(
		row("No Sense of Humor", -3), row("Odious", -2), row("Serious", -1), row("Normal", 0),
		row("Playful", 1), row("Compulsive Playfulness", 2),
	),
}
