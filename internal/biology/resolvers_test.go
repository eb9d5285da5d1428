package biology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
)

func scripted(faces ...int) *dice.Roller {
	return dice.New(dice.NewScript(faces...))
}

var (
	plain = environment.HabitatContext{Habitat: "Plain", Zone: environment.ZoneLand}
	reef  = environment.HabitatContext{Habitat: "Reef", Zone: environment.ZoneWater}
)

func walker() Creature {
	return Creature{
		Habitat:       plain,
		ChemicalBasis: environment.ChemistryCarbon,
		TrophicLevel:  TrophicOmnivore,
		Locomotion:    LocomotionWalking,
		Size:          Size{Category: SizeMedium},
	}
}

func TestSizeResolution(t *testing.T) {
	s := environment.DefaultSettings()

	size := resolveSize(scripted(6, 3), s, walker())
	assert.Equal(t, SizeLarge, size.Category)
	assert.Equal(t, 1.0, size.GravitySizeMultiplier)
	assert.InDelta(t, 30.0, size.SpecificSize, 1e-6)
	assert.InDelta(t, 675000.0, size.WeightInPounds, 1e-3)

	flyer := walker()
	flyer.TrophicLevel = TrophicParasite
	flyer.Locomotion = LocomotionWingedFlight
	assert.Equal(t, SizeSmall, resolveSize(scripted(6, 1), s, flyer).Category)
}

func TestSizeUsesGravityMultiplier(t *testing.T) {
	s := environment.DefaultSettings()
	s.Gravity = 0.1
	size := resolveSize(scripted(3, 3), s, walker())
	assert.Equal(t, 4.6, size.GravitySizeMultiplier)
}

func TestWeightIncreasesWithSize(t *testing.T) {
	for _, chem := range environment.Chemistries() {
		for _, g := range []float64{0.1, 1, 2.5, 9} {
			prev := 0.0
			for size := 0.05; size < 100; size *= 1.3 {
				w := Weight(size, chem, g)
				require.Greater(t, w, prev, "chemistry %s gravity %.1f size %.2f", chem, g, size)
				prev = w
			}
		}
	}
	assert.InDelta(t, 2*Weight(3, environment.ChemistryCarbon, 1), Weight(3, environment.ChemistrySilicon, 1), 1e-9)
	assert.InDelta(t, Weight(3, environment.ChemistryCarbon, 1)/10, Weight(3, environment.ChemistryHydrogen, 1), 1e-9)
}

func TestSymmetry(t *testing.T) {
	symmetry, sides := resolveSymmetry(scripted(5, 5, 6), walker())
	assert.Equal(t, SymmetrySpherical, symmetry)
	assert.Equal(t, 20, sides)

	symmetry, sides = resolveSymmetry(scripted(3, 3, 4), walker())
	assert.Equal(t, SymmetryBilateral, symmetry)
	assert.Equal(t, 2, sides)

	jovian := walker()
	jovian.Habitat = environment.HabitatContext{Habitat: "Tidal", Zone: environment.ZoneJovian}
	symmetry, _ = resolveSymmetry(scripted(6, 5), jovian)
	assert.Equal(t, SymmetryAsymmetric, symmetry)

	symmetry, sides = resolveSymmetry(scripted(4, 5, 2), walker())
	assert.Equal(t, SymmetryRadial, symmetry)
	assert.Equal(t, 5, sides)
}

func TestSphericalSides(t *testing.T) {
	assert.Equal(t, 4, sphericalSides(1))
	assert.Equal(t, 6, sphericalSides(2))
	assert.Equal(t, 6, sphericalSides(3))
	assert.Equal(t, 8, sphericalSides(4))
	assert.Equal(t, 12, sphericalSides(5))
	assert.Equal(t, 20, sphericalSides(6))
}

func TestLimbs(t *testing.T) {
	structure, limbs := resolveLimbs(scripted(3, 4), Physiology{Symmetry: SymmetryBilateral, SymmetryNumber: 2})
	assert.Equal(t, LimbsTwoSegments, structure)
	assert.Equal(t, 4, limbs)

	structure, limbs = resolveLimbs(scripted(6, 6, 2, 3), Physiology{Symmetry: SymmetryRadial, SymmetryNumber: 5})
	assert.Equal(t, Limbs2dSegments, structure)
	assert.Equal(t, 25, limbs)

	_, limbs = resolveLimbs(scripted(1, 1), Physiology{Symmetry: SymmetryAsymmetric})
	assert.Equal(t, 0, limbs)

	structure, limbs = resolveLimbs(scripted(1), Physiology{Symmetry: SymmetrySpherical, SymmetryNumber: 12})
	assert.Equal(t, LimbsSpherical, structure)
	assert.Equal(t, 12, limbs)

	structure, limbs = resolveLimbs(scripted(1, 1), Physiology{Symmetry: SymmetryBilateral, SymmetryNumber: 2})
	assert.Equal(t, LimbsLimbless, structure)
	assert.Equal(t, 0, limbs)
}

func TestManipulatorsClampedToLimbs(t *testing.T) {
	p := Physiology{Symmetry: SymmetryBilateral, SymmetryNumber: 2, ActualLimbCount: 2}
	kind, count := resolveManipulators(scripted(6, 6, 6), walker(), p)
	assert.Equal(t, ManipulatorsDieSets, kind)
	assert.Equal(t, 2, count)
}

func TestManipulatorsNeedLimbs(t *testing.T) {
	kind, count := resolveManipulators(scripted(6), walker(), Physiology{Symmetry: SymmetryBilateral, SymmetryNumber: 2})
	assert.Equal(t, ManipulatorsNone, kind)
	assert.Equal(t, 0, count)
}

func TestPrehensileExtraRoll(t *testing.T) {
	p := Physiology{Symmetry: SymmetryBilateral, SymmetryNumber: 2, ActualLimbCount: 4}
	kind, count := resolveManipulators(scripted(4, 4, 6, 5, 5), walker(), p)
	assert.Equal(t, ManipulatorsPrehensile+" and "+ManipulatorsTwoSets, kind)
	assert.Equal(t, 4, count)

	kind, count = resolveManipulators(scripted(4, 4, 2), walker(), p)
	assert.Equal(t, ManipulatorsPrehensile, kind)
	assert.Equal(t, 1, count)
}

func TestTail(t *testing.T) {
	bilateral := Physiology{Symmetry: SymmetryBilateral, SymmetryNumber: 2}

	assert.Equal(t, "Striker tail, Long tail", resolveTail(scripted(5, 6, 6, 1, 2), walker(), bilateral))
	assert.Equal(t, "Constricting tail", resolveTail(scripted(5, 6, 6, 3, 3), walker(), bilateral))
	assert.Equal(t, TailNone, resolveTail(scripted(4), walker(), bilateral))

	swimmer := walker()
	swimmer.Locomotion = LocomotionSwimming
	assert.Equal(t, "Long tail", resolveTail(scripted(4, 3, 4), swimmer, bilateral))

	assert.Equal(t, TailNone, resolveTail(scripted(6, 6, 6), walker(), Physiology{Symmetry: SymmetrySpherical, SymmetryNumber: 6}))
}

func TestExternalSkeletonForcesExoskeleton(t *testing.T) {
	covering, skin := resolveSkin(scripted(1, 3, 3), walker(), Physiology{Skeleton: SkeletonExternal})
	assert.Equal(t, CoveringExoskeleton, covering)
	assert.Equal(t, "Tough exoskeleton", skin)

	covering, _ = resolveSkin(scripted(1, 3, 3), walker(), Physiology{Skeleton: SkeletonInternal})
	assert.Equal(t, CoveringSkin, covering)
}

func TestBreathing(t *testing.T) {
	assert.Equal(t, BreathingAir, resolveBreathing(scripted(1), walker()))

	deep := walker()
	deep.Habitat = environment.HabitatContext{Habitat: "Deep Ocean", Zone: environment.ZoneWater}
	deep.Locomotion = LocomotionSwimming
	assert.Equal(t, BreathingWater, resolveBreathing(scripted(6), deep))

	sailor := walker()
	sailor.Habitat = environment.HabitatContext{Habitat: "Shallows", Zone: environment.ZoneWater}
	sailor.Locomotion = LocomotionSailing
	assert.Equal(t, BreathingAir, resolveBreathing(scripted(3, 3), sailor))

	swimmer := walker()
	swimmer.Habitat = reef
	swimmer.Locomotion = LocomotionSwimming
	assert.Equal(t, BreathingWater, resolveBreathing(scripted(3, 3), swimmer))
}

func TestTemperatureRegulation(t *testing.T) {
	s := environment.DefaultSettings()
	assert.Equal(t, RegulationWarm, resolveRegulation(scripted(5, 5), s, walker()))
	assert.Equal(t, RegulationVariable, resolveRegulation(scripted(3, 4), s, walker()))
	assert.Equal(t, RegulationCold, resolveRegulation(scripted(3, 3), s, walker()))
}

func TestSexesRollTwiceCombines(t *testing.T) {
	assert.Equal(t, SexesAsexual+" / "+SexesTwo, resolveSexes(scripted(6, 6, 1, 1, 3, 4), walker()))
	assert.Equal(t, SexesTwo, resolveSexes(scripted(6, 6, 3, 4, 4, 3), walker()))
}

func TestGestation(t *testing.T) {
	assert.Equal(t, GestationSpawning, resolveGestation(scripted(3, 3), walker()))

	warm := walker()
	warm.Physiology.TemperatureRegulation = RegulationWarm
	assert.Equal(t, GestationEggLaying, resolveGestation(scripted(3, 3), warm))
}

func TestSpecialGestationOnlyOnTwelve(t *testing.T) {
	assert.Equal(t, "Cannibalistic Young (fatal to parent)", resolveSpecialGestation(scripted(6, 6, 3)))
	assert.Equal(t, "", resolveSpecialGestation(scripted(6, 5)))
}

func TestPrimarySense(t *testing.T) {
	swimmer := walker()
	swimmer.Habitat = reef
	assert.Equal(t, SenseTouchAndTaste, resolvePrimarySense(scripted(6, 6, 6), swimmer))
	assert.Equal(t, SenseHearing, resolvePrimarySense(scripted(2, 2, 2), swimmer))
	assert.Equal(t, SenseVision, resolvePrimarySense(scripted(3, 3, 4), walker()))
}

func TestHearingCompensatesForBlindness(t *testing.T) {
	c := walker()
	assert.Equal(t, "Normal Hearing", resolveHearing(scripted(2, 3, 3), c, "Normal Vision"))
	assert.Equal(t, "Extended Range Hearing", resolveHearing(scripted(2, 3, 3), c, "Blindness"))
}

func TestSpecialSensesRespectViability(t *testing.T) {
	c := walker()
	c.Habitat = reef
	c.Senses.Capabilities = map[string]string{CapabilityHearing: "Normal Hearing"}

	got := resolveSpecialSenses(scripted(6), environment.DefaultSettings(), c)
	assert.Equal(t, []string{
		Special360Vision,
		SpecialDirection,
		SpecialDiscrimHearing,
		SpecialPeripheral,
		SpecialNightVision,
		SpecialElectric,
	}, got)
}

func TestUltrasonicHearingGrantsSonar(t *testing.T) {
	c := walker()
	c.Senses.Capabilities = map[string]string{CapabilityHearing: HearingUltrasonic}

	got := resolveSpecialSenses(scripted(1), environment.DefaultSettings(), c)
	assert.Equal(t, []string{SpecialSonar}, got)
}

func TestAmmoniaLifeLacksUltravision(t *testing.T) {
	c := walker()
	c.ChemicalBasis = environment.ChemistryAmmonia
	c.Senses.Capabilities = map[string]string{CapabilityHearing: "Normal Hearing"}

	got := resolveSpecialSenses(scripted(6), environment.DefaultSettings(), c)
	assert.NotContains(t, got, SpecialUltravision)
	assert.Contains(t, got, SpecialBalance)
	assert.Contains(t, got, SpecialHeat)
}

func TestBehaviorChain(t *testing.T) {
	c := walker()
	c.TrophicLevel = TrophicGrazing
	c.Size.Category = SizeLarge
	c.Reproduction = Reproduction{Sexes: SexesTwo, Gestation: GestationEggLaying, ReproductiveStrategy: StrategyMedian}

	b := resolveBehavior(scripted(6), c)
	assert.Equal(t, "Presapient", b.AnimalIntelligence)
	assert.Equal(t, MatingHive, b.MatingBehavior)
	assert.Equal(t, SocialLargeHerd, b.SocialOrganization)

	require.Len(t, b.MentalTraits, 9)
	assert.Equal(t, 1, b.MentalTraits[TraitGregariousness])
	assert.Equal(t, 1, b.MentalTraits[TraitChauvinism])
	assert.Equal(t, -1, b.MentalTraits[TraitCuriosity])
	assert.Equal(t, "Staid", b.MentalTraitLabel(TraitCuriosity))
}

func TestMentalTraitLabel(t *testing.T) {
	cases := []struct {
		trait string
		score int
		want  string
	}{
		{TraitCuriosity, 2, "Curious"},
		{TraitCuriosity, 5, "Curious"},
		{TraitCuriosity, 1, "Nosy"},
		{TraitCuriosity, 0, "Normal"},
		{TraitCuriosity, -1, "Staid"},
		{TraitCuriosity, -4, "Incurious"},
		{TraitChauvinism, 2, "Normal"},
		{TraitChauvinism, 3, "Chauvinistic"},
		{TraitChauvinism, -2, "Broad-Minded"},
		{TraitChauvinism, -3, "Undiscriminating"},
		{TraitImagination, 1, "Normal"},
		{TraitSuspicion, -5, "Fearless"},
		{"Stubbornness", 2, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MentalTraitLabel(tc.trait, tc.score), "%s %d", tc.trait, tc.score)
	}
}

func TestLocomotionTableFallbacks(t *testing.T) {
	assert.Equal(t, locomotionTables["Jovian"], LocomotionTable(environment.HabitatContext{Habitat: "Tidal", Zone: environment.ZoneJovian}))
	assert.Equal(t, locomotionTables["Sea"], LocomotionTable(environment.HabitatContext{Habitat: "Fjord", Zone: environment.ZoneWater}))
	assert.Equal(t, locomotionTables["Plain"], LocomotionTable(environment.HabitatContext{Habitat: "Tundra", Zone: environment.ZoneLand}))

	for _, zone := range []environment.Zone{environment.ZoneLand, environment.ZoneWater} {
		for _, h := range environment.HabitatTable(zone).Outcomes() {
			_, ok := locomotionTables[h]
			assert.True(t, ok, "missing locomotion table for %s", h)
		}
	}
}
