package biology

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
	"biosphere-server/internal/shared/errors"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func presetSettings(t *testing.T, p environment.PlanetType) environment.Settings {
	t.Helper()
	s, ok := environment.Preset(p)
	require.True(t, ok)
	return s
}

func TestGeneratedCreaturesHoldInvariants(t *testing.T) {
	worlds := []environment.Settings{
		environment.DefaultSettings(),
		presetSettings(t, environment.PlanetJovian),
		presetSettings(t, environment.PlanetOceanic),
		presetSettings(t, environment.PlanetArid),
		presetSettings(t, environment.PlanetSnowball),
		{Temperature: 300, Hydrology: 60, Gravity: 0.3, LandMasses: 2},
	}

	for wi, s := range worlds {
		roller := dice.NewRoller(int64(1000 + wi))
		habitats := environment.NewResolver(roller, quietLogger())
		pipeline := NewPipeline(roller, quietLogger())

		for i := 0; i < 300; i++ {
			c, err := pipeline.Run(s, habitats.Resolve(s, ""))
			require.NoError(t, err)
			require.True(t, c.Complete())

			p := c.Physiology
			require.LessOrEqual(t, p.ActualManipulatorCount, p.ActualLimbCount, "%+v", p)
			require.GreaterOrEqual(t, p.ActualManipulatorCount, 0)
			if p.Symmetry == SymmetrySpherical {
				require.Equal(t, TailNone, p.TailFeatures)
			}
			if p.Skeleton == SkeletonExternal {
				require.Equal(t, CoveringExoskeleton, p.SkinCovering)
			}
			require.NotEmpty(t, p.SkinType)
			require.Len(t, c.Senses.Capabilities, 4)
			require.Len(t, c.Behavior.MentalTraits, len(MentalTraits))
			require.Greater(t, c.Size.WeightInPounds, 0.0)
			if c.Senses.Capabilities[CapabilityHearing] == HearingUltrasonic {
				require.True(t, c.Senses.HasSpecial(SpecialSonar))
			}
		}
	}
}

func TestPipelineIsReproducible(t *testing.T) {
	s := environment.DefaultSettings()
	habitat := environment.HabitatContext{Habitat: "Woodland", Zone: environment.ZoneLand}

	first, err := NewPipeline(dice.NewRoller(77), quietLogger()).Run(s, habitat)
	require.NoError(t, err)
	second, err := NewPipeline(dice.NewRoller(77), quietLogger()).Run(s, habitat)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("creatures differ (-first +second):\n%s", diff)
	}
}

func TestPipelineIsReproducibleWithScript(t *testing.T) {
	s := environment.DefaultSettings()
	habitat := environment.HabitatContext{Habitat: "Reef", Zone: environment.ZoneWater}
	faces := []int{3, 5, 2, 6, 1, 4, 4, 2, 6, 3, 5, 1}

	first, err := NewPipeline(dice.New(dice.NewScript(faces...)), quietLogger()).Run(s, habitat)
	require.NoError(t, err)
	second, err := NewPipeline(dice.New(dice.NewScript(faces...)), quietLogger()).Run(s, habitat)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second))
}

func TestChemistryRollExtremes(t *testing.T) {
	open := environment.Settings{Temperature: 287, Hydrology: 50, Gravity: 1}

	low := dice.New(dice.NewScript(1, 1, 3))
	assert.Equal(t, environment.ChemistryHydrogen, resolveChemistry(low, open))

	high := dice.New(dice.NewScript(6, 6, 6))
	assert.Equal(t, environment.ChemistryMachine, resolveChemistry(high, open))

	fixed := open
	fixed.PrimaryChemistry = environment.ChemistrySulfur
	assert.Equal(t, environment.ChemistrySulfur, resolveChemistry(high, fixed))
}

func TestMachineReproduction(t *testing.T) {
	s := environment.DefaultSettings()
	s.PrimaryChemistry = environment.ChemistryMachine

	c, err := NewPipeline(dice.NewRoller(3), quietLogger()).Run(s, environment.HabitatContext{Habitat: "Plain", Zone: environment.ZoneLand})
	require.NoError(t, err)
	assert.Equal(t, environment.ChemistryMachine, c.ChemicalBasis)
	assert.Equal(t, SexesAsexual, c.Reproduction.Sexes)
	assert.Equal(t, GestationReplication, c.Reproduction.Gestation)
	assert.Equal(t, StrategyReplication, c.Reproduction.ReproductiveStrategy)
	assert.Empty(t, c.Reproduction.SpecialGestation)
}

func TestPipelineFillsMissingContext(t *testing.T) {
	c, err := NewPipeline(dice.NewRoller(8), quietLogger()).Run(environment.Settings{Hydrology: 40}, environment.HabitatContext{})
	require.NoError(t, err)
	assert.Equal(t, environment.HabitatContext{Habitat: "Plain", Zone: environment.ZoneLand}, c.Habitat)
	assert.Equal(t, 1.0, c.Size.GravitySizeMultiplier)

	c, err = NewPipeline(dice.NewRoller(8), quietLogger()).Run(environment.DefaultSettings(), environment.HabitatContext{Habitat: "Lagoon"})
	require.NoError(t, err)
	assert.Equal(t, environment.ZoneWater, c.Habitat.Zone)
}

type jammedSource struct {
	calls  int
	failAt int
}

func (j *jammedSource) IntN(n int) int {
	j.calls++
	if j.calls > j.failAt {
		panic("dice jammed")
	}
	return 0
}

func (j *jammedSource) Float64() float64 { return 0.5 }

func TestPipelineRecoversFromResolverFault(t *testing.T) {
	p := NewPipeline(dice.New(&jammedSource{failAt: 12}), quietLogger())
	c, err := p.Run(environment.DefaultSettings(), environment.HabitatContext{Habitat: "Plain", Zone: environment.ZoneLand})

	require.Error(t, err)
	assert.True(t, errors.IsGeneration(err))
	assert.Equal(t, Creature{}, c)
}

func TestStageNames(t *testing.T) {
	assert.Equal(t, "physiology", StagePhysiology.String())
	assert.Equal(t, "behavior", StageComplete.String())
	assert.Equal(t, "unknown", Stage(42).String())

	c := Creature{Stage: StageSized}
	assert.True(t, c.Reached(StageMobile))
	assert.False(t, c.Reached(StagePhysiology))
	assert.False(t, c.Complete())
}
