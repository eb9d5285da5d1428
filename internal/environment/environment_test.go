package environment

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biosphere-server/internal/dice"
	"biosphere-server/internal/shared/errors"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChemistryTableExtremes(t *testing.T) {
	assert.Equal(t, ChemistryHydrogen, dice.Seek(ChemistryTable, 5))
	assert.Equal(t, ChemistryMachine, dice.Seek(ChemistryTable, 18))
	assert.Len(t, Chemistries(), 8)
}

func TestParseChemistry(t *testing.T) {
	cases := map[string]ChemistryBasis{
		"carbon":        ChemistryCarbon,
		"Silicon-Based": ChemistrySilicon,
		"sulfur_based":  ChemistrySulfur,
		"MACHINE":       ChemistryMachine,
		" hydrocarbon ": ChemistryHydrocarbon,
	}
	for in, want := range cases {
		got, ok := ParseChemistry(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseChemistry("plasma")
	assert.False(t, ok)
	_, ok = ParseChemistry("")
	assert.False(t, ok)
}

func TestPresetsCoverEveryPlanetType(t *testing.T) {
	for _, p := range PlanetTypes() {
		s, ok := Preset(p)
		require.True(t, ok, p)
		assert.Equal(t, p, s.PlanetType)
		assert.NoError(t, s.Validate(), p)
	}

	jovian, _ := Preset(PlanetJovian)
	assert.Equal(t, ChemistryHydrogen, jovian.PrimaryChemistry)
	assert.Equal(t, 2.5, jovian.Gravity)

	_, ok := Preset("Hydaean")
	assert.False(t, ok)
}

func TestParsePlanetType(t *testing.T) {
	p, ok := ParsePlanetType("panthalassic")
	require.True(t, ok)
	assert.Equal(t, PlanetPanthalassic, p)

	_, ok = ParsePlanetType("barren")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	valid := DefaultSettings()
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"negative temperature", func(s *Settings) { s.Temperature = -4 }},
		{"hydrology too high", func(s *Settings) { s.Hydrology = 121 }},
		{"negative hydrology", func(s *Settings) { s.Hydrology = -1 }},
		{"gravity too low", func(s *Settings) { s.Gravity = 0.05 }},
		{"gravity too high", func(s *Settings) { s.Gravity = 11 }},
		{"negative land masses", func(s *Settings) { s.LandMasses = -1 }},
		{"unknown chemistry", func(s *Settings) { s.PrimaryChemistry = "Plasma" }},
		{"unknown planet type", func(s *Settings) { s.PlanetType = "Barren" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := valid
			tc.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
		})
	}
}

func TestWithDefaults(t *testing.T) {
	s := Settings{LandMasses: -3, Hydrology: 40, PrimaryChemistry: "silicon", PlanetType: "gaian"}.WithDefaults()
	assert.Equal(t, DefaultGravity, s.Gravity)
	assert.Equal(t, DefaultTemperature, s.Temperature)
	assert.Equal(t, 0, s.LandMasses)
	assert.Equal(t, 40.0, s.Hydrology)
	assert.Equal(t, ChemistrySilicon, s.PrimaryChemistry)
	assert.Equal(t, PlanetGaian, s.PlanetType)
	assert.NoError(t, s.Validate())
}

func TestRandomizeStaysInRange(t *testing.T) {
	r := dice.NewRoller(99)
	for i := 0; i < 100; i++ {
		s := Randomize(r)
		require.NoError(t, s.Validate())
		require.GreaterOrEqual(t, s.LandMasses, 1)
		require.LessOrEqual(t, s.LandMasses, 7)
	}
}

func TestViable(t *testing.T) {
	cold := Settings{Temperature: 250, Hydrology: 40}
	hot := Settings{Temperature: 310, Hydrology: 10}
	wet := Settings{Temperature: 300, Hydrology: 75}

	assert.True(t, Viable("Arctic", cold))
	assert.False(t, Viable("Arctic", hot))
	assert.True(t, Viable("Desert", hot))
	assert.False(t, Viable("Desert", wet))
	assert.True(t, Viable("Swampland", wet))
	assert.True(t, Viable("Jungle", wet))
	assert.True(t, Viable("Reef", wet))
	assert.False(t, Viable("Reef", cold))
	assert.True(t, Viable("Shallows", cold))
}

func TestHydrologyModifier(t *testing.T) {
	assert.Equal(t, -2, HydrologyModifier(0))
	assert.Equal(t, -2, HydrologyModifier(10))
	assert.Equal(t, -1, HydrologyModifier(50))
	assert.Equal(t, 0, HydrologyModifier(70))
	assert.Equal(t, 1, HydrologyModifier(85))
	assert.Equal(t, 2, HydrologyModifier(95))
}

func TestAvailableHabitatsDryWorldKeepsLand(t *testing.T) {
	s := Settings{Temperature: 310, Hydrology: 0, Gravity: 1}
	habitats := AvailableHabitats(s)
	require.NotEmpty(t, habitats)
	for _, h := range habitats {
		zone, ok := ZoneOf(h)
		require.True(t, ok, h)
		assert.Equal(t, ZoneLand, zone, h)
	}
	assert.Contains(t, habitats, "Desert")
	assert.NotContains(t, habitats, "Coastal")
}

func TestAvailableHabitatsFloodedWorldKeepsWater(t *testing.T) {
	s := Settings{Temperature: 295, Hydrology: 100, Gravity: 1}
	habitats := AvailableHabitats(s)
	require.NotEmpty(t, habitats)
	for _, h := range habitats {
		zone, _ := ZoneOf(h)
		assert.Equal(t, ZoneWater, zone, h)
	}
	assert.Contains(t, habitats, "Reef")
}

func TestAvailableHabitatsJovian(t *testing.T) {
	s, _ := Preset(PlanetJovian)
	assert.Equal(t, jovianHabitats.Outcomes(), AvailableHabitats(s))
}

func TestAvailableHabitatsMixedWorldLandFirst(t *testing.T) {
	habitats := AvailableHabitats(DefaultSettings())
	require.NotEmpty(t, habitats)
	zone, _ := ZoneOf(habitats[0])
	assert.Equal(t, ZoneLand, zone)
	last, _ := ZoneOf(habitats[len(habitats)-1])
	assert.Equal(t, ZoneWater, last)
}

func TestLookupHabitat(t *testing.T) {
	ctx, ok := LookupHabitat("deep ocean")
	require.True(t, ok)
	assert.Equal(t, HabitatContext{Habitat: "Deep Ocean", Zone: ZoneWater}, ctx)

	ctx, ok = LookupHabitat("Mountian")
	require.True(t, ok)
	assert.Equal(t, "Mountain", ctx.Habitat)

	ctx, ok = LookupHabitat("storm dwelling")
	require.True(t, ok)
	assert.Equal(t, ZoneJovian, ctx.Zone)

	_, ok = LookupHabitat("spaceship")
	assert.False(t, ok)
	_, ok = LookupHabitat("")
	assert.False(t, ok)
}

func TestResolverForcedZones(t *testing.T) {
	r := NewResolver(dice.NewRoller(5), quietLogger())

	dry := Settings{Temperature: 287, Hydrology: 0, Gravity: 1}
	flooded := Settings{Temperature: 287, Hydrology: 100, Gravity: 1}
	jovian, _ := Preset(PlanetJovian)

	for i := 0; i < 50; i++ {
		assert.Equal(t, ZoneLand, r.Resolve(dry, "").Zone)
		assert.Equal(t, ZoneWater, r.Resolve(flooded, "").Zone)
		assert.Equal(t, ZoneJovian, r.Resolve(jovian, "").Zone)
	}
}

func TestResolverHonorsViability(t *testing.T) {
	r := NewResolver(dice.NewRoller(11), quietLogger())
	s := Settings{Temperature: 250, Hydrology: 30, Gravity: 1}
	for i := 0; i < 200; i++ {
		ctx := r.Resolve(s, "")
		require.True(t, Viable(ctx.Habitat, s), ctx.Habitat)
	}
}

func TestResolverTargetHabitat(t *testing.T) {
	r := NewResolver(dice.NewRoller(1), quietLogger())
	ctx := r.Resolve(DefaultSettings(), "Reef")
	assert.Equal(t, HabitatContext{Habitat: "Reef", Zone: ZoneWater}, ctx)

	ctx = r.Resolve(DefaultSettings(), "nowhere at all")
	_, known := ZoneOf(ctx.Habitat)
	assert.True(t, known)
}

func TestResolverZoneRoll(t *testing.T) {
	s := Settings{Temperature: 287, Hydrology: 70, Gravity: 1}

	low := NewResolver(dice.New(dice.NewScript(3)), quietLogger())
	assert.Equal(t, ZoneLand, low.Zone(s))

	high := NewResolver(dice.New(dice.NewScript(4)), quietLogger())
	assert.Equal(t, ZoneWater, high.Zone(s))
}
