package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biosphere-server/internal/biology"
	"biosphere-server/internal/dice"
	"biosphere-server/internal/ecosystem"
	"biosphere-server/internal/environment"
	"biosphere-server/internal/naming"
	"biosphere-server/internal/shared/errors"
)

func generatedPlanet(t *testing.T) *ecosystem.Planet {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	composer := ecosystem.NewComposer(dice.NewRoller(31), naming.NewMemoryRegistry(), logger)
	s := environment.DefaultSettings()
	planet, err := composer.GeneratePlanet(context.Background(), &s)
	require.NoError(t, err)
	require.NotZero(t, planet.SpeciesCount())
	return planet
}

func TestCreatureMapRoundTrip(t *testing.T) {
	for _, c := range generatedPlanet(t).Creatures() {
		m := CreatureToMap(c)
		back, err := CreatureFromMap(m)
		require.NoError(t, err)
		if diff := cmp.Diff(c, back); diff != "" {
			t.Fatalf("creature %s changed through map (-want +got):\n%s", c.Name, diff)
		}
	}
}

func TestCreatureMapSurvivesJSON(t *testing.T) {
	c := generatedPlanet(t).Creatures()[0]

	raw, err := json.Marshal(CreatureToMap(c))
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))

	back, err := CreatureFromMap(generic)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(c, back))
}

func TestCreatureMapKeys(t *testing.T) {
	m := CreatureToMap(generatedPlanet(t).Creatures()[0])
	for _, key := range []string{
		"Name", "ChemicalBasis", "Habitat", "TrophicLevel",
		"SizeCategory", "SpecificSize", "GravitySizeMultiplier", "WeightInPounds",
		"Symmetry", "SymmetryNumber", "Locomotion", "BreathingMethod", "TemperatureRegulation",
		"LimbStructure", "ActualLimbCount", "TailFeatures", "ManipulatorType", "ActualManipulatorCount",
		"Skeleton", "SkinCovering", "SkinType", "GrowthPattern", "Sexes", "Gestation",
		"SpecialGestation", "ReproductiveStrategy", "PrimarySense", "SenseCapabilities",
		"SpecialSenses", "AnimalIntelligence", "MatingBehavior", "SocialOrganization", "MentalTraits",
	} {
		assert.Contains(t, m, key)
	}
}

func TestPlanetDocumentRoundTrip(t *testing.T) {
	planet := generatedPlanet(t)
	doc := NewPlanetDocument(planet)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, decoded.SchemaVersion)
	require.NotNil(t, decoded.Planet)
	assert.Equal(t, planet.TotalEcosystemCount(), decoded.Planet.TotalEcosystemCount)

	if diff := cmp.Diff(planet, decoded.Planet.Planet()); diff != "" {
		t.Fatalf("planet changed through document (-want +got):\n%s", diff)
	}
}

func TestCompressedFileRoundTrip(t *testing.T) {
	planet := generatedPlanet(t)
	dir := t.TempDir()

	plain := filepath.Join(dir, "planet.json")
	packed := filepath.Join(dir, "planet.json.zst")
	require.NoError(t, WriteFile(plain, NewPlanetDocument(planet)))
	require.NoError(t, WriteFile(packed, NewPlanetDocument(planet)))

	plainInfo, err := os.Stat(plain)
	require.NoError(t, err)
	packedInfo, err := os.Stat(packed)
	require.NoError(t, err)
	assert.Less(t, packedInfo.Size(), plainInfo.Size())

	for _, path := range []string{plain, packed} {
		doc, err := ReadFile(path)
		require.NoError(t, err, path)
		assert.Empty(t, cmp.Diff(planet, doc.Planet.Planet()), path)
	}
}

func TestSpeciesDocument(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	composer := ecosystem.NewComposer(dice.NewRoller(8), naming.NewMemoryRegistry(), logger)
	s := environment.DefaultSettings()
	ecosystems, err := composer.GenerateMultipleSpecies(context.Background(), &s, 10)
	require.NoError(t, err)

	raw, err := Marshal(NewSpeciesDocument(ecosystems))
	require.NoError(t, err)
	doc, err := Unmarshal(raw)
	require.NoError(t, err)
	assert.Nil(t, doc.Planet)
	require.Len(t, doc.Ecosystems, len(ecosystems))
	assert.Equal(t, ecosystems[0].HabitatType, doc.Ecosystems[0].HabitatType)
	assert.Equal(t, ecosystems[0].Creatures, doc.Ecosystems[0].Ecosystem().Creatures)
}

func TestValidateRejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"not json":       `{"SchemaVersion":`,
		"missing body":   `{"SchemaVersion": 1}`,
		"future version": `{"SchemaVersion": 2, "Ecosystems": []}`,
		"bad zone":       `{"SchemaVersion": 1, "Ecosystems": [{"HabitatType": "Plain", "Zone": "Orbit", "EcosystemID": 9, "LocationID": 9, "Creatures": []}]}`,
		"bad id":         `{"SchemaVersion": 1, "Ecosystems": [{"HabitatType": "Plain", "Zone": "Land", "EcosystemID": 40, "LocationID": 9, "Creatures": []}]}`,
		"creature gap":   `{"SchemaVersion": 1, "Ecosystems": [{"HabitatType": "Plain", "Zone": "Land", "EcosystemID": 9, "LocationID": 9, "Creatures": [{"Name": "Neosaurus"}]}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate([]byte(raw))
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
		})
	}

	assert.NoError(t, Validate([]byte(`{"SchemaVersion": 1, "Ecosystems": []}`)))
}

func TestDTOKeepsEmptySpecialSenses(t *testing.T) {
	c := biology.Creature{Name: "Monopodus", Senses: biology.Senses{Special: nil}}
	back := FromCreature(c).Creature()
	assert.Equal(t, []string{}, back.Senses.Special)
	assert.True(t, back.Complete())
}
