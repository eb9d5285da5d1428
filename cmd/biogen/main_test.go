package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"biosphere-server/internal/archive"
	"biosphere-server/internal/auth"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestSpeciesCommand(t *testing.T) {
	out, _, err := execute(t, "species", "--preset", "Oceanic", "--habitat", "Reef", "--seed", "21")
	require.NoError(t, err)

	var got speciesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(21), got.Seed)
	require.NotNil(t, got.Creature)
	assert.Equal(t, "Reef", got.Creature.Habitat)
	assert.NotEmpty(t, got.Creature.Name)

	again, _, err := execute(t, "species", "--preset", "Oceanic", "--habitat", "Reef", "--seed", "21")
	require.NoError(t, err)
	var replay speciesOutput
	require.NoError(t, json.Unmarshal([]byte(again), &replay))
	assert.Equal(t, got.Creature.SizeCategory, replay.Creature.SizeCategory)
	assert.Equal(t, got.Creature.TrophicLevel, replay.Creature.TrophicLevel)
}

func TestSpeciesCommandYAML(t *testing.T) {
	out, _, err := execute(t, "species", "--seed", "3", "--format", "yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got["seed"])
	creature, ok := got["creature"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, creature, "SizeCategory")
}

func TestSpeciesBatchExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json.zst")
	out, stderr, err := execute(t, "species", "--count", "12", "--seed", "5", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote "+path)

	var got speciesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got.Ecosystems)

	doc, err := archive.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, len(got.Ecosystems), len(doc.Ecosystems))
}

func TestSpeciesSingleExportValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.json")
	_, _, err := execute(t, "species", "--seed", "9", "--out", path)
	require.NoError(t, err)

	doc, err := archive.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, doc.Ecosystems, 1)
	assert.Len(t, doc.Ecosystems[0].Creatures, 1)
}

func TestPlanetCommandStore(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "archive.db")
	path := filepath.Join(dir, "planet.json.zst")

	out, stderr, err := execute(t, "planet", "--preset", "Arid", "--seed", "77", "--store", store, "--out", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "archived")

	var got planetOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.ID)
	assert.Equal(t, "Arid", got.Planet.Settings.PlanetType)

	doc, err := archive.ReadFile(path)
	require.NoError(t, err)
	require.NotNil(t, doc.Planet)
	assert.Equal(t, got.Planet.Name, doc.Planet.Name)
}

func TestHabitatsCommand(t *testing.T) {
	out, _, err := execute(t, "habitats", "--preset", "Gaian", "--hydrology", "120")
	require.NoError(t, err)

	var habitats []string
	require.NoError(t, json.Unmarshal([]byte(out), &habitats))
	assert.NotEmpty(t, habitats)
	assert.NotContains(t, habitats, "Desert")
}

func TestPresetsCommand(t *testing.T) {
	out, _, err := execute(t, "presets")
	require.NoError(t, err)

	var presets map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &presets))
	assert.Contains(t, presets, "Gaian")
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	out, _, err := execute(t, "token", "--subject", "ops")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.True(t, claims.CanWrite())
}

func TestCommandErrors(t *testing.T) {
	_, _, err := execute(t, "species", "--format", "toml")
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = execute(t, "planet", "--preset", "Hothouse")
	assert.Error(t, err)

	_, _, err = execute(t, "species", "--gravity", "50")
	assert.Error(t, err)
}
