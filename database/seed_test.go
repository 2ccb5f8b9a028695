package database

import (
	"os"
	"path/filepath"
	"testing"

	"vehicle-catalog-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
brands:
  - name: BMW
    slug: bmw
    equipment: [Head-up display, Panoramic roof]
    models:
      - name: X5
        generations: [G05, F15]
      - name: "3 Series"
        generations: [G20]
  - name: Audi
    slug: audi
    equipment: [Panoramic roof]
    models:
      - name: Q7
`

func TestParseSeed_Validation(t *testing.T) {
	_, err := ParseSeed([]byte("brands:\n  - name: BMW\n"))
	assert.ErrorContains(t, err, "name and slug are required")

	_, err = ParseSeed([]byte("brands:\n  - {name: A, slug: a}\n  - {name: B, slug: a}\n"))
	assert.ErrorContains(t, err, "duplicate slug")

	_, err = ParseSeed([]byte("brands:\n  - name: A\n    slug: a\n    models: [{generations: [x]}]\n"))
	assert.ErrorContains(t, err, "name is required")

	_, err = ParseSeed([]byte("brands: ["))
	assert.Error(t, err)
}

func TestSeed_ImportsAndIsIdempotent(t *testing.T) {
	db := NewTestDB(t)
	seed, err := ParseSeed([]byte(seedYAML))
	require.NoError(t, err)

	var progress []int
	stats, err := Seed(db, seed, func(pct int, _, _ string) { progress = append(progress, pct) })
	require.NoError(t, err)
	assert.Equal(t, SeedStats{Brands: 2, Models: 3, Generations: 3, Equipment: 3}, *stats)
	assert.Equal(t, []int{50, 100}, progress)

	var items int64
	require.NoError(t, db.Model(&models.EquipmentItem{}).Count(&items).Error)
	assert.Equal(t, int64(2), items, "shared equipment item is created once")

	again, err := Seed(db, seed, nil)
	require.NoError(t, err)
	assert.Equal(t, SeedStats{}, *again)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	seed, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, seed.Brands, 2)
	assert.Equal(t, []string{"G05", "F15"}, seed.Brands[0].Models[0].Generations)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeed_Nil(t *testing.T) {
	_, err := Seed(NewTestDB(t), nil, nil)
	assert.Error(t, err)
}

func TestLoadSeedFile_Example(t *testing.T) {
	seed, err := LoadSeedFile("../seed.example.yaml")
	require.NoError(t, err)
	require.Len(t, seed.Brands, 2)

	stats, err := Seed(NewTestDB(t), seed, nil)
	require.NoError(t, err)
	assert.Equal(t, SeedStats{Brands: 2, Models: 3, Generations: 4, Equipment: 3}, *stats)
}
