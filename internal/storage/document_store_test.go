package storage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/models"
)

func testDocument() *models.StructureDocument {
	return &models.StructureDocument{
		Kind:    models.KindMetadata,
		Variant: models.VariantCurrent,
		Applications: []models.Application{
			{Key: "clouds", Name: "Clouds", Categories: []models.Category{
				{Name: "Metadata", Fields: []models.Field{{Name: "aws_region_name"}}},
				{Name: "Core", Fields: []models.Field{{Name: "core_id"}}},
			}},
		},
	}
}

func TestDocumentStore_SaveAndLoad(t *testing.T) {
	store := NewDocumentStore(t.TempDir(), arbor.NewLogger())

	require.NoError(t, store.Save(testDocument()))

	loaded, err := store.Load(models.VariantCurrent, models.KindMetadata)
	require.NoError(t, err)
	assert.Equal(t, models.KindMetadata, loaded.Kind)
	assert.Equal(t, models.VariantCurrent, loaded.Variant)
	require.Len(t, loaded.Applications, 1)

	// Save sorted the categories into canonical order
	assert.Equal(t, "Core", loaded.Applications[0].Categories[0].Name)
	assert.Equal(t, "Metadata", loaded.Applications[0].Categories[1].Name)
}

func TestDocumentStore_SaveIsIdempotent(t *testing.T) {
	store := NewDocumentStore(t.TempDir(), arbor.NewLogger())

	require.NoError(t, store.Save(testDocument()))
	first, err := os.ReadFile(store.Path(models.VariantCurrent, models.KindMetadata))
	require.NoError(t, err)

	require.NoError(t, store.Save(testDocument()))
	second, err := os.ReadFile(store.Path(models.VariantCurrent, models.KindMetadata))
	require.NoError(t, err)

	assert.Equal(t, first, second, "repeated saves of the same document must produce identical bytes")
}

func TestDocumentStore_LoadMissingFile(t *testing.T) {
	store := NewDocumentStore(t.TempDir(), arbor.NewLogger())

	_, err := store.Load(models.VariantSuggested, models.KindFacets)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suggested_facets_structure.yaml")
	assert.Contains(t, err.Error(), "missing")
}

func TestDocumentStore_LoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	store := NewDocumentStore(dir, arbor.NewLogger())

	require.NoError(t, os.WriteFile(store.Path(models.VariantCurrent, models.KindMetadata), []byte("kind: [broken"), 0644))

	_, err := store.Load(models.VariantCurrent, models.KindMetadata)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
