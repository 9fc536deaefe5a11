package worksheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/models"
)

func TestExtractor_Extract(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())

	t.Run("Groups records by application and category", func(t *testing.T) {
		metadata, facets := extractor.Extract([]models.FieldRecord{
			{Application: "Clouds", Kind: models.RecordKindMetadata, Category: "Core", Field: "core_id"},
			{Application: "Clouds", Kind: models.RecordKindMetadata, Category: "Metadata", Field: "env_tag"},
			{Application: "Clouds", Kind: models.RecordKindFacet, Category: "Filters", Field: "provider", Values: []string{"aws", "azure"}},
			{Application: "Database", Kind: models.RecordKindMetadata, Category: "General", Field: "hostname"},
		})

		assert.Equal(t, models.VariantCurrent, metadata.Variant)
		assert.Equal(t, models.KindMetadata, metadata.Kind)
		assert.Equal(t, models.KindFacets, facets.Kind)

		require.Len(t, metadata.Applications, 2)
		clouds := metadata.Application("clouds")
		require.NotNil(t, clouds)
		assert.Len(t, clouds.Categories, 2)

		require.Len(t, facets.Applications, 1)
		filters := facets.Application("clouds").Category("Filters")
		require.NotNil(t, filters)
		require.Len(t, filters.Fields, 1)
		assert.Equal(t, []string{"aws", "azure"}, filters.Fields[0].Values)
	})

	t.Run("First seen wins for duplicate fields", func(t *testing.T) {
		metadata, _ := extractor.Extract([]models.FieldRecord{
			{Application: "Clouds", Kind: models.RecordKindMetadata, Category: "Metadata", Field: "env_tag", Values: []string{"first"}},
			{Application: "Clouds", Kind: models.RecordKindMetadata, Category: "Metadata", Field: "env_tag", Values: []string{"second"}},
		})

		fields := metadata.Application("clouds").Category("Metadata").Fields
		require.Len(t, fields, 1)
		assert.Equal(t, []string{"first"}, fields[0].Values)
	})

	t.Run("Categories come out in canonical order", func(t *testing.T) {
		metadata, _ := extractor.Extract([]models.FieldRecord{
			{Application: "Clouds", Kind: models.RecordKindMetadata, Category: "Zone", Field: "z"},
			{Application: "Clouds", Kind: models.RecordKindMetadata, Category: "Tags & Labels", Field: "t"},
			{Application: "Clouds", Kind: models.RecordKindMetadata, Category: "Core", Field: "c"},
			{Application: "Clouds", Kind: models.RecordKindMetadata, Category: "Alpha", Field: "a"},
		})

		categories := metadata.Application("clouds").Categories
		names := make([]string, 0, len(categories))
		for _, c := range categories {
			names = append(names, c.Name)
		}
		assert.Equal(t, []string{"Core", "Tags & Labels", "Alpha", "Zone"}, names)
	})
}
