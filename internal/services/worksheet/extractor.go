package worksheet

import (
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/models"
)

// Extractor groups worksheet field records into the two current structure
// documents, one category group per (application, category) pair observed in
// the input.
type Extractor struct {
	logger arbor.ILogger
}

// NewExtractor creates a new extractor
func NewExtractor(logger arbor.ILogger) *Extractor {
	return &Extractor{
		logger: logger,
	}
}

// Extract builds the current metadata and facet documents from worksheet
// records. Duplicate field entries within the same (application, category)
// group are dropped, first seen wins.
func (e *Extractor) Extract(records []models.FieldRecord) (*models.StructureDocument, *models.StructureDocument) {
	metadata := &models.StructureDocument{
		Kind:    models.KindMetadata,
		Variant: models.VariantCurrent,
	}
	facets := &models.StructureDocument{
		Kind:    models.KindFacets,
		Variant: models.VariantCurrent,
	}

	duplicates := 0
	for _, record := range records {
		doc := metadata
		if record.Kind == models.RecordKindFacet {
			doc = facets
		}

		app := doc.EnsureApplication(models.ApplicationKey(record.Application), record.Application)
		cat := app.EnsureCategory(record.Category)

		if cat.HasField(record.Field) {
			duplicates++
			e.logger.Debug().
				Str("application", record.Application).
				Str("category", record.Category).
				Str("field", record.Field).
				Msg("Dropping duplicate field entry")
			continue
		}

		cat.Fields = append(cat.Fields, models.Field{
			Name:   record.Field,
			Values: record.Values,
		})
	}

	metadata.Sort()
	facets.Sort()

	e.logger.Info().
		Int("metadata_applications", len(metadata.Applications)).
		Int("facet_applications", len(facets.Applications)).
		Int("duplicates_dropped", duplicates).
		Msg("Current structure extracted")

	return metadata, facets
}
