package suggester

import (
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/models"
	"github.com/ternarybob/ordino/internal/services/dictionary"
)

// Service re-buckets every field of a current structure document into the
// fixed target taxonomy: Core stays Core, tag-like names move to
// Tags & Labels, everything else keeps its existing category. Field names are
// never changed here, only the grouping.
type Service struct {
	logger arbor.ILogger
	dict   *dictionary.Service
}

// NewService creates a new suggester service
func NewService(logger arbor.ILogger, dict *dictionary.Service) *Service {
	return &Service{
		logger: logger,
		dict:   dict,
	}
}

// Suggest builds the suggested document for one current document. The
// (application, field name) set is identical before and after; only category
// membership and ordering change.
func (s *Service) Suggest(current *models.StructureDocument) *models.StructureDocument {
	suggested := &models.StructureDocument{
		Kind:    current.Kind,
		Variant: models.VariantSuggested,
	}

	moved := 0
	for _, app := range current.Applications {
		target := suggested.EnsureApplication(app.Key, app.Name)

		for _, cat := range app.Categories {
			for _, field := range cat.Fields {
				name := s.targetCategory(cat.Name, field.Name)
				if name != cat.Name {
					moved++
				}
				bucket := target.EnsureCategory(name)
				bucket.Fields = append(bucket.Fields, field)
			}
		}
	}

	suggested.Sort()

	s.logger.Info().
		Str("kind", current.Kind).
		Int("applications", len(suggested.Applications)).
		Int("fields_moved", moved).
		Msg("Suggested structure built")

	return suggested
}

// targetCategory applies the re-bucketing rule table to one field.
func (s *Service) targetCategory(category, field string) string {
	if strings.EqualFold(category, models.CategoryCore) {
		return models.CategoryCore
	}
	if s.dict.TagLike(field) {
		return models.CategoryTags
	}
	return category
}
