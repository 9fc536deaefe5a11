package normalizer

import (
	"sort"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/models"
	"github.com/ternarybob/ordino/internal/services/dictionary"
)

// Service maps every field of a suggested structure document to its
// canonical semantic key using the loaded dictionaries. Fields with no
// dictionary entry pass through unchanged, flagged unmapped. Grouping is not
// changed here; the suggester already settled it.
type Service struct {
	logger arbor.ILogger
	dict   *dictionary.Service
}

// Migration records one canonical key that replaces a differing original
// field name, for report annotation.
type Migration struct {
	Application string
	Category    string
	Key         string
	Was         string
}

// Result is the outcome of normalizing one suggested document.
type Result struct {
	Document   *models.StructureDocument
	Migrations []Migration
	Unmapped   []string // "application/field" pairs with no dictionary entry
}

// NewService creates a new normalizer service
func NewService(logger arbor.ILogger, dict *dictionary.Service) *Service {
	return &Service{
		logger: logger,
		dict:   dict,
	}
}

// Normalize builds the normalized document for one suggested document.
// Within a category, fields normalizing to the same canonical key are merged
// (first mapping wins) and the surviving fields are ordered by key.
func (s *Service) Normalize(suggested *models.StructureDocument) *Result {
	result := &Result{
		Document: &models.StructureDocument{
			Kind:    suggested.Kind,
			Variant: models.VariantNormalized,
		},
	}

	for _, app := range suggested.Applications {
		target := result.Document.EnsureApplication(app.Key, app.Name)

		for _, cat := range app.Categories {
			normalized := models.Category{Name: cat.Name}
			seen := make(map[string]bool)

			for _, field := range cat.Fields {
				mapped := s.normalizeField(field, suggested.Kind)
				if seen[mapped.Name] {
					s.logger.Debug().
						Str("application", app.Name).
						Str("category", cat.Name).
						Str("key", mapped.Name).
						Str("field", field.Name).
						Msg("Merging duplicate canonical key")
					continue
				}
				seen[mapped.Name] = true
				normalized.Fields = append(normalized.Fields, mapped)

				if mapped.Unmapped {
					result.Unmapped = append(result.Unmapped, app.Key+"/"+field.Name)
				}
				if mapped.Was != "" {
					result.Migrations = append(result.Migrations, Migration{
						Application: app.Key,
						Category:    cat.Name,
						Key:         mapped.Name,
						Was:         mapped.Was,
					})
				}
			}

			sort.SliceStable(normalized.Fields, func(i, j int) bool {
				return normalized.Fields[i].Name < normalized.Fields[j].Name
			})
			target.Categories = append(target.Categories, normalized)
		}
	}

	result.Document.Sort()

	s.logger.Info().
		Str("kind", suggested.Kind).
		Int("migrations", len(result.Migrations)).
		Int("unmapped", len(result.Unmapped)).
		Msg("Normalized structure built")

	return result
}

// normalizeField maps one field to its canonical form. The migration
// annotation is recorded only when the canonical key differs from the
// original name.
func (s *Service) normalizeField(field models.Field, kind string) models.Field {
	entry, ok := s.dict.Resolve(field.Name, kind)
	if !ok {
		return models.Field{
			Name:        field.Name,
			DisplayName: field.DisplayName,
			Unmapped:    true,
			Values:      field.Values,
		}
	}

	key := canonicalKey(entry)

	mapped := models.Field{
		Name:        key,
		DisplayName: entry.DisplayName,
		Values:      field.Values,
	}
	if mapped.DisplayName == "" {
		mapped.DisplayName = displayNameFromKey(key)
	}
	if key != field.Name {
		mapped.Was = field.Name
	}
	return mapped
}

// canonicalKey applies the cloud-provider collapse rule: a provider-specific
// entry yields the provider-prefixed key (aws.*, azure.*, gcp.*); the generic
// provider discriminator stays cloud.provider; everything else keeps the
// entry key as-is.
func canonicalKey(entry *models.DictionaryEntry) string {
	if entry.Provider == "" {
		return entry.Key
	}
	if strings.HasPrefix(entry.Key, entry.Provider+".") {
		return entry.Key
	}
	// Re-anchor a generic key under its provider namespace
	key := strings.TrimPrefix(entry.Key, "cloud.")
	return entry.Provider + "." + key
}

// displayNameFromKey derives a readable display name from a dotted canonical
// key, e.g. "aws.region" -> "Aws Region".
func displayNameFromKey(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '.' || r == '_'
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
