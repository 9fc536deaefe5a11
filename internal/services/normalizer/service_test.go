package normalizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/models"
	"github.com/ternarybob/ordino/internal/services/dictionary"
)

func testDictionaries(t *testing.T) *dictionary.Service {
	t.Helper()
	root := t.TempDir()
	resourceDir := filepath.Join(root, "resource")
	signalDir := filepath.Join(root, "signal")
	require.NoError(t, os.MkdirAll(resourceDir, 0755))
	require.NoError(t, os.MkdirAll(signalDir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(resourceDir, "entries.yaml"), []byte(`entries:
  - key: cloud.provider
    display_name: Cloud Provider
    category: Cloud
    aliases: [cloud_provider, which_cloud]
  - key: aws.region
    display_name: AWS Region
    category: Cloud
    provider: aws
    aliases: [aws_region, aws_region_name]
  - key: cloud.region
    display_name: Azure Region
    category: Cloud
    provider: azure
    aliases: [azure_region]
  - key: tags.env
    display_name: Environment Tag
    category: Tags & Labels
    aliases: [env_tag]
  - key: host.name
    display_name: Host Name
    category: Host
    aliases: [hostname, host_name]
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(signalDir, "entries.yaml"), []byte(`entries:
  - key: span.kind
    display_name: Span Kind
    category: Spans
    aliases: [span_kind_field]
`), 0644))

	svc := dictionary.NewService(arbor.NewLogger())
	require.NoError(t, svc.Load(resourceDir, signalDir))
	return svc
}

func suggestedDocument(kind string, categories ...models.Category) *models.StructureDocument {
	return &models.StructureDocument{
		Kind:    kind,
		Variant: models.VariantSuggested,
		Applications: []models.Application{
			{Key: "clouds", Name: "Clouds", Categories: categories},
		},
	}
}

func TestService_Normalize(t *testing.T) {
	svc := NewService(arbor.NewLogger(), testDictionaries(t))

	t.Run("Cloud provider fields collapse to provider-prefixed keys", func(t *testing.T) {
		doc := suggestedDocument(models.KindMetadata, models.Category{
			Name: "Cloud",
			Fields: []models.Field{
				{Name: "aws_region_name"},
				{Name: "azure_region"},
				{Name: "which_cloud"},
			},
		})

		result := svc.Normalize(doc)
		cloud := result.Document.Application("clouds").Category("Cloud")
		require.NotNil(t, cloud)

		names := make([]string, 0, len(cloud.Fields))
		for _, f := range cloud.Fields {
			names = append(names, f.Name)
		}
		// Never one flat region key shared across providers
		assert.Equal(t, []string{"aws.region", "azure.region", "cloud.provider"}, names)
	})

	t.Run("Migration annotation recorded only when key differs", func(t *testing.T) {
		doc := suggestedDocument(models.KindMetadata,
			models.Category{Name: "Host", Fields: []models.Field{
				{Name: "hostname"},
				{Name: "host.name"},
			}},
		)

		result := svc.Normalize(doc)
		host := result.Document.Application("clouds").Category("Host")
		require.NotNil(t, host)
		require.Len(t, host.Fields, 1, "both spellings normalize to one canonical key")
		assert.Equal(t, "host.name", host.Fields[0].Name)
		assert.Equal(t, "hostname", host.Fields[0].Was)

		require.Len(t, result.Migrations, 1)
		assert.Equal(t, "host.name", result.Migrations[0].Key)
		assert.Equal(t, "hostname", result.Migrations[0].Was)
	})

	t.Run("Field already canonical carries no annotation", func(t *testing.T) {
		doc := suggestedDocument(models.KindMetadata,
			models.Category{Name: "Host", Fields: []models.Field{{Name: "host.name"}}},
		)

		result := svc.Normalize(doc)
		field := result.Document.Application("clouds").Category("Host").Fields[0]
		assert.Empty(t, field.Was)
		assert.Empty(t, result.Migrations)
	})

	t.Run("Unmapped fields pass through flagged", func(t *testing.T) {
		doc := suggestedDocument(models.KindMetadata,
			models.Category{Name: "Misc", Fields: []models.Field{{Name: "mystery_field"}}},
		)

		result := svc.Normalize(doc)
		field := result.Document.Application("clouds").Category("Misc").Fields[0]
		assert.Equal(t, "mystery_field", field.Name)
		assert.True(t, field.Unmapped)
		assert.Empty(t, field.Was)
		assert.Equal(t, []string{"clouds/mystery_field"}, result.Unmapped)
	})

	t.Run("Facet fields resolve through the signal dictionary", func(t *testing.T) {
		doc := suggestedDocument(models.KindFacets,
			models.Category{Name: "Spans", Fields: []models.Field{{Name: "span_kind_field"}}},
		)

		result := svc.Normalize(doc)
		field := result.Document.Application("clouds").Category("Spans").Fields[0]
		assert.Equal(t, "span.kind", field.Name)
		assert.Equal(t, "Span Kind", field.DisplayName)
		assert.Equal(t, "span_kind_field", field.Was)
	})

	t.Run("Facet values survive normalization", func(t *testing.T) {
		doc := suggestedDocument(models.KindFacets,
			models.Category{Name: "Filters", Fields: []models.Field{
				{Name: "which_cloud", Values: []string{"aws", "azure"}},
			}},
		)

		result := svc.Normalize(doc)
		field := result.Document.Application("clouds").Category("Filters").Fields[0]
		assert.Equal(t, "cloud.provider", field.Name)
		assert.Equal(t, []string{"aws", "azure"}, field.Values)
	})

	t.Run("Does not mutate the suggested document", func(t *testing.T) {
		doc := suggestedDocument(models.KindMetadata,
			models.Category{Name: "Host", Fields: []models.Field{{Name: "hostname"}}},
		)
		_ = svc.Normalize(doc)

		assert.Equal(t, models.VariantSuggested, doc.Variant)
		assert.Equal(t, "hostname", doc.Application("clouds").Category("Host").Fields[0].Name)
	})
}

func TestDisplayNameFromKey(t *testing.T) {
	assert.Equal(t, "Aws Region", displayNameFromKey("aws.region"))
	assert.Equal(t, "K8s Cluster Name", displayNameFromKey("k8s.cluster_name"))
}
