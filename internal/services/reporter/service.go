package reporter

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/models"
)

// Service renders the static HTML comparison report from the current,
// suggested and normalized structure documents. The output is a single
// self-contained file with inline CSS and no runtime dependencies, and is
// byte-identical for identical inputs.
type Service struct {
	logger arbor.ILogger
	tmpl   *template.Template
}

// Input carries the six structure documents the report is built from.
type Input struct {
	Title              string
	CurrentMetadata    *models.StructureDocument
	CurrentFacets      *models.StructureDocument
	SuggestedMetadata  *models.StructureDocument
	SuggestedFacets    *models.StructureDocument
	NormalizedMetadata *models.StructureDocument
	NormalizedFacets   *models.StructureDocument
}

// NewService creates a new reporter service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
		tmpl:   template.Must(template.New("report").Parse(reportTemplate)),
	}
}

// Render produces the HTML report document.
func (s *Service) Render(in Input) ([]byte, error) {
	view := buildView(in)

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the report and writes it to path.
func (s *Service) WriteFile(path string, in Input) error {
	data, err := s.Render(in)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	s.logger.Info().Str("path", path).Msg("HTML report written")
	return nil
}

// reportView is the template root.
type reportView struct {
	Title         string
	Applications  []appView
	UnmappedCount int
	Unmapped      []string
}

// appView is one application's three comparison tables.
type appView struct {
	Name       string
	Suggested  []sectionView
	Current    []sectionView
	Normalized []sectionView
}

// sectionView is one Type row (Metadata or Facets) inside a table.
type sectionView struct {
	Label      string
	Categories []categoryView
}

type categoryView struct {
	Name   string
	Fields []fieldView
}

type fieldView struct {
	Key         string
	DisplayName string
	Was         string
	Unmapped    bool
	Values      []string
}

func buildView(in Input) reportView {
	view := reportView{Title: in.Title}

	// Union of applications across all documents, ordered by key
	names := make(map[string]string)
	for _, doc := range []*models.StructureDocument{
		in.CurrentMetadata, in.CurrentFacets,
		in.SuggestedMetadata, in.SuggestedFacets,
		in.NormalizedMetadata, in.NormalizedFacets,
	} {
		if doc == nil {
			continue
		}
		for _, app := range doc.Applications {
			names[app.Key] = app.Name
		}
	}
	keys := make([]string, 0, len(names))
	for key := range names {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		view.Applications = append(view.Applications, appView{
			Name: names[key],
			// Core is app-specific and excluded from the universal taxonomy table
			Suggested: []sectionView{
				appSection("Metadata", in.SuggestedMetadata, key, true),
				appSection("Facets", in.SuggestedFacets, key, true),
			},
			Current: []sectionView{
				appSection("Metadata", in.CurrentMetadata, key, false),
				appSection("Facets", in.CurrentFacets, key, false),
			},
			Normalized: []sectionView{
				appSection("Metadata", in.NormalizedMetadata, key, false),
				appSection("Facets", in.NormalizedFacets, key, false),
			},
		})
	}

	// Unmapped field summary for human follow-up
	for _, doc := range []*models.StructureDocument{in.NormalizedMetadata, in.NormalizedFacets} {
		if doc == nil {
			continue
		}
		for _, app := range doc.Applications {
			for _, cat := range app.Categories {
				for _, f := range cat.Fields {
					if f.Unmapped {
						view.Unmapped = append(view.Unmapped, app.Name+": "+f.Name)
					}
				}
			}
		}
	}
	sort.Strings(view.Unmapped)
	view.UnmappedCount = len(view.Unmapped)

	return view
}

// appSection converts one application's categories from one document into a
// table section, optionally excluding Core.
func appSection(label string, doc *models.StructureDocument, key string, excludeCore bool) sectionView {
	section := sectionView{Label: label}
	if doc == nil {
		return section
	}
	app := doc.Application(key)
	if app == nil {
		return section
	}

	for _, cat := range app.Categories {
		if excludeCore && strings.EqualFold(cat.Name, models.CategoryCore) {
			continue
		}
		cv := categoryView{Name: cat.Name}
		for _, f := range cat.Fields {
			cv.Fields = append(cv.Fields, fieldView{
				Key:         f.Name,
				DisplayName: f.DisplayName,
				Was:         f.Was,
				Unmapped:    f.Unmapped,
				Values:      f.Values,
			})
		}
		section.Categories = append(section.Categories, cv)
	}

	// Documents are stored sorted, but the report guarantees the ordering
	// invariant regardless of where its inputs came from.
	sort.SliceStable(section.Categories, func(i, j int) bool {
		return models.CategoryLess(section.Categories[i].Name, section.Categories[j].Name)
	})

	return section
}
