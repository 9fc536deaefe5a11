package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/models"
	"github.com/ternarybob/ordino/internal/services/dictionary"
	"github.com/ternarybob/ordino/internal/services/normalizer"
	"github.com/ternarybob/ordino/internal/services/reporter"
	"github.com/ternarybob/ordino/internal/services/suggester"
	"github.com/ternarybob/ordino/internal/services/worksheet"
	"github.com/ternarybob/ordino/internal/storage"
)

// Pipeline stage names accepted by RunStage.
const (
	StageExtract   = "extract"
	StageSuggest   = "suggest"
	StageNormalize = "normalize"
	StageReport    = "report"
	StageRun       = "run"
)

// App wires configuration, logging and the pipeline services together. Each
// stage is a pure function from its input files to its output files; App only
// holds the shared plumbing.
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	store        *storage.DocumentStore
	reader       *worksheet.Reader
	extractor    *worksheet.Extractor
	dictionaries *dictionary.Service
	suggester    *suggester.Service
	normalizer   *normalizer.Service
	reporter     *reporter.Service

	dictionariesLoaded bool
}

// New creates the application with all services wired.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	runLogger := logger.WithCorrelationId(common.NewRunID())
	dictionaries := dictionary.NewService(runLogger)

	return &App{
		Config:       config,
		Logger:       runLogger,
		store:        storage.NewDocumentStore(config.Output.Dir, runLogger),
		reader:       worksheet.NewReader(runLogger),
		extractor:    worksheet.NewExtractor(runLogger),
		dictionaries: dictionaries,
		suggester:    suggester.NewService(runLogger, dictionaries),
		normalizer:   normalizer.NewService(runLogger, dictionaries),
		reporter:     reporter.NewService(runLogger),
	}, nil
}

// RunStage dispatches one named stage.
func (a *App) RunStage(stage string) error {
	switch stage {
	case StageExtract:
		return a.Extract()
	case StageSuggest:
		return a.Suggest()
	case StageNormalize:
		return a.Normalize()
	case StageReport:
		return a.Report()
	case StageRun:
		return a.RunAll()
	default:
		return fmt.Errorf("unknown stage %q (expected extract, suggest, normalize, report or run)", stage)
	}
}

// RunAll executes the full linear pipeline.
func (a *App) RunAll() error {
	for _, stage := range []func() error{a.Extract, a.Suggest, a.Normalize, a.Report} {
		if err := stage(); err != nil {
			return err
		}
	}
	return nil
}

// Extract parses the worksheet and writes the two current structure
// documents.
func (a *App) Extract() error {
	records, rejected, err := a.reader.Read(a.Config.Worksheet.Path)
	if err != nil {
		return err
	}
	if rejected > 0 {
		a.Logger.Warn().Int("rejected", rejected).Msg("Worksheet rows were rejected")
	}

	metadata, facets := a.extractor.Extract(records)

	if err := a.store.Save(metadata); err != nil {
		return err
	}
	return a.store.Save(facets)
}

// Suggest re-buckets the current documents into the target taxonomy and
// writes the two suggested documents.
func (a *App) Suggest() error {
	if err := a.loadDictionaries(); err != nil {
		return err
	}

	for _, kind := range []string{models.KindMetadata, models.KindFacets} {
		current, err := a.store.Load(models.VariantCurrent, kind)
		if err != nil {
			return err
		}
		if err := a.store.Save(a.suggester.Suggest(current)); err != nil {
			return err
		}
	}
	return nil
}

// Normalize maps the suggested documents to canonical keys and writes the
// two normalized documents.
func (a *App) Normalize() error {
	if err := a.loadDictionaries(); err != nil {
		return err
	}

	for _, kind := range []string{models.KindMetadata, models.KindFacets} {
		suggested, err := a.store.Load(models.VariantSuggested, kind)
		if err != nil {
			return err
		}

		result := a.normalizer.Normalize(suggested)
		if len(result.Unmapped) > 0 {
			a.Logger.Warn().
				Str("kind", kind).
				Int("count", len(result.Unmapped)).
				Strs("fields", result.Unmapped).
				Msg("Fields without dictionary entries passed through unchanged")
		}

		if err := a.store.Save(result.Document); err != nil {
			return err
		}
	}
	return nil
}

// Report renders the HTML comparison report from all six documents.
func (a *App) Report() error {
	in := reporter.Input{Title: a.Config.Report.Title}

	steps := []struct {
		dst     **models.StructureDocument
		variant string
		kind    string
	}{
		{&in.CurrentMetadata, models.VariantCurrent, models.KindMetadata},
		{&in.CurrentFacets, models.VariantCurrent, models.KindFacets},
		{&in.SuggestedMetadata, models.VariantSuggested, models.KindMetadata},
		{&in.SuggestedFacets, models.VariantSuggested, models.KindFacets},
		{&in.NormalizedMetadata, models.VariantNormalized, models.KindMetadata},
		{&in.NormalizedFacets, models.VariantNormalized, models.KindFacets},
	}
	for _, step := range steps {
		doc, err := a.store.Load(step.variant, step.kind)
		if err != nil {
			return err
		}
		*step.dst = doc
	}

	return a.reporter.WriteFile(a.Config.Report.Path, in)
}

// loadDictionaries loads the semantic dictionaries once per run.
func (a *App) loadDictionaries() error {
	if a.dictionariesLoaded {
		return nil
	}
	if err := a.dictionaries.Load(a.Config.Dictionaries.ResourceDir, a.Config.Dictionaries.SignalDir); err != nil {
		return err
	}
	a.dictionariesLoaded = true
	return nil
}
