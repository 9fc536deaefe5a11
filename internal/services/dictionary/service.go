package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ternarybob/arbor"
	"gopkg.in/yaml.v3"

	"github.com/ternarybob/ordino/internal/models"
)

// tagNamePattern is the fallback tag-likeness test, derived from the shape of
// the dictionary's tags.* aliases: the tag/label/annotation token must stand
// alone between separators, so "env_tag" matches but "stage" does not.
var tagNamePattern = regexp.MustCompile(`(?i)(^|[._\- ])(tags?|labels?|annotations?)([._\- ]|$)`)

// Service loads the two semantic dictionaries and answers lookups against
// them. Dictionaries are read-only once loaded.
type Service struct {
	logger   arbor.ILogger
	resource *Index
	signal   *Index
}

// NewService creates a new dictionary service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger:   logger,
		resource: newIndex(models.DomainResource),
		signal:   newIndex(models.DomainSignal),
	}
}

// Load reads every *.yaml/*.yml file in the two dictionary directories.
// Entries that fail validation are skipped with a warning; an unreadable
// directory is fatal.
func (s *Service) Load(resourceDir, signalDir string) error {
	if err := s.loadDir(s.resource, resourceDir); err != nil {
		return err
	}
	if err := s.loadDir(s.signal, signalDir); err != nil {
		return err
	}

	s.logger.Info().
		Int("resource_entries", len(s.resource.entries)).
		Int("signal_entries", len(s.signal.entries)).
		Msg("Semantic dictionaries loaded")

	return nil
}

func (s *Service) loadDir(index *Index, dir string) error {
	paths, err := dictionaryFiles(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("%s dictionary directory %s contains no yaml files", index.domain, dir)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read dictionary file %s: %w", path, err)
		}

		var file models.DictionaryFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse dictionary file %s: %w", path, err)
		}

		for _, entry := range file.Entries {
			if err := entry.Validate(); err != nil {
				s.logger.Warn().
					Err(err).
					Str("path", path).
					Str("key", entry.Key).
					Msg("Skipping invalid dictionary entry")
				continue
			}
			index.add(entry)
		}
	}

	return nil
}

// Resolve looks up the canonical entry for a field name in the dictionary
// matching the document kind. Metadata fields use the resource dictionary;
// facet fields use the signal dictionary and fall back to the resource one,
// since facets frequently reference resource attributes.
func (s *Service) Resolve(name, kind string) (*models.DictionaryEntry, bool) {
	if kind == models.KindFacets {
		if entry, ok := s.signal.Lookup(name); ok {
			return entry, true
		}
	}
	return s.resource.Lookup(name)
}

// TagLike reports whether a field name should be re-bucketed under
// Tags & Labels. The dictionary is the source of truth: any name that
// resolves to a tags.* key (or a Tags & Labels-categorized entry) is
// tag-like; the name pattern covers spellings the dictionary has no entry
// for.
func (s *Service) TagLike(name string) bool {
	for _, index := range []*Index{s.resource, s.signal} {
		if entry, ok := index.Lookup(name); ok {
			return strings.HasPrefix(entry.Key, "tags.") ||
				strings.EqualFold(entry.Category, models.CategoryTags)
		}
	}
	return tagNamePattern.MatchString(name)
}

// Index is the alias lookup table for one dictionary domain.
type Index struct {
	domain  string
	entries []models.DictionaryEntry
	byAlias map[string]int // normalized alias -> entries offset
}

func newIndex(domain string) *Index {
	return &Index{
		domain:  domain,
		byAlias: make(map[string]int),
	}
}

// add registers an entry under its key and every alias. First registration
// of an alias wins.
func (ix *Index) add(entry models.DictionaryEntry) {
	ix.entries = append(ix.entries, entry)
	offset := len(ix.entries) - 1

	names := append([]string{entry.Key}, entry.Aliases...)
	for _, name := range names {
		normalized := NormalizeName(name)
		if _, exists := ix.byAlias[normalized]; !exists {
			ix.byAlias[normalized] = offset
		}
	}
}

// Lookup resolves a field name to its dictionary entry.
func (ix *Index) Lookup(name string) (*models.DictionaryEntry, bool) {
	offset, ok := ix.byAlias[NormalizeName(name)]
	if !ok {
		return nil, false
	}
	return &ix.entries[offset], true
}

// NormalizeName folds a field name for matching: lowercase, with hyphens and
// spaces treated as underscores.
func NormalizeName(name string) string {
	folded := strings.ToLower(strings.TrimSpace(name))
	folded = strings.ReplaceAll(folded, "-", "_")
	folded = strings.ReplaceAll(folded, " ", "_")
	return folded
}

// dictionaryFiles lists the yaml files in dir in stable order.
func dictionaryFiles(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("dictionary directory %s is not readable: %w", dir, err)
	}

	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to list dictionary directory %s: %w", dir, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}
