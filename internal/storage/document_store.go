package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
	"gopkg.in/yaml.v3"

	"github.com/ternarybob/ordino/internal/models"
)

// DocumentStore reads and writes structure documents as YAML flat files in
// one output directory. File names follow the
// {variant}_{kind}_structure.yaml convention, so a full pipeline run leaves
// six documents behind. Writes are wholesale overwrites; documents are never
// edited in place.
type DocumentStore struct {
	dir    string
	logger arbor.ILogger
}

// NewDocumentStore creates a document store rooted at dir.
func NewDocumentStore(dir string, logger arbor.ILogger) *DocumentStore {
	return &DocumentStore{
		dir:    dir,
		logger: logger,
	}
}

// Path returns the on-disk path for a (variant, kind) document.
func (s *DocumentStore) Path(variant, kind string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s_structure.yaml", variant, kind))
}

// Load reads and parses one structure document. A missing file is reported
// with the file name so the operator knows which stage has not run yet.
func (s *DocumentStore) Load(variant, kind string) (*models.StructureDocument, error) {
	path := s.Path(variant, kind)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("required input document %s is missing: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	var doc models.StructureDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}

	return &doc, nil
}

// Save serializes one structure document in its canonical order and writes
// it wholesale. Given the same document, the output bytes are identical on
// every call, which keeps pipeline re-runs idempotent.
func (s *DocumentStore) Save(doc *models.StructureDocument) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", s.dir, err)
	}

	doc.Sort()

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize %s %s document: %w", doc.Variant, doc.Kind, err)
	}

	path := s.Path(doc.Variant, doc.Kind)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}

	s.logger.Info().
		Str("path", path).
		Int("applications", len(doc.Applications)).
		Msg("Structure document written")

	return nil
}
