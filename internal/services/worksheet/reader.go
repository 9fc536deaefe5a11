package worksheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/models"
)

// Reader parses the raw worksheet CSV into field records. The worksheet
// column contract is fixed: application, type, category, field and an
// optional semicolon-separated values column, identified by header name in
// any order.
type Reader struct {
	logger arbor.ILogger
}

// NewReader creates a new worksheet reader
func NewReader(logger arbor.ILogger) *Reader {
	return &Reader{
		logger: logger,
	}
}

// Read parses the worksheet at path. Rows missing an application or category
// and rows with an unrecognized type are rejected with a warning and counted;
// the parse continues. Returns the accepted records and the rejected count.
func (r *Reader) Read(path string) ([]models.FieldRecord, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open worksheet %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read worksheet header from %s: %w", path, err)
	}

	columns := make(map[string]int)
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"application", "category", "field"} {
		if _, ok := columns[required]; !ok {
			return nil, 0, fmt.Errorf("worksheet %s has no %q column", path, required)
		}
	}

	var records []models.FieldRecord
	rejected := 0
	line := 1

	for {
		row, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: skip and keep parsing
			r.logger.Warn().Err(err).Int("line", line).Msg("Skipping malformed worksheet row")
			rejected++
			continue
		}

		record := models.FieldRecord{
			Application: cell(row, columns, "application"),
			Kind:        strings.ToLower(cell(row, columns, "type")),
			Category:    cell(row, columns, "category"),
			Field:       cell(row, columns, "field"),
		}
		if record.Kind == "" {
			record.Kind = models.RecordKindMetadata
		}

		if record.Application == "" || record.Category == "" {
			r.logger.Warn().
				Int("line", line).
				Str("field", record.Field).
				Msg("Rejecting worksheet row with missing application or category")
			rejected++
			continue
		}
		if record.Kind != models.RecordKindMetadata && record.Kind != models.RecordKindFacet {
			r.logger.Warn().
				Int("line", line).
				Str("type", record.Kind).
				Msg("Rejecting worksheet row with unknown type")
			rejected++
			continue
		}
		if record.Field == "" {
			r.logger.Warn().Int("line", line).Msg("Rejecting worksheet row with empty field name")
			rejected++
			continue
		}

		if values := cell(row, columns, "values"); values != "" {
			for _, v := range strings.Split(values, ";") {
				if v = strings.TrimSpace(v); v != "" {
					record.Values = append(record.Values, v)
				}
			}
		}

		records = append(records, record)
	}

	r.logger.Info().
		Str("path", path).
		Int("records", len(records)).
		Int("rejected", rejected).
		Msg("Worksheet parsed")

	return records, rejected, nil
}

// cell returns the trimmed value of a named column, or "" when the column is
// absent or the row is too short.
func cell(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
