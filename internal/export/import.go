package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"site-admin/internal/domain"
)

// Creator creates one record from raw form values.
type Creator interface {
	Create(ctx context.Context, resource string, values map[string]string) (domain.Entity, error)
}

type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

type ImportResult struct {
	Created []string
	Failed  []RowError
}

type Importer struct {
	creator  Creator
	strategy ErrorStrategy
}

func NewImporter(creator Creator, strategy ErrorStrategy) *Importer {
	if strategy == "" {
		strategy = ErrorStrategyStop
	}
	return &Importer{
		creator:  creator,
		strategy: strategy,
	}
}

func (i *Importer) Import(ctx context.Context, r io.Reader, format Format, resource string, schema domain.Schema) (*ImportResult, error) {
	var records []map[string]string

	switch format {
	case FormatCSV:
		t, err := ReadCSV(r)
		if err != nil {
			return nil, err
		}
		records, err = RecordsFromTable(t, schema)
		if err != nil {
			return nil, err
		}
	case FormatJSON:
		doc, err := ReadJSON(r)
		if err != nil {
			return nil, err
		}
		if doc.Resource != "" && doc.Resource != resource {
			return nil, fmt.Errorf("document holds %s, not %s", doc.Resource, resource)
		}
		records, err = RecordsFromDocument(doc, schema)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("cannot import from %s", format)
	}

	result := &ImportResult{}
	for n, values := range records {
		entity, err := i.creator.Create(ctx, resource, values)
		if err != nil {
			rowErr := RowError{Row: n + 1, Err: err}
			if i.strategy == ErrorStrategyStop {
				return result, rowErr
			}
			result.Failed = append(result.Failed, rowErr)
			continue
		}
		result.Created = append(result.Created, entity.Key())
	}

	return result, nil
}

// RecordsFromTable matches CSV headers to fields by name or label.
// Columns that match no field are ignored.
func RecordsFromTable(t Table, schema domain.Schema) ([]map[string]string, error) {
	index := make(map[int]string)
	for col, h := range t.Headers {
		h = strings.TrimSpace(h)
		for _, f := range schema.Fields {
			if strings.EqualFold(h, f.Name) || strings.EqualFold(h, f.Label) {
				index[col] = f.Name
				break
			}
		}
	}
	if len(index) == 0 {
		return nil, fmt.Errorf("no CSV header matches a form field")
	}

	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		values := make(map[string]string, len(index))
		for col, name := range index {
			if col < len(row) {
				values[name] = row[col]
			}
		}
		records = append(records, values)
	}
	return records, nil
}

func RecordsFromDocument(doc Document, schema domain.Schema) ([]map[string]string, error) {
	records := make([]map[string]string, 0, len(doc.Records))
	for n, raw := range doc.Records {
		var record map[string]any
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("record %d: %w", n+1, err)
		}
		records = append(records, schema.Values(record))
	}
	return records, nil
}
