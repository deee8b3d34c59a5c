package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"site-admin/internal/listview"
)

type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unsupported format %q (use csv, json or markdown)", s)
}

func (f Format) Ext() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// Filename is "<resource>-YYYY-MM-DD.<ext>".
func Filename(resource string, f Format, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", resource, now.Format("2006-01-02"), f.Ext())
}

// Table is what a list shows: one header per visible column, one string per cell.
type Table struct {
	Resource string
	Headers  []string
	Rows     [][]string
}

func FromColumns[T any](resource string, cols []listview.Column[T], rows []T) Table {
	t := Table{
		Resource: resource,
		Headers:  listview.Titles(cols),
		Rows:     make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, listview.Cells(cols, r))
	}
	return t
}

// Document is the JSON export envelope. Records keep the full API shape.
type Document struct {
	Version    string            `json:"version"`
	Resource   string            `json:"resource"`
	ExportedAt time.Time         `json:"exported_at"`
	Count      int               `json:"count"`
	Records    []json.RawMessage `json:"records"`
}

type ErrorStrategy string

const (
	ErrorStrategyStop ErrorStrategy = "stop"
	ErrorStrategySkip ErrorStrategy = "skip"
)
