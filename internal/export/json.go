package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

const documentVersion = "1.0"

func WriteJSON[T any](w io.Writer, resource string, records []T, now time.Time) error {
	doc := Document{
		Version:    documentVersion,
		Resource:   resource,
		ExportedAt: now.UTC(),
		Count:      len(records),
		Records:    make([]json.RawMessage, 0, len(records)),
	}

	for _, r := range records {
		raw, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		doc.Records = append(doc.Records, raw)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// ReadJSON accepts an export document or a bare array of records.
func ReadJSON(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read JSON: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err == nil {
		return Document{Version: documentVersion, Count: len(records), Records: records}, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode export document: %w", err)
	}
	return doc, nil
}
