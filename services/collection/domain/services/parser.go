// Package services contains stateless domain services for the collection
// bounded context: input format detection and snapshot validation.
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mamecholeye-lab/Rmam/services/collection/domain"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
)

// Format names the input shape ParseInput detected.
type Format string

const (
	FormatJSONArray  Format = "json_array"
	FormatJSONObject Format = "json_object"
	FormatSnapshot   Format = "snapshot"
	FormatLines      Format = "lines"
)

// Payload is the result of ParseInput. Exactly one of Records and Snapshot is
// meaningful: Snapshot is set only for FormatSnapshot.
type Payload struct {
	Format   Format
	Records  []models.Record
	Snapshot *models.Snapshot
	// TimestampErr is set when a snapshot's timestamp could not be read.
	// The snapshot is still restored, with a zero timestamp.
	TimestampErr error
}

// ParseInput detects the shape of raw import text:
//
//   - a JSON array of strings or {name,url,group} objects
//   - a JSON object with a "websites" array (a saved or exported snapshot)
//   - any other JSON object, read as name → url or name → {url,group}
//   - otherwise, one "name,url,group" record per non-blank line
//
// Text that looks like JSON but does not parse is read as lines.
func ParseInput(raw []byte) (Payload, error) {
	text := bytes.TrimSpace(raw)
	if len(text) == 0 {
		return Payload{}, domain.ErrEmptyInput
	}

	switch text[0] {
	case '[':
		if records, err := parseArray(text); err == nil {
			return Payload{Format: FormatJSONArray, Records: records}, nil
		}
	case '{':
		if payload, ok, err := parseSnapshot(text); ok {
			if err != nil {
				return Payload{}, err
			}
			return payload, nil
		}
		if records, err := parseObject(text); err == nil {
			return Payload{Format: FormatJSONObject, Records: records}, nil
		}
	}

	return Payload{Format: FormatLines, Records: parseLines(string(text))}, nil
}

func parseArray(text []byte) ([]models.Record, error) {
	var elems []json.RawMessage
	if err := unmarshal(text, &elems); err != nil {
		return nil, err
	}
	records := make([]models.Record, len(elems))
	for i, elem := range elems {
		var v any
		if err := unmarshal(elem, &v); err != nil {
			return nil, err
		}
		switch val := v.(type) {
		case map[string]any:
			r := models.Record{
				Name:  scalar(val["name"]),
				URL:   scalar(val["url"]),
				Group: scalar(val["group"]),
			}
			if r.Name == "" {
				r.Name = r.URL
			}
			records[i] = r
		default:
			records[i] = models.Record{Name: scalar(val)}
		}
	}
	return records, nil
}

// parseSnapshot reports ok when text is an object carrying a "websites" array.
func parseSnapshot(text []byte) (Payload, bool, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(text, &doc); err != nil {
		return Payload{}, false, nil
	}
	websites, found := doc["websites"]
	if !found || !bytes.HasPrefix(bytes.TrimSpace(websites), []byte("[")) {
		return Payload{}, false, nil
	}

	var snap models.Snapshot
	if err := json.Unmarshal(websites, &snap.Websites); err != nil {
		return Payload{}, true, fmt.Errorf("%w: websites: %w", domain.ErrInvalidSnapshot, err)
	}
	if groups, ok := doc["groups"]; ok {
		if err := json.Unmarshal(groups, &snap.Groups); err != nil {
			return Payload{}, true, fmt.Errorf("%w: groups: %w", domain.ErrInvalidSnapshot, err)
		}
	}
	payload := Payload{Format: FormatSnapshot, Snapshot: &snap}
	if ts, ok := doc["timestamp"]; ok {
		if err := json.Unmarshal(ts, &snap.Timestamp); err != nil {
			snap.Timestamp = time.Time{}
			payload.TimestampErr = fmt.Errorf("snapshot timestamp %s: %w", ts, err)
		}
	}
	return payload, true, nil
}

// parseObject keeps the key order of the document, which encoding/json maps lose.
func parseObject(text []byte) ([]models.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}

	records := make([]models.Record, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		r := models.Record{Name: key}
		switch val := v.(type) {
		case map[string]any:
			r.URL = scalar(val["url"])
			r.Group = scalar(val["group"])
		default:
			r.URL = scalar(val)
		}
		records = append(records, r)
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after object")
	}
	return records, nil
}

func parseLines(text string) []models.Record {
	records := make([]models.Record, 0)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		r := models.Record{Name: parts[0]}
		if len(parts) > 1 {
			r.URL = parts[1]
		}
		if len(parts) > 2 {
			r.Group = parts[2]
		}
		records = append(records, r)
	}
	return records
}

func unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after value")
	}
	return nil
}

// scalar renders strings, numbers and true as text; anything else is missing.
func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
	}
	return ""
}
