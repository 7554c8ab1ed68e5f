package models

import (
	"encoding/json"
	"slices"
	"testing"
	"time"
)

func TestSnapshot_RoundTripIsLossless(t *testing.T) {
	c := NewCollection()
	c.Import([]Record{
		{Name: "a", URL: "https://a.example", Group: "G1"},
		{Name: "b"},
		{Name: "c", Group: "G2"},
	})
	if err := c.AssignGroup(2, "Unregistered"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := c.CreateGroup("Empty"); err != nil {
		t.Fatalf("create group: %v", err)
	}

	at := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	data, err := json.Marshal(c.Snapshot(at))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	restored := RestoreCollection(decoded)

	if !slices.Equal(restored.Items(), c.Items()) {
		t.Errorf("items: got %+v, want %+v", restored.Items(), c.Items())
	}
	if !slices.Equal(restored.Groups(), c.Groups()) {
		t.Errorf("groups: got %v, want %v", restored.Groups(), c.Groups())
	}
	if !decoded.Timestamp.Equal(at) {
		t.Errorf("timestamp: got %v, want %v", decoded.Timestamp, at)
	}
}

func TestSnapshot_JSONFieldNames(t *testing.T) {
	c := NewCollection()
	c.Import([]Record{{Name: "a"}})

	data, err := json.Marshal(c.Snapshot(time.Now()))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	for _, field := range []string{"websites", "groups", "timestamp"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}

	site := raw["websites"].([]any)[0].(map[string]any)
	for _, field := range []string{"id", "name", "url", "group", "status"} {
		if _, ok := site[field]; !ok {
			t.Errorf("expected item field %q not found in: %s", field, data)
		}
	}
}

func TestSnapshot_EmptyCollectionEncodesArrays(t *testing.T) {
	data, err := json.Marshal(NewCollection().Snapshot(time.Now()))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	if _, ok := raw["websites"].([]any); !ok {
		t.Errorf("websites must encode as an array, got %s", data)
	}
	if _, ok := raw["groups"].([]any); !ok {
		t.Errorf("groups must encode as an array, got %s", data)
	}
}

func TestCollection_Export(t *testing.T) {
	c := NewCollection()
	c.Import([]Record{{Group: "A"}, {Group: "B"}, {}})
	at := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	e := c.Export(at)
	if e.Stats.Total != 3 || e.Stats.Groups != 3 {
		t.Fatalf("unexpected stats: %+v", e.Stats)
	}
	if !e.Exported.Equal(at) {
		t.Fatalf("expected exported %v, got %v", at, e.Exported)
	}
	if len(e.Websites) != 3 {
		t.Fatalf("expected 3 websites, got %d", len(e.Websites))
	}
}
