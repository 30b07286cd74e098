// ABOUTME: Tests for derived schema descriptor documents
// ABOUTME: Verifies field naming, type mapping, and strategy validation

package metadata

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSchemaDescriptor(t *testing.T) {
	doc, err := SchemaDescriptor[effect](StrategyJSON)
	if err != nil {
		t.Fatalf("Failed to derive descriptor: %v", err)
	}

	var parsed struct {
		Codec                string                    `json:"codec"`
		Type                 string                    `json:"type"`
		Properties           map[string]map[string]any `json:"properties"`
		AdditionalProperties bool                      `json:"additionalProperties"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("Descriptor is not valid JSON: %v", err)
	}

	if parsed.Codec != "json" {
		t.Errorf("Expected codec 'json', got %q", parsed.Codec)
	}
	if parsed.Type != "object" {
		t.Errorf("Expected type 'object', got %q", parsed.Type)
	}
	if parsed.AdditionalProperties {
		t.Error("Descriptor should close the property set")
	}
	// json tags name the fields.
	if got := parsed.Properties["effect_size"]["type"]; got != "number" {
		t.Errorf("Expected effect_size type 'number', got %v", got)
	}
	if got := parsed.Properties["dominance"]["type"]; got != "number" {
		t.Errorf("Expected dominance type 'number', got %v", got)
	}
}

func TestSchemaDescriptorTypes(t *testing.T) {
	type sample struct {
		Name   string    `json:"name"`
		Count  int       `json:"count"`
		Flag   bool      `json:"flag"`
		Scores []float64 `json:"scores"`
	}

	doc, err := SchemaDescriptor[sample](StrategyBinary)
	if err != nil {
		t.Fatalf("Failed to derive descriptor: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("Descriptor is not valid JSON: %v", err)
	}
	if parsed["codec"] != "binary" {
		t.Errorf("Expected codec 'binary', got %v", parsed["codec"])
	}

	props := parsed["properties"].(map[string]any)
	expect := map[string]string{
		"name":   "string",
		"count":  "integer",
		"flag":   "boolean",
		"scores": "array",
	}
	for field, want := range expect {
		prop, ok := props[field].(map[string]any)
		if !ok {
			t.Fatalf("Missing property %q", field)
		}
		if prop["type"] != want {
			t.Errorf("Field %q: expected type %q, got %v", field, want, prop["type"])
		}
	}
}

func TestSchemaDescriptorValidatesStrategy(t *testing.T) {
	if _, err := SchemaDescriptor[effect](""); !errors.Is(err, ErrMissingSerializer) {
		t.Errorf("Expected ErrMissingSerializer, got %v", err)
	}

	_, err := SchemaDescriptor[effect]("xml")
	var unsupported *UnsupportedSerializerError
	if !errors.As(err, &unsupported) {
		t.Errorf("Expected UnsupportedSerializerError, got %v", err)
	}
}
