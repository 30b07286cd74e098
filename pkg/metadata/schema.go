// ABOUTME: Derives a JSON schema descriptor document from a payload type
// ABOUTME: For external tooling only; payloads are never validated against it

package metadata

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// SchemaDescriptor derives a JSON-schema-like document describing T as
// encoded by the named strategy, suitable for a table's schema descriptor
// (tables.MetadataTable.SetMetadataSchema). The document is informational:
// nothing in this package checks payloads against it.
func SchemaDescriptor[T any](strategy string) (string, error) {
	codec, err := codecForStrategy(strategy)
	if err != nil {
		return "", err
	}
	doc := map[string]any{
		"codec": codec.Name(),
	}
	for k, v := range describeType(reflect.TypeOf((*T)(nil)).Elem()) {
		doc[k] = v
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("metadata: schema descriptor: %w", err)
	}
	return string(out), nil
}

func describeType(t reflect.Type) map[string]any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Slice, reflect.Array:
		return map[string]any{"type": "array", "items": describeType(t.Elem())}
	case reflect.Struct:
		props := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			props[fieldName(f)] = describeType(f.Type)
		}
		return map[string]any{
			"type":                 "object",
			"properties":           props,
			"additionalProperties": false,
		}
	default:
		return map[string]any{"type": "object"}
	}
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
