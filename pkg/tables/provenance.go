// ABOUTME: Provenance table recording how a tree sequence was produced
// ABOUTME: Rows hold a timestamp and a self-describing JSON record

package tables

import (
	"encoding/json"
	"runtime"
	"time"
)

// ProvenanceRow records one step in the history of a table collection:
// when it happened and a JSON document describing what was done.
// Provenance rows carry no metadata column.
type ProvenanceRow struct {
	Timestamp string
	Record    string
}

// ProvenanceTable stores provenance rows.
type ProvenanceTable struct {
	rows []ProvenanceRow
}

// Kind returns KindProvenance.
func (t *ProvenanceTable) Kind() TableKind { return KindProvenance }

// Add appends a row and returns its id.
func (t *ProvenanceTable) Add(row ProvenanceRow) RowID {
	t.rows = append(t.rows, row)
	return RowID(len(t.rows) - 1)
}

// Get returns the row and whether it exists.
func (t *ProvenanceTable) Get(id RowID) (ProvenanceRow, bool) {
	if id < 0 || int(id) >= len(t.rows) {
		return ProvenanceRow{}, false
	}
	return t.rows[id], true
}

// NumRows returns the number of provenance rows.
func (t *ProvenanceTable) NumRows() int { return len(t.rows) }

// Rows returns a copy of all provenance rows in id order.
func (t *ProvenanceTable) Rows() []ProvenanceRow {
	out := make([]ProvenanceRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// NewProvenanceRow builds a timestamped provenance row for the named
// software. Parameters may be any JSON-encodable value or nil.
func NewProvenanceRow(software, version string, parameters any) (ProvenanceRow, error) {
	record := map[string]any{
		"schema_version": "1.0.0",
		"software": map[string]string{
			"name":    software,
			"version": version,
		},
		"environment": map[string]string{
			"os":   runtime.GOOS,
			"arch": runtime.GOARCH,
		},
	}
	if parameters != nil {
		record["parameters"] = parameters
	}
	doc, err := json.Marshal(record)
	if err != nil {
		return ProvenanceRow{}, err
	}
	return ProvenanceRow{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Record:    string(doc),
	}, nil
}
