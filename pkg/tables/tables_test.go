// ABOUTME: Tests for columnar tables and the metadata byte column
// ABOUTME: Verifies row identity, absence semantics, and scan contracts

package tables

import (
	"bytes"
	"errors"
	"testing"
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	var tbl NodeTable

	for i := 0; i < 5; i++ {
		id, err := tbl.Add(NodeRow{Time: float64(i), Population: NullRowID, Individual: NullRowID}, nil)
		if err != nil {
			t.Fatalf("Failed to add node: %v", err)
		}
		if id != RowID(i) {
			t.Errorf("Expected id %d, got %d", i, id)
		}
	}

	if tbl.NumRows() != 5 {
		t.Errorf("Expected 5 rows, got %d", tbl.NumRows())
	}

	row, ok := tbl.Get(3)
	if !ok {
		t.Fatal("Row 3 should exist")
	}
	if row.Time != 3 {
		t.Errorf("Expected time 3, got %g", row.Time)
	}
}

func TestNullRowID(t *testing.T) {
	var tbl MutationTable
	tbl.Add(MutationRow{Site: 0, Node: 0, Parent: NullRowID}, nil)

	if !NullRowID.IsNull() {
		t.Error("NullRowID should be null")
	}
	if _, ok := tbl.Get(NullRowID); ok {
		t.Error("NullRowID must never refer to a real row")
	}
	if _, ok := tbl.MetadataBytes(NullRowID); ok {
		t.Error("NullRowID must have no metadata")
	}
}

func TestMetadataBytesDistinguishesAbsence(t *testing.T) {
	var tbl MutationTable

	withMD, _ := tbl.Add(MutationRow{DerivedState: "T"}, []byte("payload"))
	empty, _ := tbl.Add(MutationRow{DerivedState: "G"}, nil)

	// Existing row with metadata.
	raw, ok := tbl.MetadataBytes(withMD)
	if !ok {
		t.Fatal("Row with metadata should exist")
	}
	if !bytes.Equal(raw, []byte("payload")) {
		t.Errorf("Expected 'payload', got %q", raw)
	}

	// Existing row with empty metadata: exists, zero bytes.
	raw, ok = tbl.MetadataBytes(empty)
	if !ok {
		t.Fatal("Row with empty metadata should still exist")
	}
	if len(raw) != 0 {
		t.Errorf("Expected empty metadata, got %q", raw)
	}

	// Nonexistent row: does not exist.
	if _, ok := tbl.MetadataBytes(99); ok {
		t.Error("Nonexistent row should report !ok")
	}
}

func TestScanMetadataOrderAndViews(t *testing.T) {
	var tbl SiteTable
	payloads := [][]byte{[]byte("a"), nil, []byte("ccc")}
	for i, md := range payloads {
		if _, err := tbl.Add(SiteRow{Position: float64(i)}, md); err != nil {
			t.Fatalf("Failed to add site: %v", err)
		}
	}

	var ids []RowID
	var got [][]byte
	tbl.ScanMetadata(func(id RowID, raw []byte) bool {
		ids = append(ids, id)
		// Views are only valid inside the callback; copy.
		got = append(got, append([]byte(nil), raw...))
		return true
	})

	if len(ids) != 3 {
		t.Fatalf("Expected 3 rows scanned, got %d", len(ids))
	}
	for i := range ids {
		if ids[i] != RowID(i) {
			t.Errorf("Expected row id %d at position %d, got %d", i, i, ids[i])
		}
		if !bytes.Equal(got[i], payloads[i]) {
			t.Errorf("Row %d: expected %q, got %q", i, payloads[i], got[i])
		}
	}
}

func TestScanMetadataEarlyStop(t *testing.T) {
	var tbl PopulationTable
	for i := 0; i < 10; i++ {
		tbl.Add(PopulationRow{}, []byte{byte(i)})
	}

	seen := 0
	tbl.ScanMetadata(func(id RowID, raw []byte) bool {
		seen++
		return id < 2
	})

	if seen != 3 {
		t.Errorf("Expected scan to stop after 3 rows, saw %d", seen)
	}
}

func TestEdgeIntervalValidation(t *testing.T) {
	var tbl EdgeTable

	if _, err := tbl.Add(EdgeRow{Left: 10, Right: 5, Parent: 0, Child: 1}, nil); !errors.Is(err, ErrBadInterval) {
		t.Errorf("Expected ErrBadInterval, got %v", err)
	}
	if _, err := tbl.Add(EdgeRow{Left: 3, Right: 3, Parent: 0, Child: 1}, nil); !errors.Is(err, ErrBadInterval) {
		t.Errorf("Expected ErrBadInterval for empty interval, got %v", err)
	}

	id, err := tbl.Add(EdgeRow{Left: 0, Right: 100, Parent: 0, Child: 1}, nil)
	if err != nil {
		t.Fatalf("Valid edge rejected: %v", err)
	}
	if id != 0 {
		t.Errorf("Failed adds must not consume row ids, got id %d", id)
	}
}

func TestSitePositionValidation(t *testing.T) {
	var tbl SiteTable
	if _, err := tbl.Add(SiteRow{Position: -1}, nil); !errors.Is(err, ErrNegativePosition) {
		t.Errorf("Expected ErrNegativePosition, got %v", err)
	}
}

func TestMetadataSchema(t *testing.T) {
	var tbl IndividualTable
	if tbl.MetadataSchema() != "" {
		t.Error("Fresh table should have no schema")
	}
	tbl.SetMetadataSchema(`{"codec":"json"}`)
	if tbl.MetadataSchema() != `{"codec":"json"}` {
		t.Errorf("Schema roundtrip failed: %q", tbl.MetadataSchema())
	}
}

func TestTableCollection(t *testing.T) {
	tc := NewTableCollection(1000)

	for _, kind := range MetadataKinds() {
		tbl := tc.Table(kind)
		if tbl.Kind() != kind {
			t.Errorf("Table(%s) returned a %s table", kind, tbl.Kind())
		}
		if tbl.NumRows() != 0 {
			t.Errorf("Fresh %s table should be empty", kind)
		}
	}

	tc.Nodes.Add(NodeRow{Population: NullRowID, Individual: NullRowID}, nil)
	counts := tc.RowCounts()
	if counts["node"] != 1 {
		t.Errorf("Expected 1 node, got %d", counts["node"])
	}
	if counts["provenance"] != 0 {
		t.Errorf("Expected 0 provenances, got %d", counts["provenance"])
	}
}

func TestTableCollectionProvenancePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Table(KindProvenance) should panic")
		}
	}()
	NewTableCollection(1).Table(KindProvenance)
}

func TestParseTableKind(t *testing.T) {
	for _, kind := range MetadataKinds() {
		parsed, err := ParseTableKind(kind.String())
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", kind, err)
		}
		if parsed != kind {
			t.Errorf("Expected %v, got %v", kind, parsed)
		}
	}
	if _, err := ParseTableKind("chromosome"); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestProvenanceRow(t *testing.T) {
	var tbl ProvenanceTable
	row, err := NewProvenanceRow("treeseq-test", "0.1.0", map[string]int{"seed": 42})
	if err != nil {
		t.Fatalf("Failed to build provenance row: %v", err)
	}
	if row.Timestamp == "" {
		t.Error("Provenance row should be timestamped")
	}

	id := tbl.Add(row)
	got, ok := tbl.Get(id)
	if !ok {
		t.Fatal("Provenance row should exist")
	}
	if got.Record != row.Record {
		t.Errorf("Record mismatch: %q vs %q", got.Record, row.Record)
	}
	if _, ok := tbl.Get(99); ok {
		t.Error("Nonexistent provenance row should report !ok")
	}
}
