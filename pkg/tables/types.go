// ABOUTME: Core identifiers and row types for tree sequence tables
// ABOUTME: Defines the closed set of table kinds and the null row sentinel

package tables

import "fmt"

// RowID identifies a row within a single table. IDs are table-scoped,
// zero-based, and assigned sequentially as rows are appended.
type RowID int32

// NullRowID is the sentinel for "no row". It never refers to a real row.
const NullRowID RowID = -1

// IsNull reports whether the id is the null sentinel.
func (id RowID) IsNull() bool { return id == NullRowID }

// TableKind enumerates the tables of a tree sequence. The set is closed:
// seven metadata-bearing tables plus the provenance table.
type TableKind uint8

const (
	KindNode TableKind = iota
	KindEdge
	KindSite
	KindMutation
	KindIndividual
	KindPopulation
	KindMigration
	KindProvenance
)

var kindNames = [...]string{
	KindNode:       "node",
	KindEdge:       "edge",
	KindSite:       "site",
	KindMutation:   "mutation",
	KindIndividual: "individual",
	KindPopulation: "population",
	KindMigration:  "migration",
	KindProvenance: "provenance",
}

// String returns the lowercase table name.
func (k TableKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("tablekind(%d)", uint8(k))
}

// HasMetadata reports whether rows of this table carry a metadata column.
// Provenance rows do not.
func (k TableKind) HasMetadata() bool { return k != KindProvenance }

// ParseTableKind maps a table name to its kind.
func ParseTableKind(name string) (TableKind, error) {
	for k, n := range kindNames {
		if n == name {
			return TableKind(k), nil
		}
	}
	return 0, fmt.Errorf("tables: unknown table kind %q", name)
}

// MetadataKinds lists the table kinds that carry a metadata column,
// in canonical order.
func MetadataKinds() []TableKind {
	return []TableKind{
		KindNode, KindEdge, KindSite, KindMutation,
		KindIndividual, KindPopulation, KindMigration,
	}
}

// NodeRow holds the fixed columns of a node: a genome observed at some
// time in the past, possibly belonging to an individual and a population.
type NodeRow struct {
	Flags      uint32
	Time       float64
	Population RowID
	Individual RowID
}

// EdgeRow records that Child inherits the genome interval [Left, Right)
// from Parent.
type EdgeRow struct {
	Left   float64
	Right  float64
	Parent RowID
	Child  RowID
}

// SiteRow fixes a genome position and its ancestral state.
type SiteRow struct {
	Position       float64
	AncestralState string
}

// MutationRow records a state change at a site along the edge above Node.
// Parent is the preceding mutation at the same site, or NullRowID.
type MutationRow struct {
	Site         RowID
	Node         RowID
	Parent       RowID
	Time         float64
	DerivedState string
}

// IndividualRow groups nodes into a single organism with an optional
// spatial location and parent individuals.
type IndividualRow struct {
	Flags    uint32
	Location []float64
	Parents  []RowID
}

// PopulationRow has no fixed columns; populations exist to be referenced
// by nodes and migrations, and to carry metadata.
type PopulationRow struct{}

// MigrationRow records the movement of the interval [Left, Right) of
// Node's genome from population Source to Dest at Time.
type MigrationRow struct {
	Left   float64
	Right  float64
	Node   RowID
	Source RowID
	Dest   RowID
	Time   float64
}
