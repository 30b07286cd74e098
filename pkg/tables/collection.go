// ABOUTME: TableCollection bundles the tables that make up one tree sequence
// ABOUTME: Provides kind-indexed access for generic consumers

package tables

import "fmt"

// MetadataTable is the narrow view of a table that metadata consumers need:
// its kind, row count, and per-row or scanning access to raw metadata bytes.
type MetadataTable interface {
	Kind() TableKind
	NumRows() int
	MetadataBytes(id RowID) ([]byte, bool)
	ScanMetadata(fn func(id RowID, metadata []byte) bool)
	MetadataSchema() string
	SetMetadataSchema(schema string)
}

// TableCollection holds one table of each kind plus the length of the
// coordinate system the genome intervals live in.
type TableCollection struct {
	SequenceLength float64

	Nodes       NodeTable
	Edges       EdgeTable
	Sites       SiteTable
	Mutations   MutationTable
	Individuals IndividualTable
	Populations PopulationTable
	Migrations  MigrationTable
	Provenances ProvenanceTable
}

// NewTableCollection creates an empty collection over a genome of the
// given length.
func NewTableCollection(sequenceLength float64) *TableCollection {
	return &TableCollection{SequenceLength: sequenceLength}
}

// Table returns the metadata-bearing table of the given kind.
// Requesting KindProvenance (which has no metadata column) or an unknown
// kind is a programming error and panics.
func (tc *TableCollection) Table(kind TableKind) MetadataTable {
	switch kind {
	case KindNode:
		return &tc.Nodes
	case KindEdge:
		return &tc.Edges
	case KindSite:
		return &tc.Sites
	case KindMutation:
		return &tc.Mutations
	case KindIndividual:
		return &tc.Individuals
	case KindPopulation:
		return &tc.Populations
	case KindMigration:
		return &tc.Migrations
	default:
		panic(fmt.Sprintf("tables: %s table has no metadata column", kind))
	}
}

// RowCounts returns the number of rows in every table, keyed by kind name.
func (tc *TableCollection) RowCounts() map[string]int {
	counts := make(map[string]int, 8)
	for _, kind := range MetadataKinds() {
		counts[kind.String()] = tc.Table(kind).NumRows()
	}
	counts[KindProvenance.String()] = tc.Provenances.NumRows()
	return counts
}
