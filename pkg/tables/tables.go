// ABOUTME: The seven metadata-bearing tables of a tree sequence
// ABOUTME: Append-only columnar storage with per-row opaque metadata

package tables

// NodeTable stores node rows.
type NodeTable struct {
	metaColumn
	rows []NodeRow
}

// Kind returns KindNode.
func (t *NodeTable) Kind() TableKind { return KindNode }

// Add appends a row with the given metadata bytes (may be empty) and
// returns its id.
func (t *NodeTable) Add(row NodeRow, metadata []byte) (RowID, error) {
	t.rows = append(t.rows, row)
	t.appendBytes(metadata)
	return RowID(len(t.rows) - 1), nil
}

// Get returns the row's fixed columns and whether the row exists.
func (t *NodeTable) Get(id RowID) (NodeRow, bool) {
	if id < 0 || int(id) >= len(t.rows) {
		return NodeRow{}, false
	}
	return t.rows[id], true
}

// EdgeTable stores edge rows.
type EdgeTable struct {
	metaColumn
	rows []EdgeRow
}

// Kind returns KindEdge.
func (t *EdgeTable) Kind() TableKind { return KindEdge }

// Add appends a row and returns its id. The edge interval must be
// well-formed: Left < Right.
func (t *EdgeTable) Add(row EdgeRow, metadata []byte) (RowID, error) {
	if row.Left >= row.Right {
		return NullRowID, ErrBadInterval
	}
	t.rows = append(t.rows, row)
	t.appendBytes(metadata)
	return RowID(len(t.rows) - 1), nil
}

// Get returns the row's fixed columns and whether the row exists.
func (t *EdgeTable) Get(id RowID) (EdgeRow, bool) {
	if id < 0 || int(id) >= len(t.rows) {
		return EdgeRow{}, false
	}
	return t.rows[id], true
}

// SiteTable stores site rows.
type SiteTable struct {
	metaColumn
	rows []SiteRow
}

// Kind returns KindSite.
func (t *SiteTable) Kind() TableKind { return KindSite }

// Add appends a row and returns its id. The position must be non-negative.
func (t *SiteTable) Add(row SiteRow, metadata []byte) (RowID, error) {
	if row.Position < 0 {
		return NullRowID, ErrNegativePosition
	}
	t.rows = append(t.rows, row)
	t.appendBytes(metadata)
	return RowID(len(t.rows) - 1), nil
}

// Get returns the row's fixed columns and whether the row exists.
func (t *SiteTable) Get(id RowID) (SiteRow, bool) {
	if id < 0 || int(id) >= len(t.rows) {
		return SiteRow{}, false
	}
	return t.rows[id], true
}

// MutationTable stores mutation rows.
type MutationTable struct {
	metaColumn
	rows []MutationRow
}

// Kind returns KindMutation.
func (t *MutationTable) Kind() TableKind { return KindMutation }

// Add appends a row with the given metadata bytes and returns its id.
func (t *MutationTable) Add(row MutationRow, metadata []byte) (RowID, error) {
	t.rows = append(t.rows, row)
	t.appendBytes(metadata)
	return RowID(len(t.rows) - 1), nil
}

// Get returns the row's fixed columns and whether the row exists.
func (t *MutationTable) Get(id RowID) (MutationRow, bool) {
	if id < 0 || int(id) >= len(t.rows) {
		return MutationRow{}, false
	}
	return t.rows[id], true
}

// IndividualTable stores individual rows.
type IndividualTable struct {
	metaColumn
	rows []IndividualRow
}

// Kind returns KindIndividual.
func (t *IndividualTable) Kind() TableKind { return KindIndividual }

// Add appends a row with the given metadata bytes and returns its id.
func (t *IndividualTable) Add(row IndividualRow, metadata []byte) (RowID, error) {
	t.rows = append(t.rows, row)
	t.appendBytes(metadata)
	return RowID(len(t.rows) - 1), nil
}

// Get returns the row's fixed columns and whether the row exists.
func (t *IndividualTable) Get(id RowID) (IndividualRow, bool) {
	if id < 0 || int(id) >= len(t.rows) {
		return IndividualRow{}, false
	}
	return t.rows[id], true
}

// PopulationTable stores population rows. Populations carry no fixed
// columns; a row exists to be referenced and to hold metadata.
type PopulationTable struct {
	metaColumn
	count int
}

// Kind returns KindPopulation.
func (t *PopulationTable) Kind() TableKind { return KindPopulation }

// Add appends a row with the given metadata bytes and returns its id.
func (t *PopulationTable) Add(_ PopulationRow, metadata []byte) (RowID, error) {
	t.count++
	t.appendBytes(metadata)
	return RowID(t.count - 1), nil
}

// Get reports whether the row exists.
func (t *PopulationTable) Get(id RowID) (PopulationRow, bool) {
	if id < 0 || int(id) >= t.count {
		return PopulationRow{}, false
	}
	return PopulationRow{}, true
}

// MigrationTable stores migration rows.
type MigrationTable struct {
	metaColumn
	rows []MigrationRow
}

// Kind returns KindMigration.
func (t *MigrationTable) Kind() TableKind { return KindMigration }

// Add appends a row and returns its id. The interval must be well-formed.
func (t *MigrationTable) Add(row MigrationRow, metadata []byte) (RowID, error) {
	if row.Left >= row.Right {
		return NullRowID, ErrBadInterval
	}
	t.rows = append(t.rows, row)
	t.appendBytes(metadata)
	return RowID(len(t.rows) - 1), nil
}

// Get returns the row's fixed columns and whether the row exists.
func (t *MigrationTable) Get(id RowID) (MigrationRow, bool) {
	if id < 0 || int(id) >= len(t.rows) {
		return MigrationRow{}, false
	}
	return t.rows[id], true
}
