// ABOUTME: Ragged metadata byte column shared by all metadata-bearing tables
// ABOUTME: Stores per-row blobs as offsets into one flat buffer

package tables

// metaColumn is a ragged byte column: row i's metadata occupies
// data[offsets[i]:offsets[i+1]]. A zero-length entry is legal and is how
// "no metadata" is stored for a row that exists.
//
// The column also holds the table's schema descriptor string, an opaque
// document for external tooling; nothing here validates payloads against it.
type metaColumn struct {
	offsets []uint32
	data    []byte
	schema  string
}

func (c *metaColumn) appendBytes(md []byte) {
	if c.offsets == nil {
		c.offsets = []uint32{0}
	}
	c.data = append(c.data, md...)
	c.offsets = append(c.offsets, uint32(len(c.data)))
}

// NumRows returns the number of rows in the table.
func (c *metaColumn) NumRows() int {
	if len(c.offsets) == 0 {
		return 0
	}
	return len(c.offsets) - 1
}

// MetadataBytes returns a view of the row's metadata bytes and whether the
// row exists. A row that exists with no metadata yields an empty slice and
// true; a nonexistent id (including NullRowID) yields nil and false.
//
// The returned slice aliases the column's storage and must not be mutated.
func (c *metaColumn) MetadataBytes(id RowID) ([]byte, bool) {
	if id < 0 || int(id) >= c.NumRows() {
		return nil, false
	}
	return c.data[c.offsets[id]:c.offsets[id+1]], true
}

// ScanMetadata walks every row in id order, passing the row id and a view
// of its metadata bytes (empty when the row has none). The view is valid
// only for the duration of the callback; callers must copy bytes they want
// to keep. Returning false stops the scan.
func (c *metaColumn) ScanMetadata(fn func(id RowID, metadata []byte) bool) {
	n := c.NumRows()
	for i := 0; i < n; i++ {
		if !fn(RowID(i), c.data[c.offsets[i]:c.offsets[i+1]]) {
			return
		}
	}
}

// SetMetadataSchema associates a schema descriptor document with the table.
func (c *metaColumn) SetMetadataSchema(schema string) { c.schema = schema }

// MetadataSchema returns the table's schema descriptor, or "" if unset.
func (c *metaColumn) MetadataSchema() string { return c.schema }
