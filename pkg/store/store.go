// ABOUTME: Save and load of a table collection as one treeseq file
// ABOUTME: Snappy-compressed CRC32-framed section per table plus a file UUID

package store

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/coalescent/treeseq/pkg/tables"
)

// Info describes a loaded file.
type Info struct {
	UUID    uuid.UUID
	Version uint32
}

// sectionOrder fixes the on-disk order of table sections.
var sectionOrder = []tables.TableKind{
	tables.KindNode, tables.KindEdge, tables.KindSite, tables.KindMutation,
	tables.KindIndividual, tables.KindPopulation, tables.KindMigration,
	tables.KindProvenance,
}

// Save writes the collection to path and returns the file UUID, which is
// regenerated on every save. The file is written to a temporary sibling
// and renamed into place so a crash never leaves a half-written file.
func Save(path string, tc *tables.TableCollection) (uuid.UUID, error) {
	id := uuid.New()

	var w writer
	w.buf = append(w.buf, FileSignature...)
	w.u32(FormatVersion)
	w.buf = append(w.buf, id[:]...)
	w.f64(tc.SequenceLength)
	w.u32(uint32(len(sectionOrder)))

	for _, kind := range sectionOrder {
		payload, rows := encodeSection(tc, kind)
		compressed := snappy.Encode(nil, payload)
		w.u8(uint8(kind))
		w.u32(uint32(rows))
		w.u32(uint32(len(payload)))
		w.bytes(compressed)
		w.u32(crc32.ChecksumIEEE(compressed))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".treeseq-*")
	if err != nil {
		return uuid.Nil, fmt.Errorf("store: save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(w.buf); err != nil {
		tmp.Close()
		return uuid.Nil, fmt.Errorf("store: save: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return uuid.Nil, fmt.Errorf("store: save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return uuid.Nil, fmt.Errorf("store: save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return uuid.Nil, fmt.Errorf("store: save: %w", err)
	}
	return id, nil
}

// Load reads a treeseq file written by Save.
func Load(path string) (*tables.TableCollection, Info, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("store: load: %w", err)
	}

	if len(raw) < headerSize {
		return nil, Info{}, ErrTruncated
	}
	if string(raw[:16]) != FileSignature {
		return nil, Info{}, ErrBadSignature
	}

	r := &reader{buf: raw, off: 16}
	info := Info{Version: r.u32()}
	if info.Version != FormatVersion {
		return nil, Info{}, ErrBadVersion
	}
	copy(info.UUID[:], raw[r.off:r.off+16])
	r.off += 16

	tc := tables.NewTableCollection(r.f64())
	sections := r.u32()
	if r.err != nil {
		return nil, Info{}, r.err
	}

	for i := uint32(0); i < sections; i++ {
		kind := tables.TableKind(r.u8())
		rows := r.u32()
		rawLen := r.u32()
		compressed := r.bytes()
		sum := r.u32()
		if r.err != nil {
			return nil, Info{}, r.err
		}
		if crc32.ChecksumIEEE(compressed) != sum {
			return nil, Info{}, ErrCorrupted
		}
		payload, err := snappy.Decode(nil, compressed)
		if err != nil || len(payload) != int(rawLen) {
			return nil, Info{}, ErrCorrupted
		}
		if err := decodeSection(tc, kind, payload, int(rows)); err != nil {
			return nil, Info{}, err
		}
	}
	return tc, info, nil
}

// encodeSection serializes one table's rows: fixed columns and metadata
// bytes per row, then the schema descriptor.
func encodeSection(tc *tables.TableCollection, kind tables.TableKind) ([]byte, int) {
	var w writer
	switch kind {
	case tables.KindNode:
		t := &tc.Nodes
		for i := 0; i < t.NumRows(); i++ {
			row, _ := t.Get(tables.RowID(i))
			md, _ := t.MetadataBytes(tables.RowID(i))
			w.u32(row.Flags)
			w.f64(row.Time)
			w.i32(row.Population)
			w.i32(row.Individual)
			w.bytes(md)
		}
		w.str(t.MetadataSchema())
		return w.buf, t.NumRows()

	case tables.KindEdge:
		t := &tc.Edges
		for i := 0; i < t.NumRows(); i++ {
			row, _ := t.Get(tables.RowID(i))
			md, _ := t.MetadataBytes(tables.RowID(i))
			w.f64(row.Left)
			w.f64(row.Right)
			w.i32(row.Parent)
			w.i32(row.Child)
			w.bytes(md)
		}
		w.str(t.MetadataSchema())
		return w.buf, t.NumRows()

	case tables.KindSite:
		t := &tc.Sites
		for i := 0; i < t.NumRows(); i++ {
			row, _ := t.Get(tables.RowID(i))
			md, _ := t.MetadataBytes(tables.RowID(i))
			w.f64(row.Position)
			w.str(row.AncestralState)
			w.bytes(md)
		}
		w.str(t.MetadataSchema())
		return w.buf, t.NumRows()

	case tables.KindMutation:
		t := &tc.Mutations
		for i := 0; i < t.NumRows(); i++ {
			row, _ := t.Get(tables.RowID(i))
			md, _ := t.MetadataBytes(tables.RowID(i))
			w.i32(row.Site)
			w.i32(row.Node)
			w.i32(row.Parent)
			w.f64(row.Time)
			w.str(row.DerivedState)
			w.bytes(md)
		}
		w.str(t.MetadataSchema())
		return w.buf, t.NumRows()

	case tables.KindIndividual:
		t := &tc.Individuals
		for i := 0; i < t.NumRows(); i++ {
			row, _ := t.Get(tables.RowID(i))
			md, _ := t.MetadataBytes(tables.RowID(i))
			w.u32(row.Flags)
			w.u32(uint32(len(row.Location)))
			for _, loc := range row.Location {
				w.f64(loc)
			}
			w.u32(uint32(len(row.Parents)))
			for _, p := range row.Parents {
				w.i32(p)
			}
			w.bytes(md)
		}
		w.str(t.MetadataSchema())
		return w.buf, t.NumRows()

	case tables.KindPopulation:
		t := &tc.Populations
		for i := 0; i < t.NumRows(); i++ {
			md, _ := t.MetadataBytes(tables.RowID(i))
			w.bytes(md)
		}
		w.str(t.MetadataSchema())
		return w.buf, t.NumRows()

	case tables.KindMigration:
		t := &tc.Migrations
		for i := 0; i < t.NumRows(); i++ {
			row, _ := t.Get(tables.RowID(i))
			md, _ := t.MetadataBytes(tables.RowID(i))
			w.f64(row.Left)
			w.f64(row.Right)
			w.i32(row.Node)
			w.i32(row.Source)
			w.i32(row.Dest)
			w.f64(row.Time)
			w.bytes(md)
		}
		w.str(t.MetadataSchema())
		return w.buf, t.NumRows()

	case tables.KindProvenance:
		t := &tc.Provenances
		for _, row := range t.Rows() {
			w.str(row.Timestamp)
			w.str(row.Record)
		}
		return w.buf, t.NumRows()
	}
	return nil, 0
}

// decodeSection rebuilds one table from its section payload.
func decodeSection(tc *tables.TableCollection, kind tables.TableKind, payload []byte, rows int) error {
	r := &reader{buf: payload}
	switch kind {
	case tables.KindNode:
		for i := 0; i < rows; i++ {
			row := tables.NodeRow{
				Flags:      r.u32(),
				Time:       r.f64(),
				Population: r.i32(),
				Individual: r.i32(),
			}
			md := r.bytes()
			if r.err != nil {
				return r.err
			}
			if _, err := tc.Nodes.Add(row, md); err != nil {
				return err
			}
		}
		tc.Nodes.SetMetadataSchema(r.str())

	case tables.KindEdge:
		for i := 0; i < rows; i++ {
			row := tables.EdgeRow{
				Left:   r.f64(),
				Right:  r.f64(),
				Parent: r.i32(),
				Child:  r.i32(),
			}
			md := r.bytes()
			if r.err != nil {
				return r.err
			}
			if _, err := tc.Edges.Add(row, md); err != nil {
				return err
			}
		}
		tc.Edges.SetMetadataSchema(r.str())

	case tables.KindSite:
		for i := 0; i < rows; i++ {
			row := tables.SiteRow{
				Position:       r.f64(),
				AncestralState: r.str(),
			}
			md := r.bytes()
			if r.err != nil {
				return r.err
			}
			if _, err := tc.Sites.Add(row, md); err != nil {
				return err
			}
		}
		tc.Sites.SetMetadataSchema(r.str())

	case tables.KindMutation:
		for i := 0; i < rows; i++ {
			row := tables.MutationRow{
				Site:         r.i32(),
				Node:         r.i32(),
				Parent:       r.i32(),
				Time:         r.f64(),
				DerivedState: r.str(),
			}
			md := r.bytes()
			if r.err != nil {
				return r.err
			}
			if _, err := tc.Mutations.Add(row, md); err != nil {
				return err
			}
		}
		tc.Mutations.SetMetadataSchema(r.str())

	case tables.KindIndividual:
		for i := 0; i < rows; i++ {
			row := tables.IndividualRow{Flags: r.u32()}
			nloc := int(r.u32())
			if r.err != nil || nloc > r.remain() {
				return ErrTruncated
			}
			for j := 0; j < nloc; j++ {
				row.Location = append(row.Location, r.f64())
			}
			npar := int(r.u32())
			if r.err != nil || npar > r.remain() {
				return ErrTruncated
			}
			for j := 0; j < npar; j++ {
				row.Parents = append(row.Parents, r.i32())
			}
			md := r.bytes()
			if r.err != nil {
				return r.err
			}
			if _, err := tc.Individuals.Add(row, md); err != nil {
				return err
			}
		}
		tc.Individuals.SetMetadataSchema(r.str())

	case tables.KindPopulation:
		for i := 0; i < rows; i++ {
			md := r.bytes()
			if r.err != nil {
				return r.err
			}
			if _, err := tc.Populations.Add(tables.PopulationRow{}, md); err != nil {
				return err
			}
		}
		tc.Populations.SetMetadataSchema(r.str())

	case tables.KindMigration:
		for i := 0; i < rows; i++ {
			row := tables.MigrationRow{
				Left:   r.f64(),
				Right:  r.f64(),
				Node:   r.i32(),
				Source: r.i32(),
				Dest:   r.i32(),
				Time:   r.f64(),
			}
			md := r.bytes()
			if r.err != nil {
				return r.err
			}
			if _, err := tc.Migrations.Add(row, md); err != nil {
				return err
			}
		}
		tc.Migrations.SetMetadataSchema(r.str())

	case tables.KindProvenance:
		for i := 0; i < rows; i++ {
			row := tables.ProvenanceRow{
				Timestamp: r.str(),
				Record:    r.str(),
			}
			if r.err != nil {
				return r.err
			}
			tc.Provenances.Add(row)
		}

	default:
		return ErrCorrupted
	}
	return r.err
}
