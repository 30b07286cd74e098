// ABOUTME: Typed encode/decode and row-level metadata access
// ABOUTME: Keeps absent rows, empty metadata, and decode failures distinct

package metadata

import "github.com/coalescent/treeseq/pkg/tables"

// Encode serializes v with the codec registered for (kind, T).
// T must hold the capability for kind; see Register.
func Encode[T any](r *Registry, kind tables.TableKind, v T) ([]byte, error) {
	return codecFor[T](r, kind).Encode(&v)
}

// Decode reconstructs a T from raw metadata bytes with the codec
// registered for (kind, T). On failure the returned value is the zero T
// and the error is a *RoundtripError.
func Decode[T any](r *Registry, kind tables.TableKind, data []byte) (T, error) {
	var v T
	if err := codecFor[T](r, kind).Decode(data, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Row fetches and decodes the metadata of one row.
//
// The three outcomes are never conflated:
//   - the row does not exist, or exists with empty metadata: (nil, nil)
//   - the row has metadata that decodes: (&value, nil)
//   - the row has metadata that does not decode: (nil, *RoundtripError)
func Row[T any](r *Registry, tbl tables.MetadataTable, id tables.RowID) (*T, error) {
	codec := codecFor[T](r, tbl.Kind())
	raw, ok := tbl.MetadataBytes(id)
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var v T
	if err := codec.Decode(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// All decodes the metadata of every row in id order using the table's
// single-pass scan. The result has one slot per row: nil where the row has
// no metadata, a decoded value otherwise. The first decode failure aborts
// the scan and is returned alongside the rows decoded so far.
func All[T any](r *Registry, tbl tables.MetadataTable) ([]*T, error) {
	codec := codecFor[T](r, tbl.Kind())
	out := make([]*T, 0, tbl.NumRows())
	var scanErr error
	tbl.ScanMetadata(func(id tables.RowID, raw []byte) bool {
		if len(raw) == 0 {
			out = append(out, nil)
			return true
		}
		var v T
		if err := codec.Decode(raw, &v); err != nil {
			scanErr = err
			return false
		}
		out = append(out, &v)
		return true
	})
	return out, scanErr
}
