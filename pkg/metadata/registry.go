// ABOUTME: Capability registry binding (payload type, table kind) to a codec
// ABOUTME: Validates the strategy at registration time, never at first use

package metadata

import (
	"encoding"
	"fmt"
	"reflect"
	"sync"

	"github.com/coalescent/treeseq/pkg/tables"
)

// Registry records which payload types are authorized metadata shapes for
// which table kinds, and the codec each pair uses. Registration is the
// only way a type acquires the capability for a kind, and registering for
// one kind grants nothing for another.
//
// The registry does not enforce a single payload type per table kind:
// several types may hold the capability for the same kind, and a decode
// request is attempted against whatever bytes the row holds. Callers that
// mix types over one table own that hazard.
type Registry struct {
	mu     sync.RWMutex
	codecs map[tables.TableKind]map[reflect.Type]Codec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[tables.TableKind]map[reflect.Type]Codec)}
}

// Register authorizes T as a metadata payload for the given table kind,
// encoded with the named strategy. It fails eagerly: an empty strategy is
// ErrMissingSerializer, an unrecognized one is UnsupportedSerializerError,
// and StrategyCustom requires T to implement both encoding.BinaryMarshaler
// and encoding.BinaryUnmarshaler. Re-registering replaces the codec.
func Register[T any](r *Registry, kind tables.TableKind, strategy string) error {
	if !kind.HasMetadata() {
		return fmt.Errorf("metadata: %s table has no metadata column", kind)
	}
	codec, err := codecForStrategy(strategy)
	if err != nil {
		return err
	}
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if strategy == StrategyCustom {
		ptr := reflect.PointerTo(typ)
		if !ptr.Implements(reflect.TypeOf((*encoding.BinaryMarshaler)(nil)).Elem()) ||
			!ptr.Implements(reflect.TypeOf((*encoding.BinaryUnmarshaler)(nil)).Elem()) {
			return fmt.Errorf("metadata: %s does not implement BinaryMarshaler and BinaryUnmarshaler", typ)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	byType := r.codecs[kind]
	if byType == nil {
		byType = make(map[reflect.Type]Codec)
		r.codecs[kind] = byType
	}
	byType[typ] = codec
	return nil
}

// Registered reports whether T holds the metadata capability for the kind.
func Registered[T any](r *Registry, kind tables.TableKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.codecs[kind][reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}

// codecFor returns the codec bound to (kind, T). A missing binding is the
// runtime analog of a missing capability marker: a caller bug, so it
// panics rather than masquerading as a decode failure.
func codecFor[T any](r *Registry, kind tables.TableKind) Codec {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	r.mu.RLock()
	codec, ok := r.codecs[kind][typ]
	r.mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("metadata: %s is not registered as %s metadata", typ, kind))
	}
	return codec
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level
// helpers.
func Default() *Registry { return defaultRegistry }
