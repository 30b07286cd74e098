// ABOUTME: Byte codec contract between typed payloads and opaque row bytes
// ABOUTME: Names the closed set of codec strategies a type may register with

package metadata

// Codec strategy names accepted by Register.
const (
	// StrategyJSON encodes payloads as self-describing JSON text.
	// Human-inspectable, and tolerant of additive schema evolution
	// (new optional fields decode as zero values).
	StrategyJSON = "json"

	// StrategyBinary encodes payloads as canonical CBOR. Compact and
	// fast, but brittle: renamed or retyped fields fail to decode.
	StrategyBinary = "binary"

	// StrategyCustom delegates to the payload type's own
	// encoding.BinaryMarshaler / encoding.BinaryUnmarshaler
	// implementations, for bit-exact hand-rolled formats.
	StrategyCustom = "custom"
)

// A Codec maps payload values to byte sequences and back.
//
// Encode is deterministic for a given codec and depends on nothing but the
// value; it either returns a complete byte sequence or fails with no
// output. Decode either fully reconstructs a value or fails; it never
// returns a partially constructed value. Both wrap failures in
// *RoundtripError.
//
// Codecs are stateless and safe for concurrent use.
type Codec interface {
	Name() string
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

func codecForStrategy(strategy string) (Codec, error) {
	switch strategy {
	case "":
		return nil, ErrMissingSerializer
	case StrategyJSON:
		return jsonCodec{}, nil
	case StrategyBinary:
		return theBinaryCodec, nil
	case StrategyCustom:
		return customCodec{}, nil
	default:
		return nil, &UnsupportedSerializerError{Name: strategy}
	}
}
