// ABOUTME: Tagged-binary codec strategy backed by canonical CBOR
// ABOUTME: Compact encoding with strict unknown-field rejection on decode

package metadata

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// binaryCodec implements the tagged-binary strategy. Canonical encoding
// keeps output deterministic; decoding reports unknown fields so bytes
// from a reshaped schema fail loudly instead of half-filling the value.
type binaryCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var theBinaryCodec = newBinaryCodec()

func newBinaryCodec() binaryCodec {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("metadata: cbor encode mode: %v", err))
	}
	dec, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("metadata: cbor decode mode: %v", err))
	}
	return binaryCodec{enc: enc, dec: dec}
}

func (binaryCodec) Name() string { return StrategyBinary }

func (c binaryCodec) Encode(v any) ([]byte, error) {
	data, err := c.enc.Marshal(v)
	if err != nil {
		return nil, encodeErr(err)
	}
	return data, nil
}

func (c binaryCodec) Decode(data []byte, v any) error {
	if err := c.dec.Unmarshal(data, v); err != nil {
		return decodeErr(err)
	}
	return nil
}
