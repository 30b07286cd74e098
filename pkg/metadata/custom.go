// ABOUTME: Custom codec strategy delegating to the payload type itself
// ABOUTME: Escape hatch for bit-exact hand-written binary formats

package metadata

import (
	"encoding"
	"fmt"
)

// customCodec implements the custom strategy: the payload type supplies
// its own MarshalBinary / UnmarshalBinary. Registration verifies the type
// implements both, so the assertions here only fail on misuse of the
// codec outside the registry.
type customCodec struct{}

func (customCodec) Name() string { return StrategyCustom }

func (customCodec) Encode(v any) ([]byte, error) {
	m, ok := v.(encoding.BinaryMarshaler)
	if !ok {
		return nil, encodeErr(fmt.Errorf("%T does not implement encoding.BinaryMarshaler", v))
	}
	data, err := m.MarshalBinary()
	if err != nil {
		return nil, encodeErr(err)
	}
	return data, nil
}

func (customCodec) Decode(data []byte, v any) error {
	u, ok := v.(encoding.BinaryUnmarshaler)
	if !ok {
		return decodeErr(fmt.Errorf("%T does not implement encoding.BinaryUnmarshaler", v))
	}
	if err := u.UnmarshalBinary(data); err != nil {
		return decodeErr(err)
	}
	return nil
}
