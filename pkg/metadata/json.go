// ABOUTME: Tagged-text codec strategy backed by encoding/json
// ABOUTME: Strict decoding so foreign encodings fail instead of zeroing

package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

var errTrailingData = errors.New("trailing data after payload")

// jsonCodec implements the tagged-text strategy. Decoding rejects unknown
// fields and trailing data, so bytes written under a structurally different
// schema fail with a RoundtripError rather than silently producing a
// zero-filled value.
type jsonCodec struct{}

func (jsonCodec) Name() string { return StrategyJSON }

func (jsonCodec) Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, encodeErr(err)
	}
	return data, nil
}

func (jsonCodec) Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return decodeErr(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return decodeErr(errTrailingData)
	}
	return nil
}
