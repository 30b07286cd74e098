// ABOUTME: Tests for codec strategy validation and capability registration
// ABOUTME: Verifies errors surface at registration time, not first use

package metadata

import (
	"errors"
	"testing"

	"github.com/coalescent/treeseq/pkg/tables"
)

type effect struct {
	EffectSize float64 `json:"effect_size"`
	Dominance  float64 `json:"dominance"`
}

func TestRegisterMissingSerializer(t *testing.T) {
	reg := NewRegistry()
	err := Register[effect](reg, tables.KindMutation, "")
	if !errors.Is(err, ErrMissingSerializer) {
		t.Errorf("Expected ErrMissingSerializer, got %v", err)
	}
	if Registered[effect](reg, tables.KindMutation) {
		t.Error("Failed registration must not grant the capability")
	}
}

func TestRegisterUnsupportedSerializer(t *testing.T) {
	reg := NewRegistry()
	err := Register[effect](reg, tables.KindMutation, "msgpack")

	var unsupported *UnsupportedSerializerError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedSerializerError, got %v", err)
	}
	if unsupported.Name != "msgpack" {
		t.Errorf("Expected strategy name 'msgpack', got %q", unsupported.Name)
	}
}

func TestRegisterCustomRequiresMarshalers(t *testing.T) {
	reg := NewRegistry()
	// effect implements neither BinaryMarshaler nor BinaryUnmarshaler.
	if err := Register[effect](reg, tables.KindMutation, StrategyCustom); err == nil {
		t.Error("Expected registration to reject custom strategy without marshalers")
	}
}

func TestRegisterProvenanceRejected(t *testing.T) {
	reg := NewRegistry()
	if err := Register[effect](reg, tables.KindProvenance, StrategyJSON); err == nil {
		t.Error("Expected registration against provenance table to fail")
	}
}

func TestCapabilityIsPerTableKind(t *testing.T) {
	reg := NewRegistry()
	if err := Register[effect](reg, tables.KindMutation, StrategyJSON); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	if !Registered[effect](reg, tables.KindMutation) {
		t.Error("Type should hold the mutation capability")
	}
	if Registered[effect](reg, tables.KindNode) {
		t.Error("Mutation registration must not grant the node capability")
	}

	// Explicit registration per kind is required, and is allowed.
	if err := Register[effect](reg, tables.KindNode, StrategyBinary); err != nil {
		t.Fatalf("Failed to register for second kind: %v", err)
	}
	if !Registered[effect](reg, tables.KindNode) {
		t.Error("Type should now hold the node capability too")
	}
}

func TestUnregisteredAccessPanics(t *testing.T) {
	reg := NewRegistry()
	var tbl tables.MutationTable
	tbl.Add(tables.MutationRow{}, []byte("{}"))

	defer func() {
		if recover() == nil {
			t.Error("Access without the capability should panic")
		}
	}()
	Row[effect](reg, &tbl, 0)
}

func TestDefaultRegistry(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default registry should exist")
	}
	if err := Register[effect](Default(), tables.KindSite, StrategyJSON); err != nil {
		t.Fatalf("Failed to register on default registry: %v", err)
	}
	if !Registered[effect](Default(), tables.KindSite) {
		t.Error("Default registry should record the capability")
	}
}
