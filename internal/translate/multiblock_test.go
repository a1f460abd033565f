package translate

import (
	"testing"

	"github.com/oriumgames/crossmc/internal/protocol"
)

func TestPackedEntryMatchesDocumentedExample(t *testing.T) {
	// spec.md §4.6: a change at local (1,2,3) to state 10 encodes as
	// (10<<12)|(1<<8)|(3<<4)|2.
	c := protocol.BlockChangeRecord{LocalX: 1, LocalY: 2, LocalZ: 3, StateID: 10}
	want := int64(10)<<12 | int64(1)<<8 | int64(3)<<4 | int64(2)
	if got := packedEntry(c); got != want {
		t.Fatalf("packedEntry = %#x, want %#x", got, want)
	}
	if back := unpackEntry(want); back != c {
		t.Fatalf("unpackEntry(%#x) = %+v, want %+v", want, back, c)
	}
}

func TestMultiBlockChangeV16_2RoundTrip(t *testing.T) {
	pk := protocol.MultiBlockChangeV16_2{
		SectionX:   -3,
		SectionY:   5,
		SectionZ:   12,
		TrustEdges: true,
		Changes: []protocol.BlockChangeRecord{
			{LocalX: 1, LocalY: 2, LocalZ: 3, StateID: 10},
			{LocalX: 15, LocalY: 0, LocalZ: 15, StateID: 4095},
		},
	}
	data := EncodeMultiBlockChangeV16_2(pk)
	got, err := DecodeMultiBlockChangeV16_2(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SectionX != pk.SectionX || got.SectionY != pk.SectionY || got.SectionZ != pk.SectionZ {
		t.Fatalf("section pos mismatch: got %+v, want X=%d Y=%d Z=%d", got, pk.SectionX, pk.SectionY, pk.SectionZ)
	}
	if got.TrustEdges != pk.TrustEdges {
		t.Fatalf("trustEdges mismatch")
	}
	if len(got.Changes) != len(pk.Changes) {
		t.Fatalf("changes len = %d, want %d", len(got.Changes), len(pk.Changes))
	}
	for i, c := range got.Changes {
		if c != pk.Changes[i] {
			t.Fatalf("change %d = %+v, want %+v", i, c, pk.Changes[i])
		}
	}
}

func TestMultiBlockChangeV8RoundTrip(t *testing.T) {
	pk := protocol.MultiBlockChangeV8{
		ChunkX: 7,
		ChunkZ: -2,
		Changes: []protocol.BlockChangeRecord{
			{LocalX: 0, LocalY: 255, LocalZ: 15, StateID: 1234},
			{LocalX: 15, LocalY: 0, LocalZ: 0, StateID: 0},
		},
	}
	data := EncodeMultiBlockChangeV8(pk)
	got, err := DecodeMultiBlockChangeV8(pk.ChunkX, pk.ChunkZ, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ChunkX != pk.ChunkX || got.ChunkZ != pk.ChunkZ {
		t.Fatalf("chunk pos mismatch")
	}
	for i, c := range got.Changes {
		if c != pk.Changes[i] {
			t.Fatalf("change %d = %+v, want %+v", i, c, pk.Changes[i])
		}
	}
}
