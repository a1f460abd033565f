package registry

import (
	"testing"

	"github.com/oriumgames/crossmc/internal/protocol"
)

func TestBlockVersionIdentity(t *testing.T) {
	r := New()
	blocks := r.Table(Blocks)
	for _, bv := range []protocol.BlockVersion{protocol.BlockV1_8, protocol.BlockV1_9, protocol.BlockV1_13, protocol.BlockV1_14Plus} {
		for id := BlockAir; id <= BlockBedrock; id++ {
			old := blocks.ToOld(id, bv)
			if old == AirID && id != BlockAir {
				// Some synthetic versions in this table map everything, so a
				// non-air latest id mapping to air would be a registry bug.
				t.Fatalf("ToOld(%d, %v) unexpectedly fell back to air", id, bv)
			}
			if got := blocks.ToNew(old, bv); got != id {
				t.Fatalf("ToNew(ToOld(%d, %v)) = %d, want %d", id, bv, got, id)
			}
		}
	}
}

func TestUnknownKindFallsBackToAir(t *testing.T) {
	r := New()
	blocks := r.Table(Blocks)
	if got := blocks.ToOld(99999, protocol.BlockV1_8); got != AirID {
		t.Fatalf("expected AirID fallback for unknown kind, got %d", got)
	}
	if got := blocks.ToNew(99999, protocol.BlockV1_8); got != AirID {
		t.Fatalf("expected AirID fallback for unknown old id, got %d", got)
	}
}

func TestAirIsZeroInEveryVersion(t *testing.T) {
	r := New()
	blocks := r.Table(Blocks)
	for _, bv := range []protocol.BlockVersion{protocol.BlockV1_8, protocol.BlockV1_9, protocol.BlockV1_13, protocol.BlockV1_14Plus} {
		if got := blocks.ToOld(BlockAir, bv); got != 0 {
			t.Fatalf("air maps to %d in %v, want 0", got, bv)
		}
	}
}

func TestDataLookup(t *testing.T) {
	r := New()
	d, ok := r.Table(Blocks).Data(BlockStone)
	if !ok || d.Name != "minecraft:stone" {
		t.Fatalf("Data(BlockStone) = %+v, ok=%v", d, ok)
	}
}
