package translate

import (
	"testing"

	"github.com/oriumgames/crossmc/internal/buffer"
	"github.com/oriumgames/crossmc/internal/protocol"
)

// identityConverter leaves every id unchanged, exercising the call shape
// without requiring a full registry.
type identityConverter struct{}

func (identityConverter) BlockToOld(id uint32, _ protocol.BlockVersion) uint32  { return id }
func (identityConverter) BlockToNew(id uint32, _ protocol.BlockVersion) uint32  { return id }
func (identityConverter) ItemToOld(id uint32, _ protocol.BlockVersion) uint32   { return id }
func (identityConverter) ItemToNew(id uint32, _ protocol.BlockVersion) uint32   { return id }
func (identityConverter) EntityToOld(id uint32, _ protocol.BlockVersion) uint32 { return id }
func (identityConverter) EntityToNew(id uint32, _ protocol.BlockVersion) uint32 { return id }

func TestTranslateColumnPreservesBlocksUnderIdentityConverter(t *testing.T) {
	col := buildTestColumn()
	out := TranslateColumn(col, identityConverter{}, protocol.BlockV1_14Plus, 4096, 0, isAir)

	want := col.Sections[4]
	got := out.Sections[4]
	if got == nil {
		t.Fatal("expected section 4 to survive translation")
	}
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			for z := 0; z < 16; z++ {
				if want.Get(x, y, z) != got.Get(x, y, z) {
					t.Fatalf("mismatch at (%d,%d,%d): want %d got %d", x, y, z, want.Get(x, y, z), got.Get(x, y, z))
				}
			}
		}
	}
}

func TestWriteChunkDataPacketProducesNonEmptyFrameForEachEra(t *testing.T) {
	col := buildTestColumn()
	versions := []protocol.ProtocolVersion{protocol.V1_8, protocol.V1_14, protocol.V1_16, protocol.V1_18}
	for _, ver := range versions {
		buf := buffer.New()
		WriteChunkDataPacket(buf, col, ver, 4096, 0, isAir, true, 16)
		if len(buf.Bytes()) == 0 {
			t.Fatalf("version %s: expected non-empty wire frame", ver)
		}
	}
}
