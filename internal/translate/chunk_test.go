package translate

import (
	"testing"

	"github.com/oriumgames/crossmc/internal/buffer"
	"github.com/oriumgames/crossmc/internal/protocol"
	"github.com/oriumgames/crossmc/internal/world"
)

func isAir(id uint32) bool { return id == 0 }

func buildTestColumn() *world.Column {
	col := world.NewColumn(0, 0)
	sec := col.SectionAt(4, 4096, 0, isAir)
	for i := uint32(1); i <= 17; i++ {
		sec.Set(int(i%16), int(i/16)%16, 0, i)
	}
	return col
}

func TestEncodeDecodeSectionsOldFormRoundTrip(t *testing.T) {
	col := buildTestColumn()
	buf := buffer.New()
	EncodeSections(buf, col, protocol.V1_13, 16, true)

	rbuf := buffer.Wrap(buf.Bytes())
	present := func(i int) bool { return i == 4 }
	out, err := DecodeSections(rbuf, protocol.V1_13, 16, present, 4096, 0, isAir, true)
	if err != nil {
		t.Fatalf("DecodeSections: %v", err)
	}
	want := col.Sections[4]
	got := out[4]
	if got == nil {
		t.Fatal("expected section 4 to decode")
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

func TestEncodeDecodeSectionsNewFormRoundTrip(t *testing.T) {
	col := buildTestColumn()
	buf := buffer.New()
	EncodeSections(buf, col, protocol.V1_16_2, 16, true)

	rbuf := buffer.Wrap(buf.Bytes())
	present := func(i int) bool { return i == 4 }
	out, err := DecodeSections(rbuf, protocol.V1_16_2, 16, present, 4096, 0, isAir, true)
	if err != nil {
		t.Fatalf("DecodeSections: %v", err)
	}
	want := col.Sections[4]
	got := out[4]
	if got == nil {
		t.Fatal("expected section 4 to decode")
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

func TestEncodeChunkV8ProducesGroundUpBiomes(t *testing.T) {
	col := buildTestColumn()
	pk := EncodeChunkV8(col, 4096, 0, isAir, true, nil)
	if pk.ChunkX != 0 || pk.ChunkZ != 0 {
		t.Fatalf("chunk pos mismatch")
	}
	if pk.PrimaryBitmap&(1<<4) == 0 {
		t.Fatalf("expected bit 4 set in primary bitmap, got %016b", pk.PrimaryBitmap)
	}
	if len(pk.Data) == 0 {
		t.Fatal("expected non-empty chunk data")
	}
}

func TestEncodeChunkV9AddsBlockCountOverV8(t *testing.T) {
	col := buildTestColumn()
	v8 := EncodeChunkV8(col, 4096, 0, isAir, true, nil)
	v9 := EncodeChunkV9(col, 4096, 0, isAir, true, nil)
	if len(v9.Data) <= len(v8.Data) {
		t.Fatalf("expected v9 data (with per-section block counts) to be longer than v8: v8=%d v9=%d", len(v8.Data), len(v9.Data))
	}
}

func TestEncodeChunkV13MatchesV9Layout(t *testing.T) {
	col := buildTestColumn()
	v9 := EncodeChunkV9(col, 4096, 0, isAir, true, nil)
	v13 := EncodeChunkV13(col, 4096, 0, isAir, true, nil)
	if len(v9.Data) != len(v13.Data) {
		t.Fatalf("expected v13 to share v9's wire layout: v9=%d v13=%d", len(v9.Data), len(v13.Data))
	}
	if v13.MinVersion() == v9.MinVersion() {
		t.Fatal("expected v13 to carry its own minimum version")
	}
}

func TestEncodeChunkV14WritesByteBiomesForFullChunk(t *testing.T) {
	col := buildTestColumn()
	pk := EncodeChunkV14(col, protocol.V1_14, 4096, 0, isAir, true)
	empty := EncodeChunkV14(col, protocol.V1_14, 4096, 0, isAir, false)
	if len(pk.Data) != len(empty.Data)+256 {
		t.Fatalf("expected a true v1.14 full chunk to append exactly 256 biome bytes: full=%d partial=%d", len(pk.Data), len(empty.Data))
	}
}

func TestEncodeChunkV15WritesVarIntBiomesForFullChunk(t *testing.T) {
	col := buildTestColumn()
	col.Biomes = make([]uint32, 1024)
	pk := EncodeChunkV15(col, protocol.V1_15, 4096, 0, isAir, true)
	empty := EncodeChunkV15(col, protocol.V1_15, 4096, 0, isAir, false)
	if len(pk.Data) <= len(empty.Data) {
		t.Fatal("expected a full v1.15 chunk to append VarInt-encoded biome data")
	}
}

func TestEncodeChunkV18UsesExpandedSectionCount(t *testing.T) {
	col := buildTestColumn()
	pk := EncodeChunkV18(col, protocol.V1_18, 4096, 0, isAir, true)
	found := false
	for _, w := range pk.BitmapLongs {
		if w&(1<<4) != 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected section 4's bit set somewhere in the v1.18 long bitmap")
	}
}

func TestEncodeChunkV17UsesLongBitmap(t *testing.T) {
	col := buildTestColumn()
	pk := EncodeChunkV17(col, protocol.V1_17, 4096, 0, isAir, true, world.MaxSections)
	found := false
	for _, w := range pk.BitmapLongs {
		if w&(1<<4) != 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected section 4's bit set somewhere in the long bitmap")
	}
}
