// Package translate implements the per-version codecs (C6) that turn a
// version-agnostic world.Column into the wire bytes for a given
// ProtocolVersion's ChunkData variant, and back. The section-array layout
// (block count, bits-per-entry, palette, packed longs) is grounded on
// go-mclib-client's chunk_parser.go; the version branching for light/biome
// placement across 1.8 through 1.18 is built directly from spec.md §4.6.
package translate

import (
	"github.com/oriumgames/crossmc/internal/buffer"
	"github.com/oriumgames/crossmc/internal/palette"
	"github.com/oriumgames/crossmc/internal/protocol"
	"github.com/oriumgames/crossmc/internal/protoerr"
	"github.com/oriumgames/crossmc/internal/world"
)

// fullBrightLight is a placeholder 2048-byte nibble array (all 0xF) written
// for pre-1.14 clients, which require inline light data in ChunkData. This
// layer has no lighting engine (spec.md's Non-goals exclude lighting
// simulation); emitting full brightness keeps the wire format valid without
// modelling light propagation.
var fullBrightLight = func() []byte {
	b := make([]byte, 2048)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}()

// EncodeSections writes every present section in col, for the range
// [0, sectionCount), into buf using the bit-array form appropriate to ver:
// the pre-1.16 word-spanning form below protocol.V1_16, the non-spanning form
// at and above it. withBlockCount controls whether the 1.9+ per-section
// non-air block count precedes the palette (1.8 omits it).
func EncodeSections(buf *buffer.Buffer, col *world.Column, ver protocol.ProtocolVersion, sectionCount int, withBlockCount bool) {
	for i := 0; i < sectionCount; i++ {
		sec := col.Sections[i]
		if sec == nil {
			continue
		}
		if withBlockCount {
			buf.WriteUint16(uint16(sec.NonAirBlocks()))
		}
		buf.WriteUint8(uint8(sec.BitsPerEntry()))

		pal := sec.Palette()
		if pal != nil {
			buf.WriteVarInt(int32(len(pal)))
			for _, id := range pal {
				buf.WriteVarInt(int32(id))
			}
		} else {
			// Direct mode carries no palette; vanilla still writes a 0-length
			// VarInt to mark "no palette follows" below 1.18's global-palette
			// shortcut, which this layer doesn't implement.
			buf.WriteVarInt(0)
		}

		var words []uint64
		if ver.AtLeast(protocol.V1_16) {
			words = sec.EncodeWordsNew()
		} else {
			words = sec.EncodeWordsOld()
		}
		buf.WriteVarInt(int32(len(words)))
		for _, w := range words {
			buf.WriteUint64(w)
		}
	}
}

// DecodeSections is the inverse of EncodeSections, reconstructing sectionCount
// palette.Section values (nil where the caller-supplied presentMask says a
// section is absent and was never written).
func DecodeSections(buf *buffer.Buffer, ver protocol.ProtocolVersion, sectionCount int, presentMask func(i int) bool, totalStates uint32, airID uint32, isAir func(uint32) bool, withBlockCount bool) ([MaxDecodeSections]*palette.Section, error) {
	var out [MaxDecodeSections]*palette.Section
	for i := 0; i < sectionCount; i++ {
		if !presentMask(i) {
			continue
		}
		if withBlockCount {
			buf.ReadUint16() // non-air count is informational; recomputed from data
		}
		bpe := int(buf.ReadUint8())
		palLen := buf.ReadVarInt()
		var pal []uint32
		if palLen > 0 {
			pal = make([]uint32, palLen)
			for j := range pal {
				pal[j] = uint32(buf.ReadVarInt())
			}
		}
		wordCount := buf.ReadVarInt()
		if buf.Err() != nil {
			return out, &protoerr.MalformedPacket{Offset: buf.Offset(), Cause: buf.Err()}
		}
		words := make([]uint64, wordCount)
		for j := range words {
			words[j] = buf.ReadUint64()
		}
		if err := buf.Err(); err != nil {
			return out, &protoerr.MalformedPacket{Offset: buf.Offset(), Cause: err}
		}

		entries := decodeWords(words, bpe, ver)
		directBits := directBitsFor(totalStates)
		var section *palette.Section
		var err error
		if pal == nil {
			section, err = palette.FromEntries(entries, nil, directBits, isAir)
		} else {
			section, err = palette.FromEntries(entries, pal, directBits, isAir)
		}
		if err != nil {
			return out, err
		}
		out[i] = section
	}
	return out, nil
}

// MaxDecodeSections mirrors world.MaxSections; kept distinct so this
// package doesn't force every caller to size against the world package's
// constant directly.
const MaxDecodeSections = world.MaxSections

func decodeWords(words []uint64, bpe int, ver protocol.ProtocolVersion) []int {
	count := 16 * 16 * 16
	if ver.AtLeast(protocol.V1_16) {
		return palette.DecodeWordsNew(words, bpe, count)
	}
	return palette.DecodeWordsOld(words, bpe, count)
}

func directBitsFor(totalStateCount uint32) int {
	bits := 1
	for (uint32(1) << uint(bits)) < totalStateCount {
		bits++
	}
	if bits < 5 {
		bits = 5
	}
	return bits
}

// encodeSectionsWithInlineLight writes the pre-1.14 section array (bpe,
// palette, longs, optionally preceded by a block count) interleaved with a
// placeholder block/sky-light pair per section -- the inline-light layout
// that chunkV8/chunkV9/chunkV13 all share, since lighting only moves to a
// separate UpdateLight packet starting 1.14.
func encodeSectionsWithInlineLight(buf *buffer.Buffer, col *world.Column, withBlockCount bool) {
	for i := 0; i < 16; i++ {
		sec := col.Sections[i]
		if sec == nil {
			continue
		}
		if withBlockCount {
			buf.WriteUint16(uint16(sec.NonAirBlocks()))
		}
		buf.WriteUint8(uint8(sec.BitsPerEntry()))
		pal := sec.Palette()
		if pal != nil {
			buf.WriteVarInt(int32(len(pal)))
			for _, id := range pal {
				buf.WriteVarInt(int32(id))
			}
		} else {
			buf.WriteVarInt(0)
		}
		words := sec.EncodeWordsOld()
		buf.WriteVarInt(int32(len(words)))
		for _, w := range words {
			buf.WriteUint64(w)
		}
		buf.WriteBytes(fullBrightLight) // block light
		buf.WriteBytes(fullBrightLight) // sky light
	}
}

// EncodeChunkV8 builds the 1.8 ChunkData layout: section array with no
// per-section block count (introduced in 1.9), each followed inline by a
// block-light and sky-light nibble array, then (if groundUp) a 256-byte
// biome array.
func EncodeChunkV8(col *world.Column, totalStates, airID uint32, isAir func(uint32) bool, groundUp bool, biomes []byte) protocol.ChunkDataV8 {
	buf := buffer.New()
	encodeSectionsWithInlineLight(buf, col, false)
	if groundUp {
		if biomes == nil {
			biomes = make([]byte, 256)
		}
		buf.WriteBytes(biomes)
	}
	return protocol.ChunkDataV8{
		Base:          protocol.NewBase(0x20, protocol.V1_8, protocol.Clientbound, protocol.StatePlay),
		ChunkX:        col.X,
		ChunkZ:        col.Z,
		GroundUp:      groundUp,
		PrimaryBitmap: col.PrimaryBitmap(),
		Data:          buf.Bytes(),
	}
}

// EncodeChunkV9 builds the 1.9-1.12 ChunkData layout: identical to 1.8's
// inline-light section array except each section is now preceded by its
// non-air block count, added in the 1.9 protocol rewrite. 1.12 introduces
// no further chunk wire change, so it shares this function.
func EncodeChunkV9(col *world.Column, totalStates, airID uint32, isAir func(uint32) bool, groundUp bool, biomes []byte) protocol.ChunkDataV8 {
	buf := buffer.New()
	encodeSectionsWithInlineLight(buf, col, true)
	if groundUp {
		if biomes == nil {
			biomes = make([]byte, 256)
		}
		buf.WriteBytes(biomes)
	}
	return protocol.ChunkDataV8{
		Base:          protocol.NewBase(0x20, protocol.V1_9, protocol.Clientbound, protocol.StatePlay),
		ChunkX:        col.X,
		ChunkZ:        col.Z,
		GroundUp:      groundUp,
		PrimaryBitmap: col.PrimaryBitmap(),
		Data:          buf.Bytes(),
	}
}

// EncodeChunkV13 builds the 1.13 ChunkData layout. The 1.13 "flattening"
// renumbers every block state but doesn't touch the chunk wire format
// chunkV9 already produces, so this delegates to it and only swaps in
// 1.13's own packet id and minimum version.
func EncodeChunkV13(col *world.Column, totalStates, airID uint32, isAir func(uint32) bool, groundUp bool, biomes []byte) protocol.ChunkDataV8 {
	pk := EncodeChunkV9(col, totalStates, airID, isAir, groundUp, biomes)
	pk.Base = protocol.NewBase(0x21, protocol.V1_13, protocol.Clientbound, protocol.StatePlay)
	return pk
}

// EncodeChunkV14 builds the 1.14 ChunkData layout: heightmap NBT precedes
// the section array (spec.md's resolved Open Question), inline light is
// gone (moved to a separate UpdateLight packet), and a full chunk carries a
// 256-byte biome array -- still byte-per-column at this version, VarInt
// biome ids don't arrive until 1.15 (chunkV15).
func EncodeChunkV14(col *world.Column, ver protocol.ProtocolVersion, totalStates, airID uint32, isAir func(uint32) bool, fullChunk bool) protocol.ChunkDataV14 {
	buf := buffer.New()
	EncodeSections(buf, col, ver, 16, true)
	if fullChunk {
		biomes := make([]byte, 256)
		buf.WriteBytes(biomes)
	}
	return protocol.ChunkDataV14{
		Base:          protocol.NewBase(0x21, protocol.V1_14, protocol.Clientbound, protocol.StatePlay),
		ChunkX:        col.X,
		ChunkZ:        col.Z,
		IsFullChunk:   fullChunk,
		PrimaryBitmap: col.PrimaryBitmap(),
		Heightmaps:    col.Heightmaps,
		Data:          buf.Bytes(),
	}
}

// EncodeChunkV15 builds the 1.15 ChunkData layout: identical to 1.14
// except a full chunk's biome array becomes 1024 VarInt-encoded ids (one
// per 4x4x4 column cell) instead of 1.14's 256 raw bytes.
func EncodeChunkV15(col *world.Column, ver protocol.ProtocolVersion, totalStates, airID uint32, isAir func(uint32) bool, fullChunk bool) protocol.ChunkDataV14 {
	buf := buffer.New()
	EncodeSections(buf, col, ver, 16, true)
	if fullChunk {
		for _, b := range col.Biomes {
			buf.WriteVarInt(int32(b))
		}
	}
	return protocol.ChunkDataV14{
		Base:          protocol.NewBase(0x21, protocol.V1_15, protocol.Clientbound, protocol.StatePlay),
		ChunkX:        col.X,
		ChunkZ:        col.Z,
		IsFullChunk:   fullChunk,
		PrimaryBitmap: col.PrimaryBitmap(),
		Heightmaps:    col.Heightmaps,
		Data:          buf.Bytes(),
	}
}

// EncodeChunkV16 builds the 1.16-1.16.2 layout: section array first, then a
// length-prefixed VarInt biome array appended to Data per spec.md §4.6.
// 1.16.2's multi-block-change re-packing (see multiblock.go) doesn't touch
// ChunkData, so it shares this function with 1.16.
func EncodeChunkV16(col *world.Column, ver protocol.ProtocolVersion, totalStates, airID uint32, isAir func(uint32) bool, fullChunk bool) protocol.ChunkDataV16 {
	buf := buffer.New()
	EncodeSections(buf, col, ver, 16, true)
	if fullChunk {
		buf.WriteVarInt(int32(len(col.Biomes)))
		for _, b := range col.Biomes {
			buf.WriteVarInt(int32(b))
		}
	}
	return protocol.ChunkDataV16{
		Base:          protocol.NewBase(0x22, protocol.V1_16, protocol.Clientbound, protocol.StatePlay),
		ChunkX:        col.X,
		ChunkZ:        col.Z,
		IsFullChunk:   fullChunk,
		PrimaryBitmap: col.PrimaryBitmap(),
		Heightmaps:    col.Heightmaps,
		Data:          buf.Bytes(),
	}
}

// EncodeChunkV17 builds the 1.17 layout: the fixed u16 bitmap is replaced
// by a VarInt-prefixed long array. Sections [0, sectionCount) are written
// (1.17's height range 0..255 is 16 sections); the bitmap always covers all
// world.MaxSections sections.
func EncodeChunkV17(col *world.Column, ver protocol.ProtocolVersion, totalStates, airID uint32, isAir func(uint32) bool, fullChunk bool, sectionCount int) protocol.ChunkDataV17 {
	buf := buffer.New()
	EncodeSections(buf, col, ver, sectionCount, true)
	if fullChunk {
		buf.WriteVarInt(int32(len(col.Biomes)))
		for _, b := range col.Biomes {
			buf.WriteVarInt(int32(b))
		}
	}
	return protocol.ChunkDataV17{
		Base:        protocol.NewBase(0x22, protocol.V1_17, protocol.Clientbound, protocol.StatePlay),
		ChunkX:      col.X,
		ChunkZ:      col.Z,
		IsFullChunk: fullChunk,
		BitmapLongs: col.BitmapLongs(),
		Heightmaps:  col.Heightmaps,
		Data:        buf.Bytes(),
	}
}

// EncodeChunkV18 builds the 1.18 layout: wire-identical to chunkV17's long
// bitmap/section array, but over 1.18's expanded world height (-64..319,
// world.MaxSections sections instead of 1.17's 16).
func EncodeChunkV18(col *world.Column, ver protocol.ProtocolVersion, totalStates, airID uint32, isAir func(uint32) bool, fullChunk bool) protocol.ChunkDataV17 {
	pk := EncodeChunkV17(col, ver, totalStates, airID, isAir, fullChunk, world.MaxSections)
	pk.Base = protocol.NewBase(0x22, protocol.V1_18, protocol.Clientbound, protocol.StatePlay)
	return pk
}
