package translate

import (
	"github.com/oriumgames/crossmc/internal/buffer"
	"github.com/oriumgames/crossmc/internal/protocol"
	"github.com/oriumgames/crossmc/internal/versionconv"
	"github.com/oriumgames/crossmc/internal/world"
)

// TranslateColumn rewrites every block in col from the canonical
// (latest-version) id space into the id space of bv, using conv -- the
// VersionConverter external collaborator spec.md §3/§6 describes -- so a
// connection pinned to an older BlockVersion receives ids it understands.
// A fresh Column is returned; col itself is left untouched.
func TranslateColumn(col *world.Column, conv versionconv.Converter, bv protocol.BlockVersion, totalStates, airID uint32, isAir func(uint32) bool) *world.Column {
	out := world.NewColumn(col.X, col.Z)
	out.Biomes = col.Biomes
	out.Heightmaps = col.Heightmaps
	for i, sec := range col.Sections {
		if sec == nil {
			continue
		}
		dst := out.SectionAt(i, totalStates, airID, isAir)
		for y := 0; y < 16; y++ {
			for z := 0; z < 16; z++ {
				for x := 0; x < 16; x++ {
					id := sec.Get(x, y, z)
					dst.Set(x, y, z, conv.BlockToOld(id, bv))
				}
			}
		}
	}
	return out
}

// WriteChunkDataPacket picks the wire layout matching ver and serializes a
// complete Chunk Data frame body (packet id followed by its fields) into
// buf, ready for Stream.WriteFrame. This is the write-side counterpart to
// EncodeChunkV8..EncodeChunkV18: those functions build the typed packet
// value for their specific version, this function puts it on the wire.
func WriteChunkDataPacket(buf *buffer.Buffer, col *world.Column, ver protocol.ProtocolVersion, totalStates, airID uint32, isAir func(uint32) bool, fullChunk bool, sectionCount int) {
	switch ver {
	case protocol.V1_8:
		writeChunkV8(buf, EncodeChunkV8(col, totalStates, airID, isAir, fullChunk, nil))
	case protocol.V1_9, protocol.V1_12:
		writeChunkV8(buf, EncodeChunkV9(col, totalStates, airID, isAir, fullChunk, nil))
	case protocol.V1_13:
		writeChunkV8(buf, EncodeChunkV13(col, totalStates, airID, isAir, fullChunk, nil))
	case protocol.V1_14:
		writeChunkV14(buf, EncodeChunkV14(col, ver, totalStates, airID, isAir, fullChunk))
	case protocol.V1_15:
		writeChunkV14(buf, EncodeChunkV15(col, ver, totalStates, airID, isAir, fullChunk))
	case protocol.V1_16, protocol.V1_16_2:
		writeChunkV16(buf, EncodeChunkV16(col, ver, totalStates, airID, isAir, fullChunk))
	case protocol.V1_17:
		writeChunkV17(buf, EncodeChunkV17(col, ver, totalStates, airID, isAir, fullChunk, sectionCount))
	default:
		writeChunkV17(buf, EncodeChunkV18(col, ver, totalStates, airID, isAir, fullChunk))
	}
}

func writeChunkV8(buf *buffer.Buffer, pk protocol.ChunkDataV8) {
	buf.WriteVarInt(pk.ID())
	buf.WriteInt32(pk.ChunkX)
	buf.WriteInt32(pk.ChunkZ)
	buf.WriteBool(pk.GroundUp)
	buf.WriteUint16(pk.PrimaryBitmap)
	buf.WriteVarInt(int32(len(pk.Data)))
	buf.WriteBytes(pk.Data)
}

func writeChunkV14(buf *buffer.Buffer, pk protocol.ChunkDataV14) {
	buf.WriteVarInt(pk.ID())
	buf.WriteInt32(pk.ChunkX)
	buf.WriteInt32(pk.ChunkZ)
	buf.WriteBool(pk.IsFullChunk)
	buf.WriteUint16(pk.PrimaryBitmap)
	buf.WriteByteArray(pk.Heightmaps)
	buf.WriteVarInt(int32(len(pk.Data)))
	buf.WriteBytes(pk.Data)
}

func writeChunkV16(buf *buffer.Buffer, pk protocol.ChunkDataV16) {
	buf.WriteVarInt(pk.ID())
	buf.WriteInt32(pk.ChunkX)
	buf.WriteInt32(pk.ChunkZ)
	buf.WriteBool(pk.IsFullChunk)
	buf.WriteUint16(pk.PrimaryBitmap)
	buf.WriteByteArray(pk.Heightmaps)
	buf.WriteVarInt(int32(len(pk.Data)))
	buf.WriteBytes(pk.Data)
}

func writeChunkV17(buf *buffer.Buffer, pk protocol.ChunkDataV17) {
	buf.WriteVarInt(pk.ID())
	buf.WriteInt32(pk.ChunkX)
	buf.WriteInt32(pk.ChunkZ)
	buf.WriteBool(pk.IsFullChunk)
	buf.WriteVarInt(int32(len(pk.BitmapLongs)))
	for _, w := range pk.BitmapLongs {
		buf.WriteInt64(w)
	}
	buf.WriteByteArray(pk.Heightmaps)
	buf.WriteVarInt(int32(len(pk.Data)))
	buf.WriteBytes(pk.Data)
}
