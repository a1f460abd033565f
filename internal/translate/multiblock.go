package translate

import (
	"github.com/oriumgames/crossmc/internal/buffer"
	"github.com/oriumgames/crossmc/internal/protocol"
)

// EncodeMultiBlockChangeV8 writes the pre-1.16.2 per-record form: a u8
// (localX<<4 | localZ), a u8 y, and a VarInt block state id. Records are not
// fixed-width: each takes 3 to 7 bytes depending on the state id.
func EncodeMultiBlockChangeV8(pk protocol.MultiBlockChangeV8) []byte {
	buf := buffer.New()
	buf.WriteVarInt(int32(len(pk.Changes)))
	for _, c := range pk.Changes {
		buf.WriteUint8(uint8(c.LocalX<<4) | uint8(c.LocalZ&0xF))
		buf.WriteUint8(uint8(c.LocalY))
		buf.WriteVarInt(int32(c.StateID))
	}
	return buf.Bytes()
}

// DecodeMultiBlockChangeV8 is the inverse of EncodeMultiBlockChangeV8.
func DecodeMultiBlockChangeV8(chunkX, chunkZ int32, data []byte) (protocol.MultiBlockChangeV8, error) {
	buf := buffer.Wrap(data)
	n := buf.ReadVarInt()
	changes := make([]protocol.BlockChangeRecord, n)
	for i := range changes {
		xz := buf.ReadUint8()
		y := buf.ReadUint8()
		state := buf.ReadVarInt()
		changes[i] = protocol.BlockChangeRecord{
			LocalX:  int(xz >> 4),
			LocalY:  int(y),
			LocalZ:  int(xz & 0xF),
			StateID: uint32(state),
		}
	}
	if err := buf.Err(); err != nil {
		return protocol.MultiBlockChangeV8{}, err
	}
	return protocol.MultiBlockChangeV8{
		Base:    protocol.NewBase(0x0F, protocol.V1_8, protocol.Clientbound, protocol.StatePlay),
		ChunkX:  chunkX,
		ChunkZ:  chunkZ,
		Changes: changes,
	}, nil
}

// packedEntry re-packs one (localPos, stateId) pair into the single-VarLong
// form 1.16.2+ uses: (stateId<<12)|(x<<8)|(z<<4)|y, per spec.md §4.6.
func packedEntry(c protocol.BlockChangeRecord) int64 {
	return int64(c.StateID)<<12 | int64(c.LocalX&0xF)<<8 | int64(c.LocalZ&0xF)<<4 | int64(c.LocalY&0xF)
}

func unpackEntry(v int64) protocol.BlockChangeRecord {
	return protocol.BlockChangeRecord{
		LocalX:  int(v>>8) & 0xF,
		LocalZ:  int(v>>4) & 0xF,
		LocalY:  int(v) & 0xF,
		StateID: uint32(v >> 12),
	}
}

// EncodeMultiBlockChangeV16_2 writes the 1.16.2+ form: a packed section
// position as a fixed 8-byte Long, a TrustEdges bool, then a VarInt count
// of VarLong packed entries.
func EncodeMultiBlockChangeV16_2(pk protocol.MultiBlockChangeV16_2) []byte {
	buf := buffer.New()
	sectionPos := (int64(pk.SectionX)&0x3FFFFF)<<42 | (int64(pk.SectionY)&0xFFFFF)<<0 | (int64(pk.SectionZ)&0x3FFFFF)<<20
	buf.WriteUint64(uint64(sectionPos))
	buf.WriteBool(pk.TrustEdges)
	buf.WriteVarInt(int32(len(pk.Changes)))
	for _, c := range pk.Changes {
		buf.WriteVarLong(packedEntry(c))
	}
	return buf.Bytes()
}

// DecodeMultiBlockChangeV16_2 is the inverse of EncodeMultiBlockChangeV16_2.
func DecodeMultiBlockChangeV16_2(data []byte) (protocol.MultiBlockChangeV16_2, error) {
	buf := buffer.Wrap(data)
	sectionPos := buf.ReadUint64()
	sx := int32(int64(sectionPos) >> 42)
	sy := int32(int64(sectionPos<<44) >> 44)
	sz := int32(int64(sectionPos<<22) >> 42)
	trustEdges := buf.ReadBool()
	n := buf.ReadVarInt()
	changes := make([]protocol.BlockChangeRecord, n)
	for i := range changes {
		v := buf.ReadVarLong()
		changes[i] = unpackEntry(v)
	}
	if err := buf.Err(); err != nil {
		return protocol.MultiBlockChangeV16_2{}, err
	}
	return protocol.MultiBlockChangeV16_2{
		Base:       protocol.NewBase(0x3F, protocol.V1_16_2, protocol.Clientbound, protocol.StatePlay),
		SectionX:   sx,
		SectionY:   sy,
		SectionZ:   sz,
		Changes:    changes,
		TrustEdges: trustEdges,
	}, nil
}
