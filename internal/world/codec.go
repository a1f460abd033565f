package world

import (
	"github.com/oriumgames/crossmc/internal/buffer"
	"github.com/oriumgames/crossmc/internal/palette"
)

// EncodeColumnFull serializes a column's full per-section palette/word
// state (not just a summary) so a backend connection can hand a column
// to the proxy and have it reconstructed byte-for-byte: the proxy still
// needs the real block ids to run them through VersionConverter before
// handing them to internal/translate for a specific client's wire form.
func EncodeColumnFull(col *Column) []byte {
	buf := buffer.New()
	buf.WriteInt32(col.X)
	buf.WriteInt32(col.Z)
	var bitmap uint32
	for i := 0; i < MaxSections; i++ {
		if col.Sections[i] != nil {
			bitmap |= 1 << uint(i)
		}
	}
	buf.WriteUint32(bitmap)
	for i := 0; i < MaxSections; i++ {
		sec := col.Sections[i]
		if sec == nil {
			continue
		}
		buf.WriteUint8(uint8(sec.BitsPerEntry()))
		buf.WriteBool(sec.Direct())
		p := sec.Palette()
		buf.WriteVarInt(int32(len(p)))
		for _, id := range p {
			buf.WriteVarInt(int32(id))
		}
		words := sec.EncodeWordsNew()
		buf.WriteVarInt(int32(len(words)))
		for _, w := range words {
			buf.WriteUint64(w)
		}
	}
	return buf.Bytes()
}

// DecodeColumnFull is the inverse of EncodeColumnFull.
func DecodeColumnFull(data []byte, totalStates, airID uint32, isAir func(uint32) bool) (*Column, error) {
	buf := buffer.Wrap(data)
	x := buf.ReadInt32()
	z := buf.ReadInt32()
	bitmap := buf.ReadUint32()
	col := NewColumn(x, z)
	for i := 0; i < MaxSections; i++ {
		if bitmap&(1<<uint(i)) == 0 {
			continue
		}
		bpe := int(buf.ReadUint8())
		direct := buf.ReadBool()
		paletteLen := int(buf.ReadVarInt())
		var pal []uint32
		if !direct {
			pal = make([]uint32, paletteLen)
			for j := range pal {
				pal[j] = uint32(buf.ReadVarInt())
			}
		}
		wordCount := int(buf.ReadVarInt())
		words := make([]uint64, wordCount)
		for j := range words {
			words[j] = buf.ReadUint64()
		}
		if err := buf.Err(); err != nil {
			return nil, err
		}
		entries := palette.DecodeWordsNew(words, bpe, sectionVolume)
		sec, err := palette.FromEntries(entries, pal, bpe, isAir)
		if err != nil {
			return nil, err
		}
		col.Sections[i] = sec
	}
	return col, buf.Err()
}

const sectionVolume = 16 * 16 * 16
