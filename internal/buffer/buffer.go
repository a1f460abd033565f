// Package buffer implements the length-prefixed, big-endian read/write
// primitives shared by every wire codec in the translation pipeline: fixed
// width numeric fields, VarInt/VarLong, length-prefixed strings and the two
// BlockPos packings used pre- and post-1.14.
//
// A Buffer accumulates errors rather than returning them from every call:
// once a read fails, every subsequent read on the same Buffer returns the
// zero value until Err is called to retrieve and clear the failure. This
// mirrors ErikPelli/MinecraftLightServer's bytes.Buffer-backed Packet type,
// generalized so generated decoders never need to thread an error check
// through every field.
package buffer

import (
	"encoding/binary"
	"math"

	"github.com/oriumgames/crossmc/internal/protoerr"
)

// Buffer wraps a growable byte slice with independent read/write cursors.
type Buffer struct {
	buf []byte
	r   int
	err error
}

// New returns an empty, writable Buffer.
func New() *Buffer { return &Buffer{} }

// Wrap returns a Buffer that reads from (and appends to) b directly.
func Wrap(b []byte) *Buffer { return &Buffer{buf: b} }

// Bytes returns the full backing slice, regardless of read position.
func (b *Buffer) Bytes() []byte { return b.buf }

// Remaining returns the unread slice.
func (b *Buffer) Remaining() []byte {
	if b.r > len(b.buf) {
		return nil
	}
	return b.buf[b.r:]
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int { return len(b.buf) - b.r }

// Offset returns the current read cursor, used for MalformedPacket.Offset.
func (b *Buffer) Offset() int { return b.r }

// Err returns and clears the first error encountered by a read call.
func (b *Buffer) Err() error {
	err := b.err
	b.err = nil
	return err
}

// fail records the first error seen; subsequent reads no-op.
func (b *Buffer) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Buffer) take(n int) []byte {
	if b.err != nil {
		return make([]byte, n)
	}
	if b.r+n > len(b.buf) {
		b.fail(&protoerr.MalformedPacket{Cause: errShortRead{want: n, have: len(b.buf) - b.r}})
		return make([]byte, n)
	}
	out := b.buf[b.r : b.r+n]
	b.r += n
	return out
}

type errShortRead struct {
	want, have int
}

func (e errShortRead) Error() string {
	return "short read"
}

// --- fixed width ---

func (b *Buffer) WriteUint8(v uint8) { b.buf = append(b.buf, v) }
func (b *Buffer) ReadUint8() uint8   { return b.take(1)[0] }
func (b *Buffer) WriteInt8(v int8)   { b.WriteUint8(uint8(v)) }
func (b *Buffer) ReadInt8() int8     { return int8(b.ReadUint8()) }

func (b *Buffer) WriteBool(v bool) {
	if v {
		b.WriteUint8(1)
	} else {
		b.WriteUint8(0)
	}
}
func (b *Buffer) ReadBool() bool { return b.ReadUint8() != 0 }

func (b *Buffer) WriteUint16(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}
func (b *Buffer) ReadUint16() uint16 { return binary.BigEndian.Uint16(b.take(2)) }
func (b *Buffer) WriteInt16(v int16) { b.WriteUint16(uint16(v)) }
func (b *Buffer) ReadInt16() int16   { return int16(b.ReadUint16()) }

func (b *Buffer) WriteUint32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}
func (b *Buffer) ReadUint32() uint32 { return binary.BigEndian.Uint32(b.take(4)) }
func (b *Buffer) WriteInt32(v int32) { b.WriteUint32(uint32(v)) }
func (b *Buffer) ReadInt32() int32   { return int32(b.ReadUint32()) }

func (b *Buffer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}
func (b *Buffer) ReadUint64() uint64 { return binary.BigEndian.Uint64(b.take(8)) }
func (b *Buffer) WriteInt64(v int64) { b.WriteUint64(uint64(v)) }
func (b *Buffer) ReadInt64() int64   { return int64(b.ReadUint64()) }

func (b *Buffer) WriteFloat32(v float32) { b.WriteUint32(math.Float32bits(v)) }
func (b *Buffer) ReadFloat32() float32   { return math.Float32frombits(b.ReadUint32()) }
func (b *Buffer) WriteFloat64(v float64) { b.WriteUint64(math.Float64bits(v)) }
func (b *Buffer) ReadFloat64() float64   { return math.Float64frombits(b.ReadUint64()) }

// --- VarInt / VarLong ---

const (
	maxVarIntBytes  = 5
	maxVarLongBytes = 10
)

// WriteVarInt writes v as a 7-bit-group, little-endian VarInt.
func (b *Buffer) WriteVarInt(v int32) {
	u := uint32(v)
	for {
		if u&^0x7F == 0 {
			b.WriteUint8(uint8(u))
			return
		}
		b.WriteUint8(uint8(u&0x7F) | 0x80)
		u >>= 7
	}
}

// ReadVarInt reads a VarInt, failing with MalformedVarInt after the 5th
// byte still carries a continuation bit.
func (b *Buffer) ReadVarInt() int32 {
	var result uint32
	for i := 0; i < maxVarIntBytes; i++ {
		if b.err != nil {
			return 0
		}
		n := b.ReadUint8()
		result |= uint32(n&0x7F) << (7 * uint(i))
		if n&0x80 == 0 {
			return int32(result)
		}
	}
	b.fail(&protoerr.MalformedVarInt{Max: maxVarIntBytes})
	return 0
}

// WriteVarLong writes v as a 7-bit-group, little-endian VarLong.
func (b *Buffer) WriteVarLong(v int64) {
	u := uint64(v)
	for {
		if u&^0x7F == 0 {
			b.WriteUint8(uint8(u))
			return
		}
		b.WriteUint8(uint8(u&0x7F) | 0x80)
		u >>= 7
	}
}

// ReadVarLong reads a VarLong, failing with MalformedVarInt after the 10th
// byte still carries a continuation bit.
func (b *Buffer) ReadVarLong() int64 {
	var result uint64
	for i := 0; i < maxVarLongBytes; i++ {
		if b.err != nil {
			return 0
		}
		n := b.ReadUint8()
		result |= uint64(n&0x7F) << (7 * uint(i))
		if n&0x80 == 0 {
			return int64(result)
		}
	}
	b.fail(&protoerr.MalformedVarInt{Max: maxVarLongBytes})
	return 0
}

// VarIntSize returns the number of bytes WriteVarInt would emit for v.
func VarIntSize(v int32) int {
	u := uint32(v)
	n := 1
	for u&^0x7F != 0 {
		u >>= 7
		n++
	}
	return n
}

// --- strings ---

// WriteString writes a VarInt byte-length prefix followed by UTF-8 bytes.
func (b *Buffer) WriteString(s string) {
	b.WriteVarInt(int32(len(s)))
	b.buf = append(b.buf, s...)
}

// ReadString reads a VarInt-prefixed UTF-8 string, failing with
// StringTooLong if the declared length (in bytes, worst case 4 bytes/char)
// exceeds maxLen characters.
func (b *Buffer) ReadString(maxLen int) string {
	n := b.ReadVarInt()
	if b.err != nil {
		return ""
	}
	if n < 0 || int(n) > maxLen*4 {
		b.fail(&protoerr.StringTooLong{Length: int(n), Max: maxLen * 4})
		return ""
	}
	return string(b.take(int(n)))
}

// --- byte arrays ---

func (b *Buffer) WriteBytes(p []byte) { b.buf = append(b.buf, p...) }
func (b *Buffer) ReadBytes(n int) []byte {
	out := make([]byte, n)
	copy(out, b.take(n))
	return out
}

// WriteByteArray writes a VarInt-prefixed byte array (e.g. the Chunk Data
// heightmap payload and the Encryption Request key and verify token).
func (b *Buffer) WriteByteArray(p []byte) {
	b.WriteVarInt(int32(len(p)))
	b.WriteBytes(p)
}

func (b *Buffer) ReadByteArray(max int) []byte {
	n := b.ReadVarInt()
	if b.err != nil || n < 0 || int(n) > max {
		if b.err == nil {
			b.fail(&protoerr.MalformedFrame{Reason: "byte array length out of range"})
		}
		return nil
	}
	return b.ReadBytes(int(n))
}

// --- BlockPos ---

// WriteBlockPosOld packs a block position the way versions up to 1.13
// expect: x(26) y(12) z(26).
func (b *Buffer) WriteBlockPosOld(x, y, z int32) {
	v := (uint64(uint32(x))&0x3FFFFFF)<<38 | (uint64(uint32(y))&0xFFF)<<26 | (uint64(uint32(z)) & 0x3FFFFFF)
	b.WriteUint64(v)
}

func (b *Buffer) ReadBlockPosOld() (x, y, z int32) {
	v := b.ReadUint64()
	x = signExtend(uint32(v>>38)&0x3FFFFFF, 26)
	y = signExtend(uint32(v>>26)&0xFFF, 12)
	z = signExtend(uint32(v)&0x3FFFFFF, 26)
	return
}

// WriteBlockPosNew packs a block position the way 1.14+ expects: x(26) z(26) y(12).
func (b *Buffer) WriteBlockPosNew(x, y, z int32) {
	v := (uint64(uint32(x))&0x3FFFFFF)<<38 | (uint64(uint32(z))&0x3FFFFFF)<<12 | (uint64(uint32(y)) & 0xFFF)
	b.WriteUint64(v)
}

func (b *Buffer) ReadBlockPosNew() (x, y, z int32) {
	v := b.ReadUint64()
	x = signExtend(uint32(v>>38)&0x3FFFFFF, 26)
	z = signExtend(uint32(v>>12)&0x3FFFFFF, 26)
	y = signExtend(uint32(v)&0xFFF, 12)
	return
}

func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}
