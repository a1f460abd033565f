// Package stream implements the Framed Stream (C5): TCP framing with a
// VarInt length prefix, an optional zlib compression layer, and optional
// AES-128/CFB8 encryption, per spec.md §4.5. The framing loop (growable
// scratch buffer, VarInt length prefix) is grounded on
// ErikPelli/MinecraftLightServer's minecraft/packet.go Pack/Unpack;
// compression and encryption layering has no single teacher analogue and
// is built directly from spec.md.
package stream

import (
	"crypto/aes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/oriumgames/crossmc/internal/protoerr"
)

// MaxFrameLength is the largest compressed frame this stream will accept,
// per spec.md §4.5.
const MaxFrameLength = 2 * 1024 * 1024

// Stream wraps a byte-stream socket (or any io.ReadWriter, e.g. for tests)
// with Minecraft's framing, compression and encryption.
type Stream struct {
	rw io.ReadWriter

	encReader *cfb8
	encWriter *cfb8

	compressionThreshold int32 // -1 disables compression entirely
}

// New wraps rw with framing; compression and encryption start disabled.
func New(rw io.ReadWriter) *Stream {
	return &Stream{rw: rw, compressionThreshold: -1}
}

// EnableEncryption switches the stream to AES-128/CFB8 using secret as both
// key and IV, the Minecraft-standard scheme (spec.md §4.5). It takes effect
// on the next frame, as required by the ordering guarantee in spec.md §4.5.
func (s *Stream) EnableEncryption(secret []byte) error {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return err
	}
	s.encReader = newCFB8(block, secret, false)
	s.encWriter = newCFB8(block, secret, true)
	return nil
}

// SetCompression configures the inner-frame compression threshold. A
// negative value disables compression entirely (no inner VarInt length is
// written or expected).
func (s *Stream) SetCompression(threshold int32) {
	s.compressionThreshold = threshold
}

// --- raw byte I/O, encrypted if enabled ---

func (s *Stream) readByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(s.rw, b[:]); err != nil {
		return 0, err
	}
	if s.encReader != nil {
		s.encReader.XORKeyStream(b[:], b[:])
	}
	return b[0], nil
}

func (s *Stream) readN(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.rw, buf); err != nil {
		return nil, err
	}
	if s.encReader != nil {
		s.encReader.XORKeyStream(buf, buf)
	}
	return buf, nil
}

func (s *Stream) writeRaw(p []byte) error {
	if s.encWriter != nil {
		out := make([]byte, len(p))
		s.encWriter.XORKeyStream(out, p)
		p = out
	}
	_, err := s.rw.Write(p)
	return err
}

func (s *Stream) readVarInt() (int32, error) {
	var result uint32
	for i := 0; i < 5; i++ {
		b, err := s.readByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7F) << (7 * uint(i))
		if b&0x80 == 0 {
			return int32(result), nil
		}
	}
	return 0, &protoerr.MalformedVarInt{Max: 5}
}

func writeVarInt(v int32) []byte {
	u := uint32(v)
	var out []byte
	for {
		if u&^0x7F == 0 {
			out = append(out, byte(u))
			return out
		}
		out = append(out, byte(u&0x7F)|0x80)
		u >>= 7
	}
}

// ReadFrame reads one full frame from the underlying socket and returns the
// fully decompressed, decrypted packet body (id + fields). Callers
// translate the returned bytes per the current ProtocolVersion.
func (s *Stream) ReadFrame() ([]byte, error) {
	length, err := s.readVarInt()
	if err != nil {
		return nil, err
	}
	if length < 0 || int(length) > MaxFrameLength {
		return nil, &protoerr.FrameTooLarge{Length: int(length), Max: MaxFrameLength}
	}
	body, err := s.readN(int(length))
	if err != nil {
		return nil, err
	}
	if s.compressionThreshold < 0 {
		return body, nil
	}
	return s.decompress(body)
}

func (s *Stream) decompress(body []byte) ([]byte, error) {
	r := sliceReader{buf: body}
	uncompressedLen, err := readVarIntFrom(&r)
	if err != nil {
		return nil, &protoerr.MalformedFrame{Reason: "bad inner length: " + err.Error()}
	}
	rest := body[r.pos:]
	if uncompressedLen == 0 {
		return rest, nil
	}
	zr, err := zlib.NewReader(&byteSliceReadCloser{buf: rest})
	if err != nil {
		return nil, &protoerr.DecompressionFailed{Cause: err}
	}
	defer zr.Close()
	out := make([]byte, uncompressedLen)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, &protoerr.DecompressionFailed{Cause: err}
	}
	return out, nil
}

// WriteFrame compresses (if configured), length-prefixes and encrypts (if
// configured) payload, and writes the resulting frame to the socket.
func (s *Stream) WriteFrame(payload []byte) error {
	var body []byte
	switch {
	case s.compressionThreshold < 0:
		body = payload
	case len(payload) >= int(s.compressionThreshold):
		var buf sliceWriter
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
		body = append(writeVarInt(int32(len(payload))), buf.buf...)
	default:
		body = append(writeVarInt(0), payload...)
	}
	if len(body) > MaxFrameLength {
		return &protoerr.FrameTooLarge{Length: len(body), Max: MaxFrameLength}
	}
	if err := s.writeRaw(writeVarInt(int32(len(body)))); err != nil {
		return err
	}
	return s.writeRaw(body)
}

// --- small helpers avoiding a bytes.Reader import cycle with errors ---

type sliceReader struct {
	buf []byte
	pos int
}

func (r *sliceReader) readByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func readVarIntFrom(r *sliceReader) (int32, error) {
	var result uint32
	for i := 0; i < 5; i++ {
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7F) << (7 * uint(i))
		if b&0x80 == 0 {
			return int32(result), nil
		}
	}
	return 0, &protoerr.MalformedVarInt{Max: 5}
}

type byteSliceReadCloser struct {
	buf []byte
	pos int
}

func (b *byteSliceReadCloser) Read(p []byte) (int, error) {
	if b.pos >= len(b.buf) {
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.pos:])
	b.pos += n
	return n, nil
}

type sliceWriter struct{ buf []byte }

func (w *sliceWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}
