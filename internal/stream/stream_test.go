package stream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/oriumgames/crossmc/internal/protoerr"
)

// pipe is a minimal in-memory io.ReadWriter splitting reads and writes into
// independent buffers, enough to drive a Stream end-to-end in a test.
type pipe struct {
	toReader bytes.Buffer
}

func (p *pipe) Write(b []byte) (int, error) { return p.toReader.Write(b) }
func (p *pipe) Read(b []byte) (int, error)  { return p.toReader.Read(b) }

func TestFrameRoundTripUncompressedUnencrypted(t *testing.T) {
	rw := &pipe{}
	s := New(rw)
	payload := []byte{0x00, 'h', 'e', 'l', 'l', 'o'}
	if err := s.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := s.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %v, want %v", got, payload)
	}
}

func TestFrameRoundTripCompressedBelowThreshold(t *testing.T) {
	rw := &pipe{}
	s := New(rw)
	s.SetCompression(64)
	payload := []byte{0x00, 1, 2, 3}
	if err := s.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := s.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %v, want %v", got, payload)
	}
}

func TestFrameRoundTripCompressedAboveThreshold(t *testing.T) {
	rw := &pipe{}
	s := New(rw)
	s.SetCompression(8)
	payload := bytes.Repeat([]byte{0xAB}, 512)
	if err := s.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := s.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round-tripped payload mismatch, len got=%d want=%d", len(got), len(payload))
	}
}

func TestFrameRoundTripEncrypted(t *testing.T) {
	rw := &pipe{}
	s := New(rw)
	secret := bytes.Repeat([]byte{0x42}, 16)
	if err := s.EnableEncryption(secret); err != nil {
		t.Fatalf("EnableEncryption: %v", err)
	}
	payload := []byte{0x01, 'p', 'i', 'n', 'g'}
	if err := s.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := s.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %v, want %v", got, payload)
	}
}

func TestFrameRoundTripEncryptedAndCompressed(t *testing.T) {
	rw := &pipe{}
	s := New(rw)
	s.SetCompression(16)
	secret := bytes.Repeat([]byte{0x07}, 16)
	if err := s.EnableEncryption(secret); err != nil {
		t.Fatalf("EnableEncryption: %v", err)
	}
	payload := bytes.Repeat([]byte("crossmc"), 64)
	if err := s.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := s.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round-tripped payload mismatch")
	}
}

func TestFrameTooLarge(t *testing.T) {
	rw := &pipe{}
	rw.toReader.Write(writeVarInt(MaxFrameLength + 1))
	s := New(rw)
	_, err := s.ReadFrame()
	var tooLarge *protoerr.FrameTooLarge
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected FrameTooLarge, got %v", err)
	}
}

func TestEncryptionDesyncProducesGarbageNotPanic(t *testing.T) {
	rw := &pipe{}
	s := New(rw)
	secretA := bytes.Repeat([]byte{0x01}, 16)
	if err := s.EnableEncryption(secretA); err != nil {
		t.Fatalf("EnableEncryption: %v", err)
	}
	if err := s.WriteFrame([]byte{1, 2, 3}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	s2 := New(rw)
	secretB := bytes.Repeat([]byte{0x02}, 16)
	if err := s2.EnableEncryption(secretB); err != nil {
		t.Fatalf("EnableEncryption: %v", err)
	}
	got, err := s2.ReadFrame()
	if err == nil && bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("expected mismatched keys to desync the stream, got matching payload")
	}
}
