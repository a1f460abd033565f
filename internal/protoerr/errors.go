// Package protoerr defines the error taxonomy shared by every layer of the
// translation pipeline, from the framed stream up through the connection
// pipeline. Callers use errors.As to recover the concrete kind and decide
// whether a connection must be closed.
package protoerr

import "fmt"

// MalformedVarInt is returned when a VarInt or VarLong exceeds its maximum
// encoded width without its continuation bit clearing.
type MalformedVarInt struct {
	Max int // maximum number of bytes allowed (5 for i32, 10 for i64)
}

func (e *MalformedVarInt) Error() string {
	return fmt.Sprintf("malformed varint: no terminating byte within %d bytes", e.Max)
}

// StringTooLong is returned when a length-prefixed string exceeds the
// caller-supplied maximum.
type StringTooLong struct {
	Length, Max int
}

func (e *StringTooLong) Error() string {
	return fmt.Sprintf("string too long: %d bytes, max %d", e.Length, e.Max)
}

// MalformedFrame is returned by the framed stream when a frame's VarInt
// length prefix is invalid or the frame exceeds the maximum allowed size.
type MalformedFrame struct {
	Reason string
}

func (e *MalformedFrame) Error() string { return "malformed frame: " + e.Reason }

// FrameTooLarge is returned when a frame's declared length exceeds the
// maximum compressed frame size (2 MiB).
type FrameTooLarge struct {
	Length, Max int
}

func (e *FrameTooLarge) Error() string {
	return fmt.Sprintf("frame too large: %d bytes, max %d", e.Length, e.Max)
}

// DecompressionFailed wraps an underlying zlib/flate error encountered while
// inflating a compressed frame.
type DecompressionFailed struct {
	Cause error
}

func (e *DecompressionFailed) Error() string { return "decompression failed: " + e.Cause.Error() }
func (e *DecompressionFailed) Unwrap() error { return e.Cause }

// MalformedPacket is returned when a field-level decode failure occurs while
// translating a packet for a specific protocol version.
type MalformedPacket struct {
	ID     int32
	Ver    int
	Offset int
	Cause  error
}

func (e *MalformedPacket) Error() string {
	return fmt.Sprintf("malformed packet 0x%02x (version %d, offset %d): %v", e.ID, e.Ver, e.Offset, e.Cause)
}
func (e *MalformedPacket) Unwrap() error { return e.Cause }

// UnknownPacket is returned when an id has no mapping for the given
// direction/state/version. The caller should drop the packet, not close
// the connection.
type UnknownPacket struct {
	ID    int32
	Ver   int
	State string
	Dir   string
}

func (e *UnknownPacket) Error() string {
	return fmt.Sprintf("unknown packet 0x%02x (version %d, state %s, direction %s)", e.ID, e.Ver, e.State, e.Dir)
}

// AuthFailed is returned when the encryption handshake fails verification or
// the remote session-server hook rejects the player.
type AuthFailed struct {
	Reason string
}

func (e *AuthFailed) Error() string { return "authentication failed: " + e.Reason }

// Timeout is returned when a keep-alive or frame read deadline elapses.
type Timeout struct {
	Reason string
}

func (e *Timeout) Error() string { return "timeout: " + e.Reason }

// Fatal signals an invariant violation in the palette or registry layer. In
// debug builds callers may choose to panic; in release it should be
// converted into a recoverable per-connection error.
type Fatal struct {
	Reason string
}

func (e *Fatal) Error() string { return "fatal: " + e.Reason }
