// Package session implements the connection pipeline (C7): the
// Handshake -> Status/Login -> Play state machine, keep-alive tracking and
// packet forwarding between a client-facing Stream and a backend
// connection. The Session struct and its one-Handler-per-packet-kind
// dispatch are grounded on oomph-ac-dragonfly's server/session package
// (see handler_item_stack_request.go's ItemStackRequestHandler.Handle(p,
// s) shape), generalized from a single packet kind to the full catalog.
package session

import (
	"context"
	"net"
	"reflect"
	"sync"
	"time"

	"github.com/oriumgames/crossmc/internal/logging"
	"github.com/oriumgames/crossmc/internal/protoerr"
	"github.com/oriumgames/crossmc/internal/protocol"
	"github.com/oriumgames/crossmc/internal/stream"
)

// KeepAliveInterval and KeepAliveTimeout bound the Play-state liveness
// check, per spec.md §4.7.
const (
	KeepAliveInterval = 10 * time.Second
	KeepAliveTimeout  = 30 * time.Second
)

// MaxOutgoingQueue bounds the number of frames buffered for a slow client
// before the session is closed, per spec.md §4.5's backpressure guarantee.
const MaxOutgoingQueue = 256

// Handler processes one decoded Packet kind against a Session. Concrete
// handlers are registered per concrete packet type via Session.Handle.
type Handler interface {
	Handle(pk protocol.Packet, s *Session) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(pk protocol.Packet, s *Session) error

func (f HandlerFunc) Handle(pk protocol.Packet, s *Session) error { return f(pk, s) }

// Session is one client's connection: its framed stream, negotiated
// version, connection state and the queue of outgoing frames feeding the
// write loop.
type Session struct {
	conn    net.Conn
	stream  *stream.Stream
	log     logging.Logger
	version protocol.ProtocolVersion
	state   protocol.State

	handlers map[reflect.Type]Handler

	outgoing chan []byte

	mu            sync.Mutex
	lastKeepAlive time.Time
	keepAliveID   int64

	closeOnce sync.Once
	closed    chan struct{}
}

// New wraps conn in a Session. Encryption and compression, if negotiated,
// are enabled on the returned Session's Stream during the login flow.
func New(conn net.Conn, log logging.Logger) *Session {
	return &Session{
		conn:     conn,
		stream:   stream.New(conn),
		log:      log,
		state:    protocol.StateHandshake,
		handlers: make(map[reflect.Type]Handler),
		outgoing: make(chan []byte, MaxOutgoingQueue),
		closed:   make(chan struct{}),
	}
}

// On registers a Handler for every packet of the concrete type of sample
// (e.g. s.On(protocol.LoginStartV8{}, h) registers h for LoginStartV8).
func (s *Session) On(sample protocol.Packet, h Handler) {
	s.handlers[reflect.TypeOf(sample)] = h
}

// Dispatch routes pk to its registered Handler, returning UnknownPacket if
// none is registered -- the caller should log and drop, not close the
// connection, per spec.md §4.7.
func (s *Session) Dispatch(pk protocol.Packet) error {
	h, ok := s.handlers[reflect.TypeOf(pk)]
	if !ok {
		return &protoerr.UnknownPacket{
			ID:    pk.ID(),
			Ver:   int(s.version),
			State: s.state.String(),
			Dir:   "unknown",
		}
	}
	return h.Handle(pk, s)
}

// State returns the session's current connection state.
func (s *Session) State() protocol.State { return s.state }

// SetState transitions the session's connection state machine, per
// spec.md §4.7 (Handshake -> Status|Login -> Play).
func (s *Session) SetState(state protocol.State) { s.state = state }

// Version returns the session's negotiated protocol version.
func (s *Session) Version() protocol.ProtocolVersion { return s.version }

// SetVersion records the version negotiated during Handshake.
func (s *Session) SetVersion(v protocol.ProtocolVersion) { s.version = v }

// Stream exposes the underlying framed stream for encoders/decoders.
func (s *Session) Stream() *stream.Stream { return s.stream }

// Log returns the session's logger.
func (s *Session) Log() logging.Logger { return s.log }

// EnqueueFrame pushes an already-encoded frame body onto the outgoing
// queue. A slow client that lets the queue fill up gets disconnected
// rather than the proxy growing the queue without bound (spec.md §4.5).
func (s *Session) EnqueueFrame(body []byte) {
	select {
	case s.outgoing <- body:
	case <-s.closed:
	default:
		s.log.Warnf("outgoing queue full, closing session")
		s.Close()
	}
}

// RunWriteLoop drains the outgoing queue to the stream until ctx is
// cancelled or the session closes.
func (s *Session) RunWriteLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closed:
			return
		case frame := <-s.outgoing:
			if err := s.stream.WriteFrame(frame); err != nil {
				s.log.Errorf("write frame: %v", err)
				s.Close()
				return
			}
		}
	}
}

// Touch records a keep-alive response, resetting the liveness deadline.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastKeepAlive = time.Now()
	s.mu.Unlock()
}

// Expired reports whether the session has gone silent past KeepAliveTimeout.
func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.lastKeepAlive.IsZero() && time.Since(s.lastKeepAlive) > KeepAliveTimeout
}

// NextKeepAliveID returns a fresh keep-alive id to send to the client.
func (s *Session) NextKeepAliveID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keepAliveID++
	return s.keepAliveID
}

// Close shuts the session down exactly once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return s.conn.Close()
}

// Done reports whether the session has been closed.
func (s *Session) Done() <-chan struct{} { return s.closed }
