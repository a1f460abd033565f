package session

import (
	"net"
	"testing"
	"time"

	"github.com/oriumgames/crossmc/internal/logging"
	"github.com/oriumgames/crossmc/internal/protocol"
)

func testSession(t *testing.T) (*Session, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close() })
	log := logging.New(nil, 0)
	return New(server, log), client
}

func TestDispatchRoutesByConcreteType(t *testing.T) {
	s, conn := testSession(t)
	defer conn.Close()

	s.On(protocol.HandshakeV8{}, HandlerFunc(func(pk protocol.Packet, s *Session) error {
		return HandleHandshake(pk.(protocol.HandshakeV8), s)
	}))

	pk := protocol.HandshakeV8{ProtocolVersion: protocol.V1_14.HandshakeID(), NextState: 2}
	if err := s.Dispatch(pk); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if s.State() != protocol.StateLogin {
		t.Fatalf("state = %v, want login", s.State())
	}
	if s.Version() != protocol.V1_14 {
		t.Fatalf("version = %v, want 1.14", s.Version())
	}
}

func TestDispatchUnknownPacketDoesNotPanic(t *testing.T) {
	s, conn := testSession(t)
	defer conn.Close()

	err := s.Dispatch(protocol.StatusRequestV8{})
	if err == nil {
		t.Fatal("expected UnknownPacket error")
	}
}

func TestEnqueueFrameClosesSessionWhenFull(t *testing.T) {
	s, conn := testSession(t)
	defer conn.Close()

	for i := 0; i < MaxOutgoingQueue; i++ {
		s.EnqueueFrame([]byte{byte(i)})
	}
	select {
	case <-s.Done():
		t.Fatal("session closed before queue was full")
	default:
	}
	if len(s.outgoing) != MaxOutgoingQueue {
		t.Fatalf("queue len = %d, want %d", len(s.outgoing), MaxOutgoingQueue)
	}

	s.EnqueueFrame([]byte("one too many"))

	select {
	case <-s.Done():
	default:
		t.Fatal("expected session to close once the outgoing queue overflowed")
	}
}

func TestExpiredAfterTimeout(t *testing.T) {
	s, conn := testSession(t)
	defer conn.Close()

	s.mu.Lock()
	s.lastKeepAlive = time.Now().Add(-KeepAliveTimeout - time.Second)
	s.mu.Unlock()

	if !s.Expired() {
		t.Fatal("expected session to report expired")
	}
}
