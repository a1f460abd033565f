// Package backend implements the length-delimited wire protocol the proxy
// speaks to a crossmcd companion server: plain VarInt-id-prefixed frames
// over a Stream with no compression or encryption layer (the link is
// assumed to run on a trusted network), reusing the same Framed Stream the
// client-facing side uses so the two paths share one wire primitive.
package backend

import (
	"net"

	"github.com/oriumgames/crossmc/internal/buffer"
	"github.com/oriumgames/crossmc/internal/stream"
)

// Message ids exchanged between the proxy and a companion backend.
const (
	MsgHello        int32 = iota // proxy -> backend: announce a new player session
	MsgPlayerJoined              // backend -> proxy: session accepted, initial chunk data follows
	MsgChunkRequest              // proxy -> backend: request a column by (x, z)
	MsgChunkData                 // backend -> proxy: a world.Column's encoded sections
	MsgGoodbye                   // proxy -> backend: player disconnected
)

// Client is a connection from the proxy to one companion backend.
type Client struct {
	conn   net.Conn
	stream *stream.Stream
}

// Dial connects to a companion server at addr.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, stream: stream.New(conn)}, nil
}

// Send writes one (id, payload) message frame.
func (c *Client) Send(id int32, payload []byte) error {
	buf := buffer.New()
	buf.WriteVarInt(id)
	buf.WriteBytes(payload)
	return c.stream.WriteFrame(buf.Bytes())
}

// Receive reads the next message frame, returning its id and raw payload.
func (c *Client) Receive() (id int32, payload []byte, err error) {
	body, err := c.stream.ReadFrame()
	if err != nil {
		return 0, nil, err
	}
	buf := buffer.Wrap(body)
	id = buf.ReadVarInt()
	payload = buf.Remaining()
	return id, payload, buf.Err()
}

// Close closes the underlying connection.
func (c *Client) Close() error { return c.conn.Close() }

// Listener accepts companion-server connections from proxy instances.
type Listener struct {
	ln net.Listener
}

// Listen starts a backend Listener on addr.
func Listen(addr string) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Listener{ln: ln}, nil
}

// Accept blocks for the next incoming proxy connection.
func (l *Listener) Accept() (*Client, error) {
	conn, err := l.ln.Accept()
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, stream: stream.New(conn)}, nil
}

// Close stops accepting new connections.
func (l *Listener) Close() error { return l.ln.Close() }
