package main

import (
	"context"
	"crypto/rsa"
	"net"

	"github.com/oriumgames/crossmc/internal/buffer"
	"github.com/oriumgames/crossmc/internal/config"
	"github.com/oriumgames/crossmc/internal/logging"
	"github.com/oriumgames/crossmc/internal/protocol"
	"github.com/oriumgames/crossmc/internal/registry"
	"github.com/oriumgames/crossmc/internal/session"
)

const maxStringLen = 32767

// Serve runs the accept loop: each connection gets its own goroutine
// running the Handshake -> Status|Login -> Play pipeline, per spec.md §4.7
// and §5's one-goroutine-per-connection model.
func Serve(ctx context.Context, ln net.Listener, cfg config.Config, reg *registry.Registry, serverKey *rsa.PrivateKey, log logging.Logger) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		go handleConn(ctx, conn, cfg, reg, serverKey, log)
	}
}

func handleConn(ctx context.Context, conn net.Conn, cfg config.Config, reg *registry.Registry, serverKey *rsa.PrivateKey, log logging.Logger) {
	defer conn.Close()
	s := session.New(conn, log.With("remote", conn.RemoteAddr().String()))
	defer s.Close()

	if err := runHandshakePhase(s, cfg); err != nil {
		s.Log().Warnf("handshake phase: %v", err)
		return
	}

	switch s.State() {
	case protocol.StateStatus:
		runStatusPhase(s, cfg)
	case protocol.StateLogin:
		identity, err := runLoginPhase(s, cfg, serverKey)
		if err != nil {
			s.Log().Warnf("login phase: %v", err)
			return
		}
		runPlayPhase(ctx, s, cfg, reg, identity)
	}
}

func readHandshakeFrame(s *session.Session) (protocol.HandshakeV8, error) {
	body, err := s.Stream().ReadFrame()
	if err != nil {
		return protocol.HandshakeV8{}, err
	}
	buf := buffer.Wrap(body)
	buf.ReadVarInt() // packet id, always 0x00 for Handshake
	protoVer := buf.ReadVarInt()
	addr := buf.ReadString(maxStringLen)
	port := buf.ReadUint16()
	next := buf.ReadVarInt()
	if err := buf.Err(); err != nil {
		return protocol.HandshakeV8{}, err
	}
	return protocol.HandshakeV8{
		Base:            protocol.NewBase(0x00, protocol.V1_8, protocol.Serverbound, protocol.StateHandshake),
		ProtocolVersion: protoVer,
		ServerAddress:   addr,
		ServerPort:      port,
		NextState:       next,
	}, nil
}

func runHandshakePhase(s *session.Session, cfg config.Config) error {
	hs, err := readHandshakeFrame(s)
	if err != nil {
		return err
	}
	return session.HandleHandshake(hs, s)
}

func runStatusPhase(s *session.Session, cfg config.Config) {
	// Status Request has no body beyond the packet id.
	if _, err := s.Stream().ReadFrame(); err != nil {
		return
	}
	resp := session.StatusResponseJSON(cfg, s.Version(), 0)
	buf := buffer.New()
	buf.WriteVarInt(0x00)
	buf.WriteString(resp)
	if err := s.Stream().WriteFrame(buf.Bytes()); err != nil {
		return
	}

	pingBody, err := s.Stream().ReadFrame()
	if err != nil {
		return
	}
	pingBuf := buffer.Wrap(pingBody)
	pingBuf.ReadVarInt() // id
	payload := pingBuf.ReadInt64()

	pongBuf := buffer.New()
	pongBuf.WriteVarInt(0x01)
	pongBuf.WriteInt64(payload)
	_ = s.Stream().WriteFrame(pongBuf.Bytes())
}
