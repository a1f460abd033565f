package main

import (
	"crypto/md5"
	"crypto/rsa"

	"github.com/google/uuid"

	"github.com/oriumgames/crossmc/internal/buffer"
	"github.com/oriumgames/crossmc/internal/config"
	"github.com/oriumgames/crossmc/internal/protoerr"
	"github.com/oriumgames/crossmc/internal/protocol"
	"github.com/oriumgames/crossmc/internal/session"
)

func readLoginStart(s *session.Session) (protocol.LoginStartV16_2, error) {
	body, err := s.Stream().ReadFrame()
	if err != nil {
		return protocol.LoginStartV16_2{}, err
	}
	buf := buffer.Wrap(body)
	buf.ReadVarInt() // id, 0x00
	username := buf.ReadString(16)
	var id *uuid.UUID
	if s.Version().AtLeast(protocol.V1_16_2) && buf.Len() >= 16 {
		raw := buf.ReadBytes(16)
		parsed, perr := uuid.FromBytes(raw)
		if perr == nil {
			id = &parsed
		}
	}
	if err := buf.Err(); err != nil {
		return protocol.LoginStartV16_2{}, err
	}
	return protocol.LoginStartV16_2{
		Base:     protocol.NewBase(0x00, s.Version(), protocol.Serverbound, protocol.StateLogin),
		Username: username,
		UUID:     id,
	}, nil
}

func writeLoginSuccess(s *session.Session, id uuid.UUID, username string) error {
	buf := buffer.New()
	buf.WriteVarInt(0x02)
	uuidBytes, _ := id.MarshalBinary()
	buf.WriteBytes(uuidBytes)
	buf.WriteString(username)
	return s.Stream().WriteFrame(buf.Bytes())
}

func writeLoginDisconnect(s *session.Session, reason string) {
	buf := buffer.New()
	buf.WriteVarInt(0x00)
	buf.WriteString(`{"text":"` + reason + `"}`)
	_ = s.Stream().WriteFrame(buf.Bytes())
}

// runLoginPhase drives the Login state: LoginStart, the optional encryption
// handshake and Mojang verification, SetCompression, and LoginSuccess, per
// spec.md §4.7.
func runLoginPhase(s *session.Session, cfg config.Config, serverKey *rsa.PrivateKey) (session.PlayerIdentity, error) {
	start, err := readLoginStart(s)
	if err != nil {
		return session.PlayerIdentity{}, err
	}

	id := uuid.New()
	if start.UUID != nil {
		id = *start.UUID
	}

	if cfg.Encryption.Enabled && serverKey != nil {
		newSecret, err := runEncryptionHandshake(s, cfg, serverKey, start.Username)
		if err != nil {
			writeLoginDisconnect(s, "invalid session")
			return session.PlayerIdentity{}, &protoerr.AuthFailed{Reason: err.Error()}
		}
		if err := s.Stream().EnableEncryption(newSecret); err != nil {
			return session.PlayerIdentity{}, err
		}
	} else {
		id = offlineUUID(start.Username)
	}

	if cfg.Compression.Threshold >= 0 {
		buf := buffer.New()
		buf.WriteVarInt(0x03)
		buf.WriteVarInt(cfg.Compression.Threshold)
		if err := s.Stream().WriteFrame(buf.Bytes()); err != nil {
			return session.PlayerIdentity{}, err
		}
		s.Stream().SetCompression(cfg.Compression.Threshold)
	}

	if err := writeLoginSuccess(s, id, start.Username); err != nil {
		return session.PlayerIdentity{}, err
	}
	s.SetState(protocol.StatePlay)
	return session.PlayerIdentity{Username: start.Username, UUID: id}, nil
}

func runEncryptionHandshake(s *session.Session, cfg config.Config, serverKey *rsa.PrivateKey, username string) ([]byte, error) {
	flow := &session.LoginFlow{ServerKey: serverKey, VerifyMC: true, Cfg: cfg}
	pubDER, verifyToken, err := flow.Begin()
	if err != nil {
		return nil, err
	}

	buf := buffer.New()
	buf.WriteVarInt(0x01)
	buf.WriteString("") // empty server id, per Mojang's session-join convention
	buf.WriteByteArray(pubDER)
	buf.WriteByteArray(verifyToken)
	if err := s.Stream().WriteFrame(buf.Bytes()); err != nil {
		return nil, err
	}

	body, err := s.Stream().ReadFrame()
	if err != nil {
		return nil, err
	}
	rbuf := buffer.Wrap(body)
	rbuf.ReadVarInt() // id
	sharedSecret := rbuf.ReadByteArray(256)
	token := rbuf.ReadByteArray(256)
	if err := rbuf.Err(); err != nil {
		return nil, err
	}
	resp := protocol.EncryptionResponseV8{SharedSecret: sharedSecret, VerifyToken: token}
	return flow.Finish(resp, verifyToken, "", username)
}

// offlineUUID derives a deterministic UUID from the username the way
// offline-mode vanilla servers do, version 3 (name-based, MD5) seeded with
// "OfflinePlayer:<name>".
func offlineUUID(username string) uuid.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	sum[6] = sum[6]&0x0f | 0x30 // version 3
	sum[8] = sum[8]&0x3f | 0x80 // RFC 4122 variant
	return uuid.UUID(sum)
}
