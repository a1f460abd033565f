package session

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oriumgames/crossmc/internal/auth"
	"github.com/oriumgames/crossmc/internal/config"
	"github.com/oriumgames/crossmc/internal/protoerr"
	"github.com/oriumgames/crossmc/internal/protocol"
)

// HandleHandshake consumes a HandshakeV8 (the wire layout is unchanged
// since 1.7) and transitions the session into Status or Login per its
// declared NextState, per spec.md §4.7.
func HandleHandshake(pk protocol.HandshakeV8, s *Session) error {
	ver, ok := protocol.FromHandshakeID(pk.ProtocolVersion)
	if !ok {
		return &protoerr.Fatal{Reason: fmt.Sprintf("unsupported protocol version %d", pk.ProtocolVersion)}
	}
	s.SetVersion(ver)
	switch pk.NextState {
	case 1:
		s.SetState(protocol.StateStatus)
	case 2:
		s.SetState(protocol.StateLogin)
	default:
		return &protoerr.MalformedPacket{ID: pk.ID(), Ver: int(ver), Cause: fmt.Errorf("invalid next state %d", pk.NextState)}
	}
	return nil
}

// StatusResponseJSON builds the JSON body of a StatusResponseV8 from the
// proxy's configuration, per spec.md §4.7's status ping flow.
func StatusResponseJSON(cfg config.Config, ver protocol.ProtocolVersion, online int) string {
	return fmt.Sprintf(
		`{"version":{"name":"crossmc","protocol":%d},"players":{"max":%d,"online":%d},"description":{"text":%q}}`,
		ver.HandshakeID(), cfg.Status.MaxPlayers, online, cfg.Status.MOTD,
	)
}

// LoginFlow holds the server side of the Login state's encryption
// handshake: Begin produces the EncryptionRequest key and verify token,
// Finish checks the client's EncryptionResponse and performs the Mojang
// session-server verification. Reading LoginStart, compression and
// LoginSuccess are left to the caller. VerifyMC controls whether HasJoined
// is actually called (false for offline-mode / local testing backends).
type LoginFlow struct {
	ServerKey *rsa.PrivateKey
	VerifyMC  bool
	Cfg       config.Config
}

// Begin starts the encryption handshake by emitting the EncryptionRequest
// fields the caller should send; verifyToken is generated here so the
// caller can validate EncryptionResponse later via Finish.
func (f *LoginFlow) Begin() (pubKeyDER []byte, verifyToken []byte, err error) {
	pubKeyDER, err = x509.MarshalPKIXPublicKey(&f.ServerKey.PublicKey)
	if err != nil {
		return nil, nil, err
	}
	verifyToken = make([]byte, 4)
	if _, err := rand.Read(verifyToken); err != nil {
		return nil, nil, err
	}
	return pubKeyDER, verifyToken, nil
}

// Finish decrypts the client's EncryptionResponse, checks the verify
// token, computes the Mojang session hash and (if VerifyMC) confirms the
// client's identity with the session server. It returns the shared secret
// to enable on the Stream.
func (f *LoginFlow) Finish(resp protocol.EncryptionResponseV8, expectedToken []byte, serverID, username string) (sharedSecret []byte, err error) {
	sharedSecret, err = rsa.DecryptPKCS1v15(rand.Reader, f.ServerKey, resp.SharedSecret)
	if err != nil {
		return nil, &protoerr.AuthFailed{Reason: "could not decrypt shared secret"}
	}
	token, err := rsa.DecryptPKCS1v15(rand.Reader, f.ServerKey, resp.VerifyToken)
	if err != nil || !bytesEqual(token, expectedToken) {
		return nil, &protoerr.AuthFailed{Reason: "verify token mismatch"}
	}
	if f.VerifyMC {
		pubDER, err := x509.MarshalPKIXPublicKey(&f.ServerKey.PublicKey)
		if err != nil {
			return nil, err
		}
		hash := auth.HexDigest(serverID, sharedSecret, pubDER)
		if _, err := auth.HasJoined(nil, username, hash); err != nil {
			return nil, err
		}
	}
	return sharedSecret, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// PlayerIdentity holds the login-resolved identity carried into Play.
type PlayerIdentity struct {
	Username string
	UUID     uuid.UUID
}

// RunKeepAlive drives the Play-state liveness loop: every KeepAliveInterval
// it asks send to push a fresh keep-alive to the client, and closes the
// session if Expired() ever reports true.
func RunKeepAlive(ctx context.Context, s *Session, send func(id int64)) {
	ticker := time.NewTicker(KeepAliveInterval)
	defer ticker.Stop()
	s.Touch()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.Done():
			return
		case <-ticker.C:
			if s.Expired() {
				s.log.Warnf("keep-alive timeout, closing session")
				s.Close()
				return
			}
			send(s.NextKeepAliveID())
		}
	}
}
