// Package auth implements Mojang's "hex digest" session-join scheme used by
// the Login state's encryption handshake (spec.md §4.7): after the client
// replies to EncryptionRequest, the proxy computes this digest and asks
// Mojang's session server to confirm the client actually owns the account
// it claims before issuing LoginSuccess.
package auth

import (
	"crypto/sha1"
	"math/big"
	"net/http"
	"net/url"

	"github.com/oriumgames/crossmc/internal/protoerr"
)

// HexDigest computes the SHA-1 "server hash" Mojang's session-join endpoint
// expects: SHA-1(serverID ++ sharedSecret ++ serverPublicKey), then
// formatted as a signed hex string (a leading '-' and two's-complement
// magnitude when the first byte's high bit is set), matching the exact
// quirk of Minecraft's Java implementation of BigInteger(hash).toString(16).
func HexDigest(serverID string, sharedSecret, serverPublicKey []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(sharedSecret)
	h.Write(serverPublicKey)
	sum := h.Sum(nil)
	return bigHexString(sum)
}

// bigHexString reproduces Java's new BigInteger(digest).toString(16): the
// byte slice is interpreted as a two's-complement signed big-endian
// integer, not an unsigned magnitude.
func bigHexString(digest []byte) string {
	negative := digest[0]&0x80 != 0
	bi := new(big.Int).SetBytes(digest)
	if negative {
		// Two's complement negation: invert and add one, over the same
		// bit width as the original digest.
		max := new(big.Int).Lsh(big.NewInt(1), uint(len(digest)*8))
		bi.Sub(bi, max)
	}
	return bi.Text(16)
}

// SessionServerURL is Mojang's join-confirmation endpoint.
const SessionServerURL = "https://sessionserver.mojang.com/session/minecraft/hasJoined"

// HasJoined asks Mojang's session server whether username joined a server
// identified by serverHash, returning the raw JSON profile response body
// on success. A non-200 response means the client failed verification.
func HasJoined(client *http.Client, username, serverHash string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	u := SessionServerURL + "?username=" + url.QueryEscape(username) + "&serverId=" + url.QueryEscape(serverHash)
	resp, err := client.Get(u)
	if err != nil {
		return nil, &protoerr.AuthFailed{Reason: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &protoerr.AuthFailed{Reason: "session server rejected client"}
	}
	buf := make([]byte, 0, 4096)
	tmp := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(tmp)
		buf = append(buf, tmp[:n]...)
		if err != nil {
			break
		}
	}
	return buf, nil
}
