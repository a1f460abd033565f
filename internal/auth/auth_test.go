package auth

import (
	"crypto/sha1"
	"testing"
)

// These are Mojang's own documented test vectors for the session-join hash.
func TestHexDigestVectors(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Notch", "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48"},
		{"jeb_", "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1"},
		{"simon", "88e16a1019277b15d58faf0541e11910eb756f6"},
	}
	for _, c := range cases {
		h := sha1.New()
		h.Write([]byte(c.name))
		got := bigHexString(h.Sum(nil))
		if got != c.want {
			t.Errorf("hexDigest(%q) = %s, want %s", c.name, got, c.want)
		}
	}
}
