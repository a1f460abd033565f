package buffer

import (
	"math"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 127, 128, 255, 25565, math.MaxInt32, math.MinInt32, -2147483648}
	for _, v := range cases {
		b := New()
		b.WriteVarInt(v)
		if n := len(b.Bytes()); n < 1 || n > 5 {
			t.Fatalf("WriteVarInt(%d) produced %d bytes, want 1..5", v, n)
		}
		got := Wrap(b.Bytes()).ReadVarInt()
		if got != v {
			t.Fatalf("round trip %d -> %d", v, got)
		}
	}
}

func TestVarIntBoundaryDecode(t *testing.T) {
	b := Wrap([]byte{0x80, 0x80, 0x80, 0x80, 0x08})
	if got := b.ReadVarInt(); got != -2147483648 {
		t.Fatalf("got %d, want -2147483648", got)
	}
}

func TestVarIntMinusOneEncoding(t *testing.T) {
	b := New()
	b.WriteVarInt(-1)
	want := []byte{0xff, 0xff, 0xff, 0xff, 0x0f}
	got := b.Bytes()
	if len(got) != len(want) {
		t.Fatalf("length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestVarIntMalformed(t *testing.T) {
	b := Wrap([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	b.ReadVarInt()
	if b.Err() == nil {
		t.Fatal("expected MalformedVarInt error")
	}
}

func TestStringRoundTrip(t *testing.T) {
	b := New()
	b.WriteString("hello, minecraft")
	got := Wrap(b.Bytes()).ReadString(64)
	if got != "hello, minecraft" {
		t.Fatalf("got %q", got)
	}
}

func TestStringTooLong(t *testing.T) {
	b := New()
	b.WriteString("this string is far too long for the limit")
	r := Wrap(b.Bytes())
	r.ReadString(2)
	if r.Err() == nil {
		t.Fatal("expected StringTooLong error")
	}
}

func TestBlockPosRoundTrip(t *testing.T) {
	b := New()
	b.WriteBlockPosNew(100, -64, -200)
	x, y, z := Wrap(b.Bytes()).ReadBlockPosNew()
	if x != 100 || y != -64 || z != -200 {
		t.Fatalf("got (%d,%d,%d)", x, y, z)
	}

	b2 := New()
	b2.WriteBlockPosOld(100, 64, -200)
	x, y, z = Wrap(b2.Bytes()).ReadBlockPosOld()
	if x != 100 || y != 64 || z != -200 {
		t.Fatalf("got (%d,%d,%d)", x, y, z)
	}
}

func TestStickyErrorReturnsZero(t *testing.T) {
	b := Wrap(nil)
	if v := b.ReadInt32(); v != 0 {
		t.Fatalf("expected 0 on short read, got %d", v)
	}
	if b.Err() == nil {
		t.Fatal("expected an error to be recorded")
	}
	// Further reads keep returning zero values without panicking.
	if v := b.ReadVarInt(); v != 0 {
		t.Fatalf("expected 0 after sticky error, got %d", v)
	}
}
