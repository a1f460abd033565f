package palette

import "testing"

func airCheck(air uint32) func(uint32) bool {
	return func(id uint32) bool { return id == air }
}

func TestRoundTripAndNonAirCount(t *testing.T) {
	s := New(1<<16, 0, airCheck(0))
	want := map[[3]int]uint32{}
	set := func(x, y, z int, id uint32) {
		s.Set(x, y, z, id)
		want[[3]int{x, y, z}] = id
	}

	set(0, 0, 0, 1)
	set(1, 0, 0, 2)
	set(0, 1, 0, 1)
	set(5, 5, 5, 3)
	set(0, 0, 0, 7) // overwrite

	for pos, id := range want {
		if got := s.Get(pos[0], pos[1], pos[2]); got != id {
			t.Fatalf("Get%v = %d, want %d", pos, got, id)
		}
	}

	nonAir := 0
	for y := 0; y < 16; y++ {
		for z := 0; z < 16; z++ {
			for x := 0; x < 16; x++ {
				if s.Get(x, y, z) != 0 {
					nonAir++
				}
			}
		}
	}
	if nonAir != s.NonAirBlocks() {
		t.Fatalf("NonAirBlocks() = %d, want %d", s.NonAirBlocks(), nonAir)
	}
}

func TestGrowthMonotonicAndPreservesValues(t *testing.T) {
	s := New(1<<16, 0, airCheck(0))
	prevBpe := s.BitsPerEntry()
	for i := int32(1); i <= 17; i++ {
		s.Set(int(i)%16, int(i)/16%16, 0, uint32(i))
		if s.BitsPerEntry() < prevBpe {
			t.Fatalf("bpe decreased at i=%d: %d -> %d", i, prevBpe, s.BitsPerEntry())
		}
		prevBpe = s.BitsPerEntry()
	}
	if s.BitsPerEntry() < 5 {
		t.Fatalf("after 17 distinct values bpe = %d, want >= 5", s.BitsPerEntry())
	}
	for i := int32(1); i <= 17; i++ {
		x, y := int(i)%16, int(i)/16%16
		if got := s.Get(x, y, 0); got != uint32(i) {
			t.Fatalf("Get(%d,%d,0) = %d, want %d", x, y, got, i)
		}
	}
}

func TestPromotionToDirectMode(t *testing.T) {
	s := New(1<<20, 0, airCheck(0))
	// Force the palette past 256 entries (8 bits) so it promotes to direct.
	for i := 0; i < 300; i++ {
		x, y, z := i%16, (i/16)%16, (i/256)%16
		s.Set(x, y, z, uint32(i+1))
	}
	if !s.Direct() {
		t.Fatalf("expected direct mode after 300 distinct ids, bpe=%d", s.BitsPerEntry())
	}
	for i := 0; i < 300; i++ {
		x, y, z := i%16, (i/16)%16, (i/256)%16
		if got := s.Get(x, y, z); got != uint32(i+1) {
			t.Fatalf("Get(%d,%d,%d) = %d, want %d", x, y, z, got, i+1)
		}
	}
}

func TestBitArrayEquivalence(t *testing.T) {
	s := New(1<<16, 0, airCheck(0))
	for i := 0; i < 50; i++ {
		s.Set(i%16, (i/16)%16, (i/256)%16, uint32(i%20))
	}
	entries := s.entries()
	old := encodeOld(entries, s.bpe)
	newEnc := encodeNew(entries, s.bpe)

	decodedOld := DecodeWordsOld(old, s.bpe, len(entries))
	decodedNew := DecodeWordsNew(newEnc, s.bpe, len(entries))
	for i := range entries {
		if decodedOld[i] != entries[i] {
			t.Fatalf("old encoding mismatch at %d: got %d want %d", i, decodedOld[i], entries[i])
		}
		if decodedNew[i] != entries[i] {
			t.Fatalf("new encoding mismatch at %d: got %d want %d", i, decodedNew[i], entries[i])
		}
	}
}

func TestFillAndClone(t *testing.T) {
	s := New(1<<16, 0, airCheck(0))
	s.Fill(0, 0, 0, 16, 1, 16, 5)
	clone := s.Clone()
	clone.Set(0, 0, 0, 99)
	if s.Get(0, 0, 0) == 99 {
		t.Fatal("mutating clone affected original")
	}
	if clone.Get(1, 0, 0) != 5 {
		t.Fatalf("clone lost filled value")
	}
}
