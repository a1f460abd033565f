// Package palette implements the palette-backed chunk section described in
// spec.md §4.2: a 16×16×16 container of global block state ids that starts
// in indexed mode (a small ordered palette plus a packed bit array of
// palette indices) and is promoted to direct mode (global ids packed
// straight into the bit array) once the palette would need more than 8 bits
// per entry.
//
// The indexing math ((y*16+z)*16+x, blocksPerLong = 64/bpe) is grounded on
// go-mclib-client's PalettedContainer; the dual bit-array encodings (entries
// spanning word boundaries pre-1.16, never spanning them 1.16+) and the
// palette-growth-without-reallocation-storm doubling scheme are this
// package's own, built to satisfy spec.md's invariants.
package palette

import (
	"github.com/brentp/intintmap"

	"github.com/oriumgames/crossmc/internal/protoerr"
)

const (
	sectionDim     = 16
	sectionVolume  = sectionDim * sectionDim * sectionDim
	minBitsPerEntry = 4
	maxIndexedBits  = 8
)

// Section is a single 16³ chunk section: a palette-or-direct encoded array
// of 4096 global block state ids.
type Section struct {
	bpe         int
	direct      bool
	directBits  int // bits per entry required to hold any valid state id directly
	palette     []uint32
	index       *intintmap.Map // state id -> palette index, only in indexed mode
	data        []uint64       // one unpacked entry per cell; packed only by EncodeWordsOld/New
	nonAir      int
	isAirID     func(stateID uint32) bool
}

// New returns a fresh section filled entirely with airID, whose direct-mode
// width is sized from totalStateCount (the dense global state id space --
// see spec.md §3 BlockState).
func New(totalStateCount uint32, airID uint32, isAir func(uint32) bool) *Section {
	s := &Section{
		bpe:        minBitsPerEntry,
		directBits: directBitsFor(totalStateCount),
		palette:    []uint32{airID},
		index:      intintmap.New(4, 0.6),
		data:       make([]uint64, sectionVolume),
		isAirID:    isAir,
	}
	s.index.Put(int64(airID), 0)
	return s
}

func directBitsFor(totalStateCount uint32) int {
	bits := 1
	for (uint32(1) << bits) < totalStateCount {
		bits++
	}
	if bits < minBitsPerEntry+1 {
		bits = minBitsPerEntry + 1
	}
	return bits
}

func posIndex(x, y, z int) int { return (y*sectionDim+z)*sectionDim + x }

// Get returns the global state id stored at the given local (x, y, z), each
// in 0..15.
func (s *Section) Get(x, y, z int) uint32 {
	idx := s.data[posIndex(x, y, z)]
	if s.direct {
		return uint32(idx)
	}
	if int(idx) >= len(s.palette) {
		return 0
	}
	return s.palette[idx]
}

// Set stores stateID at the given local position, growing the palette (and
// promoting to direct mode) as necessary. See spec.md §4.2 for the full
// algorithm this follows.
func (s *Section) Set(x, y, z int, stateID uint32) {
	pos := posIndex(x, y, z)
	old := s.Get(x, y, z)
	if old == stateID {
		return
	}

	if s.direct {
		s.data[pos] = uint64(stateID)
	} else if i, ok := s.index.Get(int64(stateID)); ok {
		s.data[pos] = uint64(i)
	} else if len(s.palette)+1 <= 1<<uint(s.bpe) {
		idx := int64(len(s.palette))
		s.palette = append(s.palette, stateID)
		s.index.Put(int64(stateID), idx)
		s.data[pos] = uint64(idx)
	} else {
		s.grow(stateID)
		// After growth the palette (or direct mode) is large enough to hold
		// stateID directly; write it without re-entering Set (growth never
		// recurses more than once).
		if s.direct {
			s.data[pos] = uint64(stateID)
		} else {
			idx := int64(len(s.palette))
			s.palette = append(s.palette, stateID)
			s.index.Put(int64(stateID), idx)
			s.data[pos] = uint64(idx)
		}
	}
	s.updateNonAir(old, stateID)
}

func (s *Section) updateNonAir(old, new_ uint32) {
	wasAir := s.isAirID == nil || s.isAirID(old)
	isAir := s.isAirID == nil || s.isAirID(new_)
	if wasAir && !isAir {
		s.nonAir++
	} else if !wasAir && isAir {
		s.nonAir--
	}
}

// grow widens bpe to the smallest width whose palette capacity (1<<bpe)
// holds one more entry; if that width exceeds 8 bits it instead promotes
// the section to direct mode by rewriting every stored index through the
// old palette into its global state id.
func (s *Section) grow(newID uint32) {
	needed := len(s.palette) + 1
	next := s.bpe
	for (1 << uint(next)) < needed {
		next++
	}
	if next > maxIndexedBits {
		s.promoteToDirect()
		return
	}
	s.bpe = next
}

func (s *Section) promoteToDirect() {
	rewritten := make([]uint64, sectionVolume)
	for i, idx := range s.data {
		if int(idx) < len(s.palette) {
			rewritten[i] = uint64(s.palette[idx])
		}
	}
	s.data = rewritten
	s.direct = true
	s.bpe = s.directBits
	s.palette = nil
	s.index = nil
}

// NonAirBlocks returns the cached non-air entry count, kept up to date on
// every Set.
func (s *Section) NonAirBlocks() int { return s.nonAir }

// BitsPerEntry returns the section's current width.
func (s *Section) BitsPerEntry() int { return s.bpe }

// Direct reports whether the section has been promoted past indexed mode.
func (s *Section) Direct() bool { return s.direct }

// Palette returns the ordered palette, or nil in direct mode.
func (s *Section) Palette() []uint32 {
	if s.direct {
		return nil
	}
	return append([]uint32(nil), s.palette...)
}

// Fill sets every position in [min, max) (componentwise, each 0..15) to
// stateID. Bounds are not validated; callers are trusted per spec.md §4.2.
func (s *Section) Fill(minX, minY, minZ, maxX, maxY, maxZ int, stateID uint32) {
	for y := minY; y < maxY; y++ {
		for z := minZ; z < maxZ; z++ {
			for x := minX; x < maxX; x++ {
				s.Set(x, y, z, stateID)
			}
		}
	}
}

// Clone returns an independent deep copy. Containing structures never clone
// a Section implicitly, per spec.md §4.2.
func (s *Section) Clone() *Section {
	c := &Section{
		bpe:        s.bpe,
		direct:     s.direct,
		directBits: s.directBits,
		nonAir:     s.nonAir,
		isAirID:    s.isAirID,
		data:       append([]uint64(nil), s.data...),
	}
	if !s.direct {
		c.palette = append([]uint32(nil), s.palette...)
		c.index = intintmap.New(int64(len(s.palette))+4, 0.6)
		for i, id := range s.palette {
			c.index.Put(int64(id), int64(i))
		}
	}
	return c
}

// --- bit array encodings (spec.md §4.2) ---

// EncodeWordsOld packs the logical entry array into the pre-1.16 form, where
// an entry may span a 64-bit word boundary.
func (s *Section) EncodeWordsOld() []uint64 {
	return encodeOld(s.entries(), s.bpe)
}

// EncodeWordsNew packs the logical entry array into the 1.16+ form, where
// each word holds floor(64/bpe) entries and any remaining bits are padding.
func (s *Section) EncodeWordsNew() []uint64 {
	return encodeNew(s.entries(), s.bpe)
}

// entries returns the raw per-cell values currently packed in s.data: either
// palette indices (indexed mode) or global ids (direct mode).
func (s *Section) entries() []int {
	out := make([]int, sectionVolume)
	for i, v := range s.data {
		out[i] = int(v)
	}
	return out
}

func encodeOld(entries []int, bpe int) []uint64 {
	totalBits := len(entries) * bpe
	words := make([]uint64, (totalBits+63)/64)
	bitPos := 0
	for _, v := range entries {
		wordIdx := bitPos / 64
		bitInWord := uint(bitPos % 64)
		words[wordIdx] |= uint64(v) << bitInWord
		if bitInWord+uint(bpe) > 64 {
			words[wordIdx+1] |= uint64(v) >> (64 - bitInWord)
		}
		bitPos += bpe
	}
	return words
}

func encodeNew(entries []int, bpe int) []uint64 {
	perWord := 64 / bpe
	words := make([]uint64, (len(entries)+perWord-1)/perWord)
	for i, v := range entries {
		word := i / perWord
		shift := uint(i%perWord) * uint(bpe)
		words[word] |= uint64(v) << shift
	}
	return words
}

// DecodeWordsOld is the inverse of EncodeWordsOld, used by Translator
// decoders handling pre-1.16 clients.
func DecodeWordsOld(words []uint64, bpe, count int) []int {
	mask := uint64(1<<uint(bpe)) - 1
	out := make([]int, count)
	bitPos := 0
	for i := range out {
		wordIdx := bitPos / 64
		bitInWord := uint(bitPos % 64)
		v := words[wordIdx] >> bitInWord
		if bitInWord+uint(bpe) > 64 && wordIdx+1 < len(words) {
			v |= words[wordIdx+1] << (64 - bitInWord)
		}
		out[i] = int(v & mask)
		bitPos += bpe
	}
	return out
}

// DecodeWordsNew is the inverse of EncodeWordsNew.
func DecodeWordsNew(words []uint64, bpe, count int) []int {
	perWord := 64 / bpe
	mask := uint64(1<<uint(bpe)) - 1
	out := make([]int, count)
	for i := range out {
		word := i / perWord
		shift := uint(i%perWord) * uint(bpe)
		out[i] = int((words[word] >> shift) & mask)
	}
	return out
}

// FromEntries rebuilds a Section's internal data array directly from a flat
// logical entry list (palette indices in indexed mode, global ids in
// direct mode), as produced by DecodeWordsOld/DecodeWordsNew. Used by the
// translator when decoding a wire chunk section.
func FromEntries(entries []int, palette []uint32, directBits int, isAir func(uint32) bool) (*Section, error) {
	if len(entries) != sectionVolume {
		return nil, &protoerr.Fatal{Reason: "palette section requires exactly 4096 entries"}
	}
	s := &Section{isAirID: isAir, data: make([]uint64, sectionVolume)}
	if palette == nil {
		s.direct = true
		s.bpe = directBits
		s.directBits = directBits
		for i, v := range entries {
			s.data[i] = uint64(v)
			if isAir == nil || !isAir(uint32(v)) {
				s.nonAir++
			}
		}
		return s, nil
	}
	s.palette = append([]uint32(nil), palette...)
	s.index = intintmap.New(int64(len(palette))+4, 0.6)
	for i, id := range palette {
		s.index.Put(int64(id), int64(i))
	}
	bits := minBitsPerEntry
	for (1 << uint(bits)) < len(palette) {
		bits++
	}
	s.bpe = bits
	for i, idx := range entries {
		if idx < 0 || idx >= len(palette) {
			return nil, &protoerr.Fatal{Reason: "palette index out of range"}
		}
		s.data[i] = uint64(idx)
		if isAir == nil || !isAir(palette[idx]) {
			s.nonAir++
		}
	}
	return s, nil
}
