// Package world holds the column/section data model the translation
// pipeline reads from and writes into. It is deliberately thin: chunk
// generation and persistence (Generator, Store) are the companion server's
// concern (cmd/crossmcd), while internal/translate only needs a structure
// to pack and unpack palette sections against.
//
// The column shape -- a fixed array of 16^3 PalettedContainer sections plus
// a flat biome array -- is grounded on go-mclib-client's chunk_parser.go,
// which this whole package's section math descends from via internal/palette.
package world

import "github.com/oriumgames/crossmc/internal/palette"

// MaxSections is the tallest column the translator supports: 1.18's
// world height of 384 blocks (from y=-64 to y=319) in 16-block sections.
const MaxSections = 24

// Column is one chunk's worth of block state, independent of any wire
// version. Translators read a Column to build an outgoing ChunkData packet
// and write one when decoding an incoming packet from a backend connection.
type Column struct {
	X, Z     int32
	Sections [MaxSections]*palette.Section // nil entries are empty (all-air) sections
	Biomes   []uint32                      // one biome id per 4x4x4 biome cell (1.15+) or per-column (pre-1.15)
	Heightmaps []byte                      // pre-encoded NBT payload carried opaquely by the core
}

// NewColumn returns an empty column with every section nil (all-air).
func NewColumn(x, z int32) *Column {
	return &Column{X: x, Z: z}
}

// SectionAt returns the section at the given Y index (0-based from the
// bottom of the supported height range), creating it against totalStates/
// airID/isAir if it doesn't exist yet.
func (c *Column) SectionAt(y int, totalStates, airID uint32, isAir func(uint32) bool) *palette.Section {
	if c.Sections[y] == nil {
		c.Sections[y] = palette.New(totalStates, airID, isAir)
	}
	return c.Sections[y]
}

// PrimaryBitmap returns the pre-1.17 fixed bitmap of which of the first 16
// sections are present (non-nil), per spec.md §4.6.
func (c *Column) PrimaryBitmap() uint16 {
	var bm uint16
	for i := 0; i < 16 && i < MaxSections; i++ {
		if c.Sections[i] != nil {
			bm |= 1 << uint(i)
		}
	}
	return bm
}

// BitmapLongs returns the 1.17+ VarInt-prefixed long-array bitmap, one bit
// per section across the full supported height range.
func (c *Column) BitmapLongs() []int64 {
	words := make([]int64, (MaxSections+63)/64)
	for i := 0; i < MaxSections; i++ {
		if c.Sections[i] != nil {
			words[i/64] |= 1 << uint(i%64)
		}
	}
	return words
}
