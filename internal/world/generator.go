package world

import "github.com/oriumgames/crossmc/internal/registry"

// FlatGenerator produces a fixed-layer superflat column, the simplest
// world source the companion server can hand the proxy while exercising
// the full section/palette pipeline: bedrock, dirt, grass, per spec.md's
// world-generation Non-goal (anything beyond a flat testbed is explicitly
// out of scope, so this is deliberately not biome-aware or noise-based).
type FlatGenerator struct {
	Reg *registry.Registry

	BedrockLayers int
	DirtLayers    int
}

// NewFlatGenerator returns a generator with the classic 1-layer-bedrock,
// 3-layer-dirt, 1-layer-grass superflat preset.
func NewFlatGenerator(reg *registry.Registry) *FlatGenerator {
	return &FlatGenerator{Reg: reg, BedrockLayers: 1, DirtLayers: 3}
}

// Generate fills column (x, z) with the flat preset, using the latest
// (1.18-era) global state ids -- the translator remaps these per
// connection, so the generator never needs to know the client's version.
func (g *FlatGenerator) Generate(x, z int32, totalStates uint32) *Column {
	col := NewColumn(x, z)
	isAir := func(id uint32) bool { return id == registry.AirID }

	y := 0
	for i := 0; i < g.BedrockLayers; i++ {
		g.fillLayer(col, y, registry.BlockBedrock, totalStates, isAir)
		y++
	}
	for i := 0; i < g.DirtLayers; i++ {
		g.fillLayer(col, y, registry.BlockDirt, totalStates, isAir)
		y++
	}
	g.fillLayer(col, y, registry.BlockGrassBlock, totalStates, isAir)

	return col
}

func (g *FlatGenerator) fillLayer(col *Column, y int, blockID uint32, totalStates uint32, isAir func(uint32) bool) {
	sectionIdx := y / 16
	localY := y % 16
	sec := col.SectionAt(sectionIdx, totalStates, registry.AirID, isAir)
	sec.Fill(0, localY, 0, 16, localY+1, 16, blockID)
}
