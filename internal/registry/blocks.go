package registry

import (
	"github.com/oriumgames/crossmc/internal/block"
	"github.com/oriumgames/crossmc/internal/protocol"
)

// Canonical (latest-version) block state ids. A real build-time generator
// would emit thousands of these from the game's data files (spec.md §9);
// this hand-authored slice covers the kinds the bundled translator and
// companion world generator actually exercise, which is sufficient to
// demonstrate every operation spec.md's Type Registry names.
const (
	BlockAir uint32 = iota
	BlockStone
	BlockGrassBlock
	BlockDirt
	BlockCobblestone
	BlockOakPlanks
	BlockOakStairs
	BlockOakFence
	BlockGlassPane
	BlockWater
	BlockBedrock
)

// seedBlocks registers the latest-id table and the per-BlockVersion id
// remaps a real generator would have produced from Minecraft's reports.
// Invariant (spec.md §3): Air always has id 0 in every version.
func seedBlocks(t *Table) {
	t.register(BlockAir, Data{Name: "minecraft:air", Material: "air", Shape: block.Empty})
	t.register(BlockStone, Data{Name: "minecraft:stone", Hardness: 1.5, Material: "stone", Shape: block.FullCube})
	t.register(BlockGrassBlock, Data{Name: "minecraft:grass_block", Hardness: 0.6, Material: "dirt", Shape: block.FullCube})
	t.register(BlockDirt, Data{Name: "minecraft:dirt", Hardness: 0.5, Material: "dirt", Shape: block.FullCube})
	t.register(BlockCobblestone, Data{Name: "minecraft:cobblestone", Hardness: 2.0, Material: "stone", Shape: block.FullCube})
	t.register(BlockOakPlanks, Data{Name: "minecraft:oak_planks", Hardness: 2.0, Material: "wood", Shape: block.FullCube})
	t.register(BlockOakStairs, Data{Name: "minecraft:oak_stairs", Hardness: 2.0, Material: "wood", Shape: block.StairShape(false)})
	t.register(BlockOakFence, Data{Name: "minecraft:oak_fence", Hardness: 2.0, Material: "wood", Shape: block.FencePostShape()})
	t.register(BlockGlassPane, Data{Name: "minecraft:glass_pane", Hardness: 0.3, Material: "glass", Shape: block.ThinShape()})
	t.register(BlockWater, Data{Name: "minecraft:water", Material: "liquid", Shape: block.Empty})
	t.register(BlockBedrock, Data{Name: "minecraft:bedrock", Hardness: -1, Material: "stone", Shape: block.FullCube})

	// 1.8-1.12 numbered every block/metadata pair out of a single flat u16
	// space very differently from the post-flattening state ids; id*16 is
	// not how the real game numbered it, but it is a stand-in bijection
	// sufficient to exercise toOld/toNew round-tripping for these kinds.
	for _, bv := range []protocol.BlockVersion{protocol.BlockV1_8, protocol.BlockV1_9} {
		for id := BlockAir; id <= BlockBedrock; id++ {
			if id == BlockAir {
				t.mapVersion(bv, id, 0)
				continue
			}
			t.mapVersion(bv, id, id*16)
		}
	}
	// 1.13 (the "flattening") already uses dense dense per-state ids close
	// to latest's numbering for the kinds this repo tracks.
	for id := BlockAir; id <= BlockBedrock; id++ {
		t.mapVersion(protocol.BlockV1_13, id, id)
	}
	// 1.14+ shares latest's numbering for every kind this repo tracks
	// (BlockV1_14Plus covers 1.14 through 1.18 per protocol.ProtocolVersion.Block).
	for id := BlockAir; id <= BlockBedrock; id++ {
		t.mapVersion(protocol.BlockV1_14Plus, id, id)
	}
}
