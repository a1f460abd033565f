package registry

import "github.com/oriumgames/crossmc/internal/protocol"

const (
	ItemAir uint32 = iota
	ItemStone
	ItemOakPlanks
	ItemStick
	ItemDiamondSword
	ItemDiamondPickaxe
)

func seedItems(t *Table) {
	t.register(ItemAir, Data{Name: "minecraft:air"})
	t.register(ItemStone, Data{Name: "minecraft:stone"})
	t.register(ItemOakPlanks, Data{Name: "minecraft:oak_planks"})
	t.register(ItemStick, Data{Name: "minecraft:stick"})
	t.register(ItemDiamondSword, Data{Name: "minecraft:diamond_sword"})
	t.register(ItemDiamondPickaxe, Data{Name: "minecraft:diamond_pickaxe"})

	for _, bv := range []protocol.BlockVersion{protocol.BlockV1_8, protocol.BlockV1_9} {
		for id := ItemAir; id <= ItemDiamondPickaxe; id++ {
			if id == ItemAir {
				t.mapVersion(bv, id, 0)
				continue
			}
			t.mapVersion(bv, id, id+256)
		}
	}
	for id := ItemAir; id <= ItemDiamondPickaxe; id++ {
		t.mapVersion(protocol.BlockV1_13, id, id)
		t.mapVersion(protocol.BlockV1_14Plus, id, id)
	}
}
