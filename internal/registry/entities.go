package registry

import "github.com/oriumgames/crossmc/internal/protocol"

const (
	EntityPlayer uint32 = iota
	EntityZombie
	EntitySkeleton
	EntityCreeper
	EntityItem
)

func seedEntities(t *Table) {
	t.register(EntityPlayer, Data{Name: "minecraft:player"})
	t.register(EntityZombie, Data{Name: "minecraft:zombie"})
	t.register(EntitySkeleton, Data{Name: "minecraft:skeleton"})
	t.register(EntityCreeper, Data{Name: "minecraft:creeper"})
	t.register(EntityItem, Data{Name: "minecraft:item"})

	for _, bv := range []protocol.BlockVersion{protocol.BlockV1_8, protocol.BlockV1_9, protocol.BlockV1_13} {
		for id := EntityPlayer; id <= EntityItem; id++ {
			t.mapVersion(bv, id, id+1)
		}
	}
	for id := EntityPlayer; id <= EntityItem; id++ {
		t.mapVersion(protocol.BlockV1_14Plus, id, id)
	}
}

func seedParticles(t *Table) {
	const (
		ParticleSmoke uint32 = iota
		ParticleFlame
		ParticleHeart
	)
	t.register(ParticleSmoke, Data{Name: "minecraft:smoke"})
	t.register(ParticleFlame, Data{Name: "minecraft:flame"})
	t.register(ParticleHeart, Data{Name: "minecraft:heart"})

	for id := ParticleSmoke; id <= ParticleHeart; id++ {
		t.mapVersion(protocol.BlockV1_8, id, id)
		t.mapVersion(protocol.BlockV1_9, id, id)
		t.mapVersion(protocol.BlockV1_13, id, id)
		t.mapVersion(protocol.BlockV1_14Plus, id, id)
	}
}

func seedEnchantments(t *Table) {
	const (
		EnchantSharpness uint32 = iota
		EnchantProtection
		EnchantEfficiency
		EnchantUnbreaking
	)
	t.register(EnchantSharpness, Data{Name: "minecraft:sharpness"})
	t.register(EnchantProtection, Data{Name: "minecraft:protection"})
	t.register(EnchantEfficiency, Data{Name: "minecraft:efficiency"})
	t.register(EnchantUnbreaking, Data{Name: "minecraft:unbreaking"})

	for id := EnchantSharpness; id <= EnchantUnbreaking; id++ {
		t.mapVersion(protocol.BlockV1_8, id, id)
		t.mapVersion(protocol.BlockV1_9, id, id)
		t.mapVersion(protocol.BlockV1_13, id, id)
		t.mapVersion(protocol.BlockV1_14Plus, id, id)
	}
}
