// Package registry is the Type Registry (C3): static tables, emitted from
// authoritative external data files at build time per spec.md §9, mapping
// (kind, state) to numeric ids for every supported version and category
// (blocks, items, entities, particles, enchantments).
//
// Since the real generator is out of scope (spec.md §9), this package
// ships a small, hand-authored table sized for the versions this repo
// supports (V1_8..V1_18): per category, a map from latest id to its Data
// record, and one brentp/intintmap-backed remap table per (category,
// version) pair holding every registered id, including those whose id
// equals latest's. intintmap/fasthash are dragonfly's own dependencies
// repurposed here (internal/palette also uses intintmap for its state id
// to palette index lookup).
package registry

import (
	"github.com/brentp/intintmap"
	"github.com/segmentio/fasthash/fnv1a"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/oriumgames/crossmc/internal/block"
	"github.com/oriumgames/crossmc/internal/protocol"
)

// Category distinguishes the five closed-world enumerations the registry
// tracks.
type Category int

const (
	Blocks Category = iota
	Items
	Entities
	Particles
	Enchantments
)

// Data is the per-kind record exposed by data(kind). Beyond the name/
// hardness/material/default-state fields spec.md §4.3 names, this repo
// also carries a Shape, adapted from the teacher's block/model package
// (see SPEC_FULL.md §3 +Data and DESIGN.md).
type Data struct {
	Name         string
	Hardness     float32
	Material     string
	DefaultState uint32
	Shape        []block.Box
}

// AirID is the canonical (latest-version) state id for air. Invariant:
// every version must also assign Air state id 0.
const AirID uint32 = 0

// Table is one category's cross-version id mapping.
type Table struct {
	category Category
	data     map[uint32]Data
	// toOld/toNew: per BlockVersion, latest id -> old id and old id -> latest id.
	toOld map[protocol.BlockVersion]*intintmap.Map
	toNew map[protocol.BlockVersion]*intintmap.Map
	names map[uint32]uint64 // fasthash fnv1a of the canonical name, for quick equality probes
}

func newTable(cat Category) *Table {
	return &Table{
		category: cat,
		data:     make(map[uint32]Data),
		toOld:    make(map[protocol.BlockVersion]*intintmap.Map),
		toNew:    make(map[protocol.BlockVersion]*intintmap.Map),
		names:    make(map[uint32]uint64),
	}
}

// register seeds a latest-id entry plus its name hash; used by the
// generated block/item/... table files at package init.
func (t *Table) register(id uint32, d Data) {
	t.data[id] = d
	t.names[id] = fnv1a.HashString64(d.Name)
}

// mapVersion records that, within BlockVersion bv, latestID corresponds to
// oldID (0 meaning "no mapping" per spec.md §4.3).
func (t *Table) mapVersion(bv protocol.BlockVersion, latestID, oldID uint32) {
	if t.toOld[bv] == nil {
		t.toOld[bv] = intintmap.New(64, 0.6)
		t.toNew[bv] = intintmap.New(64, 0.6)
	}
	t.toOld[bv].Put(int64(latestID), int64(oldID))
	if oldID != 0 {
		t.toNew[bv].Put(int64(oldID), int64(latestID))
	}
}

// LatestIDOf returns the canonical, latest-version numeric id registered for
// the kind with the given name, or (0, false) if unknown.
func (t *Table) LatestIDOf(name string) (uint32, bool) {
	h := fnv1a.HashString64(name)
	for id, hh := range t.names {
		if hh == h && t.data[id].Name == name {
			return id, true
		}
	}
	return 0, false
}

// ToOld maps a latest-version id into version bv's id space. Missing
// mappings fall back to AirID (0), never a panic, per spec.md §4.3.
func (t *Table) ToOld(latestID uint32, bv protocol.BlockVersion) uint32 {
	m := t.toOld[bv]
	if m == nil {
		return AirID
	}
	if v, ok := m.Get(int64(latestID)); ok {
		return uint32(v)
	}
	return AirID
}

// ToNew maps an old-version id back to the latest id space. Missing
// mappings fall back to AirID (0).
func (t *Table) ToNew(oldID uint32, bv protocol.BlockVersion) uint32 {
	m := t.toNew[bv]
	if m == nil {
		return AirID
	}
	if v, ok := m.Get(int64(oldID)); ok {
		return uint32(v)
	}
	return AirID
}

// Data returns the metadata record for a latest-version id.
func (t *Table) Data(latestID uint32) (Data, bool) {
	d, ok := t.data[latestID]
	return d, ok
}

// Registry bundles the five per-category tables the proxy consults while
// translating packets.
type Registry struct {
	tables map[Category]*Table
}

// New builds the process-wide Registry. It is constructed once at startup
// (see cmd/crossmc) and is safe for concurrent read-only use thereafter, per
// spec.md §5 ("Shared resources").
func New() *Registry {
	r := &Registry{tables: make(map[Category]*Table)}
	for _, c := range []Category{Blocks, Items, Entities, Particles, Enchantments} {
		r.tables[c] = newTable(c)
	}
	seedBlocks(r.tables[Blocks])
	seedItems(r.tables[Items])
	seedEntities(r.tables[Entities])
	seedParticles(r.tables[Particles])
	seedEnchantments(r.tables[Enchantments])
	return r
}

// Table returns the table for a category.
func (r *Registry) Table(c Category) *Table { return r.tables[c] }

// Categories returns the registry's loaded categories in a stable, sorted
// order, for startup logging and diagnostics.
func (r *Registry) Categories() []Category {
	cats := maps.Keys(r.tables)
	slices.Sort(cats)
	return cats
}

// String renders a Category by name, for logging.
func (c Category) String() string {
	switch c {
	case Blocks:
		return "blocks"
	case Items:
		return "items"
	case Entities:
		return "entities"
	case Particles:
		return "particles"
	case Enchantments:
		return "enchantments"
	default:
		return "unknown"
	}
}
