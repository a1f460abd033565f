// Package block carries the per-BlockKind shape metadata referenced by the
// Type Registry's Data record (SPEC_FULL.md §3 +Data). It is adapted from
// the teacher's server/block/model package: Stair/Fence/Thin there compute
// a live list of collision boxes against a mutable world.BlockSource. Here
// the same "a kind is a small set of axis-aligned boxes" idea is kept as
// static descriptive metadata only -- the core never performs collision
// resolution (gameplay behaviour is a non-goal), so no BlockSource-shaped
// dependency exists in this package.
package block

import "github.com/go-gl/mathgl/mgl64"

// Box is a single axis-aligned bounding box in the teacher's [0,1]^3 block
// coordinate space, reusing go-gl/mathgl/mgl64 for corner vectors exactly
// as server/block/model does.
type Box struct {
	Min, Max mgl64.Vec3
}

// NewBox mirrors the teacher's cube.Box(x1,y1,z1,x2,y2,z2) constructor.
func NewBox(x1, y1, z1, x2, y2, z2 float64) Box {
	return Box{Min: mgl64.Vec3{x1, y1, z1}, Max: mgl64.Vec3{x2, y2, z2}}
}

// FullCube is the shape of any ordinary solid block.
var FullCube = []Box{NewBox(0, 0, 0, 1, 1, 1)}

// Empty is the shape of air and other non-solid kinds.
var Empty []Box

// StairShape is the static (non-neighbour-dependent) approximation of the
// teacher's Stair.BBox used as registry metadata: the lower half-slab plus
// the corner riser, without reading any surrounding blocks (which the
// teacher's BBox does for the inner/outer corner cases -- that part is
// gameplay collision logic and was not carried, see DESIGN.md).
func StairShape(upsideDown bool) []Box {
	base := NewBox(0, 0, 0, 1, 0.5, 1)
	riser := NewBox(0.5, 0.5, 0, 1, 1, 1)
	if upsideDown {
		base = NewBox(0, 0.5, 0, 1, 1, 1)
		riser = NewBox(0.5, 0, 0, 1, 0.5, 1)
	}
	return []Box{base, riser}
}

// FencePostShape is the static center-post approximation of the teacher's
// Fence.BBox with no neighbour connections resolved (see DESIGN.md).
func FencePostShape() []Box {
	const inset = 0.375
	return []Box{NewBox(inset, 0, inset, 1-inset, 1.5, 1-inset)}
}

// ThinShape is the static cross-section approximation of the teacher's
// Thin.BBox (glass panes, iron bars) with no neighbour connections
// resolved.
func ThinShape() []Box {
	const inset = 7.0 / 16.0
	return []Box{NewBox(inset, 0, inset, 1-inset, 1, 1-inset)}
}
