// Package versionconv provides the default implementation of the
// VersionConverter external interface spec.md §3/§6 describes the core as
// consuming from a collaborator (world generation / gameplay behaviour).
// The core (internal/translate) only ever depends on the Converter
// interface below, never on this package's concrete type, so a host
// embedding crossmc can swap in its own converter without touching the
// translator.
//
// The default implementation's table-walking shape -- a versioned remap
// with a documented zero-value fallback -- is grounded on the *approach*
// of df-mc/worldupgrader (see DESIGN.md for why the package itself, which
// upgrades persisted Bedrock NBT block states rather than Java protocol
// ids, was not imported directly).
package versionconv

import (
	"github.com/oriumgames/crossmc/internal/protocol"
	"github.com/oriumgames/crossmc/internal/registry"
)

// Converter is the VersionConverter external interface from spec.md §6.
type Converter interface {
	BlockToOld(latestStateID uint32, ver protocol.BlockVersion) uint32
	BlockToNew(oldStateID uint32, ver protocol.BlockVersion) uint32
	ItemToOld(latestID uint32, ver protocol.BlockVersion) uint32
	ItemToNew(oldID uint32, ver protocol.BlockVersion) uint32
	EntityToOld(latestID uint32, ver protocol.BlockVersion) uint32
	EntityToNew(oldID uint32, ver protocol.BlockVersion) uint32
}

// Default wraps a Registry to satisfy Converter using the Type Registry's
// own per-category tables -- the natural, zero-extra-state implementation
// for a proxy that already builds the registry at startup.
type Default struct {
	reg *registry.Registry
}

// New returns a Converter backed by reg.
func New(reg *registry.Registry) *Default { return &Default{reg: reg} }

func (d *Default) BlockToOld(id uint32, ver protocol.BlockVersion) uint32 {
	return d.reg.Table(registry.Blocks).ToOld(id, ver)
}

func (d *Default) BlockToNew(id uint32, ver protocol.BlockVersion) uint32 {
	return d.reg.Table(registry.Blocks).ToNew(id, ver)
}

func (d *Default) ItemToOld(id uint32, ver protocol.BlockVersion) uint32 {
	return d.reg.Table(registry.Items).ToOld(id, ver)
}

func (d *Default) ItemToNew(id uint32, ver protocol.BlockVersion) uint32 {
	return d.reg.Table(registry.Items).ToNew(id, ver)
}

func (d *Default) EntityToOld(id uint32, ver protocol.BlockVersion) uint32 {
	return d.reg.Table(registry.Entities).ToOld(id, ver)
}

func (d *Default) EntityToNew(id uint32, ver protocol.BlockVersion) uint32 {
	return d.reg.Table(registry.Entities).ToNew(id, ver)
}
