package protocol

import "github.com/google/uuid"

// Packet is the tagged union every layer above the Framed Stream works
// with. Each concrete type is named "<LogicalName>V<minVer>" (spec.md
// §4.4): two packets sharing a semantic name but differing in wire layout
// are distinct variants, e.g. ChunkDataV8 vs ChunkDataV14. Field-tag style
// (`mc:"varint"` etc., used by the generated translate package to drive
// reflection-free per-field codecs) is grounded on
// go-theft-craft-server/internal/server/packet/play.go.
type Packet interface {
	// ID returns the packet's numeric identifier in its native state.
	ID() int32
	// MinVersion returns the minimum ProtocolVersion at which this variant's
	// layout applies.
	MinVersion() ProtocolVersion
	// Dir returns whether the packet is clientbound or serverbound.
	Dir() Direction
	// ConnState returns the connection state the packet is valid in.
	ConnState() State
}

type Base struct {
	id    int32
	min   ProtocolVersion
	dir   Direction
	state State
}

func (b Base) ID() int32                   { return b.id }
func (b Base) MinVersion() ProtocolVersion { return b.min }
func (b Base) Dir() Direction              { return b.dir }
func (b Base) ConnState() State            { return b.state }

// NewBase constructs the embedded header every concrete Packet variant
// carries. Translators outside this package use it when building a decoded
// packet, since the Base fields themselves stay unexported to keep callers
// from mutating a packet's identity after construction.
func NewBase(id int32, min ProtocolVersion, dir Direction, state State) Base {
	return Base{id: id, min: min, dir: dir, state: state}
}

// --- Handshake ---

type HandshakeV8 struct {
	Base
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       int32
}

// --- Status ---

type StatusRequestV8 struct{ Base }

type StatusResponseV8 struct {
	Base
	JSON string
}

type PingV8 struct {
	Base
	Payload int64
}

type PongV8 struct {
	Base
	Payload int64
}

// --- Login ---

type LoginStartV8 struct {
	Base
	Username string
}

// LoginStartV16_2 is the LoginStart variant that may carry the player's
// UUID after the username (read from 1.16.2 connections onward); the core
// models it as a distinct variant per the catalog naming rule.
type LoginStartV16_2 struct {
	Base
	Username string
	UUID     *uuid.UUID // nil when the client omits it
}

type EncryptionRequestV8 struct {
	Base
	ServerID    string
	PublicKey   []byte
	VerifyToken []byte
}

type EncryptionResponseV8 struct {
	Base
	SharedSecret []byte
	VerifyToken  []byte
}

type SetCompressionV8 struct {
	Base
	Threshold int32
}

type LoginSuccessV8 struct {
	Base
	UUID     uuid.UUID
	Username string
}

type LoginDisconnectV8 struct {
	Base
	Reason string // JSON chat component
}

// --- Play ---

type KeepAliveClientboundV8 struct {
	Base
	ID32 int32 // 1.8 uses a 32-bit keep-alive id
}

type KeepAliveClientboundV12_2 struct {
	Base
	ID64 int64 // 1.12.2+ widened the id to a fixed 8-byte Long
}

type KeepAliveServerboundV8 struct {
	Base
	ID32 int32
}

type KeepAliveServerboundV12_2 struct {
	Base
	ID64 int64
}

type JoinGameV8 struct {
	Base
	EntityID         int32
	GameMode         uint8
	Dimension        int8
	Difficulty       uint8
	MaxPlayers       uint8
	LevelType        string
	ReducedDebugInfo bool
}

type JoinGameV16 struct {
	Base
	EntityID         int32
	GameMode         uint8
	DimensionName    string
	WorldName        string
	HashedSeed       int64
	MaxPlayers       int32
	ViewDistance     int32
	ReducedDebugInfo bool
	RespawnScreen    bool
	IsDebug          bool
	IsFlat           bool
}

type ChatMessageClientboundV8 struct {
	Base
	JSON     string
	Position int8
}

type DisconnectPlayV8 struct {
	Base
	Reason string
}

// ChunkDataV8 carries the pre-1.14 layout: a fixed u16 section bitmap,
// inline light arrays and 256-byte biome array gated by GroundUp.
type ChunkDataV8 struct {
	Base
	ChunkX, ChunkZ int32
	GroundUp       bool
	PrimaryBitmap  uint16
	Data           []byte
}

// ChunkDataV14 carries the 1.14-1.15 layout: heightmap NBT, still a fixed
// u16 bitmap, light moved to UpdateLight, biomes as 1024 VarInts (1.15) or
// 256 bytes (1.14) folded into Data by the translator.
type ChunkDataV14 struct {
	Base
	ChunkX, ChunkZ int32
	IsFullChunk    bool
	PrimaryBitmap  uint16
	Heightmaps     []byte // pre-encoded NBT payload
	Data           []byte
}

// ChunkDataV16 carries the 1.16-1.16.1 layout: identical to V14 but with a
// length-prefixed biome VarInt array appended per spec.md §4.6.
type ChunkDataV16 struct {
	Base
	ChunkX, ChunkZ int32
	IsFullChunk    bool
	PrimaryBitmap  uint16
	Heightmaps     []byte
	Data           []byte
}

// ChunkDataV17 carries the 1.17+ layout: the section bitmap becomes a
// VarInt-prefixed long array instead of a fixed u16.
type ChunkDataV17 struct {
	Base
	ChunkX, ChunkZ int32
	IsFullChunk    bool
	BitmapLongs    []int64
	Heightmaps     []byte
	Data           []byte
}

// MultiBlockChangeV8 uses one record per changed block: two position bytes
// and a VarInt state id, so records are not fixed-width (3 to 7 bytes).
type MultiBlockChangeV8 struct {
	Base
	ChunkX, ChunkZ int32
	Changes        []BlockChangeRecord
}

// BlockChangeRecord is one entry of the pre-1.16.2 multi-block-change
// payload: local position plus new block state id.
type BlockChangeRecord struct {
	LocalX, LocalY, LocalZ int
	StateID                uint32
}

// MultiBlockChangeV16_2 re-packs each (localPos, stateId) pair into a single
// VarInt per spec.md §4.6 (e.g. a change at local (1,2,3) to state 10
// encodes as (10<<12)|(1<<8)|(3<<4)|2).
type MultiBlockChangeV16_2 struct {
	Base
	SectionX, SectionY, SectionZ int32
	Changes                      []BlockChangeRecord
	TrustEdges                   bool
}
