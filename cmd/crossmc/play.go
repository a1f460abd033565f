package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/oriumgames/crossmc/internal/backend"
	"github.com/oriumgames/crossmc/internal/buffer"
	"github.com/oriumgames/crossmc/internal/config"
	"github.com/oriumgames/crossmc/internal/registry"
	"github.com/oriumgames/crossmc/internal/session"
	"github.com/oriumgames/crossmc/internal/translate"
	"github.com/oriumgames/crossmc/internal/versionconv"
	"github.com/oriumgames/crossmc/internal/world"
)

// spawnViewDistance is the fixed radius of chunks pushed to the client on
// join. Tracking the client's real view distance and streaming chunks as
// it moves is gameplay behaviour (world non-goal); a join-time spawn area
// is enough to exercise the full backend->translate->client chunk path.
const spawnViewDistance = 2

const totalBlockStates = 4096

// runPlayPhase bridges the client's Play-state stream to a backend
// connection: the companion server's world data travels through
// TranslateColumn/WriteChunkDataPacket so every connected client gets
// Chunk Data in its own wire layout and id space (spec.md §4.6), while
// everything outside the world-data surface (movement, inventory, chat)
// is an explicit gameplay non-goal and is not forwarded. Keep-alive is
// driven independently of the backend link so a slow backend never
// starves the client's liveness check.
func runPlayPhase(ctx context.Context, s *session.Session, cfg config.Config, reg *registry.Registry, identity session.PlayerIdentity) {
	be, err := backend.Dial(cfg.Network.Backend)
	if err != nil {
		s.Log().Errorf("dial backend: %v", err)
		return
	}
	defer be.Close()

	helloBuf := buffer.New()
	helloBuf.WriteString(identity.Username)
	if err := be.Send(backend.MsgHello, helloBuf.Bytes()); err != nil {
		s.Log().Errorf("send hello: %v", err)
		return
	}

	playCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		session.RunKeepAlive(playCtx, s, func(id int64) {
			buf := buffer.New()
			buf.WriteVarInt(0x21) // Keep Alive (Clientbound), 1.12.2+ Long id
			buf.WriteInt64(id)
			s.EnqueueFrame(buf.Bytes())
		})
		return nil
	})
	g.Go(func() error {
		s.RunWriteLoop(playCtx)
		return nil
	})

	if err := sendSpawnChunks(s, be, reg); err != nil {
		s.Log().Warnf("send spawn chunks: %v", err)
	}

	consumeClientFrames(playCtx, s)
	cancel()
	_ = g.Wait()

	byeBuf := buffer.New()
	byeBuf.WriteString(identity.Username)
	_ = be.Send(backend.MsgGoodbye, byeBuf.Bytes())
}

// sendSpawnChunks requests the columns around (0,0) from the backend,
// translates each into the connection's BlockVersion id space, and writes
// it to the client in its own wire layout.
func sendSpawnChunks(s *session.Session, be *backend.Client, reg *registry.Registry) error {
	conv := versionconv.New(reg)
	isAir := func(id uint32) bool { return id == registry.AirID }
	bv := s.Version().Block()
	ver := s.Version()

	for x := int32(-spawnViewDistance); x <= spawnViewDistance; x++ {
		for z := int32(-spawnViewDistance); z <= spawnViewDistance; z++ {
			reqBuf := buffer.New()
			reqBuf.WriteInt32(x)
			reqBuf.WriteInt32(z)
			if err := be.Send(backend.MsgChunkRequest, reqBuf.Bytes()); err != nil {
				return err
			}
			_, payload, err := be.Receive()
			if err != nil {
				return err
			}
			col, err := world.DecodeColumnFull(payload, totalBlockStates, registry.AirID, isAir)
			if err != nil {
				s.Log().Warnf("decode column (%d,%d): %v", x, z, err)
				continue
			}
			translated := translate.TranslateColumn(col, conv, bv, totalBlockStates, registry.AirID, isAir)

			buf := buffer.New()
			translate.WriteChunkDataPacket(buf, translated, ver, totalBlockStates, registry.AirID, isAir, true, world.MaxSections)
			if err := s.Stream().WriteFrame(buf.Bytes()); err != nil {
				return err
			}
		}
	}
	return nil
}

// consumeClientFrames drains serverbound frames so the stream doesn't
// stall; Keep Alive (id 0x00) is the only one this proxy acts on, per the
// gameplay non-goal noted above.
func consumeClientFrames(ctx context.Context, s *session.Session) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.Done():
			return
		default:
		}
		body, err := s.Stream().ReadFrame()
		if err != nil {
			return
		}
		if len(body) > 0 && body[0] == 0x00 {
			s.Touch() // Keep Alive (Serverbound) acts as the liveness pulse
		}
	}
}
