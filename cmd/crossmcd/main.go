// Command crossmcd is the companion backend server: it generates and
// persists world columns and answers a crossmc proxy's backend protocol
// requests, keeping generation/persistence out of the proxy's hot path.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/oriumgames/crossmc/internal/backend"
	"github.com/oriumgames/crossmc/internal/buffer"
	"github.com/oriumgames/crossmc/internal/logging"
	"github.com/oriumgames/crossmc/internal/registry"
	"github.com/oriumgames/crossmc/internal/world"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("crossmcd", flag.ContinueOnError)
	addr := fs.String("address", "0.0.0.0:8483", "address to accept proxy connections on")
	dataDir := fs.String("data", "crossmcd-data", "directory for persisted world columns")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	log := logging.New(os.Stdout, slog.LevelInfo)

	store, err := world.OpenStore(*dataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open store:", err)
		return 1
	}
	defer store.Close()

	reg := registry.New()
	gen := world.NewFlatGenerator(reg)

	ln, err := backend.Listen(*addr)
	if err != nil {
		log.Errorf("listen %s: %v", *addr, err)
		return 2
	}
	defer ln.Close()
	log.Infof("crossmcd listening on %s", *addr)

	for {
		client, err := ln.Accept()
		if err != nil {
			log.Errorf("accept: %v", err)
			return 1
		}
		go serveClient(client, store, gen, log)
	}
}

func serveClient(client *backend.Client, store *world.Store, gen *world.FlatGenerator, log logging.Logger) {
	defer client.Close()
	for {
		id, payload, err := client.Receive()
		if err != nil {
			return
		}
		switch id {
		case backend.MsgHello:
			buf := buffer.Wrap(payload)
			username := buf.ReadString(16)
			log.Infof("player %s connected", username)
		case backend.MsgChunkRequest:
			buf := buffer.Wrap(payload)
			x := buf.ReadInt32()
			z := buf.ReadInt32()
			if buf.Err() != nil {
				continue
			}
			encoded, ok, err := store.Get(x, z)
			if err != nil {
				log.Errorf("store get (%d,%d): %v", x, z, err)
				continue
			}
			if !ok {
				col := gen.Generate(x, z, 4096)
				encoded = world.EncodeColumnFull(col)
				if err := store.Put(x, z, encoded); err != nil {
					log.Errorf("store put (%d,%d): %v", x, z, err)
				}
			}
			if err := client.Send(backend.MsgChunkData, encoded); err != nil {
				return
			}
		case backend.MsgGoodbye:
			buf := buffer.Wrap(payload)
			username := buf.ReadString(16)
			log.Infof("player %s disconnected", username)
		}
	}
}
