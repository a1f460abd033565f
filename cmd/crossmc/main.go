// Command crossmc runs the cross-version Minecraft Java Edition proxy: it
// accepts client connections, negotiates their protocol version, and
// forwards translated packets to a single backend server or companion
// crossmcd instance.
package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/oriumgames/crossmc/internal/config"
	"github.com/oriumgames/crossmc/internal/logging"
	"github.com/oriumgames/crossmc/internal/registry"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("crossmc", flag.ContinueOnError)
	writeDefault := fs.String("write-default-config", "", "write the default configuration to `path` and exit")
	configPath := fs.String("config", "crossmc.toml", "load configuration from `path`")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *writeDefault != "" {
		if err := config.Save(*writeDefault, config.Default()); err != nil {
			fmt.Fprintln(os.Stderr, "write default config:", err)
			return 1
		}
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		return 1
	}

	log := logging.New(os.Stdout, slog.LevelInfo)
	if cfg.Debug {
		log = logging.New(os.Stdout, slog.LevelDebug)
	}

	ln, err := net.Listen("tcp", cfg.Network.Address)
	if err != nil {
		log.Errorf("bind %s: %v", cfg.Network.Address, err)
		return 2
	}
	defer ln.Close()
	log.Infof("listening on %s", cfg.Network.Address)

	reg := registry.New()
	log.Infof("registry loaded: categories=%v", reg.Categories())

	var serverKey *rsa.PrivateKey
	if cfg.Encryption.Enabled {
		serverKey, err = rsa.GenerateKey(rand.Reader, 1024)
		if err != nil {
			log.Errorf("generate server key: %v", err)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Serve(ctx, ln, cfg, reg, serverKey, log); err != nil {
		log.Errorf("serve: %v", err)
		return 1
	}
	return 0
}
