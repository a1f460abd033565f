// Package config defines the proxy's on-disk configuration, loaded and
// saved as TOML via github.com/pelletier/go-toml, the format dragonfly
// (this module's teacher) itself ships a config.toml for.
package config

import (
	"os"

	"github.com/pelletier/go-toml"
)

// Forwarding selects how (or whether) the proxy passes the original client
// address and identity through to the backend, per spec.md §7.
type Forwarding int

const (
	ForwardingNone Forwarding = iota
	ForwardingLegacy
)

func (f Forwarding) String() string {
	if f == ForwardingLegacy {
		return "legacy"
	}
	return "none"
}

// Config is the top-level proxy configuration document.
type Config struct {
	Network struct {
		Address string `toml:"address"`
		Backend string `toml:"backend"`
	} `toml:"network"`

	Encryption struct {
		Enabled bool `toml:"enabled"`
	} `toml:"encryption"`

	Compression struct {
		Threshold int32 `toml:"threshold"` // negative disables
	} `toml:"compression"`

	Status struct {
		MOTD       string `toml:"motd"`
		MaxPlayers int    `toml:"max-players"`
		IconPath   string `toml:"icon-path"`
	} `toml:"status"`

	Forwarding string `toml:"forwarding"` // "none" or "legacy"

	Debug bool `toml:"debug"`
}

// Default returns the configuration written by --write-default-config.
func Default() Config {
	var c Config
	c.Network.Address = "0.0.0.0:25565"
	c.Network.Backend = "127.0.0.1:25566"
	c.Encryption.Enabled = true
	c.Compression.Threshold = 256
	c.Status.MOTD = "A crossmc Proxy"
	c.Status.MaxPlayers = 100
	c.Forwarding = ForwardingNone.String()
	return c
}

// Load reads and parses a TOML config file at path.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := toml.Unmarshal(b, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Save writes c as TOML to path.
func Save(path string, c Config) error {
	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ForwardingMode parses the Forwarding string field, defaulting to
// ForwardingNone on an unrecognised value.
func (c Config) ForwardingMode() Forwarding {
	if c.Forwarding == "legacy" {
		return ForwardingLegacy
	}
	return ForwardingNone
}
