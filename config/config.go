// Package config holds the run configuration for a share. A Config is built
// once at startup, finalized, and never mutated afterwards; request handlers
// only ever read it.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// DefaultPort is used when no port is configured.
const DefaultPort = 5000

// Config is intentionally small and TOML-friendly.
type Config struct {
	// Root is the directory shared by the server (required).
	Root string `toml:"root"`

	// Port to listen on. If busy, the next free port is tried.
	Port int `toml:"port"`

	// Host is the bind address. Default: all interfaces.
	Host string `toml:"host"`

	// OpenBrowser launches the local browser on the connect page shortly
	// after startup.
	OpenBrowser bool `toml:"open_browser"`

	// RootName is the display name of the share, derived in Finalize.
	RootName string `toml:"-"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Port: DefaultPort, OpenBrowser: true}
}

// Load reads a TOML config file and lays it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// Finalize validates the configuration and canonicalizes the shared root:
// absolute path, symlinks resolved. Every later containment check compares
// against this canonical form. Returns an error if the root is missing or
// not a directory.
func (c *Config) Finalize() error {
	if c.Root == "" {
		return fmt.Errorf("config: root is required")
	}
	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("config: abs root: %w", err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fmt.Errorf("config: root %s: %w", abs, err)
	}
	info, err := os.Stat(canonical)
	if err != nil {
		return fmt.Errorf("config: root %s: %w", canonical, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("config: root %s is not a directory", canonical)
	}

	c.Root = canonical
	c.RootName = filepath.Base(canonical)
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	return nil
}

// Addr returns the host:port pair to bind, using the given port (which may
// differ from c.Port after a busy-port retry).
func (c Config) Addr(port int) string {
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}
