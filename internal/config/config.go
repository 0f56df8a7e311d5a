// Package config holds the runtime settings of the chess server.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidConfig indicates invalid configuration values.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string
	// AllowOrigins is the CORS origin list, comma separated.
	AllowOrigins string
	// StoragePath is the SQLite file; empty disables persistence.
	StoragePath string
	// Dev relaxes settings for local development (WAL journal, request dumps).
	Dev bool
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
	}
}

// Load parses args (without the program name) on top of Default.
func Load(args []string, output io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.AllowOrigins, "origins", cfg.AllowOrigins, "Allowed CORS origins, comma separated")
	fs.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "Path to SQLite database file (disables persistence if empty)")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "Development mode")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: listen address is empty", ErrInvalidConfig)
	}
	if !strings.Contains(c.Addr, ":") {
		return fmt.Errorf("%w: listen address %q has no port", ErrInvalidConfig, c.Addr)
	}
	return nil
}

// Origins splits AllowOrigins into its entries.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
