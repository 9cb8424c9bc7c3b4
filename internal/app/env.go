package app

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDataDir = "ACORDIARIO_DATA_DIR"
	EnvBackend = "ACORDIARIO_BACKEND"
	EnvPlan    = "ACORDIARIO_PLAN"
	EnvLog     = "ACORDIARIO_LOG"
	EnvStyle   = "ACORDIARIO_STYLE"
	EnvASCII   = "ACORDIARIO_ASCII"
)

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvLookup reads the given dotenv files and returns a lookup in which the
// process environment wins over file values.
func EnvLookup(files ...string) (LookupFunc, error) {
	fromFiles := map[string]string{}
	if len(files) > 0 {
		m, err := godotenv.Read(files...)
		if err != nil {
			return nil, fmt.Errorf("read env file: %w", err)
		}
		fromFiles = m
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fromFiles[key]
		return v, ok
	}, nil
}

// ApplyEnv overlays ACORDIARIO_* values onto cfg.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		c.DataDir = v
	}
	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Backend = v
	}
	if v, ok := lookup(EnvPlan); ok {
		c.PlanPath = v
	}
	if v, ok := lookup(EnvLog); ok {
		c.LogPath = v
	}
	if v, ok := lookup(EnvStyle); ok && v != "" {
		c.UI.StyleVariant = v
	}
	if v, ok := lookup(EnvASCII); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q", EnvASCII, v)
		}
		c.UI.ASCIIOnly = b
	}
	return nil
}
