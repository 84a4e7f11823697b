// Package config loads runtime settings from an optional file and CRUST_*
// environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/hailam/crust/internal/board"
)

const envPrefix = "CRUST"

// Config holds the settings shared by the command-line tools.
type Config struct {
	// Seed selects the Zobrist tables. Zero means the built-in default.
	Seed uint64
	// RandomKeys draws a fresh seed per run and overrides Seed.
	RandomKeys bool
	LogLevel   string

	// DataDir is the database directory. Empty means the platform default.
	DataDir  string
	InMemory bool
	NoCache  bool

	Workers int

	DiagramSize int
	DiagramFlip bool
}

func defaults(v *viper.Viper) {
	v.SetDefault("seed", uint64(0))
	v.SetDefault("zobrist.random", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.dir", "")
	v.SetDefault("storage.memory", false)
	v.SetDefault("storage.nocache", false)
	v.SetDefault("perft.workers", 0)
	v.SetDefault("diagram.size", 480)
	v.SetDefault("diagram.flip", false)
}

// Load reads settings from path, if not empty, then applies environment
// overrides such as CRUST_PERFT_WORKERS.
func Load(path string) (*Config, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	c := &Config{
		Seed:        v.GetUint64("seed"),
		RandomKeys:  v.GetBool("zobrist.random"),
		LogLevel:    v.GetString("log.level"),
		DataDir:     v.GetString("storage.dir"),
		InMemory:    v.GetBool("storage.memory"),
		NoCache:     v.GetBool("storage.nocache"),
		Workers:     v.GetInt("perft.workers"),
		DiagramSize: v.GetInt("diagram.size"),
		DiagramFlip: v.GetBool("diagram.flip"),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("perft.workers must not be negative, got %d", c.Workers)
	}
	if c.DiagramSize < 64 {
		return fmt.Errorf("diagram.size must be at least 64, got %d", c.DiagramSize)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// ZobristSeed returns the seed the tools should build their tables from.
func (c *Config) ZobristSeed() uint64 {
	if c.RandomKeys {
		return board.RandomSeed()
	}
	return c.Seed
}

// Level returns the configured log level.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
