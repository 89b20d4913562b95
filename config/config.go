package config

import (
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug            = "debug"
	ConfigCPUProfile       = "cpu-profile"
	ConfigDedup            = "dedup"
	ConfigMemoryFraction   = "memory-fraction"
	ConfigProgressInterval = "progress-interval"
	ConfigThreads          = "threads"
	ConfigManifest         = "manifest"
	ConfigHistoryFile      = "history-file"
)

const (
	DedupSnapshot = "snapshot"
	DedupZobrist  = "zobrist"
)

// Config holds settings for the solver and its tools. Values come from
// flags, then LAMBDAMINER_* environment variables, then defaults.
type Config struct {
	viper.Viper
	args []string
}

func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()

	fs := pflag.NewFlagSet("lambdaminer", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigDedup, DedupSnapshot, "visited-set key: snapshot or zobrist")
	fs.Float64(ConfigMemoryFraction, 0, "stop expanding once the search uses this fraction of system memory (0 = no limit)")
	fs.Int(ConfigProgressInterval, 100000, "nodes between search progress logs")
	fs.Int(ConfigThreads, runtime.NumCPU(), "maps solved in parallel in batch mode")
	fs.String(ConfigManifest, "", "YAML manifest of maps to solve")
	fs.String(ConfigHistoryFile, "/tmp/lambdaminer_history", "shell history file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()

	c.SetEnvPrefix("lambdaminer")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return c.BindPFlags(fs)
}

// Args are the positional arguments left after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// SanitizedSettings is the settings map, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

// DefaultConfig is a config loaded with no arguments.
func DefaultConfig() *Config {
	c := &Config{}
	if err := c.Load(nil); err != nil {
		panic(err)
	}
	return c
}
