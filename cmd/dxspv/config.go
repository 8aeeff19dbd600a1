package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"dxspv/internal/driver"
	"dxspv/internal/trace"
)

// fileConfig is the dxspv.toml schema. Every field has a flag that
// overrides it.
type fileConfig struct {
	LogLevel   string `toml:"log_level"`
	DumpPath   string `toml:"dump_path"`
	EntryPoint string `toml:"entry_point"`
	Jobs       int    `toml:"jobs"`
	Cache      bool   `toml:"cache"`
}

const defaultConfigPath = "dxspv.toml"

// loadConfig reads the config file. An absent default file is fine; an
// absent explicitly named file is an error.
func loadConfig(cmd *cobra.Command) (fileConfig, error) {
	var cfg fileConfig

	path, _ := cmd.Root().PersistentFlags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// runOptions assembles driver options from config plus flags.
func runOptions(cmd *cobra.Command, cfg fileConfig) (driver.Options, error) {
	opts := driver.Options{
		Source:     driver.SourceDXBCTPF,
		DumpPath:   cfg.DumpPath,
		EntryPoint: cfg.EntryPoint,
	}

	levelName, _ := cmd.Root().PersistentFlags().GetString("log-level")
	if levelName == "" {
		levelName = cfg.LogLevel
	}
	if levelName != "" {
		level, err := trace.ParseLevel(levelName)
		if err != nil {
			return opts, err
		}
		if level > trace.LevelOff {
			opts.Tracer = trace.NewStream(os.Stderr, level)
		}
	}
	return opts, nil
}
