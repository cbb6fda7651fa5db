// Package config persists cmd/nescore's user-facing settings: input port
// bindings, video options, and the "show splash" toggle, in a per-OS config
// directory.
//
// Grounded on _examples/arl-nestor/emu/config.go's Config/LoadConfigOrDefault/
// SaveConfig shape, generalized from that file's single hw.InputConfig field
// to the two-port button-map this project's simpler InputSource needs.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"
)

// Config is the persisted shape of cmd/nescore's settings file.
type Config struct {
	Input   InputConfig   `toml:"input"`
	Video   VideoConfig   `toml:"video"`
	General GeneralConfig `toml:"general"`
}

// InputConfig maps NES buttons to SDL2 scancode names for each port, keyed
// by button name (A, B, Select, Start, Up, Down, Left, Right).
type InputConfig struct {
	Port0 map[string]string `toml:"port0"`
	Port1 map[string]string `toml:"port1"`
}

type VideoConfig struct {
	DisableVSync bool `toml:"disable_vsync"`
	Monitor      int  `toml:"monitor"`
}

type GeneralConfig struct {
	ShowSplash bool `toml:"show_splash"`
}

const filename = "config.toml"

// Dir is the per-OS directory config.toml and the recent-ROMs cache live
// under, created on first use.
var Dir = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("nescore")
	if err := configdir.MakePath(dir); err != nil {
		panic(err)
	}
	return dir
})

// Default returns the configuration used when no file has been saved yet:
// arrow keys plus K/J/RSHIFT/RETURN for port 0, nothing bound for port 1.
func Default() Config {
	return Config{
		Input: InputConfig{
			Port0: map[string]string{
				"A": "K", "B": "J", "Select": "RSHIFT", "Start": "RETURN",
				"Up": "UP", "Down": "DOWN", "Left": "LEFT", "Right": "RIGHT",
			},
		},
		General: GeneralConfig{ShowSplash: true},
	}
}

// LoadOrDefault loads config.toml from Dir, or returns Default if it does
// not exist or fails to parse.
func LoadOrDefault() Config {
	var cfg Config
	if _, err := toml.DecodeFile(filepath.Join(Dir(), filename), &cfg); err != nil {
		return Default()
	}
	return cfg
}

// Save writes cfg to config.toml under Dir.
func Save(cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(Dir(), filename), buf.Bytes(), 0o644)
}
