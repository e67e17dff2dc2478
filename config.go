package sprite

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config controls how a Registry discovers and loads declarations.
type Config struct {
	// Root is the directory scanned for declaration files, relative to the
	// registry's file system.
	Root string `yaml:"root"`
	// Extension is the declaration file suffix.
	Extension string `yaml:"extension"`
	// OverridePrefix marks declarations allowed to replace an already
	// registered sprite of the same name.
	OverridePrefix string `yaml:"override_prefix"`
	// DefaultSprite is looked up when an animation is requested with an
	// empty sprite name.
	DefaultSprite string `yaml:"default_sprite"`
	// MaxFrames caps the frame table of a single sprite.
	MaxFrames int `yaml:"max_frames"`
	// Quiet discards load warnings.
	Quiet bool `yaml:"quiet"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Root:           "sprites",
		Extension:      ".spr",
		OverridePrefix: "sprites/overrides/",
		DefaultSprite:  "null",
		MaxFrames:      DefaultMaxFrames,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Root == "" {
		c.Root = d.Root
	}
	if c.Extension == "" {
		c.Extension = d.Extension
	}
	if c.OverridePrefix == "" {
		c.OverridePrefix = d.OverridePrefix
	}
	if c.DefaultSprite == "" {
		c.DefaultSprite = d.DefaultSprite
	}
	if c.MaxFrames <= 0 {
		c.MaxFrames = d.MaxFrames
	}
	return c
}

// LoadConfig parses a YAML configuration. Fields left out keep their
// defaults.
func LoadConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "sprite: parsing config")
	}
	return c.withDefaults(), nil
}

// ReadConfig loads a YAML configuration file from disk.
func ReadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "sprite: reading config")
	}
	return LoadConfig(data)
}
