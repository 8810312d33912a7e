package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/diegok/puckstop/internal/game"
	"github.com/diegok/puckstop/internal/layout"
)

//go:embed default.yaml
var defaultGame []byte

// Game is the YAML game table: playfield layout plus gameplay tuning
type Game struct {
	Layout layout.Table `yaml:"layout"`
	Tuning game.Tuning  `yaml:"tuning"`
}

// LoadGameFile reads a game table from path. Keys missing from the file keep
// the embedded defaults. An empty path returns the defaults.
func LoadGameFile(path string) (*Game, error) {
	g, err := LoadGame(bytes.NewReader(defaultGame))
	if err != nil {
		return nil, fmt.Errorf("embedded game table: %w", err)
	}
	if path == "" {
		return g, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open game table: %w", err)
	}
	defer f.Close()

	if err := g.decode(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// LoadGame decodes and validates a game table from r
func LoadGame(r io.Reader) (*Game, error) {
	var g Game
	if err := g.decode(r); err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *Game) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(g); err != nil {
		return fmt.Errorf("decode game table: %w", err)
	}
	return g.Validate()
}

// Validate checks the layout and tuning
func (g *Game) Validate() error {
	if err := g.Layout.Validate(); err != nil {
		return err
	}
	return g.Tuning.Validate()
}

// Apply overrides the tuning with command line settings
func (g *Game) Apply(cfg *Config) {
	if cfg.Lives > 0 {
		g.Tuning.StartLives = cfg.Lives
	}
}
