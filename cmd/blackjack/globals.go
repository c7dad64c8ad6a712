package main

import (
	"fmt"

	"github.com/lox/blackjack/internal/config"
)

// Globals are flags shared by every command
type Globals struct {
	Config string `help:"Path to HCL config file" default:"blackjack.hcl" env:"BLACKJACK_CONFIG" type:"path"`
	Seed   *int64 `help:"Deterministic shuffle seed (optional)" env:"BLACKJACK_SEED"`
	Debug  bool   `help:"Enable debug logging" env:"BLACKJACK_DEBUG"`
}

// LoadConfig reads the config file and applies flag overrides
func (g *Globals) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", g.Config, err)
	}
	if g.Seed != nil {
		cfg.Engine.Seed = g.Seed
	}
	if g.Debug {
		cfg.UI.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
