// Package config loads blackjack settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the configuration file read when none is given
const DefaultFile = "blackjack.hcl"

// CardBacks lists the card back designs a player can choose from
var CardBacks = []string{"classic", "red", "blue", "green", "gold"}

// Config represents the complete configuration
type Config struct {
	Engine EngineSettings `hcl:"engine,block"`
	Server ServerSettings `hcl:"server,block"`
	UI     UISettings     `hcl:"ui,block"`
}

// EngineSettings controls dealing
type EngineSettings struct {
	Seed *int64 `hcl:"seed,optional"`
}

// ServerSettings controls the websocket adapter
type ServerSettings struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
	// IdleTimeout is in seconds; an explicit 0 disables idle reaping
	IdleTimeout *int `hcl:"idle_timeout,optional"`
	MaxHistory  int  `hcl:"max_history,optional"`
}

// DefaultIdleTimeout applies when the file does not set idle_timeout
const DefaultIdleTimeout = 300

// IdleDuration returns the idle timeout as a duration
func (s ServerSettings) IdleDuration() time.Duration {
	if s.IdleTimeout == nil {
		return DefaultIdleTimeout * time.Second
	}
	return time.Duration(*s.IdleTimeout) * time.Second
}

// UISettings controls the terminal adapter and logging
type UISettings struct {
	CardBack string `hcl:"card_back,optional"`
	LogFile  string `hcl:"log_file,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Address:     "localhost",
			Port:        8080,
			IdleTimeout: intPtr(DefaultIdleTimeout),
			MaxHistory:  100,
		},
		UI: UISettings{
			CardBack: "classic",
			LogFile:  "blackjack.log",
			LogLevel: "info",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills in defaults for missing values
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	// Blocks are optional in the file but required by gohcl, so decode
	// into a shadow struct of pointers first.
	var raw struct {
		Engine *EngineSettings `hcl:"engine,block"`
		Server *ServerSettings `hcl:"server,block"`
		UI     *UISettings     `hcl:"ui,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if raw.Engine != nil {
		config.Engine = *raw.Engine
	}
	if raw.Server != nil {
		config.Server = *raw.Server
	}
	if raw.UI != nil {
		config.UI = *raw.UI
	}

	defaults := Default()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.IdleTimeout == nil {
		config.Server.IdleTimeout = defaults.Server.IdleTimeout
	}
	if config.Server.MaxHistory == 0 {
		config.Server.MaxHistory = defaults.Server.MaxHistory
	}
	if config.UI.CardBack == "" {
		config.UI.CardBack = defaults.UI.CardBack
	}
	if config.UI.LogFile == "" {
		config.UI.LogFile = defaults.UI.LogFile
	}
	if config.UI.LogLevel == "" {
		config.UI.LogLevel = defaults.UI.LogLevel
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.IdleTimeout != nil && *c.Server.IdleTimeout < 0 {
		return fmt.Errorf("idle timeout cannot be negative")
	}
	if c.Server.MaxHistory < 0 {
		return fmt.Errorf("max history cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	if !IsCardBack(c.UI.CardBack) {
		return fmt.Errorf("invalid card back: %s", c.UI.CardBack)
	}
	return nil
}

// ServerAddress returns the host:port the server listens on
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IsCardBack reports whether name is a known card back
func IsCardBack(name string) bool {
	for _, b := range CardBacks {
		if b == name {
			return true
		}
	}
	return false
}

func intPtr(n int) *int {
	return &n
}
