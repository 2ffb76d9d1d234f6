// Package config loads the process-level server configuration: listen
// address, log level, and the defaults newly registered games start with.
// The in-session configure(option, value) command (spec.md §6) is a runtime
// call on a Table, not part of this file-backed configuration.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ServerConfig is the complete process-level configuration.
type ServerConfig struct {
	Server   ServerSettings `hcl:"server,block"`
	Defaults GameDefaults   `hcl:"game_defaults,block"`
}

// ServerSettings holds the listen address and logging configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// GameDefaults configures the starting stack and seat limit newly
// registered games get unless overridden by a configure(option, value) call.
type GameDefaults struct {
	StartingStack int      `hcl:"starting_stack,optional"`
	MaxPlayers    int      `hcl:"max_players,optional"`
	Games         []string `hcl:"games,optional"`
}

// DefaultServerConfig returns the configuration used when no file is
// present.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
			LogFile:  "holdem-server.log",
		},
		Defaults: GameDefaults{
			StartingStack: 200,
			MaxPlayers:    9,
			Games:         []string{"default"},
		},
	}
}

// LoadServerConfig loads configuration from an HCL file, falling back to
// DefaultServerConfig when filename does not exist.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Server.LogFile == "" {
		cfg.Server.LogFile = "holdem-server.log"
	}
	if cfg.Defaults.StartingStack == 0 {
		cfg.Defaults.StartingStack = 200
	}
	if cfg.Defaults.MaxPlayers == 0 {
		cfg.Defaults.MaxPlayers = 9
	}
	if len(cfg.Defaults.Games) == 0 {
		cfg.Defaults.Games = []string{"default"}
	}

	return &cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Defaults.StartingStack <= 0 {
		return fmt.Errorf("game_defaults: starting_stack must be positive")
	}
	if c.Defaults.MaxPlayers < 2 || c.Defaults.MaxPlayers > 10 {
		return fmt.Errorf("game_defaults: max_players must be between 2 and 10")
	}
	return nil
}

// Address returns the full listen address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
