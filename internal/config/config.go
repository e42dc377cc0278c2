// Package config provides YAML-based application settings for the game
// builder and the file search order shared with the template catalog.
package config

import (
	"time"
)

// Settings contains all application-level configuration. Simulation rules
// are configured per template by the catalog, not here.
type Settings struct {
	Simulation SimulationSettings `yaml:"simulation"`
	Input      InputSettings      `yaml:"input"`
	HUD        HUDSettings        `yaml:"hud"`
	Storage    StorageSettings    `yaml:"storage"`
	Log        LogSettings        `yaml:"log"`
	Server     ServerSettings     `yaml:"server"`
	Spectator  SpectatorSettings  `yaml:"spectator"`
}

// SimulationSettings controls the scheduler.
type SimulationSettings struct {
	TickRate int   `yaml:"tick_rate"` // frames per second
	Seed     int64 `yaml:"seed"`      // 0 = random based on time
}

// InputSettings controls how terminal key presses become held signals.
type InputSettings struct {
	// HoldWindow is how long a key counts as held after its last press.
	// Terminals report repeats, not releases.
	HoldWindow time.Duration `yaml:"hold_window"`
}

// HUDSettings controls the score/lives sampler.
type HUDSettings struct {
	SamplePeriod time.Duration `yaml:"sample_period"`
}

// StorageSettings locates the best-score database.
type StorageSettings struct {
	Path string `yaml:"path"`
}

// LogSettings configures the structured logger.
type LogSettings struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty = discard while the TUI owns the screen
}

// ServerSettings configures the SSH server.
type ServerSettings struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}

// SpectatorSettings configures the websocket frame feed.
type SpectatorSettings struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Validate fills zero values with defaults so a partial file still works.
func (s *Settings) Validate() {
	d := DefaultSettings()
	if s.Simulation.TickRate <= 0 {
		s.Simulation.TickRate = d.Simulation.TickRate
	}
	if s.Input.HoldWindow <= 0 {
		s.Input.HoldWindow = d.Input.HoldWindow
	}
	if s.HUD.SamplePeriod <= 0 {
		s.HUD.SamplePeriod = d.HUD.SamplePeriod
	}
	if s.Storage.Path == "" {
		s.Storage.Path = d.Storage.Path
	}
	if s.Log.Level == "" {
		s.Log.Level = d.Log.Level
	}
	if s.Server.Host == "" {
		s.Server.Host = d.Server.Host
	}
	if s.Server.Port <= 0 {
		s.Server.Port = d.Server.Port
	}
	if s.Server.HostKeyPath == "" {
		s.Server.HostKeyPath = d.Server.HostKeyPath
	}
	if s.Spectator.Addr == "" {
		s.Spectator.Addr = d.Spectator.Addr
	}
}
