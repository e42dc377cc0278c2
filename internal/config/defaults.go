package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the hardcoded settings used when no file parses.
func DefaultSettings() Settings {
	return Settings{
		Simulation: SimulationSettings{
			TickRate: 60,
		},
		Input: InputSettings{
			HoldWindow: 150 * time.Millisecond,
		},
		HUD: HUDSettings{
			SamplePeriod: 100 * time.Millisecond,
		},
		Storage: StorageSettings{
			Path: "~/.gamebuilder/scores.db",
		},
		Log: LogSettings{
			Level: "info",
		},
		Server: ServerSettings{
			Host:        "0.0.0.0",
			Port:        2222,
			HostKeyPath: ".ssh/gamebuilder_ed25519",
		},
		Spectator: SpectatorSettings{
			Addr: ":8080",
		},
	}
}

// DefaultSettingsYAML returns the embedded default settings file.
func DefaultSettingsYAML() []byte {
	return defaultSettingsYAML
}
