package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source names where a YAML document was loaded from.
type Source string

// SourceEmbedded marks the built-in default.
const SourceEmbedded Source = "embedded"

// LoadYAML decodes a document into out.
// Search order: customPath -> ~/.gamebuilder/<filename> -> ./configs/<filename> -> embedded.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped silently when missing or malformed.
func LoadYAML(filename, customPath string, embedded []byte, out any) (Source, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return Source(customPath), nil
	}

	// Try user config directory
	if userPath := UserPath(filename); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return Source(userPath), nil
			}
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", filename)
	if data, err := os.ReadFile(localPath); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return Source(localPath), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, out); err != nil {
		return "", fmt.Errorf("config: failed to parse embedded %s: %w", filename, err)
	}
	return SourceEmbedded, nil
}

// LoadSettings loads application settings.
// Search order: customPath -> ~/.gamebuilder/config.yaml -> ./configs/config.yaml -> embedded default
func LoadSettings(customPath string) (Settings, Source, error) {
	var cfg Settings
	src, err := LoadYAML("config.yaml", customPath, defaultSettingsYAML, &cfg)
	if err != nil {
		if customPath != "" {
			return cfg, "", err
		}
		// Fallback to hardcoded if embed fails
		return DefaultSettings(), SourceEmbedded, nil
	}
	cfg.Validate()
	return cfg, src, nil
}

// UserPath returns the path of a file in the user config directory, or empty
// if home is unavailable.
func UserPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gamebuilder", filename)
}
