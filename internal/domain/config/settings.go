package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// Settings are operator defaults, read from the XDG config directory.
// Everything has a working default; the file is optional.
type Settings struct {
	// Manifest is the default manifest path used when --manifest is unset.
	Manifest string `toml:"manifest"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// Color toggles styled report output.
	Color bool `toml:"color"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Manifest: "rigup.yaml",
		LogLevel: "info",
		Color:    true,
	}
}

// SettingsPath returns the settings file location under the XDG config home.
func SettingsPath() string {
	return filepath.Join(xdg.ConfigHome, "rigup", "settings.toml")
}

// LoadSettings reads the settings file, falling back to defaults when the
// file is absent.
func LoadSettings() (Settings, error) {
	return loadSettingsFrom(SettingsPath())
}

func loadSettingsFrom(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), NewSettingsParseError(path, err)
	}
	if settings.Manifest == "" {
		settings.Manifest = DefaultSettings().Manifest
	}
	if settings.LogLevel == "" {
		settings.LogLevel = DefaultSettings().LogLevel
	}
	return settings, nil
}
