package config

import (
	"os"
	"strings"
)

// Loader loads manifests from the filesystem.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadManifest loads and validates a manifest from the given path.
func (l *Loader) LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewManifestNotFoundError(path)
		}
		return nil, err
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		if strings.Contains(err.Error(), "yaml:") || strings.Contains(err.Error(), "unmarshal") {
			return nil, NewYAMLParseError(path, err)
		}
		return nil, NewManifestInvalidError(path, err.Error())
	}
	return manifest, nil
}
