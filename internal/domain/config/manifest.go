// Package config loads the declarative provisioning manifest and the
// operator settings file.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is the declarative inventory of provisioning units.
// Declared order within each section is preserved into the registry.
type Manifest struct {
	// StartupFile is the shell startup file config blocks are written to.
	StartupFile string `yaml:"startup_file"`

	Brew      BrewSection      `yaml:"brew"`
	Shell     ShellSection     `yaml:"shell"`
	Git       GitSection       `yaml:"git"`
	Runtimes  []RuntimeEntry   `yaml:"runtimes"`
	Mobile    MobileSection    `yaml:"mobile"`
	Container ContainerSection `yaml:"container"`
}

// BrewSection declares Homebrew taps, formulae, and casks.
type BrewSection struct {
	Taps     []string       `yaml:"taps"`
	Formulae []FormulaEntry `yaml:"formulae"`
	Casks    []CaskEntry    `yaml:"casks"`
}

// FormulaEntry is one Homebrew formula, optionally version-pinned.
// In YAML it may be a bare string or a mapping with name/version.
type FormulaEntry struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	// Critical marks a formula whose failure halts the run (e.g. the
	// version manager every runtime step depends on).
	Critical bool `yaml:"critical"`
}

// UnmarshalYAML accepts both "git" and {name: git, version: 2.40.0}.
func (f *FormulaEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		f.Name = value.Value
		return nil
	}
	type plain FormulaEntry
	return value.Decode((*plain)(f))
}

// CaskEntry is one Homebrew cask application.
type CaskEntry struct {
	Name string `yaml:"name"`
}

// UnmarshalYAML accepts both "iterm2" and {name: iterm2}.
func (c *CaskEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		c.Name = value.Value
		return nil
	}
	type plain CaskEntry
	return value.Decode((*plain)(c))
}

// ShellSection declares the shell framework, theme, and config blocks.
type ShellSection struct {
	Framework string       `yaml:"framework"`
	Theme     string       `yaml:"theme"`
	Blocks    []BlockEntry `yaml:"blocks"`
}

// BlockEntry is one named config block for the startup file.
type BlockEntry struct {
	Marker  string `yaml:"marker"`
	Content string `yaml:"content"`
}

// GitSection declares the git identity and extra settings written to
// ~/.gitconfig.
type GitSection struct {
	User GitUser `yaml:"user"`
	// Config holds additional settings as dotted "section.key" entries,
	// e.g. "init.defaultBranch: main".
	Config map[string]string `yaml:"config"`
}

// GitUser is the [user] section of gitconfig.
type GitUser struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// IsZero reports whether no identity is declared.
func (u GitUser) IsZero() bool {
	return u.Name == "" && u.Email == ""
}

// RuntimeEntry is one language runtime managed through the version manager.
// Every runtime follows the same plugin-add / install / set-global template.
type RuntimeEntry struct {
	Name string `yaml:"name"`
	// Version is the exact version installed and set globally.
	Version string `yaml:"version"`
	// PluginURL overrides the plugin source repository, when the plugin is
	// not in the default registry (e.g. java, flutter).
	PluginURL string `yaml:"plugin_url"`
	// Category overrides the report category; defaults to language-runtime.
	Category string `yaml:"category"`
	// UpdatePlugin enables the plugin update path when already installed.
	UpdatePlugin bool `yaml:"update_plugin"`
}

// MobileSection declares the mobile-development toolchains.
type MobileSection struct {
	XcodeTools    bool   `yaml:"xcode_tools"`
	Cocoapods     bool   `yaml:"cocoapods"`
	AndroidHome   string `yaml:"android_home"`
	FlutterDoctor bool   `yaml:"flutter_doctor"`
}

// ContainerSection declares container and API-testing tools.
type ContainerSection struct {
	Docker    bool   `yaml:"docker"`
	APIClient string `yaml:"api_client"`
}

// DefaultStartupFile is used when the manifest does not name one.
const DefaultStartupFile = "~/.zshrc"

// ParseManifest decodes and validates manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.StartupFile == "" {
		m.StartupFile = DefaultStartupFile
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	for i, f := range m.Brew.Formulae {
		if f.Name == "" {
			return fmt.Errorf("brew formula at index %d has no name", i)
		}
	}
	for i, c := range m.Brew.Casks {
		if c.Name == "" {
			return fmt.Errorf("brew cask at index %d has no name", i)
		}
	}
	for i, r := range m.Runtimes {
		if r.Name == "" {
			return fmt.Errorf("runtime at index %d has no name", i)
		}
		if r.Version == "" {
			return fmt.Errorf("runtime %q has no version", r.Name)
		}
	}
	for i, b := range m.Shell.Blocks {
		if b.Marker == "" || b.Content == "" {
			return fmt.Errorf("shell block at index %d needs marker and content", i)
		}
	}
	return nil
}
