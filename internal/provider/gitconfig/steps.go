package gitconfig

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
)

// configFile is the global git configuration path.
const configFile = "~/.gitconfig"

// IdentityStepID identifies the git identity step.
var IdentityStepID = engine.MustNewStepID("git:identity")

// SettingsStepID identifies the extra git settings step.
var SettingsStepID = engine.MustNewStepID("git:config")

// IdentityStep sets user.name and user.email in the global git config.
// The rest of the file is preserved untouched.
type IdentityStep struct {
	name  string
	email string
	fs    ports.FileSystem
	deps  []engine.StepID
}

// NewIdentityStep creates a new IdentityStep.
func NewIdentityStep(name, email string, fs ports.FileSystem, deps []engine.StepID) *IdentityStep {
	return &IdentityStep{name: name, email: email, fs: fs, deps: deps}
}

// ID returns the step identifier.
func (s *IdentityStep) ID() engine.StepID {
	return IdentityStepID
}

// Description returns the display label.
func (s *IdentityStep) Description() string {
	return fmt.Sprintf("git identity %s <%s>", s.name, s.email)
}

// Category returns the report grouping.
func (s *IdentityStep) Category() engine.Category {
	return engine.CategoryShell
}

// Critical reports whether a failure halts the run.
func (s *IdentityStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *IdentityStep) DependsOn() []engine.StepID {
	return s.deps
}

// Probe compares the configured identity against the desired one. A config
// with no identity is missing; a different identity is stale.
func (s *IdentityStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	path := ports.ExpandPath(configFile)
	if !s.fs.Exists(path) {
		return engine.StateMissing, nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return engine.StateMissing, err
	}
	cfg, err := ini.Load(data)
	if err != nil {
		return engine.StateMissing, fmt.Errorf("parse %s: %w", configFile, err)
	}

	user := cfg.Section("user")
	name := user.Key("name").String()
	email := user.Key("email").String()

	switch {
	case name == "" && email == "":
		return engine.StateMissing, nil
	case name == s.name && email == s.email:
		return engine.StateSatisfied, nil
	default:
		return engine.StateStale, nil
	}
}

// Apply writes the identity, creating the config file when absent.
func (s *IdentityStep) Apply(ctx engine.RunContext) error {
	path := ports.ExpandPath(configFile)

	cfg := ini.Empty()
	if s.fs.Exists(path) {
		data, err := s.fs.ReadFile(path)
		if err != nil {
			return err
		}
		cfg, err = ini.Load(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", configFile, err)
		}
	}

	user := cfg.Section("user")
	user.Key("name").SetValue(s.name)
	user.Key("email").SetValue(s.email)

	return writeConfig(s.fs, path, cfg)
}

// SettingsStep ensures arbitrary "section.key" entries in the global git
// config, leaving unrelated sections untouched.
type SettingsStep struct {
	entries map[string]string
	fs      ports.FileSystem
	deps    []engine.StepID
}

// NewSettingsStep creates a new SettingsStep. entries maps dotted keys such
// as "init.defaultBranch" to their desired values.
func NewSettingsStep(entries map[string]string, fs ports.FileSystem, deps []engine.StepID) *SettingsStep {
	return &SettingsStep{entries: entries, fs: fs, deps: deps}
}

// ID returns the step identifier.
func (s *SettingsStep) ID() engine.StepID {
	return SettingsStepID
}

// Description returns the display label.
func (s *SettingsStep) Description() string {
	return fmt.Sprintf("git settings (%d entries)", len(s.entries))
}

// Category returns the report grouping.
func (s *SettingsStep) Category() engine.Category {
	return engine.CategoryShell
}

// Critical reports whether a failure halts the run.
func (s *SettingsStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *SettingsStep) DependsOn() []engine.StepID {
	return s.deps
}

// Probe compares every desired entry against the file. All present and
// equal is satisfied, none present is missing, anything else is stale.
func (s *SettingsStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	path := ports.ExpandPath(configFile)
	if !s.fs.Exists(path) {
		return engine.StateMissing, nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return engine.StateMissing, err
	}
	cfg, err := ini.Load(data)
	if err != nil {
		return engine.StateMissing, fmt.Errorf("parse %s: %w", configFile, err)
	}

	matched, present := 0, 0
	for _, key := range s.sortedKeys() {
		section, name := splitConfigKey(key)
		current := cfg.Section(section).Key(name).String()
		if current != "" {
			present++
		}
		if current == s.entries[key] {
			matched++
		}
	}

	switch {
	case matched == len(s.entries):
		return engine.StateSatisfied, nil
	case present == 0:
		return engine.StateMissing, nil
	default:
		return engine.StateStale, nil
	}
}

// Apply writes every entry, creating the config file when absent.
func (s *SettingsStep) Apply(ctx engine.RunContext) error {
	path := ports.ExpandPath(configFile)

	cfg := ini.Empty()
	if s.fs.Exists(path) {
		data, err := s.fs.ReadFile(path)
		if err != nil {
			return err
		}
		cfg, err = ini.Load(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", configFile, err)
		}
	}

	for _, key := range s.sortedKeys() {
		section, name := splitConfigKey(key)
		cfg.Section(section).Key(name).SetValue(s.entries[key])
	}

	return writeConfig(s.fs, path, cfg)
}

func (s *SettingsStep) sortedKeys() []string {
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// splitConfigKey splits a dotted git config key at its last dot, so
// "branch.main.remote" targets section "branch.main".
func splitConfigKey(key string) (section, name string) {
	i := strings.LastIndex(key, ".")
	if i < 0 {
		return "core", key
	}
	return key[:i], key[i+1:]
}

func writeConfig(fs ports.FileSystem, path string, cfg *ini.File) error {
	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return fmt.Errorf("render %s: %w", configFile, err)
	}
	if err := fs.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", configFile, err)
	}
	return nil
}
