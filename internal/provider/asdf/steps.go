package asdf

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/rigup/internal/adapters/command"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
	"github.com/felixgeelhaar/rigup/internal/provider/versionutil"
)

// Runtime is one language runtime managed through asdf. Every runtime
// follows the same three-step template: plugin, install, global.
type Runtime struct {
	Name string
	// Version is installed and set as the global default.
	Version string
	// PluginURL overrides the plugin source repository.
	PluginURL string
	// Category is the report grouping; defaults to language-runtime.
	Category engine.Category
	// UpdatePlugin enables the plugin update path on re-runs.
	UpdatePlugin bool
}

func (r Runtime) category() engine.Category {
	if r.Category != "" {
		return r.Category
	}
	return engine.CategoryLanguageRuntime
}

// PluginStepID returns the plugin step ID for a runtime name.
func PluginStepID(name string) engine.StepID {
	return engine.MustNewStepID("asdf:plugin:" + name)
}

// InstallStepID returns the install step ID for a runtime name.
func InstallStepID(name string) engine.StepID {
	return engine.MustNewStepID("asdf:install:" + name)
}

// GlobalStepID returns the global step ID for a runtime name.
func GlobalStepID(name string) engine.StepID {
	return engine.MustNewStepID("asdf:global:" + name)
}

// PluginStep registers (or updates) the asdf plugin for a runtime.
type PluginStep struct {
	runtime Runtime
	deps    []engine.StepID
	runner  ports.CommandRunner
}

// NewPluginStep creates a new PluginStep. deps carries the step that
// provides the asdf binary itself, when one is declared.
func NewPluginStep(runtime Runtime, deps []engine.StepID, runner ports.CommandRunner) *PluginStep {
	return &PluginStep{runtime: runtime, deps: deps, runner: runner}
}

// ID returns the step identifier.
func (s *PluginStep) ID() engine.StepID {
	return PluginStepID(s.runtime.Name)
}

// Description returns the display label.
func (s *PluginStep) Description() string {
	return fmt.Sprintf("asdf plugin %s", s.runtime.Name)
}

// Category returns the report grouping.
func (s *PluginStep) Category() engine.Category {
	return s.runtime.category()
}

// Critical reports whether a failure halts the run.
func (s *PluginStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *PluginStep) DependsOn() []engine.StepID {
	return s.deps
}

// Probe checks whether the plugin is registered. A registered plugin with
// the update path enabled reports stale, mirroring the "already installed,
// updating" behavior of the manager.
func (s *PluginStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	registered, err := s.registered(ctx)
	if err != nil {
		if command.IsNotFound(err) {
			return engine.StateMissing, nil
		}
		return engine.StateMissing, err
	}
	if !registered {
		return engine.StateMissing, nil
	}
	if s.runtime.UpdatePlugin {
		return engine.StateStale, nil
	}
	return engine.StateSatisfied, nil
}

// Apply adds the plugin, or updates it when already registered.
func (s *PluginStep) Apply(ctx engine.RunContext) error {
	registered, err := s.registered(ctx)
	if err != nil && !command.IsNotFound(err) {
		return err
	}

	args := []string{"plugin", "add", s.runtime.Name}
	if s.runtime.PluginURL != "" {
		args = append(args, s.runtime.PluginURL)
	}
	if registered {
		args = []string{"plugin", "update", s.runtime.Name}
	}

	result, err := s.runner.Run(ctx.Context(), "asdf", args...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("asdf %s failed: %s", strings.Join(args, " "), strings.TrimSpace(result.Stderr))
	}
	return nil
}

func (s *PluginStep) registered(ctx engine.RunContext) (bool, error) {
	result, err := s.runner.Run(ctx.Context(), "asdf", "plugin", "list")
	if err != nil {
		return false, err
	}
	if !result.Success() {
		return false, nil
	}
	for _, line := range strings.Split(strings.TrimSpace(result.Stdout), "\n") {
		if strings.TrimSpace(line) == s.runtime.Name {
			return true, nil
		}
	}
	return false, nil
}

// InstallStep installs one exact version of a runtime.
type InstallStep struct {
	runtime Runtime
	runner  ports.CommandRunner
}

// NewInstallStep creates a new InstallStep.
func NewInstallStep(runtime Runtime, runner ports.CommandRunner) *InstallStep {
	return &InstallStep{runtime: runtime, runner: runner}
}

// ID returns the step identifier.
func (s *InstallStep) ID() engine.StepID {
	return InstallStepID(s.runtime.Name)
}

// Description returns the display label.
func (s *InstallStep) Description() string {
	return fmt.Sprintf("%s %s", s.runtime.Name, s.runtime.Version)
}

// Category returns the report grouping.
func (s *InstallStep) Category() engine.Category {
	return s.runtime.category()
}

// Critical reports whether a failure halts the run.
func (s *InstallStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *InstallStep) DependsOn() []engine.StepID {
	return []engine.StepID{PluginStepID(s.runtime.Name)}
}

// Probe checks whether the exact version is installed.
func (s *InstallStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	result, err := s.runner.Run(ctx.Context(), "asdf", "list", s.runtime.Name)
	if err != nil {
		if command.IsNotFound(err) {
			return engine.StateMissing, nil
		}
		return engine.StateMissing, err
	}
	if !result.Success() {
		return engine.StateMissing, nil
	}
	for _, line := range strings.Split(result.Stdout, "\n") {
		installed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		if versionutil.Matches(installed, s.runtime.Version) {
			return engine.StateSatisfied, nil
		}
	}
	return engine.StateMissing, nil
}

// Apply installs the version.
func (s *InstallStep) Apply(ctx engine.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "asdf", "install", s.runtime.Name, s.runtime.Version)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("asdf install %s %s failed: %s", s.runtime.Name, s.runtime.Version, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// GlobalStep sets the installed version as the global default.
type GlobalStep struct {
	runtime Runtime
	runner  ports.CommandRunner
}

// NewGlobalStep creates a new GlobalStep.
func NewGlobalStep(runtime Runtime, runner ports.CommandRunner) *GlobalStep {
	return &GlobalStep{runtime: runtime, runner: runner}
}

// ID returns the step identifier.
func (s *GlobalStep) ID() engine.StepID {
	return GlobalStepID(s.runtime.Name)
}

// Description returns the display label.
func (s *GlobalStep) Description() string {
	return fmt.Sprintf("%s global %s", s.runtime.Name, s.runtime.Version)
}

// Category returns the report grouping.
func (s *GlobalStep) Category() engine.Category {
	return s.runtime.category()
}

// Critical reports whether a failure halts the run.
func (s *GlobalStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *GlobalStep) DependsOn() []engine.StepID {
	return []engine.StepID{InstallStepID(s.runtime.Name)}
}

// Probe compares the current global version against the desired one.
// A different global version is stale, not missing: the runtime exists and
// only the default selection needs updating.
func (s *GlobalStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	result, err := s.runner.Run(ctx.Context(), "asdf", "current", s.runtime.Name)
	if err != nil {
		if command.IsNotFound(err) {
			return engine.StateMissing, nil
		}
		return engine.StateMissing, err
	}
	if !result.Success() {
		return engine.StateMissing, nil
	}
	fields := strings.Fields(result.Stdout)
	for i, f := range fields {
		if i > 0 && versionutil.Matches(f, s.runtime.Version) {
			return engine.StateSatisfied, nil
		}
	}
	return engine.StateStale, nil
}

// Apply sets the global version.
func (s *GlobalStep) Apply(ctx engine.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "asdf", "global", s.runtime.Name, s.runtime.Version)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("asdf global %s %s failed: %s", s.runtime.Name, s.runtime.Version, strings.TrimSpace(result.Stderr))
	}
	return nil
}
