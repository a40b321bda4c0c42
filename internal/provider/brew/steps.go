package brew

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/rigup/internal/adapters/command"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
	"github.com/felixgeelhaar/rigup/internal/provider/versionutil"
)

// BootstrapStepID identifies the Homebrew bootstrap step every other brew
// step depends on.
var BootstrapStepID = engine.MustNewStepID("brew:bootstrap")

// installScript is the official Homebrew installer, run non-interactively.
const installScript = `NONINTERACTIVE=1 /bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"`

// BootstrapStep installs Homebrew itself. It is critical: without the
// package manager every downstream step would fail uninterpretably.
type BootstrapStep struct {
	runner ports.CommandRunner
}

// NewBootstrapStep creates a new BootstrapStep.
func NewBootstrapStep(runner ports.CommandRunner) *BootstrapStep {
	return &BootstrapStep{runner: runner}
}

// ID returns the step identifier.
func (s *BootstrapStep) ID() engine.StepID {
	return BootstrapStepID
}

// Description returns the display label.
func (s *BootstrapStep) Description() string {
	return "Homebrew package manager"
}

// Category returns the report grouping.
func (s *BootstrapStep) Category() engine.Category {
	return engine.CategoryPackageManager
}

// Critical reports that a bootstrap failure halts the run.
func (s *BootstrapStep) Critical() bool {
	return true
}

// DependsOn returns the step dependencies.
func (s *BootstrapStep) DependsOn() []engine.StepID {
	return nil
}

// Probe checks whether the brew binary is on PATH.
func (s *BootstrapStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	result, err := s.runner.Run(ctx.Context(), "brew", "--version")
	if err != nil {
		if command.IsNotFound(err) {
			return engine.StateMissing, nil
		}
		return engine.StateMissing, err
	}
	if !result.Success() {
		return engine.StateMissing, nil
	}
	return engine.StateSatisfied, nil
}

// Apply runs the official installer.
func (s *BootstrapStep) Apply(ctx engine.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "/bin/bash", "-c", installScript)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("homebrew install failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// TapStep adds a Homebrew tap.
type TapStep struct {
	tap    string
	id     engine.StepID
	runner ports.CommandRunner
}

// NewTapStep creates a new TapStep.
func NewTapStep(tap string, runner ports.CommandRunner) *TapStep {
	return &TapStep{
		tap:    tap,
		id:     engine.MustNewStepID("brew:tap:" + tap),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *TapStep) ID() engine.StepID {
	return s.id
}

// Description returns the display label.
func (s *TapStep) Description() string {
	return fmt.Sprintf("Homebrew tap %s", s.tap)
}

// Category returns the report grouping.
func (s *TapStep) Category() engine.Category {
	return engine.CategoryPackageManager
}

// Critical reports whether a failure halts the run.
func (s *TapStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *TapStep) DependsOn() []engine.StepID {
	return []engine.StepID{BootstrapStepID}
}

// Probe checks whether the tap is already added.
func (s *TapStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	result, err := s.runner.Run(ctx.Context(), "brew", "tap")
	if err != nil {
		if command.IsNotFound(err) {
			return engine.StateMissing, nil
		}
		return engine.StateMissing, err
	}
	if !result.Success() {
		return engine.StateMissing, nil
	}
	for _, t := range strings.Split(strings.TrimSpace(result.Stdout), "\n") {
		if t == s.tap {
			return engine.StateSatisfied, nil
		}
	}
	return engine.StateMissing, nil
}

// Apply adds the tap.
func (s *TapStep) Apply(ctx engine.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "brew", "tap", s.tap)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("brew tap %s failed: %s", s.tap, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// FormulaStep installs or upgrades a Homebrew formula.
type FormulaStep struct {
	name     string
	version  string
	critical bool
	category engine.Category
	id       engine.StepID
	runner   ports.CommandRunner
}

// NewFormulaStep creates a new FormulaStep. A non-empty version enables
// stale detection against the installed version.
func NewFormulaStep(name, version string, critical bool, runner ports.CommandRunner) *FormulaStep {
	return &FormulaStep{
		name:     name,
		version:  version,
		critical: critical,
		category: engine.CategoryShell,
		id:       engine.MustNewStepID("brew:formula:" + name),
		runner:   runner,
	}
}

// WithCategory overrides the report category.
func (s *FormulaStep) WithCategory(category engine.Category) *FormulaStep {
	s.category = category
	return s
}

// ID returns the step identifier.
func (s *FormulaStep) ID() engine.StepID {
	return s.id
}

// Description returns the display label.
func (s *FormulaStep) Description() string {
	if s.version != "" {
		return fmt.Sprintf("formula %s %s", s.name, s.version)
	}
	return fmt.Sprintf("formula %s", s.name)
}

// Category returns the report grouping.
func (s *FormulaStep) Category() engine.Category {
	return s.category
}

// Critical reports whether a failure halts the run.
func (s *FormulaStep) Critical() bool {
	return s.critical
}

// DependsOn returns the step dependencies.
func (s *FormulaStep) DependsOn() []engine.StepID {
	return []engine.StepID{BootstrapStepID}
}

// Probe queries the installed versions of the formula.
func (s *FormulaStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	installed, err := s.installedVersions(ctx)
	if err != nil {
		if command.IsNotFound(err) {
			return engine.StateMissing, nil
		}
		return engine.StateMissing, err
	}
	if len(installed) == 0 {
		return engine.StateMissing, nil
	}
	if s.version != "" && versionutil.IsOlder(installed[len(installed)-1], s.version) {
		return engine.StateStale, nil
	}
	return engine.StateSatisfied, nil
}

// Apply installs the formula, or upgrades it when already present.
func (s *FormulaStep) Apply(ctx engine.RunContext) error {
	installed, err := s.installedVersions(ctx)
	if err != nil && !command.IsNotFound(err) {
		return err
	}

	args := []string{"install", s.name}
	if len(installed) > 0 {
		args = []string{"upgrade", s.name}
	}

	result, err := s.runner.Run(ctx.Context(), "brew", args...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("brew %s %s failed: %s", args[0], s.name, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// installedVersions parses `brew list --versions` output, e.g. "git 2.39.1 2.40.0".
func (s *FormulaStep) installedVersions(ctx engine.RunContext) ([]string, error) {
	result, err := s.runner.Run(ctx.Context(), "brew", "list", "--versions", s.name)
	if err != nil {
		return nil, err
	}
	if !result.Success() {
		return nil, nil
	}
	fields := strings.Fields(strings.TrimSpace(result.Stdout))
	if len(fields) < 2 {
		return nil, nil
	}
	return fields[1:], nil
}

// CaskStep installs a Homebrew cask application.
type CaskStep struct {
	cask     string
	category engine.Category
	id       engine.StepID
	runner   ports.CommandRunner
}

// NewCaskStep creates a new CaskStep.
func NewCaskStep(cask string, runner ports.CommandRunner) *CaskStep {
	return &CaskStep{
		cask:     cask,
		category: engine.CategoryEditor,
		id:       engine.MustNewStepID("brew:cask:" + cask),
		runner:   runner,
	}
}

// WithCategory overrides the report category.
func (s *CaskStep) WithCategory(category engine.Category) *CaskStep {
	s.category = category
	return s
}

// ID returns the step identifier.
func (s *CaskStep) ID() engine.StepID {
	return s.id
}

// Description returns the display label.
func (s *CaskStep) Description() string {
	return fmt.Sprintf("cask %s", s.cask)
}

// Category returns the report grouping.
func (s *CaskStep) Category() engine.Category {
	return s.category
}

// Critical reports whether a failure halts the run.
func (s *CaskStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *CaskStep) DependsOn() []engine.StepID {
	return []engine.StepID{BootstrapStepID}
}

// Probe checks whether the cask is already installed.
func (s *CaskStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	result, err := s.runner.Run(ctx.Context(), "brew", "list", "--cask")
	if err != nil {
		if command.IsNotFound(err) {
			return engine.StateMissing, nil
		}
		return engine.StateMissing, err
	}
	if !result.Success() {
		return engine.StateMissing, nil
	}
	for _, c := range strings.Split(strings.TrimSpace(result.Stdout), "\n") {
		if c == s.cask {
			return engine.StateSatisfied, nil
		}
	}
	return engine.StateMissing, nil
}

// Apply installs the cask.
func (s *CaskStep) Apply(ctx engine.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "brew", "install", "--cask", s.cask)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("brew install --cask %s failed: %s", s.cask, strings.TrimSpace(result.Stderr))
	}
	return nil
}
