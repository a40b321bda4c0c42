package shellenv

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/rigup/internal/domain/blockfile"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
)

// ohMyZshDir is the install location probed for framework presence.
const ohMyZshDir = "~/.oh-my-zsh"

// ohMyZshInstall is the official installer, run unattended so it neither
// switches the shell nor replaces an existing zshrc.
const ohMyZshInstall = `sh -c "$(curl -fsSL https://raw.githubusercontent.com/ohmyzsh/ohmyzsh/master/tools/install.sh)" "" --unattended`

// FrameworkStepID identifies the shell framework install step.
var FrameworkStepID = engine.MustNewStepID("shell:framework")

// FrameworkStep installs the oh-my-zsh shell framework.
type FrameworkStep struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
	deps   []engine.StepID
}

// NewFrameworkStep creates a new FrameworkStep.
func NewFrameworkStep(runner ports.CommandRunner, fs ports.FileSystem, deps []engine.StepID) *FrameworkStep {
	return &FrameworkStep{runner: runner, fs: fs, deps: deps}
}

// ID returns the step identifier.
func (s *FrameworkStep) ID() engine.StepID {
	return FrameworkStepID
}

// Description returns the display label.
func (s *FrameworkStep) Description() string {
	return "oh-my-zsh framework"
}

// Category returns the report grouping.
func (s *FrameworkStep) Category() engine.Category {
	return engine.CategoryShell
}

// Critical reports whether a failure halts the run.
func (s *FrameworkStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *FrameworkStep) DependsOn() []engine.StepID {
	return s.deps
}

// Probe checks for the framework's install directory.
func (s *FrameworkStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	if s.fs.IsDir(ports.ExpandPath(ohMyZshDir)) {
		return engine.StateSatisfied, nil
	}
	return engine.StateMissing, nil
}

// Apply runs the unattended installer.
func (s *FrameworkStep) Apply(ctx engine.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "/bin/bash", "-c", ohMyZshInstall)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("oh-my-zsh install failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// BlockStep idempotently maintains one marker-delimited block in the shell
// startup file. Theme selection, aliases, and environment exports all ride
// on this step.
type BlockStep struct {
	block    blockfile.Block
	id       engine.StepID
	desc     string
	category engine.Category
	deps     []engine.StepID
	writer   *blockfile.Writer
}

// NewBlockStep creates a new BlockStep. The step ID is derived from the
// block marker.
func NewBlockStep(block blockfile.Block, writer *blockfile.Writer) *BlockStep {
	return &BlockStep{
		block:    block,
		id:       engine.MustNewStepID("shell:block:" + markerSlug(block.Marker)),
		desc:     fmt.Sprintf("startup block %q", block.Marker),
		category: engine.CategoryShell,
		writer:   writer,
	}
}

// WithID overrides the derived step identifier.
func (s *BlockStep) WithID(id engine.StepID) *BlockStep {
	s.id = id
	return s
}

// WithDescription overrides the display label.
func (s *BlockStep) WithDescription(desc string) *BlockStep {
	s.desc = desc
	return s
}

// WithCategory overrides the report category.
func (s *BlockStep) WithCategory(category engine.Category) *BlockStep {
	s.category = category
	return s
}

// WithDependencies sets the step dependencies.
func (s *BlockStep) WithDependencies(deps ...engine.StepID) *BlockStep {
	s.deps = deps
	return s
}

// ID returns the step identifier.
func (s *BlockStep) ID() engine.StepID {
	return s.id
}

// Description returns the display label.
func (s *BlockStep) Description() string {
	return s.desc
}

// Category returns the report grouping.
func (s *BlockStep) Category() engine.Category {
	return s.category
}

// Critical reports whether a failure halts the run.
func (s *BlockStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *BlockStep) DependsOn() []engine.StepID {
	return s.deps
}

// Probe maps the writer's dry check onto satisfaction: an absent block is
// missing, an identical one satisfied, and a divergent one stale so the
// conflict surfaces during apply rather than being silently skipped.
func (s *BlockStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	result, err := s.writer.Check(s.block)
	if err != nil {
		return engine.StateMissing, err
	}
	switch result {
	case blockfile.ResultSkipped:
		return engine.StateSatisfied, nil
	case blockfile.ResultConflict:
		return engine.StateStale, nil
	default:
		return engine.StateMissing, nil
	}
}

// Apply ensures the block. A conflicting block is reported as such and the
// target file is left untouched.
func (s *BlockStep) Apply(ctx engine.RunContext) error {
	result, err := s.writer.Ensure(s.block)
	if err != nil {
		return err
	}
	if result == blockfile.ResultConflict {
		return engine.NewConflictError(s.block.TargetFile, fmt.Sprintf("block %q exists with different content", s.block.Marker))
	}
	return nil
}

// NewThemeStep maintains the ZSH_THEME assignment as a startup block.
// It depends on the framework step since the theme only takes effect under
// oh-my-zsh.
func NewThemeStep(theme, targetFile string, writer *blockfile.Writer) *BlockStep {
	block := blockfile.Block{
		Marker:     "# rigup: zsh theme",
		Content:    fmt.Sprintf("ZSH_THEME=%q", theme),
		TargetFile: targetFile,
	}
	return NewBlockStep(block, writer).
		WithID(engine.MustNewStepID("shell:theme")).
		WithDescription(fmt.Sprintf("zsh theme %s", theme)).
		WithDependencies(FrameworkStepID)
}

// markerSlug reduces a marker comment to a step ID fragment.
func markerSlug(marker string) string {
	slug := strings.TrimSpace(strings.TrimLeft(marker, "# \t"))
	slug = strings.ToLower(slug)
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteRune('-')
		}
	}
	return strings.TrimRight(b.String(), "-")
}
