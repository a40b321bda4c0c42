// Package gitconfig provides the git identity and settings steps backed by
// the global ini-format configuration file.
package gitconfig

import (
	"github.com/felixgeelhaar/rigup/internal/domain/config"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
)

// Provider compiles the git manifest section into steps.
type Provider struct {
	fs      ports.FileSystem
	gitDeps []engine.StepID
}

// NewProvider creates a new gitconfig provider.
func NewProvider(fs ports.FileSystem) *Provider {
	return &Provider{fs: fs}
}

// WithGitDependency makes the git steps depend on the step installing git
// itself.
func (p *Provider) WithGitDependency(id engine.StepID) *Provider {
	p.gitDeps = []engine.StepID{id}
	return p
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "git"
}

// Compile transforms the git section into steps. An empty section yields
// no steps.
func (p *Provider) Compile(section config.GitSection) []engine.Step {
	var steps []engine.Step
	if !section.User.IsZero() {
		steps = append(steps, NewIdentityStep(section.User.Name, section.User.Email, p.fs, p.gitDeps))
	}
	if len(section.Config) > 0 {
		steps = append(steps, NewSettingsStep(section.Config, p.fs, p.gitDeps))
	}
	return steps
}
