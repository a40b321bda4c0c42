// Package shellenv provides shell environment steps: the zsh framework,
// theme selection, and marker-delimited startup file blocks.
package shellenv

import (
	"github.com/felixgeelhaar/rigup/internal/domain/blockfile"
	"github.com/felixgeelhaar/rigup/internal/domain/config"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
)

// Provider compiles the shell manifest section into steps.
type Provider struct {
	runner       ports.CommandRunner
	writer       *blockfile.Writer
	frameworkDep []engine.StepID
	fs           ports.FileSystem
}

// NewProvider creates a new shellenv provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem) *Provider {
	return &Provider{
		runner: runner,
		writer: blockfile.NewWriter(fs),
		fs:     fs,
	}
}

// WithFrameworkDependency makes the framework step depend on the given step,
// typically the package providing curl or git.
func (p *Provider) WithFrameworkDependency(id engine.StepID) *Provider {
	p.frameworkDep = []engine.StepID{id}
	return p
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "shell"
}

// Compile transforms the shell section into steps: framework first, then the
// theme, then the declared startup blocks in order.
func (p *Provider) Compile(section config.ShellSection, startupFile string) []engine.Step {
	var steps []engine.Step

	if section.Framework != "" {
		steps = append(steps, NewFrameworkStep(p.runner, p.fs, p.frameworkDep))
	}
	if section.Theme != "" {
		theme := NewThemeStep(section.Theme, startupFile, p.writer)
		if section.Framework == "" {
			theme = theme.WithDependencies()
		}
		steps = append(steps, theme)
	}
	for _, entry := range section.Blocks {
		block := blockfile.Block{
			Marker:     entry.Marker,
			Content:    entry.Content,
			TargetFile: startupFile,
		}
		steps = append(steps, NewBlockStep(block, p.writer))
	}

	return steps
}
