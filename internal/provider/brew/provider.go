// Package brew provides Homebrew steps: the package manager bootstrap,
// taps, formulae, and cask applications.
package brew

import (
	"github.com/felixgeelhaar/rigup/internal/domain/config"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
)

// Provider compiles the brew manifest section into steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new brew provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "brew"
}

// Compile transforms the brew section into executable steps. The bootstrap
// step is always emitted first; declared order is preserved otherwise.
func (p *Provider) Compile(section config.BrewSection) []engine.Step {
	steps := []engine.Step{NewBootstrapStep(p.runner)}

	for _, tap := range section.Taps {
		steps = append(steps, NewTapStep(tap, p.runner))
	}
	for _, formula := range section.Formulae {
		steps = append(steps, NewFormulaStep(formula.Name, formula.Version, formula.Critical, p.runner))
	}
	for _, cask := range section.Casks {
		steps = append(steps, NewCaskStep(cask.Name, p.runner))
	}

	return steps
}
