// Package docker provides container tooling steps: the Docker Desktop cask,
// the daemon launch, and the API client application.
package docker

import (
	"github.com/felixgeelhaar/rigup/internal/domain/config"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
	"github.com/felixgeelhaar/rigup/internal/provider/brew"
)

// Provider compiles the container manifest section into steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new docker provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "docker"
}

// Compile transforms the container section into steps. The Docker Desktop
// application installs as a brew cask; the daemon step then launches it.
func (p *Provider) Compile(section config.ContainerSection) []engine.Step {
	var steps []engine.Step

	if section.Docker {
		cask := brew.NewCaskStep("docker", p.runner).WithCategory(engine.CategoryContainer)
		steps = append(steps,
			cask,
			NewDaemonStep(p.runner, []engine.StepID{cask.ID()}),
		)
	}
	if section.APIClient != "" {
		steps = append(steps, brew.NewCaskStep(section.APIClient, p.runner).WithCategory(engine.CategoryContainer))
	}

	return steps
}
