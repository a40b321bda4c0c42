// Package asdf provides the version-manager runtime steps. One
// parameterized template (plugin, install, global) serves every language
// runtime instead of near-duplicate per-tool step sets.
package asdf

import (
	"github.com/felixgeelhaar/rigup/internal/domain/config"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
)

// Provider compiles manifest runtimes into asdf steps.
type Provider struct {
	runner ports.CommandRunner
	// managerDep is the step providing the asdf binary (e.g. its brew
	// formula), when the manifest declares one.
	managerDep []engine.StepID
}

// NewProvider creates a new asdf provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// WithManagerDependency makes every plugin step depend on the given step.
func (p *Provider) WithManagerDependency(id engine.StepID) *Provider {
	return &Provider{runner: p.runner, managerDep: []engine.StepID{id}}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "asdf"
}

// Compile transforms the runtime entries into steps, three per runtime, in
// declared order.
func (p *Provider) Compile(entries []config.RuntimeEntry) []engine.Step {
	var steps []engine.Step
	for _, entry := range entries {
		runtime := Runtime{
			Name:         entry.Name,
			Version:      entry.Version,
			PluginURL:    entry.PluginURL,
			Category:     engine.Category(entry.Category),
			UpdatePlugin: entry.UpdatePlugin,
		}
		steps = append(steps,
			NewPluginStep(runtime, p.managerDep, p.runner),
			NewInstallStep(runtime, p.runner),
			NewGlobalStep(runtime, p.runner),
		)
	}
	return steps
}
