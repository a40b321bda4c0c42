package docker

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/rigup/internal/adapters/command"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
)

// DaemonStepID identifies the docker daemon step.
var DaemonStepID = engine.MustNewStepID("docker:daemon")

// DaemonStep starts Docker Desktop so the daemon answers API calls.
// It is deliberately non-critical: the daemon can take a while to come up
// on first launch, and nothing else in a run depends on it being ready.
type DaemonStep struct {
	runner ports.CommandRunner
	deps   []engine.StepID
}

// NewDaemonStep creates a new DaemonStep. deps carries the step installing
// the Docker Desktop application.
func NewDaemonStep(runner ports.CommandRunner, deps []engine.StepID) *DaemonStep {
	return &DaemonStep{runner: runner, deps: deps}
}

// ID returns the step identifier.
func (s *DaemonStep) ID() engine.StepID {
	return DaemonStepID
}

// Description returns the display label.
func (s *DaemonStep) Description() string {
	return "Docker daemon"
}

// Category returns the report grouping.
func (s *DaemonStep) Category() engine.Category {
	return engine.CategoryContainer
}

// Critical reports whether a failure halts the run.
func (s *DaemonStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *DaemonStep) DependsOn() []engine.StepID {
	return s.deps
}

// Probe asks the daemon for its info; any refusal means it is not running.
func (s *DaemonStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	result, err := s.runner.Run(ctx.Context(), "docker", "info")
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

// Apply launches Docker Desktop.
func (s *DaemonStep) Apply(ctx engine.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "open", "-a", "Docker")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("open -a Docker failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}
