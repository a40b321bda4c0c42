package engine

import (
	"context"
	"time"

	"github.com/felixgeelhaar/rigup/internal/ports"
)

// Executor processes a registry's steps strictly one at a time, in the
// registry's topological order. Probes decide whether each apply runs;
// failures are recorded and the run continues, except for critical steps,
// which halt execution.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// WithLogger returns an Executor that logs step processing.
func (e *Executor) WithLogger(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Run processes every step in the registry and returns the run report.
// Step-level failures never propagate as errors; they are captured into
// outcomes. Cancellation is honored between steps, never mid-step.
func (e *Executor) Run(ctx context.Context, registry *Registry) *Report {
	report := NewReport()
	failed := make(map[string]bool)

	runCtx := NewRunContext(ctx)
	if e.logger != nil {
		runCtx = runCtx.WithLogger(e.logger)
	}

	steps := registry.Steps()
	for i, step := range steps {
		select {
		case <-ctx.Done():
			e.recordCancelled(report, steps[i:])
			return report
		default:
		}

		outcome := e.processStep(runCtx, step, failed)
		report.Add(outcome)

		if outcome.Status() == StatusFailed {
			failed[step.ID().String()] = true
			if step.Critical() && !isProbeError(outcome.Error()) {
				e.recordHalted(report, steps[i+1:], failed)
				return report
			}
		}
	}

	return report
}

// processStep probes and, when needed, applies a single step.
func (e *Executor) processStep(ctx RunContext, step Step, failed map[string]bool) Outcome {
	if dep, ok := failedDependency(step, failed); ok {
		e.logSkip(ctx, step, "dependency failed", dep)
		return NewOutcome(step, StatusSkipped, nil).WithReason(ReasonDependencyFailed)
	}

	state, err := step.Probe(ctx)
	if err != nil {
		probeErr := &ProbeError{StepID: step.ID(), Err: err}
		e.logError(ctx, step, probeErr)
		return NewOutcome(step, StatusFailed, probeErr)
	}

	if state == StateSatisfied {
		e.logSkip(ctx, step, "already satisfied", StepID{})
		return NewOutcome(step, StatusSkipped, nil).WithReason(ReasonSatisfied)
	}

	start := time.Now()
	err = step.Apply(ctx)
	duration := time.Since(start)

	if err != nil {
		if IsConflict(err) {
			e.logError(ctx, step, err)
			return NewOutcome(step, StatusConflict, err).WithDuration(duration)
		}
		e.logError(ctx, step, err)
		return NewOutcome(step, StatusFailed, err).WithDuration(duration)
	}

	if ctx.Logger() != nil {
		ctx.Logger().Info(ctx.Context(), "step applied",
			ports.F("step", step.ID().String()),
			ports.F("state", state.String()),
			ports.F("duration", duration.String()))
	}
	return NewOutcome(step, StatusApplied, nil).WithDuration(duration)
}

// recordCancelled marks every remaining step skipped with reason cancelled.
// Probes are not run after cancellation.
func (e *Executor) recordCancelled(report *Report, remaining []Step) {
	for _, step := range remaining {
		report.Add(NewOutcome(step, StatusSkipped, nil).WithReason(ReasonCancelled))
	}
}

// recordHalted runs after a critical failure. Remaining steps that directly
// depend on a failed step are recorded skipped; the rest are omitted, which
// is what makes the returned report partial.
func (e *Executor) recordHalted(report *Report, remaining []Step, failed map[string]bool) {
	for _, step := range remaining {
		if _, ok := failedDependency(step, failed); ok {
			report.Add(NewOutcome(step, StatusSkipped, nil).WithReason(ReasonDependencyFailed))
		}
	}
}

// failedDependency returns the first direct dependency whose outcome was
// Failed, if any.
func failedDependency(step Step, failed map[string]bool) (StepID, bool) {
	for _, dep := range step.DependsOn() {
		if failed[dep.String()] {
			return dep, true
		}
	}
	return StepID{}, false
}

func isProbeError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ProbeError)
	return ok
}

func (e *Executor) logSkip(ctx RunContext, step Step, why string, dep StepID) {
	logger := ctx.Logger()
	if logger == nil {
		return
	}
	fields := []ports.Field{ports.F("step", step.ID().String()), ports.F("why", why)}
	if !dep.IsZero() {
		fields = append(fields, ports.F("dependency", dep.String()))
	}
	logger.Debug(ctx.Context(), "step skipped", fields...)
}

func (e *Executor) logError(ctx RunContext, step Step, err error) {
	if logger := ctx.Logger(); logger != nil {
		logger.Error(ctx.Context(), "step failed",
			ports.F("step", step.ID().String()),
			ports.F("error", err.Error()))
	}
}
