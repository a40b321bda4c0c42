package engine

import "context"

// PlanEntry is one step's probed state, without any apply.
type PlanEntry struct {
	step  Step
	state SatisfactionState
	err   error
}

// Step returns the probed step.
func (e PlanEntry) Step() Step {
	return e.step
}

// State returns the probed satisfaction state.
func (e PlanEntry) State() SatisfactionState {
	return e.state
}

// Err returns the probe error, if the environment was unreadable.
func (e PlanEntry) Err() error {
	return e.err
}

// Plan is the probe-only view of a registry: what a run would do.
type Plan struct {
	entries []PlanEntry
}

// Entries returns all plan entries in execution order.
func (p *Plan) Entries() []PlanEntry {
	entries := make([]PlanEntry, len(p.entries))
	copy(entries, p.entries)
	return entries
}

// Pending returns the entries whose steps would be applied.
func (p *Plan) Pending() []PlanEntry {
	var pending []PlanEntry
	for _, e := range p.entries {
		if e.err == nil && e.state.NeedsApply() {
			pending = append(pending, e)
		}
	}
	return pending
}

// HasChanges returns true if any step would be applied.
func (p *Plan) HasChanges() bool {
	return len(p.Pending()) > 0
}

// Planner probes every step without applying anything.
type Planner struct{}

// NewPlanner creates a new Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan probes each registry step in execution order. Probe errors are
// captured per entry; they do not abort planning.
func (p *Planner) Plan(ctx context.Context, registry *Registry) *Plan {
	runCtx := NewRunContext(ctx)
	plan := &Plan{}
	for _, step := range registry.Steps() {
		state, err := step.Probe(runCtx)
		if err != nil {
			err = &ProbeError{StepID: step.ID(), Err: err}
		}
		plan.entries = append(plan.entries, PlanEntry{step: step, state: state, err: err})
	}
	return plan
}
