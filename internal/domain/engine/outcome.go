package engine

import "time"

// OutcomeStatus is the terminal status of one step in a run.
type OutcomeStatus string

const (
	// StatusApplied indicates the step's apply action ran and succeeded.
	StatusApplied OutcomeStatus = "applied"
	// StatusSkipped indicates the step needed no action or was not run.
	StatusSkipped OutcomeStatus = "skipped"
	// StatusFailed indicates the step's probe or apply failed.
	StatusFailed OutcomeStatus = "failed"
	// StatusConflict indicates the step refused to overwrite divergent
	// existing configuration.
	StatusConflict OutcomeStatus = "conflict"
)

// String returns the string representation of the status.
func (s OutcomeStatus) String() string {
	return string(s)
}

// SkipReason explains why a step was recorded Skipped.
type SkipReason string

const (
	// ReasonSatisfied means the probe found nothing to do.
	ReasonSatisfied SkipReason = "satisfied"
	// ReasonDependencyFailed means a direct dependency's outcome was Failed.
	ReasonDependencyFailed SkipReason = "dependency-failed"
	// ReasonCancelled means the run was cancelled before the step ran.
	ReasonCancelled SkipReason = "cancelled"
)

// Outcome captures the immutable result of processing a single step.
type Outcome struct {
	stepID      StepID
	description string
	category    Category
	critical    bool
	status      OutcomeStatus
	reason      SkipReason
	err         error
	duration    time.Duration
}

// NewOutcome creates an Outcome for a step, capturing its display metadata.
func NewOutcome(step Step, status OutcomeStatus, err error) Outcome {
	return Outcome{
		stepID:      step.ID(),
		description: step.Description(),
		category:    step.Category(),
		critical:    step.Critical(),
		status:      status,
		err:         err,
	}
}

// StepID returns the ID of the processed step.
func (o Outcome) StepID() StepID {
	return o.stepID
}

// Description returns the step's human-readable label.
func (o Outcome) Description() string {
	return o.description
}

// Category returns the step's grouping tag.
func (o Outcome) Category() Category {
	return o.category
}

// Critical reports whether the step was marked critical.
func (o Outcome) Critical() bool {
	return o.critical
}

// Status returns the terminal status.
func (o Outcome) Status() OutcomeStatus {
	return o.status
}

// Reason returns the skip reason, if any.
func (o Outcome) Reason() SkipReason {
	return o.reason
}

// Error returns the captured error, if any.
func (o Outcome) Error() error {
	return o.err
}

// Duration returns how long the step's apply took.
func (o Outcome) Duration() time.Duration {
	return o.duration
}

// WithReason returns a copy with the skip reason set.
func (o Outcome) WithReason(reason SkipReason) Outcome {
	o.reason = reason
	return o
}

// WithDuration returns a copy with the duration set.
func (o Outcome) WithDuration(d time.Duration) Outcome {
	o.duration = d
	return o
}
