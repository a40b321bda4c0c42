package engine

import (
	"time"

	"github.com/google/uuid"
)

// Summary aggregates per-status counts for one run.
type Summary struct {
	Applied   int
	Skipped   int
	Failed    int
	Conflicts int
}

// Total returns the number of recorded outcomes.
func (s Summary) Total() int {
	return s.Applied + s.Skipped + s.Failed + s.Conflicts
}

// Report is the ordered, aggregated outcome of one executor invocation.
type Report struct {
	id       string
	started  time.Time
	outcomes []Outcome
}

// NewReport creates an empty report with a fresh run ID.
func NewReport() *Report {
	return &Report{
		id:      uuid.NewString(),
		started: time.Now(),
	}
}

// ID returns the run identifier.
func (r *Report) ID() string {
	return r.id
}

// Started returns when the run began.
func (r *Report) Started() time.Time {
	return r.started
}

// Add appends an outcome. Outcomes are immutable once recorded.
func (r *Report) Add(outcome Outcome) {
	r.outcomes = append(r.outcomes, outcome)
}

// Outcomes returns the recorded outcomes in execution order.
func (r *Report) Outcomes() []Outcome {
	outcomes := make([]Outcome, len(r.outcomes))
	copy(outcomes, r.outcomes)
	return outcomes
}

// Len returns the number of recorded outcomes.
func (r *Report) Len() int {
	return len(r.outcomes)
}

// Summary returns aggregate per-status counts.
func (r *Report) Summary() Summary {
	var s Summary
	for _, o := range r.outcomes {
		switch o.Status() {
		case StatusApplied:
			s.Applied++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		case StatusConflict:
			s.Conflicts++
		}
	}
	return s
}

// Categories returns the distinct categories in first-seen order.
func (r *Report) Categories() []Category {
	seen := make(map[Category]bool)
	var categories []Category
	for _, o := range r.outcomes {
		if !seen[o.Category()] {
			seen[o.Category()] = true
			categories = append(categories, o.Category())
		}
	}
	return categories
}

// ByCategory returns the outcomes recorded under the given category,
// in execution order.
func (r *Report) ByCategory(category Category) []Outcome {
	var outcomes []Outcome
	for _, o := range r.outcomes {
		if o.Category() == category {
			outcomes = append(outcomes, o)
		}
	}
	return outcomes
}

// CriticalFailure reports whether any critical step ended in Failed or
// Conflict. This drives the process exit code.
func (r *Report) CriticalFailure() bool {
	for _, o := range r.outcomes {
		if o.Critical() && (o.Status() == StatusFailed || o.Status() == StatusConflict) {
			return true
		}
	}
	return false
}
