package engine

// SatisfactionState is the result of probing a step's current environment.
type SatisfactionState string

const (
	// StateSatisfied indicates the step's desired state is already met.
	StateSatisfied SatisfactionState = "satisfied"
	// StateMissing indicates the unit is not present and must be installed.
	StateMissing SatisfactionState = "missing"
	// StateStale indicates the unit is present but an update path exists.
	StateStale SatisfactionState = "stale"
)

// String returns the string representation of the state.
func (s SatisfactionState) String() string {
	return string(s)
}

// NeedsApply returns true if the state requires the step's apply action.
func (s SatisfactionState) NeedsApply() bool {
	return s == StateMissing || s == StateStale
}
