// Package engine implements the idempotent provisioning engine: a validated
// step registry, tri-state probes, and an executor that applies each step at
// most once per run.
package engine

// Category groups steps for report display.
type Category string

const (
	// CategoryPackageManager covers the package manager bootstrap itself.
	CategoryPackageManager Category = "package-manager"
	// CategoryShell covers shell frameworks, themes, and startup-file blocks.
	CategoryShell Category = "shell"
	// CategoryEditor covers terminal, editor, and browser applications.
	CategoryEditor Category = "editor"
	// CategoryLanguageRuntime covers version-manager plugins and runtimes.
	CategoryLanguageRuntime Category = "language-runtime"
	// CategoryMobileTooling covers Xcode, Android, and Flutter tooling.
	CategoryMobileTooling Category = "mobile-tooling"
	// CategoryContainer covers container and API-testing tools.
	CategoryContainer Category = "container"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// Step represents one idempotent provisioning unit.
// Probe must be side-effect-free; Apply performs the external action.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// Description returns a human-readable label for reports.
	Description() string

	// Category returns the grouping tag for report display.
	Category() Category

	// Critical reports whether a failure of this step halts the run.
	Critical() bool

	// DependsOn returns the IDs of steps that must resolve before this one.
	DependsOn() []StepID

	// Probe determines the current environment state for this step.
	// "Not installed" is StateMissing, never an error; only environment
	// access failures (e.g. unreadable files) return an error.
	Probe(ctx RunContext) (SatisfactionState, error)

	// Apply executes the step's side-effecting action. It runs only when
	// Probe reported Missing or Stale.
	Apply(ctx RunContext) error
}
