package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/rigup/internal/domain/engine"
)

type stubStep struct {
	id       engine.StepID
	desc     string
	category engine.Category
	critical bool
	state    engine.SatisfactionState
	probeErr error
}

func (s stubStep) ID() engine.StepID             { return s.id }
func (s stubStep) Description() string           { return s.desc }
func (s stubStep) Category() engine.Category     { return s.category }
func (s stubStep) Critical() bool                { return s.critical }
func (s stubStep) DependsOn() []engine.StepID    { return nil }
func (s stubStep) Apply(engine.RunContext) error { return nil }

func (s stubStep) Probe(engine.RunContext) (engine.SatisfactionState, error) {
	return s.state, s.probeErr
}

func step(id, desc string, category engine.Category) stubStep {
	return stubStep{
		id:       engine.MustNewStepID(id),
		desc:     desc,
		category: category,
		state:    engine.StateMissing,
	}
}

func TestRenderReport_GroupsByCategory(t *testing.T) {
	t.Parallel()

	rep := engine.NewReport()
	rep.Add(engine.NewOutcome(step("brew:bootstrap", "Homebrew package manager", engine.CategoryPackageManager), engine.StatusApplied, nil))
	rep.Add(engine.NewOutcome(step("shell:theme", "zsh theme agnoster", engine.CategoryShell), engine.StatusSkipped, nil).WithReason(engine.ReasonSatisfied))
	rep.Add(engine.NewOutcome(step("brew:formula:git", "formula git", engine.CategoryPackageManager), engine.StatusFailed, errors.New("boom")))

	out := NewRenderer(false).RenderReport(rep)

	// Category headers appear once each, in first-seen order.
	pmIdx := strings.Index(out, "package-manager")
	shellIdx := strings.Index(out, "shell")
	require.GreaterOrEqual(t, pmIdx, 0)
	require.GreaterOrEqual(t, shellIdx, 0)
	assert.Less(t, pmIdx, shellIdx)

	assert.Contains(t, out, "✓ Homebrew package manager")
	assert.Contains(t, out, "- zsh theme agnoster  (satisfied)")
	assert.Contains(t, out, "✗ formula git  boom")
	assert.Contains(t, out, "applied 1, skipped 1, failed 1, conflicts 0")
	assert.NotContains(t, out, "critical step")
}

func TestRenderReport_CriticalFailureNotice(t *testing.T) {
	t.Parallel()

	failed := step("brew:bootstrap", "Homebrew package manager", engine.CategoryPackageManager)
	failed.critical = true

	rep := engine.NewReport()
	rep.Add(engine.NewOutcome(failed, engine.StatusFailed, errors.New("installer failed")))

	out := NewRenderer(false).RenderReport(rep)
	assert.Contains(t, out, "A critical step did not complete.")
}

func TestRenderReport_ConflictGlyph(t *testing.T) {
	t.Parallel()

	rep := engine.NewReport()
	rep.Add(engine.NewOutcome(step("shell:theme", "zsh theme agnoster", engine.CategoryShell), engine.StatusConflict, engine.NewConflictError("~/.zshrc", "divergent block")))

	out := NewRenderer(false).RenderReport(rep)
	assert.Contains(t, out, "! zsh theme agnoster")
	assert.Contains(t, out, "divergent block")
}

func TestRenderPlan_StatesAndSummary(t *testing.T) {
	t.Parallel()

	satisfied := step("a", "formula git", engine.CategoryPackageManager)
	satisfied.state = engine.StateSatisfied
	stale := step("b", "ruby global 3.3.0", engine.CategoryLanguageRuntime)
	stale.state = engine.StateStale
	missing := step("c", "cask iterm2", engine.CategoryEditor)

	registry, err := engine.NewRegistry(satisfied, stale, missing)
	require.NoError(t, err)
	plan := engine.NewPlanner().Plan(context.Background(), registry)

	out := NewRenderer(false).RenderPlan(plan)

	assert.Contains(t, out, "✓ formula git")
	assert.Contains(t, out, "~ ruby global 3.3.0")
	assert.Contains(t, out, "+ cask iterm2")
	assert.Contains(t, out, "2 step(s) would be applied.")
}

func TestRenderPlan_NothingToDo(t *testing.T) {
	t.Parallel()

	satisfied := step("a", "formula git", engine.CategoryPackageManager)
	satisfied.state = engine.StateSatisfied

	registry, err := engine.NewRegistry(satisfied)
	require.NoError(t, err)
	plan := engine.NewPlanner().Plan(context.Background(), registry)

	out := NewRenderer(false).RenderPlan(plan)
	assert.Contains(t, out, "Nothing to do.")
}

func TestRenderPlan_ProbeError(t *testing.T) {
	t.Parallel()

	broken := step("a", "formula git", engine.CategoryPackageManager)
	broken.probeErr = errors.New("unreadable")

	registry, err := engine.NewRegistry(broken)
	require.NoError(t, err)
	plan := engine.NewPlanner().Plan(context.Background(), registry)

	out := NewRenderer(false).RenderPlan(plan)
	assert.Contains(t, out, "? formula git")
	assert.Contains(t, out, "probe failed")
}
