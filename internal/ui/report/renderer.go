package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/rigup/internal/domain/engine"
)

// Renderer formats plans and reports as human-readable terminal text.
type Renderer struct {
	styles styles
}

// NewRenderer creates a Renderer. color disables styling when false.
func NewRenderer(color bool) *Renderer {
	if color {
		return &Renderer{styles: defaultStyles()}
	}
	return &Renderer{styles: plainStyles()}
}

// RenderPlan formats a probe-only plan: every step with its current state.
func (r *Renderer) RenderPlan(plan *engine.Plan) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("Plan"))
	b.WriteString("\n\n")

	for _, entry := range plan.Entries() {
		glyph, style := r.planGlyph(entry)
		line := fmt.Sprintf("  %s %s", style.Render(glyph), entry.Step().Description())
		if entry.Err() != nil {
			line += r.styles.Muted.Render(fmt.Sprintf("  (probe failed: %v)", entry.Err()))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	pending := len(plan.Pending())
	if pending == 0 {
		b.WriteString(r.styles.Muted.Render("Nothing to do."))
	} else {
		b.WriteString(fmt.Sprintf("%d step(s) would be applied.", pending))
	}
	b.WriteString("\n")

	return b.String()
}

// RenderReport formats a run report grouped by category, followed by the
// aggregate summary line.
func (r *Renderer) RenderReport(report *engine.Report) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("Run report"))
	b.WriteString("\n")

	for _, category := range report.Categories() {
		b.WriteString("\n")
		b.WriteString(r.styles.Category.Render(string(category)))
		b.WriteString("\n")
		for _, outcome := range report.ByCategory(category) {
			b.WriteString(r.renderOutcome(outcome))
			b.WriteString("\n")
		}
	}

	summary := report.Summary()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("applied %d, skipped %d, failed %d, conflicts %d",
		summary.Applied, summary.Skipped, summary.Failed, summary.Conflicts))
	b.WriteString("\n")

	if report.CriticalFailure() {
		b.WriteString(r.styles.Failed.Render("A critical step did not complete."))
		b.WriteString("\n")
	}

	return b.String()
}

func (r *Renderer) renderOutcome(outcome engine.Outcome) string {
	glyph, style := r.outcomeGlyph(outcome.Status())
	line := fmt.Sprintf("  %s %s", style.Render(glyph), outcome.Description())

	switch outcome.Status() {
	case engine.StatusSkipped:
		line += r.styles.Muted.Render(fmt.Sprintf("  (%s)", outcome.Reason()))
	case engine.StatusApplied:
		if d := outcome.Duration(); d > 0 {
			line += r.styles.Muted.Render(fmt.Sprintf("  (%s)", d.Round(time.Millisecond)))
		}
	case engine.StatusFailed, engine.StatusConflict:
		if outcome.Error() != nil {
			line += r.styles.Muted.Render(fmt.Sprintf("  %v", outcome.Error()))
		}
	}

	return line
}

func (r *Renderer) planGlyph(entry engine.PlanEntry) (string, lipgloss.Style) {
	if entry.Err() != nil {
		return "?", r.styles.Failed
	}
	switch entry.State() {
	case engine.StateSatisfied:
		return "✓", r.styles.Applied
	case engine.StateStale:
		return "~", r.styles.Conflict
	default:
		return "+", r.styles.Category
	}
}

func (r *Renderer) outcomeGlyph(status engine.OutcomeStatus) (string, lipgloss.Style) {
	switch status {
	case engine.StatusApplied:
		return "✓", r.styles.Applied
	case engine.StatusSkipped:
		return "-", r.styles.Skipped
	case engine.StatusConflict:
		return "!", r.styles.Conflict
	default:
		return "✗", r.styles.Failed
	}
}
