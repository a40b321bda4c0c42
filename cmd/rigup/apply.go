package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/rigup/internal/app"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ui/report"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Converge the workstation onto the manifest",
	Long: `Apply probes every step and applies the ones that are missing or
outdated, in dependency order.

Already-satisfied steps are skipped, which makes re-running apply safe at
any time. A failing critical step halts the run; the partial report still
shows everything processed up to that point.

Use --dry-run to see the plan without making changes.`,
	RunE: runApply,
}

var applyDryRun bool

// errCriticalFailure signals the non-zero exit for a halted run. The report
// has already been printed when this is returned.
var errCriticalFailure = errors.New("a critical step failed; run halted")

// rigupClient is the slice of the application the commands use.
type rigupClient interface {
	Plan(ctx context.Context, manifestPath string) (*engine.Plan, error)
	Apply(ctx context.Context, manifestPath string) (*engine.Report, error)
}

var newRigup = func(out io.Writer) rigupClient {
	return app.New(out).
		WithLogger(newLogger()).
		WithRenderer(report.NewRenderer(resolveColor()))
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Show what would be done without making changes")
}

func runApply(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rigup := newRigup(os.Stdout)

	if applyDryRun {
		plan, err := rigup.Plan(ctx, resolveManifestPath())
		if err != nil {
			return fmt.Errorf("plan failed: %w", err)
		}
		if plan.HasChanges() {
			fmt.Println("\n[Dry run - no changes made]")
		}
		return nil
	}

	rep, err := rigup.Apply(ctx, resolveManifestPath())
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}
	if rep.CriticalFailure() {
		return errCriticalFailure
	}
	return nil
}
