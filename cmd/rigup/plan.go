package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what apply would do",
	Long: `Plan probes every step and prints its current state without making
any changes: satisfied steps, missing ones, and installed-but-outdated ones.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	rigup := newRigup(os.Stdout)

	if _, err := rigup.Plan(context.Background(), resolveManifestPath()); err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}
	return nil
}
