// Package app wires adapters, providers, and the engine into the commands
// the CLI exposes.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/felixgeelhaar/rigup/internal/adapters/command"
	"github.com/felixgeelhaar/rigup/internal/adapters/filesystem"
	"github.com/felixgeelhaar/rigup/internal/domain/config"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
	"github.com/felixgeelhaar/rigup/internal/provider/asdf"
	"github.com/felixgeelhaar/rigup/internal/provider/brew"
	"github.com/felixgeelhaar/rigup/internal/provider/docker"
	"github.com/felixgeelhaar/rigup/internal/provider/gitconfig"
	"github.com/felixgeelhaar/rigup/internal/provider/mobile"
	"github.com/felixgeelhaar/rigup/internal/provider/shellenv"
	"github.com/felixgeelhaar/rigup/internal/ui/report"
)

// App composes the provisioning pipeline: manifest in, registry, plan or run
// report out.
type App struct {
	out      io.Writer
	logger   ports.Logger
	runner   ports.CommandRunner
	fs       ports.FileSystem
	loader   *config.Loader
	renderer *report.Renderer
}

// New creates an App over the real system adapters.
func New(out io.Writer) *App {
	return &App{
		out:      out,
		runner:   command.NewRealRunner(),
		fs:       filesystem.NewRealFileSystem(),
		loader:   config.NewLoader(),
		renderer: report.NewRenderer(true),
	}
}

// WithLogger attaches a logger to runs.
func (a *App) WithLogger(logger ports.Logger) *App {
	a.logger = logger
	return a
}

// WithRunner overrides the command runner.
func (a *App) WithRunner(runner ports.CommandRunner) *App {
	a.runner = runner
	return a
}

// WithFileSystem overrides the filesystem.
func (a *App) WithFileSystem(fs ports.FileSystem) *App {
	a.fs = fs
	return a
}

// WithRenderer overrides the output renderer.
func (a *App) WithRenderer(renderer *report.Renderer) *App {
	a.renderer = renderer
	return a
}

// BuildRegistry compiles the manifest's sections into a validated registry.
// Provider order fixes execution order for steps with equal dependencies:
// package manager first, then shell, git, runtimes, mobile, container.
func (a *App) BuildRegistry(manifest *config.Manifest) (*engine.Registry, error) {
	var steps []engine.Step

	steps = append(steps, brew.NewProvider(a.runner).Compile(manifest.Brew)...)

	steps = append(steps, shellenv.NewProvider(a.runner, a.fs).Compile(manifest.Shell, manifest.StartupFile)...)

	git := gitconfig.NewProvider(a.fs)
	if hasFormula(manifest, "git") {
		git = git.WithGitDependency(engine.MustNewStepID("brew:formula:git"))
	}
	steps = append(steps, git.Compile(manifest.Git)...)

	runtimes := asdf.NewProvider(a.runner)
	if hasFormula(manifest, "asdf") {
		runtimes = runtimes.WithManagerDependency(engine.MustNewStepID("brew:formula:asdf"))
	}
	steps = append(steps, runtimes.Compile(manifest.Runtimes)...)

	mob := mobile.NewProvider(a.runner, a.fs)
	if hasRuntime(manifest, "ruby") {
		mob = mob.WithRubyDependency(asdf.GlobalStepID("ruby"))
	}
	if hasRuntime(manifest, "flutter") {
		mob = mob.WithFlutterDependency(asdf.GlobalStepID("flutter"))
	}
	steps = append(steps, mob.Compile(manifest.Mobile, manifest.StartupFile)...)

	steps = append(steps, docker.NewProvider(a.runner).Compile(manifest.Container)...)

	registry, err := engine.NewRegistry(steps...)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	return registry, nil
}

// Plan loads the manifest, probes every step, and prints what a run would do.
func (a *App) Plan(ctx context.Context, manifestPath string) (*engine.Plan, error) {
	registry, err := a.loadRegistry(manifestPath)
	if err != nil {
		return nil, err
	}

	plan := engine.NewPlanner().Plan(ctx, registry)
	fmt.Fprint(a.out, a.renderer.RenderPlan(plan))
	return plan, nil
}

// Apply loads the manifest, executes the registry, and prints the run
// report. The report's CriticalFailure drives the caller's exit code.
func (a *App) Apply(ctx context.Context, manifestPath string) (*engine.Report, error) {
	registry, err := a.loadRegistry(manifestPath)
	if err != nil {
		return nil, err
	}

	executor := engine.NewExecutor()
	if a.logger != nil {
		executor = executor.WithLogger(a.logger)
	}

	rep := executor.Run(ctx, registry)
	fmt.Fprint(a.out, a.renderer.RenderReport(rep))
	return rep, nil
}

func (a *App) loadRegistry(manifestPath string) (*engine.Registry, error) {
	manifest, err := a.loader.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	return a.BuildRegistry(manifest)
}

func hasFormula(manifest *config.Manifest, name string) bool {
	for _, f := range manifest.Brew.Formulae {
		if f.Name == name {
			return true
		}
	}
	return false
}

func hasRuntime(manifest *config.Manifest, name string) bool {
	for _, r := range manifest.Runtimes {
		if r.Name == name {
			return true
		}
	}
	return false
}
