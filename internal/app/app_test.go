package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/rigup/internal/domain/config"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/testutil/mocks"
	"github.com/felixgeelhaar/rigup/internal/ui/report"
)

func fullManifest(t *testing.T) *config.Manifest {
	t.Helper()
	m, err := config.ParseManifest([]byte(`
brew:
  formulae:
    - git
    - name: asdf
      critical: true
  casks:
    - iterm2
shell:
  framework: oh-my-zsh
  theme: agnoster
git:
  user:
    name: Dev Example
    email: dev@example.com
runtimes:
  - name: ruby
    version: 3.3.0
  - name: flutter
    version: 3.19.0
mobile:
  cocoapods: true
  flutter_doctor: true
container:
  docker: true
`))
	require.NoError(t, err)
	return m
}

func newTestApp(out *bytes.Buffer, runner *mocks.CommandRunner, fs *mocks.FileSystem) *App {
	return New(out).
		WithRunner(runner).
		WithFileSystem(fs).
		WithRenderer(report.NewRenderer(false))
}

func TestBuildRegistry_WiresCrossProviderDependencies(t *testing.T) {
	t.Parallel()

	app := newTestApp(&bytes.Buffer{}, mocks.NewCommandRunner(), mocks.NewFileSystem())
	registry, err := app.BuildRegistry(fullManifest(t))
	require.NoError(t, err)

	// asdf plugin steps wait for the declared asdf formula.
	plugin, ok := registry.Get(engine.MustNewStepID("asdf:plugin:ruby"))
	require.True(t, ok)
	require.Len(t, plugin.DependsOn(), 1)
	assert.Equal(t, "brew:formula:asdf", plugin.DependsOn()[0].String())

	// The git identity waits for the declared git formula.
	identity, ok := registry.Get(engine.MustNewStepID("git:identity"))
	require.True(t, ok)
	require.Len(t, identity.DependsOn(), 1)
	assert.Equal(t, "brew:formula:git", identity.DependsOn()[0].String())

	// CocoaPods waits for the ruby runtime's global step.
	pods, ok := registry.Get(engine.MustNewStepID("mobile:cocoapods"))
	require.True(t, ok)
	require.Len(t, pods.DependsOn(), 1)
	assert.Equal(t, "asdf:global:ruby", pods.DependsOn()[0].String())

	// Flutter doctor waits for the flutter runtime's global step.
	doctor, ok := registry.Get(engine.MustNewStepID("mobile:flutter-doctor"))
	require.True(t, ok)
	require.Len(t, doctor.DependsOn(), 1)
	assert.Equal(t, "asdf:global:flutter", doctor.DependsOn()[0].String())

	// The daemon waits for the Docker Desktop cask.
	daemon, ok := registry.Get(engine.MustNewStepID("docker:daemon"))
	require.True(t, ok)
	require.Len(t, daemon.DependsOn(), 1)
	assert.Equal(t, "brew:cask:docker", daemon.DependsOn()[0].String())
}

func TestBuildRegistry_SkipsUndeclaredWiring(t *testing.T) {
	t.Parallel()

	m, err := config.ParseManifest([]byte(`
runtimes:
  - name: ruby
    version: 3.3.0
`))
	require.NoError(t, err)

	app := newTestApp(&bytes.Buffer{}, mocks.NewCommandRunner(), mocks.NewFileSystem())
	registry, err := app.BuildRegistry(m)
	require.NoError(t, err)

	// No asdf formula declared, so the plugin step has no manager dep.
	plugin, ok := registry.Get(engine.MustNewStepID("asdf:plugin:ruby"))
	require.True(t, ok)
	assert.Empty(t, plugin.DependsOn())
}

func TestApply_ConvergedMachineSkipsEverything(t *testing.T) {
	t.Parallel()

	manifestPath := filepath.Join(t.TempDir(), "rigup.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`
brew:
  formulae:
    - git
`), 0o644))

	runner := mocks.NewCommandRunner()
	runner.AddSuccess("brew", []string{"--version"}, "Homebrew 4.2.0\n")
	runner.AddSuccess("brew", []string{"list", "--versions", "git"}, "git 2.44.0\n")

	out := &bytes.Buffer{}
	app := newTestApp(out, runner, mocks.NewFileSystem())

	rep, err := app.Apply(context.Background(), manifestPath)
	require.NoError(t, err)

	assert.Equal(t, engine.Summary{Skipped: 2}, rep.Summary())
	assert.False(t, rep.CriticalFailure())
	assert.Contains(t, out.String(), "applied 0, skipped 2, failed 0, conflicts 0")
}

func TestApply_MissingManifest(t *testing.T) {
	t.Parallel()

	app := newTestApp(&bytes.Buffer{}, mocks.NewCommandRunner(), mocks.NewFileSystem())

	_, err := app.Apply(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))

	var userErr *config.UserError
	require.ErrorAs(t, err, &userErr)
}

func TestPlan_PrintsPendingSteps(t *testing.T) {
	t.Parallel()

	manifestPath := filepath.Join(t.TempDir(), "rigup.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`
brew:
  formulae:
    - git
`), 0o644))

	runner := mocks.NewCommandRunner()
	runner.AddSuccess("brew", []string{"--version"}, "Homebrew 4.2.0\n")
	runner.AddSuccess("brew", []string{"list", "--versions", "git"}, "")

	out := &bytes.Buffer{}
	app := newTestApp(out, runner, mocks.NewFileSystem())

	plan, err := app.Plan(context.Background(), manifestPath)
	require.NoError(t, err)

	assert.True(t, plan.HasChanges())
	require.Len(t, plan.Pending(), 1)
	assert.Equal(t, "brew:formula:git", plan.Pending()[0].Step().ID().String())
	assert.Contains(t, out.String(), "1 step(s) would be applied")

	// Planning never applies.
	assert.Zero(t, runner.CallCount("brew", "install", "git"))
}
