package shellenv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/rigup/internal/domain/blockfile"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
	"github.com/felixgeelhaar/rigup/internal/testutil/mocks"
)

func runCtx() engine.RunContext {
	return engine.NewRunContext(context.Background())
}

func aliasBlock() blockfile.Block {
	return blockfile.Block{
		Marker:     "# rigup: aliases",
		Content:    "alias ll='ls -la'",
		TargetFile: "/home/dev/.zshrc",
	}
}

func TestFrameworkStep_Probe(t *testing.T) {
	t.Parallel()

	t.Run("missing without install dir", func(t *testing.T) {
		t.Parallel()
		fs := mocks.NewFileSystem()

		state, err := NewFrameworkStep(mocks.NewCommandRunner(), fs, nil).Probe(runCtx())
		require.NoError(t, err)
		assert.Equal(t, engine.StateMissing, state)
	})

	t.Run("satisfied with install dir", func(t *testing.T) {
		t.Parallel()
		fs := mocks.NewFileSystem()
		fs.AddDir(ports.ExpandPath("~/.oh-my-zsh"))

		state, err := NewFrameworkStep(mocks.NewCommandRunner(), fs, nil).Probe(runCtx())
		require.NoError(t, err)
		assert.Equal(t, engine.StateSatisfied, state)
	})
}

func TestFrameworkStep_ApplyRunsInstaller(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddSuccess("/bin/bash", []string{"-c", ohMyZshInstall}, "")

	step := NewFrameworkStep(runner, mocks.NewFileSystem(), nil)
	require.NoError(t, step.Apply(runCtx()))
	assert.Equal(t, 1, runner.CallCount("/bin/bash", "-c", ohMyZshInstall))
}

func TestBlockStep_ProbeMapsWriterCheck(t *testing.T) {
	t.Parallel()

	t.Run("missing block", func(t *testing.T) {
		t.Parallel()
		writer := blockfile.NewWriter(mocks.NewFileSystem())

		state, err := NewBlockStep(aliasBlock(), writer).Probe(runCtx())
		require.NoError(t, err)
		assert.Equal(t, engine.StateMissing, state)
	})

	t.Run("identical block is satisfied", func(t *testing.T) {
		t.Parallel()
		fs := mocks.NewFileSystem()
		fs.AddFile("/home/dev/.zshrc", "# rigup: aliases\nalias ll='ls -la'\n")
		writer := blockfile.NewWriter(fs)

		state, err := NewBlockStep(aliasBlock(), writer).Probe(runCtx())
		require.NoError(t, err)
		assert.Equal(t, engine.StateSatisfied, state)
	})

	t.Run("divergent block is stale", func(t *testing.T) {
		t.Parallel()
		fs := mocks.NewFileSystem()
		fs.AddFile("/home/dev/.zshrc", "# rigup: aliases\nalias ll='ls -lh'\n")
		writer := blockfile.NewWriter(fs)

		state, err := NewBlockStep(aliasBlock(), writer).Probe(runCtx())
		require.NoError(t, err)
		assert.Equal(t, engine.StateStale, state)
	})
}

func TestBlockStep_ApplyWritesBlock(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	writer := blockfile.NewWriter(fs)

	require.NoError(t, NewBlockStep(aliasBlock(), writer).Apply(runCtx()))
	assert.Equal(t, "# rigup: aliases\nalias ll='ls -la'\n", fs.FileContent("/home/dev/.zshrc"))
}

func TestBlockStep_ApplyConflict(t *testing.T) {
	t.Parallel()

	existing := "# rigup: aliases\nalias ll='ls -lh'\n"
	fs := mocks.NewFileSystem()
	fs.AddFile("/home/dev/.zshrc", existing)
	writer := blockfile.NewWriter(fs)

	err := NewBlockStep(aliasBlock(), writer).Apply(runCtx())
	require.Error(t, err)
	assert.True(t, engine.IsConflict(err))
	assert.Equal(t, existing, fs.FileContent("/home/dev/.zshrc"), "conflict must not touch the file")
}

func TestBlockStep_DerivedID(t *testing.T) {
	t.Parallel()

	writer := blockfile.NewWriter(mocks.NewFileSystem())
	step := NewBlockStep(aliasBlock(), writer)

	assert.Equal(t, "shell:block:rigup-aliases", step.ID().String())
	assert.Equal(t, engine.CategoryShell, step.Category())
	assert.False(t, step.Critical())
}

func TestThemeStep(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	writer := blockfile.NewWriter(fs)
	step := NewThemeStep("agnoster", "/home/dev/.zshrc", writer)

	assert.Equal(t, "shell:theme", step.ID().String())
	require.Len(t, step.DependsOn(), 1)
	assert.True(t, step.DependsOn()[0].Equals(FrameworkStepID))

	require.NoError(t, step.Apply(runCtx()))
	assert.Equal(t, "# rigup: zsh theme\nZSH_THEME=\"agnoster\"\n", fs.FileContent("/home/dev/.zshrc"))
}

func TestMarkerSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		marker string
		want   string
	}{
		{"# rigup: aliases", "rigup-aliases"},
		{"## Android SDK", "android-sdk"},
		{"#path", "path"},
		{"#  Mixed  CASE  42 ", "mixed-case-42"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, markerSlug(tt.marker), tt.marker)
	}
}
