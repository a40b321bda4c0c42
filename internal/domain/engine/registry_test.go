package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_DuplicateID(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(
		newFakeStep("brew:formula:git"),
		newFakeStep("brew:formula:git"),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateStep)

	var invalidErr *InvalidRegistryError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "brew:formula:git", invalidErr.StepID)
}

func TestNewRegistry_MissingDependency(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(
		newFakeStep("cask:x").withDeps("brew:bootstrap"),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestNewRegistry_CyclicDependency(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(
		newFakeStep("a").withDeps("b"),
		newFakeStep("b").withDeps("c"),
		newFakeStep("c").withDeps("a"),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicDependency)
}

func TestNewRegistry_SelfDependency(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(newFakeStep("a").withDeps("a"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicDependency)
}

func TestNewRegistry_RejectsBeforeAnyProbe(t *testing.T) {
	t.Parallel()

	good := newFakeStep("good")
	_, err := NewRegistry(good, newFakeStep("bad").withDeps("nope"))

	require.Error(t, err)
	assert.Zero(t, good.probes, "validation must not probe any step")
}

func TestNewRegistry_PreservesDeclaredOrder(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(
		newFakeStep("first"),
		newFakeStep("second"),
		newFakeStep("third"),
	)
	require.NoError(t, err)

	ids := stepIDs(registry.Steps())
	assert.Equal(t, []string{"first", "second", "third"}, ids)
}

func TestNewRegistry_TopologicalOrder(t *testing.T) {
	t.Parallel()

	// The dependent is declared before its dependency; the sort must move
	// it after, while keeping everything else in declared order.
	registry, err := NewRegistry(
		newFakeStep("asdf:install:ruby").withDeps("asdf:plugin:ruby"),
		newFakeStep("asdf:plugin:ruby"),
		newFakeStep("brew:formula:jq"),
	)
	require.NoError(t, err)

	ids := stepIDs(registry.Steps())
	assert.Equal(t, []string{"asdf:plugin:ruby", "asdf:install:ruby", "brew:formula:jq"}, ids)
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(newFakeStep("brew:bootstrap"))
	require.NoError(t, err)

	step, ok := registry.Get(MustNewStepID("brew:bootstrap"))
	require.True(t, ok)
	assert.Equal(t, "brew:bootstrap", step.ID().String())

	_, ok = registry.Get(MustNewStepID("missing"))
	assert.False(t, ok)
}

func TestRegistry_StepsReturnsCopy(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(newFakeStep("a"), newFakeStep("b"))
	require.NoError(t, err)

	steps := registry.Steps()
	steps[0] = newFakeStep("mutated")

	assert.Equal(t, []string{"a", "b"}, stepIDs(registry.Steps()))
	assert.Equal(t, 2, registry.Len())
}

func stepIDs(steps []Step) []string {
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID().String()
	}
	return ids
}
