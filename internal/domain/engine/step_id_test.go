package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStepID_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"single segment", "brew"},
		{"two segments", "brew:bootstrap"},
		{"three segments", "brew:formula:git"},
		{"with dots and dashes", "asdf:plugin:oh-my.zsh"},
		{"with slash", "brew:tap:homebrew/cask-fonts"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, err := NewStepID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestNewStepID_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyStepID},
		{"whitespace only", "   ", ErrEmptyStepID},
		{"leading colon", ":bootstrap", ErrInvalidStepID},
		{"trailing colon", "brew:", ErrInvalidStepID},
		{"embedded space", "brew: bootstrap", ErrInvalidStepID},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewStepID(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMustNewStepID_PanicsOnInvalid(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustNewStepID(":broken")
	})
}

func TestStepID_Provider(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "brew", MustNewStepID("brew:formula:git").Provider())
	assert.Equal(t, "docker", MustNewStepID("docker").Provider())
}

func TestStepID_Equals(t *testing.T) {
	t.Parallel()

	a := MustNewStepID("brew:formula:git")
	b := MustNewStepID("brew:formula:git")
	c := MustNewStepID("brew:formula:jq")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestStepID_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, StepID{}.IsZero())
	assert.False(t, MustNewStepID("brew").IsZero())
}
