package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest_Full(t *testing.T) {
	t.Parallel()

	data := []byte(`
startup_file: ~/.zshrc
brew:
  taps:
    - homebrew/cask-fonts
  formulae:
    - git
    - name: asdf
      version: 0.14.0
      critical: true
  casks:
    - iterm2
    - name: visual-studio-code
shell:
  framework: oh-my-zsh
  theme: agnoster
  blocks:
    - marker: "# rigup: aliases"
      content: "alias ll='ls -la'"
git:
  user:
    name: Dev Example
    email: dev@example.com
  config:
    init.defaultBranch: main
runtimes:
  - name: ruby
    version: 3.3.0
  - name: flutter
    version: 3.19.0
    plugin_url: https://github.com/asdf-community/asdf-flutter.git
    category: mobile-tooling
    update_plugin: true
mobile:
  xcode_tools: true
  cocoapods: true
  android_home: ~/Library/Android/sdk
  flutter_doctor: true
container:
  docker: true
  api_client: postman
`)

	m, err := ParseManifest(data)
	require.NoError(t, err)

	assert.Equal(t, "~/.zshrc", m.StartupFile)
	assert.Equal(t, []string{"homebrew/cask-fonts"}, m.Brew.Taps)

	require.Len(t, m.Brew.Formulae, 2)
	assert.Equal(t, FormulaEntry{Name: "git"}, m.Brew.Formulae[0])
	assert.Equal(t, FormulaEntry{Name: "asdf", Version: "0.14.0", Critical: true}, m.Brew.Formulae[1])

	require.Len(t, m.Brew.Casks, 2)
	assert.Equal(t, "iterm2", m.Brew.Casks[0].Name)
	assert.Equal(t, "visual-studio-code", m.Brew.Casks[1].Name)

	assert.Equal(t, "oh-my-zsh", m.Shell.Framework)
	assert.Equal(t, "agnoster", m.Shell.Theme)
	require.Len(t, m.Shell.Blocks, 1)

	assert.Equal(t, "Dev Example", m.Git.User.Name)
	assert.False(t, m.Git.User.IsZero())
	assert.Equal(t, "main", m.Git.Config["init.defaultBranch"])

	require.Len(t, m.Runtimes, 2)
	assert.Equal(t, "ruby", m.Runtimes[0].Name)
	assert.True(t, m.Runtimes[1].UpdatePlugin)
	assert.Equal(t, "mobile-tooling", m.Runtimes[1].Category)

	assert.True(t, m.Mobile.XcodeTools)
	assert.True(t, m.Mobile.FlutterDoctor)
	assert.Equal(t, "~/Library/Android/sdk", m.Mobile.AndroidHome)
	assert.True(t, m.Container.Docker)
	assert.Equal(t, "postman", m.Container.APIClient)
}

func TestParseManifest_DefaultStartupFile(t *testing.T) {
	t.Parallel()

	m, err := ParseManifest([]byte(`brew: {formulae: [git]}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultStartupFile, m.StartupFile)
}

func TestParseManifest_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := ParseManifest([]byte("brew: [not: a: mapping"))
	require.Error(t, err)
}

func TestParseManifest_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"formula without name", "brew:\n  formulae:\n    - version: 1.0.0"},
		{"cask without name", "brew:\n  casks:\n    - name: \"\""},
		{"runtime without name", "runtimes:\n  - version: 3.3.0"},
		{"runtime without version", "runtimes:\n  - name: ruby"},
		{"block without marker", "shell:\n  blocks:\n    - content: alias x=y"},
		{"block without content", "shell:\n  blocks:\n    - marker: \"# m\""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseManifest([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestGitUser_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, GitUser{}.IsZero())
	assert.False(t, GitUser{Name: "Dev"}.IsZero())
	assert.False(t, GitUser{Email: "dev@example.com"}.IsZero())
}
