package config

import "fmt"

// UserError is an operator-facing error with an actionable suggestion.
// The CLI prints Message and Suggestion; Underlying is shown only in
// verbose mode.
type UserError struct {
	Message    string
	Context    string
	Suggestion string
	Underlying error
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Context)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// NewManifestNotFoundError reports a missing manifest file.
func NewManifestNotFoundError(path string) *UserError {
	return &UserError{
		Message:    "manifest file not found",
		Context:    path,
		Suggestion: "Create a rigup.yaml manifest or point --manifest at an existing one.",
	}
}

// NewYAMLParseError reports a manifest that is not valid YAML.
func NewYAMLParseError(path string, err error) *UserError {
	return &UserError{
		Message:    "manifest is not valid YAML",
		Context:    path,
		Suggestion: "Check indentation and quoting near the reported line.",
		Underlying: err,
	}
}

// NewManifestInvalidError reports a manifest that parsed but fails validation.
func NewManifestInvalidError(path, detail string) *UserError {
	return &UserError{
		Message:    fmt.Sprintf("manifest is invalid: %s", detail),
		Context:    path,
		Suggestion: "Fix the named entry; every runtime needs a name and a version.",
	}
}

// NewSettingsParseError reports an unreadable settings file.
func NewSettingsParseError(path string, err error) *UserError {
	return &UserError{
		Message:    "settings file is not valid TOML",
		Context:    path,
		Suggestion: "Fix or delete the settings file; rigup falls back to defaults without it.",
		Underlying: err,
	}
}
