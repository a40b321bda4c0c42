// Package mobile provides mobile toolchain steps: Xcode command line tools,
// CocoaPods, the flutter toolchain, and the Android SDK environment.
package mobile

import (
	"github.com/felixgeelhaar/rigup/internal/domain/blockfile"
	"github.com/felixgeelhaar/rigup/internal/domain/config"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
	"github.com/felixgeelhaar/rigup/internal/provider/shellenv"
)

// Provider compiles the mobile manifest section into steps.
type Provider struct {
	runner      ports.CommandRunner
	writer      *blockfile.Writer
	rubyDeps    []engine.StepID
	flutterDeps []engine.StepID
}

// NewProvider creates a new mobile provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem) *Provider {
	return &Provider{runner: runner, writer: blockfile.NewWriter(fs)}
}

// WithRubyDependency makes the CocoaPods step depend on the step providing
// the ruby runtime.
func (p *Provider) WithRubyDependency(id engine.StepID) *Provider {
	p.rubyDeps = []engine.StepID{id}
	return p
}

// WithFlutterDependency makes the flutter doctor step depend on the step
// providing the flutter runtime.
func (p *Provider) WithFlutterDependency(id engine.StepID) *Provider {
	p.flutterDeps = []engine.StepID{id}
	return p
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mobile"
}

// Compile transforms the mobile section into steps.
func (p *Provider) Compile(section config.MobileSection, startupFile string) []engine.Step {
	var steps []engine.Step

	if section.XcodeTools {
		steps = append(steps, NewXcodeToolsStep(p.runner))
	}
	if section.Cocoapods {
		steps = append(steps, NewCocoapodsStep(p.runner, p.rubyDeps))
	}
	if section.FlutterDoctor {
		steps = append(steps, NewFlutterDoctorStep(p.runner, p.flutterDeps))
	}
	if section.AndroidHome != "" {
		block := NewAndroidEnvBlock(section.AndroidHome, startupFile)
		steps = append(steps, shellenv.NewBlockStep(block, p.writer).
			WithID(AndroidEnvStepID).
			WithDescription("Android SDK environment").
			WithCategory(engine.CategoryMobileTooling))
	}

	return steps
}
