package mobile

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/rigup/internal/adapters/command"
	"github.com/felixgeelhaar/rigup/internal/domain/blockfile"
	"github.com/felixgeelhaar/rigup/internal/domain/engine"
	"github.com/felixgeelhaar/rigup/internal/ports"
)

// XcodeToolsStepID identifies the Xcode command line tools step.
var XcodeToolsStepID = engine.MustNewStepID("mobile:xcode-tools")

// CocoapodsStepID identifies the CocoaPods step.
var CocoapodsStepID = engine.MustNewStepID("mobile:cocoapods")

// AndroidEnvStepID identifies the Android environment step.
var AndroidEnvStepID = engine.MustNewStepID("mobile:android-env")

// FlutterDoctorStepID identifies the flutter doctor step.
var FlutterDoctorStepID = engine.MustNewStepID("mobile:flutter-doctor")

// XcodeToolsStep installs the Xcode command line tools.
type XcodeToolsStep struct {
	runner ports.CommandRunner
}

// NewXcodeToolsStep creates a new XcodeToolsStep.
func NewXcodeToolsStep(runner ports.CommandRunner) *XcodeToolsStep {
	return &XcodeToolsStep{runner: runner}
}

// ID returns the step identifier.
func (s *XcodeToolsStep) ID() engine.StepID {
	return XcodeToolsStepID
}

// Description returns the display label.
func (s *XcodeToolsStep) Description() string {
	return "Xcode command line tools"
}

// Category returns the report grouping.
func (s *XcodeToolsStep) Category() engine.Category {
	return engine.CategoryMobileTooling
}

// Critical reports whether a failure halts the run.
func (s *XcodeToolsStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *XcodeToolsStep) DependsOn() []engine.StepID {
	return nil
}

// Probe checks for an active developer directory.
func (s *XcodeToolsStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	result, err := s.runner.Run(ctx.Context(), "xcode-select", "-p")
	if err != nil {
		if command.IsNotFound(err) {
			return engine.StateMissing, nil
		}
		return engine.StateMissing, err
	}
	if !result.Success() || strings.TrimSpace(result.Stdout) == "" {
		return engine.StateMissing, nil
	}
	return engine.StateSatisfied, nil
}

// Apply triggers the tools installer.
func (s *XcodeToolsStep) Apply(ctx engine.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "xcode-select", "--install")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("xcode-select --install failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// CocoapodsStep installs the CocoaPods gem.
type CocoapodsStep struct {
	runner ports.CommandRunner
	deps   []engine.StepID
}

// NewCocoapodsStep creates a new CocoapodsStep. deps carries the ruby
// runtime step when the manifest declares one.
func NewCocoapodsStep(runner ports.CommandRunner, deps []engine.StepID) *CocoapodsStep {
	return &CocoapodsStep{runner: runner, deps: deps}
}

// ID returns the step identifier.
func (s *CocoapodsStep) ID() engine.StepID {
	return CocoapodsStepID
}

// Description returns the display label.
func (s *CocoapodsStep) Description() string {
	return "CocoaPods"
}

// Category returns the report grouping.
func (s *CocoapodsStep) Category() engine.Category {
	return engine.CategoryMobileTooling
}

// Critical reports whether a failure halts the run.
func (s *CocoapodsStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *CocoapodsStep) DependsOn() []engine.StepID {
	return s.deps
}

// Probe asks gem whether cocoapods is installed.
func (s *CocoapodsStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	result, err := s.runner.Run(ctx.Context(), "gem", "list", "-i", "cocoapods")
	if err != nil {
		if command.IsNotFound(err) {
			return engine.StateMissing, nil
		}
		return engine.StateMissing, err
	}
	// `gem list -i` prints "true" and exits zero only when installed.
	if result.Success() && strings.TrimSpace(result.Stdout) == "true" {
		return engine.StateSatisfied, nil
	}
	return engine.StateMissing, nil
}

// Apply installs the gem.
func (s *CocoapodsStep) Apply(ctx engine.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "gem", "install", "cocoapods")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("gem install cocoapods failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// FlutterDoctorStep verifies the flutter toolchain and downloads missing
// development binaries.
type FlutterDoctorStep struct {
	runner ports.CommandRunner
	deps   []engine.StepID
}

// NewFlutterDoctorStep creates a new FlutterDoctorStep. deps carries the
// step providing the flutter runtime when the manifest declares one.
func NewFlutterDoctorStep(runner ports.CommandRunner, deps []engine.StepID) *FlutterDoctorStep {
	return &FlutterDoctorStep{runner: runner, deps: deps}
}

// ID returns the step identifier.
func (s *FlutterDoctorStep) ID() engine.StepID {
	return FlutterDoctorStepID
}

// Description returns the display label.
func (s *FlutterDoctorStep) Description() string {
	return "Flutter toolchain"
}

// Category returns the report grouping.
func (s *FlutterDoctorStep) Category() engine.Category {
	return engine.CategoryMobileTooling
}

// Critical reports whether a failure halts the run.
func (s *FlutterDoctorStep) Critical() bool {
	return false
}

// DependsOn returns the step dependencies.
func (s *FlutterDoctorStep) DependsOn() []engine.StepID {
	return s.deps
}

// Probe runs flutter doctor. A zero exit means the toolchain is healthy;
// a non-zero exit means doctor found issues to repair.
func (s *FlutterDoctorStep) Probe(ctx engine.RunContext) (engine.SatisfactionState, error) {
	result, err := s.runner.Run(ctx.Context(), "flutter", "doctor")
	if err != nil {
		if command.IsNotFound(err) {
			return engine.StateMissing, nil
		}
		return engine.StateMissing, err
	}
	if result.Success() {
		return engine.StateSatisfied, nil
	}
	return engine.StateStale, nil
}

// Apply downloads the development binaries doctor complained about.
func (s *FlutterDoctorStep) Apply(ctx engine.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "flutter", "precache")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("flutter precache failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// NewAndroidEnvBlock builds the startup block exporting the Android SDK
// environment for the given SDK location.
func NewAndroidEnvBlock(androidHome, targetFile string) blockfile.Block {
	content := strings.Join([]string{
		fmt.Sprintf("export ANDROID_HOME=%q", androidHome),
		`export PATH="$PATH:$ANDROID_HOME/emulator:$ANDROID_HOME/platform-tools"`,
	}, "\n")
	return blockfile.Block{
		Marker:     "# rigup: android sdk",
		Content:    content,
		TargetFile: targetFile,
	}
}
