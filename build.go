package inoctl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// arduinoCLI is the external compiler/uploader this tool orchestrates.
const arduinoCLI = "arduino-cli"

// Runner executes an external command, streaming its output. Implemented by
// ExecRunner for real runs and by fakes in tests.
type Runner interface {
	Run(name string, args ...string) error
}

// ExecRunner runs commands synchronously, wiring the child's output to the
// given writers. A non-zero child exit becomes an ExitError carrying the
// child's own status, so collaborator failures propagate verbatim.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return collaboratorError(exitErr.ExitCode(), fmt.Errorf("%s failed: %w", name, err))
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Builder translates a resolved configuration into compiler and uploader
// invocations.
type Builder struct {
	Runner Runner
	Logger *zap.Logger
}

// Compile ensures the build directory exists and invokes the compiler with
// the resolved FQBN, build path, optional extras and the sketch path.
func (b Builder) Compile(cfg Config) error {
	if err := os.MkdirAll(cfg.BuildDir, 0o755); err != nil {
		return fmt.Errorf("failed to create build dir: %w", err)
	}

	args := []string{"compile", "--fqbn", cfg.FQBN, "--build-path", cfg.BuildDir}

	if cfg.Libraries != "" {
		args = append(args, "--libraries", cfg.Libraries)
	} else {
		b.Logger.Warn("ARDUINO_LIBS is not set, compiling without an extra library search path")
	}
	if cfg.NoColor {
		args = append(args, "--no-color")
	}
	if cfg.Verbose {
		args = append(args, "--verbose")
	}
	if cfg.TestPlan != "" {
		args = append(args, "--build-property", "build.extra_flags=-DTESTPLAN="+cfg.TestPlan)
	}
	args = append(args, cfg.Sketch)

	b.Logger.Debug("compiling", zap.String("bin", arduinoCLI), zap.Strings("args", args))
	return b.Runner.Run(arduinoCLI, args...)
}

// Upload flashes the artifacts in the build directory to the resolved port.
func (b Builder) Upload(cfg Config) error {
	args := []string{"upload", "--fqbn", cfg.FQBN, "--input-dir", cfg.BuildDir, "--port", cfg.Port}
	if cfg.Verbose {
		args = append(args, "--verbose")
	}

	b.Logger.Debug("uploading", zap.String("bin", arduinoCLI), zap.Strings("args", args))
	return b.Runner.Run(arduinoCLI, args...)
}
