package compiler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const logPerm = 0o644

// maxErrTail limits how much compiler output is folded into an error message.
const maxErrTail = 2048

// Exec shells out to an external Modelica-to-FMU compiler executable.
//
// The compiler is invoked as "<bin> <args...> <model> <files...>" and is
// expected to leave "<model>.fmu" in the working directory, with dots in
// the model path replaced by underscores. Combined stdout/stderr output is
// captured into a companion "<model>_log.txt" file.
type Exec struct {
	// Bin is the compiler executable name or path.
	Bin string
	// Args are fixed arguments placed before the model and file arguments.
	Args []string
	// Dir is the working directory for the compiler; empty means the
	// current directory.
	Dir string
	// Timeout bounds a single compiler run. Zero means no timeout.
	Timeout time.Duration
	// Logger is used for debug output; nil disables logging.
	Logger *zap.Logger
}

// NewExec returns an Exec adapter for the given compiler executable.
func NewExec(bin string, logger *zap.Logger) *Exec {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Exec{Bin: bin, Logger: logger}
}

// Compile runs the external compiler and returns the path of the produced FMU.
func (e *Exec) Compile(ctx context.Context, ref ModelReference) (string, error) {
	if e.Bin == "" {
		return "", fmt.Errorf("no compiler executable configured")
	}

	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	args := make([]string, 0, len(e.Args)+1+len(ref.Files))
	args = append(args, e.Args...)
	args = append(args, ref.Model)
	args = append(args, ref.Files...)

	logger.Debug("invoking modelica compiler",
		zap.String("bin", e.Bin),
		zap.String("model", ref.Model),
		zap.Strings("files", ref.Files))

	var output bytes.Buffer

	cmd := exec.CommandContext(ctx, e.Bin, args...)
	cmd.Dir = e.Dir
	cmd.Stdout = &output
	cmd.Stderr = &output

	runErr := cmd.Run()

	base := ArtifactBase(ref.Model)
	logPath := filepath.Join(e.Dir, base+"_log.txt")

	if err := os.WriteFile(logPath, output.Bytes(), logPerm); err != nil {
		return "", fmt.Errorf("writing compiler log %s: %w", logPath, err)
	}

	if runErr != nil {
		return "", fmt.Errorf("compiling %s: %w\n%s", ref.Model, runErr, errTail(output.Bytes()))
	}

	fmuPath := filepath.Join(e.Dir, base+".fmu")
	if _, err := os.Stat(fmuPath); err != nil {
		return "", fmt.Errorf("compiler produced no FMU for %s at %s: %w", ref.Model, fmuPath, err)
	}

	logger.Debug("modelica compiler finished", zap.String("fmu", fmuPath))

	return fmuPath, nil
}

// ArtifactBase returns the artifact base name for a model path: dots in
// the qualified Modelica path become underscores, matching the compiler's
// own FMU naming.
func ArtifactBase(model string) string {
	return strings.ReplaceAll(model, ".", "_")
}

// LogPath returns the companion log path for a compiled FMU path.
func LogPath(fmuPath string) string {
	return strings.TrimSuffix(fmuPath, ".fmu") + "_log.txt"
}

func errTail(output []byte) string {
	s := strings.TrimSpace(string(output))
	if len(s) > maxErrTail {
		s = "..." + s[len(s)-maxErrTail:]
	}

	return s
}
