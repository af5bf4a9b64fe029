// Package compiler invokes an external Modelica-to-FMU compiler.
//
// The rest of the pipeline only sees the Compiler interface; Exec is
// the production implementation that shells out to the configured
// compiler executable.
package compiler

import "context"

// ModelReference identifies a Modelica model to compile.
type ModelReference struct {
	// Model is the Modelica model path, e.g. "SimpleRC" or "Buildings.Examples.SimpleRC".
	Model string
	// Files are paths to Modelica source files and libraries not on MODELICAPATH,
	// passed through to the external compiler.
	Files []string
}

// WithFiles returns a copy of the reference with extra files prepended.
// The original reference is not modified.
func (r ModelReference) WithFiles(files ...string) ModelReference {
	combined := make([]string, 0, len(files)+len(r.Files))
	combined = append(combined, files...)
	combined = append(combined, r.Files...)

	return ModelReference{Model: r.Model, Files: combined}
}

// Compiler compiles a Modelica model into an FMU binary.
type Compiler interface {
	// Compile compiles the referenced model and returns the path to the
	// produced FMU. A companion "<model>_log.txt" file with the compiler
	// output is written next to the FMU.
	Compile(ctx context.Context, ref ModelReference) (string, error)
}
