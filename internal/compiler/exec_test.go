package compiler

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStubCompiler writes a shell script that mimics a Modelica compiler:
// it prints a message and, unless told to fail, touches "<model>.fmu" in
// its working directory.
func writeStubCompiler(t *testing.T, dir string, fail, skipArtifact bool) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub compiler script requires a POSIX shell")
	}

	script := "#!/bin/sh\necho \"compiling $1\"\n"
	if !skipArtifact {
		script += "touch \"$(echo \"$1\" | tr . _).fmu\"\n"
	}

	if fail {
		script += "echo \"model error: component not found\" >&2\nexit 1\n"
	}

	path := filepath.Join(dir, "stub-compiler.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	return path
}

func TestExecCompile(t *testing.T) {
	dir := t.TempDir()
	bin := writeStubCompiler(t, dir, false, false)

	e := NewExec(bin, nil)
	e.Dir = dir

	fmuPath, err := e.Compile(context.Background(), ModelReference{Model: "SimpleRC", Files: []string{"SimpleRC.mo"}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "SimpleRC.fmu"), fmuPath)

	// Companion log carries the compiler output.
	log, err := os.ReadFile(filepath.Join(dir, "SimpleRC_log.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "compiling SimpleRC")
}

func TestExecCompile_DottedModelPath(t *testing.T) {
	dir := t.TempDir()
	bin := writeStubCompiler(t, dir, false, false)

	e := NewExec(bin, nil)
	e.Dir = dir

	fmuPath, err := e.Compile(context.Background(), ModelReference{Model: "Examples.SimpleRC"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Examples_SimpleRC.fmu"), fmuPath)
}

func TestExecCompile_CompilerFailure(t *testing.T) {
	dir := t.TempDir()
	bin := writeStubCompiler(t, dir, true, true)

	e := NewExec(bin, nil)
	e.Dir = dir

	_, err := e.Compile(context.Background(), ModelReference{Model: "Broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling Broken")
	assert.Contains(t, err.Error(), "component not found")

	// The log is still written on failure.
	_, statErr := os.Stat(filepath.Join(dir, "Broken_log.txt"))
	assert.NoError(t, statErr)
}

func TestExecCompile_MissingArtifact(t *testing.T) {
	dir := t.TempDir()
	bin := writeStubCompiler(t, dir, false, true)

	e := NewExec(bin, nil)
	e.Dir = dir

	_, err := e.Compile(context.Background(), ModelReference{Model: "SimpleRC"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "produced no FMU")
}

func TestExecCompile_NoBinary(t *testing.T) {
	e := &Exec{}

	_, err := e.Compile(context.Background(), ModelReference{Model: "SimpleRC"})
	require.Error(t, err)
}

func TestModelReference_WithFiles(t *testing.T) {
	ref := ModelReference{Model: "SimpleRC", Files: []string{"SimpleRC.mo"}}

	wrapped := ref.WithFiles("wrapped.mo")
	assert.Equal(t, []string{"wrapped.mo", "SimpleRC.mo"}, wrapped.Files)
	assert.Equal(t, "SimpleRC", wrapped.Model)

	// Original is untouched.
	assert.Equal(t, []string{"SimpleRC.mo"}, ref.Files)
}

func TestLogPath(t *testing.T) {
	assert.Equal(t, "work/SimpleRC_log.txt", LogPath("work/SimpleRC.fmu"))
}
