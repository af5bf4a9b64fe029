package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
model: SimpleRC
files:
  - SimpleRC.mo
  - SignalExchange.mo
compiler:
  bin: jm_compile
  args: --target=me
  timeout: 5m
artifacts:
  kpi_manifest: out.json
`
	cfg, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "SimpleRC", cfg.Model)
	assert.Equal(t, StringArray{"SimpleRC.mo", "SignalExchange.mo"}, cfg.Files)
	assert.Equal(t, "jm_compile", cfg.Compiler.Bin)
	assert.Equal(t, StringArray{"--target=me"}, cfg.Compiler.Args)
	assert.Equal(t, 5*time.Minute, cfg.Compiler.Timeout.Std())
	assert.Equal(t, "out.json", cfg.Artifacts.KPIManifest)

	// Untouched artifact names keep defaults.
	assert.Equal(t, "wrapped", cfg.Artifacts.WrapperModel)
	assert.Equal(t, "wrapped.mo", cfg.Artifacts.WrapperSource)
}

func TestParse_ScalarFileList(t *testing.T) {
	cfg, err := Parse([]byte("model: SimpleRC\nfiles: SimpleRC.mo\n"))
	require.NoError(t, err)

	assert.Equal(t, StringArray{"SimpleRC.mo"}, cfg.Files)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("model: SimpleRC\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultCompilerBin, cfg.Compiler.Bin)
	assert.Equal(t, "kpis.json", cfg.Artifacts.KPIManifest)
	assert.Zero(t, cfg.Compiler.Timeout)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("model: [not, a, scalar"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultCompilerBin, cfg.Compiler.Bin)
	assert.Equal(t, "wrapped", cfg.Artifacts.WrapperModel)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.Error(t, cfg.Validate())

	cfg.Model = "SimpleRC"
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boptest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: SimpleRC\nfiles: SimpleRC.mo\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SimpleRC", cfg.Model)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestParse_InvalidTimeout(t *testing.T) {
	_, err := Parse([]byte("model: SimpleRC\ncompiler:\n  timeout: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestStringArray_MarshalYAML(t *testing.T) {
	single, err := StringArray{"a.mo"}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "a.mo", single)

	multi, err := StringArray{"a.mo", "b.mo"}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mo", "b.mo"}, multi)
}
