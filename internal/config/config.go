// Package config loads the optional YAML run manifest describing a
// model to export and how to reach the external Modelica compiler.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCompilerBin is the compiler executable used when the manifest
// does not name one.
const DefaultCompilerBin = "compile_fmu"

// Config is a run manifest for the export pipeline.
type Config struct {
	// Model is the Modelica model path to export.
	Model string `yaml:"model"`
	// Files are Modelica source files and libraries not on MODELICAPATH.
	Files StringArray `yaml:"files"`

	Compiler  CompilerConfig  `yaml:"compiler"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
}

// CompilerConfig configures the external Modelica-to-FMU compiler.
type CompilerConfig struct {
	// Bin is the compiler executable name or path.
	Bin string `yaml:"bin"`
	// Args are fixed arguments placed before the model and file arguments.
	Args StringArray `yaml:"args"`
	// Timeout bounds one compiler run; zero means no timeout.
	Timeout Duration `yaml:"timeout"`
}

// ArtifactsConfig names the generated artifacts.
type ArtifactsConfig struct {
	// WrapperModel is the generated Modelica model name.
	WrapperModel string `yaml:"wrapper_model"`
	// WrapperSource is the generated Modelica file name.
	WrapperSource string `yaml:"wrapper_source"`
	// KPIManifest is the KPI JSON file name.
	KPIManifest string `yaml:"kpi_manifest"`
}

// Default returns the configuration used when no manifest is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and parses a YAML manifest from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Compiler.Bin == "" {
		cfg.Compiler.Bin = DefaultCompilerBin
	}

	if cfg.Artifacts.WrapperModel == "" {
		cfg.Artifacts.WrapperModel = "wrapped"
	}

	if cfg.Artifacts.WrapperSource == "" {
		cfg.Artifacts.WrapperSource = "wrapped.mo"
	}

	if cfg.Artifacts.KPIManifest == "" {
		cfg.Artifacts.KPIManifest = "kpis.json"
	}
}

// Validate checks that the manifest can drive an export run.
func (c *Config) Validate() error {
	if c.Model == "" {
		return errors.New("manifest has no model")
	}

	return nil
}
