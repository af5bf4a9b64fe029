// Package main provides the CLI entrypoint for boptest-export.
//
// boptest-export parses a Modelica model's signal exchange blocks and:
//   - Compiles the model to an FMU and introspects its metadata
//   - Classifies overwrite/read block instances and KPI declarations
//   - Generates a wrapper Modelica model exposing the exchange points
//   - Recompiles the wrapper and writes the KPI JSON manifest
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tzakula/project1-boptest/internal/compiler"
	"github.com/tzakula/project1-boptest/internal/config"
	"github.com/tzakula/project1-boptest/internal/export"
	"github.com/tzakula/project1-boptest/internal/wrapper"
)

// Demonstration model compiled when no flags are given.
const (
	demoModel = "SimpleRC"
	demoFile  = "SimpleRC.mo"
)

var (
	// Global flags
	verbose    bool
	configPath string
	model      string
	files      []string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "boptest-export",
	Short: "Export a Modelica model's signal exchange blocks as a wrapper FMU",
	Long: `boptest-export compiles a Modelica model, finds its signal exchange
blocks (overwrite and read points) and KPI declarations via FMU metadata,
generates a wrapper model exposing those points as FMU inputs/outputs,
recompiles it and writes a kpis.json manifest.

Run without arguments to export the demonstration SimpleRC model.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error

		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runExport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run the full export pipeline",
	Long: `Runs both passes: introspects the model's FMU metadata, generates the
wrapper Modelica model, compiles it into the final FMU and writes the
KPI manifest to kpis.json in the current working directory.`,
	RunE: runExport,
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Run only the introspection pass and print the classification",
	RunE:  runParse,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML run manifest")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "", "Modelica model path to export")
	rootCmd.PersistentFlags().StringArrayVarP(&files, "file", "f", nil, "Modelica source file (repeatable)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(parseCmd)
}

// loadConfig merges the manifest (if any) with command-line flags; flags
// win. With neither, the demonstration model is used.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if model != "" {
		cfg.Model = model
	}

	if len(files) > 0 {
		cfg.Files = files
	}

	if cfg.Model == "" {
		cfg.Model = demoModel
		cfg.Files = config.StringArray{demoFile}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// buildPipeline wires the external compiler and wrapper generator
// described by the manifest.
func buildPipeline(cfg *config.Config) *export.Pipeline {
	exec := compiler.NewExec(cfg.Compiler.Bin, logger)
	exec.Args = cfg.Compiler.Args
	exec.Timeout = cfg.Compiler.Timeout.Std()

	generator := wrapper.NewGenerator(wrapper.Config{
		ModelName: cfg.Artifacts.WrapperModel,
		Filename:  cfg.Artifacts.WrapperSource,
	}, logger)

	return export.New(exec, logger,
		export.WithGenerator(generator),
		export.WithManifestName(cfg.Artifacts.KPIManifest))
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipeline := buildPipeline(cfg)
	ref := compiler.ModelReference{Model: cfg.Model, Files: cfg.Files}

	fmuPath, kpiPath, err := pipeline.Export(cmd.Context(), ref)
	if err != nil {
		return err
	}

	fmt.Printf("Exported FMU path is: %s\n", fmuPath)
	fmt.Printf("KPI json path is: %s\n", kpiPath)

	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipeline := buildPipeline(cfg)
	ref := compiler.ModelReference{Model: cfg.Model, Files: cfg.Files}

	result, err := pipeline.Parse(cmd.Context(), ref)
	if err != nil {
		return err
	}

	fmt.Printf("Overwrite blocks (%d):\n", len(result.Classification.Overwrite))
	for _, instance := range result.Classification.Overwrite {
		fmt.Printf("  %s\n", instance)
	}

	fmt.Printf("Read blocks (%d):\n", len(result.Classification.Read))
	for _, instance := range result.Classification.Read {
		fmt.Printf("  %s\n", instance)
	}

	fmt.Printf("KPIs (%d):\n", len(result.KPIs))
	for _, name := range result.KPIs.Names() {
		fmt.Printf("  %s: %v\n", name, result.KPIs[name])
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
